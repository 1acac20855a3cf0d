// Package logging configures zerolog for namesearch and carries loggers and
// trace identifiers through context.Context.
//
// Every package obtains its logger with FromContext so that a single run
// shares one trace_id across source retrieval, scheduling and rendering.
package logging
