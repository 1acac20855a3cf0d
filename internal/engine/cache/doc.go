// Package cache stores downloaded corpora on disk so repeated scans of the
// same source skip the network.
//
// Entries are JSON files named after the SHA-256 of the source location and
// expire after a TTL (default 1 hour). Only source text is cached, never
// scan results. Writes go to a temporary file that is renamed into place.
package cache
