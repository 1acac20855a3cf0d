// Package ingest reads a text corpus as ordered lines from a local file,
// an HTTP(S) URL or standard input.
//
// Every source strips line terminators ("\n" or "\r\n") and does not emit an
// empty line for a trailing newline. Read failures wrap
// engine.ErrSourceUnavailable so callers can classify them with errors.Is.
// Remote corpora can be cached on disk through CachedSource.
package ingest
