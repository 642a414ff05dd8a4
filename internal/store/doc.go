// Package store persists the relay's client registry and message queues.
//
// State lives in memory behind reader/writer locks and is mirrored to two
// indented JSON files, clients.json and messages.json, one full rewrite per
// mutation. Files are replaced atomically via a temp file and rename, so a
// crash mid-write never leaves a truncated document.
package store
