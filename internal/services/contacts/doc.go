// Package contacts keeps the client's directory of peer agreement keys.
//
// Identities are ephemeral per process run, so the book is in-memory only: a
// key exchanged out of band is good exactly as long as both peers keep their
// current identities.
package contacts
