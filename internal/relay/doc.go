// Package relay implements the client side of the wire protocol over TCP.
// Every call dials a fresh connection, writes one command document, reads one
// response line, and closes.
package relay
