// Package server implements the relay: a TCP accept loop with one goroutine
// per connection, and the processor that applies decoded commands to the
// store. The relay never sees plaintext; it verifies sender signatures,
// queues ciphertext, and answers queries about registered clients.
package server
