// Package messaging is the client-side messaging core.
//
// It derives the pairwise key for a peer from the contact book, seals and
// signs outgoing plaintext, and opens fetched ciphertext. The relay only ever
// sees sealed bytes and the signature over their hex encoding.
package messaging
