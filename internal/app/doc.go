// Package app wires client-side dependencies for the CLI.
//
// It generates the process identity and builds the contact book, relay
// client and messaging service from Config, exposing them via the Wire
// struct for commands to use.
package app
