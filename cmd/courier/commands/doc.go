// Package commands defines the courier CLI.
//
// The root command generates an ephemeral identity, registers it with the
// relay, and drops into an interactive session:
//
//   - send <peer> <text>     Seal and relay a message
//   - receive                Fetch and open the newest queued message
//   - contacts               List clients registered on the relay
//   - add <peer> <hex-key>   Record a peer's agreement key
//   - keys                   Print this identity's public keys
//   - quit                   Leave
//
// # Implementation
//
// The root command builds the dependency graph (identity, contact book,
// relay client, messaging service) before the session starts, and runs a
// background heartbeat while it lasts. Keys live only in process memory, so
// peers must exchange agreement keys again after either side restarts.
package commands
