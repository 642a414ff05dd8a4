// Package protocol implements the wire codec for courier's command and
// response unions.
//
// Each command or response travels as one JSON document. A variant that
// carries fields encodes as a single-key object whose key is the variant
// name, for example {"Register":{"client_id":...,"public_key":...}}. A
// variant with no fields encodes as a bare JSON string, "GetClients" or "Ok";
// the decoder also accepts the {"GetClients":null} spelling. The variant set
// is closed and the protocol carries no version field, so both ends must be
// upgraded in lockstep.
package protocol
