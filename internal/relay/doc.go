// Package relay implements domain.RelayClient over a set of nostr relay
// websockets.
//
// Delivery is redundant: Publish races all endpoints and succeeds on the
// first acknowledgement, Query merges every endpoint's answer with
// replaceable-event semantics. The pool is an explicit handle owned by the
// caller, not a module-level singleton.
package relay
