package domain

import (
	"context"

	"github.com/nbd-wtf/go-nostr"
)

// Signer holds the client identity and performs the cryptographic steps of
// a submission: NIP-04 encryption toward a recipient, Schnorr signing, and
// local verification.
type Signer interface {
	PublicKey() string
	EncryptTo(recipientPub, plaintext string) (string, error)
	Sign(ev *nostr.Event) error
	Verify(ev nostr.Event) (bool, error)
}

// Relay is a single relay endpoint. Implemented over a live websocket in
// internal/relay and by test doubles elsewhere.
type Relay interface {
	URL() string
	Publish(ctx context.Context, ev nostr.Event) error
	Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error)
	Close() error
}

// RelayClient is how we talk to the relay set as a whole. Publish succeeds
// as soon as any one endpoint accepts the event; Query aggregates across
// all endpoints with replaceable-event deduplication.
type RelayClient interface {
	Publish(ctx context.Context, ev nostr.Event) error
	Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error)
}
