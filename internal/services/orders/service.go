package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"

	"mostro/internal/domain"
	"mostro/internal/protocol/mostro"
)

// DefaultWindow bounds how far back ListPending scans. Mostro republishes
// live orders, so anything older is stale.
const DefaultWindow = 48 * time.Hour

// Service drives the two order workflows against Mostro: submitting
// encrypted order messages and listing the published pending orders.
//
// Submission pipeline, each step a hard precondition for the next:
// marshal envelope, encrypt for Mostro (NIP-04), wrap in a kind-4 event,
// sign, verify locally, publish first-success-wins. An event that fails
// local verification is never handed to the relay set.
type Service struct {
	signer domain.Signer
	relays domain.RelayClient
	mostro string // counterparty hex pubkey
	log    *zap.Logger
}

// New constructs the service. signer may be nil for read-only use
// (ListPending); submissions then fail.
func New(signer domain.Signer, relays domain.RelayClient, mostroPub string, log *zap.Logger) *Service {
	return &Service{
		signer: signer,
		relays: relays,
		mostro: mostroPub,
		log:    log,
	}
}

// ErrNoIdentity indicates a submission was attempted without a secret key.
var ErrNoIdentity = errors.New("no secret key configured")

// SubmitNew encodes and submits a new-order message, returning the id of
// the published event.
func (s *Service) SubmitNew(ctx context.Context, intent domain.OrderIntent) (string, error) {
	if s.signer == nil {
		return "", ErrNoIdentity
	}
	env, err := mostro.NewOrder(s.signer.PublicKey(), intent)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, env)
}

// Cancel submits a cancellation for an existing order id, returning the id
// of the published event.
func (s *Service) Cancel(ctx context.Context, orderID string) (string, error) {
	if s.signer == nil {
		return "", ErrNoIdentity
	}
	env, err := mostro.Cancel(s.signer.PublicKey(), orderID)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, env)
}

func (s *Service) submit(ctx context.Context, env domain.Envelope) (string, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}

	ciphertext, err := s.signer.EncryptTo(s.mostro, string(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEncryptionFailed, err)
	}

	ev := nostr.Event{
		Kind:      nostr.KindEncryptedDirectMessage,
		CreatedAt: nostr.Now(),
		Tags:      nostr.Tags{{"p", s.mostro}},
		Content:   ciphertext,
	}
	if err := s.signer.Sign(&ev); err != nil {
		return "", fmt.Errorf("sign event: %w", err)
	}

	ok, err := s.signer.Verify(ev)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSignatureInvalid, err)
	}
	if !ok {
		return "", domain.ErrSignatureInvalid
	}

	if err := s.relays.Publish(ctx, ev); err != nil {
		return "", err
	}
	s.log.Info("order message published",
		zap.String("event", ev.ID),
		zap.String("action", string(env.Order.Action)))
	return ev.ID, nil
}

// ListPending fetches Mostro's pending orders published within the window.
// A window of 0 means DefaultWindow. When no relay answers at all it
// returns an empty slice and logs a warning rather than failing; callers
// wanting a stable display order must sort, relays guarantee none.
func (s *Service) ListPending(ctx context.Context, window time.Duration) ([]domain.Order, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	since := nostr.Timestamp(time.Now().Add(-window).Unix())
	filter := nostr.Filter{
		Kinds:   []int{domain.OrderEventKind},
		Authors: []string{s.mostro},
		Since:   &since,
		Tags:    nostr.TagMap{"s": []string{domain.StatusPending}},
	}

	events, err := s.relays.Query(ctx, filter)
	if err != nil {
		var qe *domain.QueryError
		if errors.As(err, &qe) {
			s.log.Warn("no relay answered, order list is empty", zap.Error(err))
			return []domain.Order{}, nil
		}
		return nil, err
	}

	orders := make([]domain.Order, 0, len(events))
	for _, ev := range events {
		orders = append(orders, mostro.OrderFromTags(ev.Tags, int64(ev.CreatedAt)))
	}
	return orders, nil
}
