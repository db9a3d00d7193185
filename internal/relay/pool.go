package relay

import (
	"context"
	"fmt"
	"sync"

	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"

	"mostro/internal/domain"
)

// Conn adapts a live go-nostr relay connection to domain.Relay.
type Conn struct {
	relay *nostr.Relay
}

func (c *Conn) URL() string { return c.relay.URL }

func (c *Conn) Publish(ctx context.Context, ev nostr.Event) error {
	return c.relay.Publish(ctx, ev)
}

func (c *Conn) Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	return c.relay.QuerySync(ctx, filter)
}

func (c *Conn) Close() error { return c.relay.Close() }

var _ domain.Relay = (*Conn)(nil)

// Pool is an explicit handle over a set of relay endpoints. It is
// constructed by the CLI entry point and passed into the services that
// need it; there is no process-wide connection state.
type Pool struct {
	relays []domain.Relay
	log    *zap.Logger
}

// NewPool builds a pool over already-established endpoints. Used directly
// by tests; production code goes through Connect.
func NewPool(relays []domain.Relay, log *zap.Logger) *Pool {
	return &Pool{relays: relays, log: log}
}

// Connect dials every URL and keeps whichever connections succeed.
// Unreachable relays are logged and skipped; only a fully unreachable set
// is an error, since partial availability is the normal case.
func Connect(ctx context.Context, urls []string, log *zap.Logger) (*Pool, error) {
	pool := &Pool{log: log}
	for _, u := range urls {
		r, err := nostr.RelayConnect(ctx, u)
		if err != nil {
			log.Warn("relay unreachable", zap.String("relay", u), zap.Error(err))
			continue
		}
		pool.relays = append(pool.relays, &Conn{relay: r})
	}
	if len(pool.relays) == 0 {
		return nil, fmt.Errorf("no relays reachable (tried %d)", len(urls))
	}
	return pool, nil
}

// Publish fans the signed event out to every endpoint concurrently and
// returns as soon as one accepts it. Losing attempts are left to finish on
// their own; they are idempotent one-shot sends with nothing to release.
// If every endpoint fails, the per-relay errors are aggregated into a
// domain.PublishError.
func (p *Pool) Publish(ctx context.Context, ev nostr.Event) error {
	type outcome struct {
		url string
		err error
	}
	results := make(chan outcome, len(p.relays))
	for _, r := range p.relays {
		go func(r domain.Relay) {
			results <- outcome{url: r.URL(), err: r.Publish(ctx, ev)}
		}(r)
	}

	failures := make(map[string]error, len(p.relays))
	for range p.relays {
		res := <-results
		if res.err == nil {
			p.log.Debug("event accepted",
				zap.String("relay", res.url),
				zap.String("event", ev.ID))
			return nil
		}
		p.log.Warn("relay rejected event", zap.String("relay", res.url), zap.Error(res.err))
		failures[res.url] = res.err
	}
	return &domain.PublishError{Failures: failures}
}

// Query scatter-gathers the filter across all endpoints and merges the
// results, deduplicating replaceable events by (author, d-tag) with the
// latest created_at winning. No ordering across relays is guaranteed.
// Only when every endpoint fails does it return a domain.QueryError.
func (p *Pool) Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		latest   = make(map[string]*nostr.Event)
		failures = make(map[string]error)
	)
	for _, r := range p.relays {
		wg.Add(1)
		go func(r domain.Relay) {
			defer wg.Done()
			events, err := r.Query(ctx, filter)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.log.Warn("relay query failed", zap.String("relay", r.URL()), zap.Error(err))
				failures[r.URL()] = err
				return
			}
			for _, ev := range events {
				key := replaceableKey(ev)
				if prev, ok := latest[key]; !ok || ev.CreatedAt > prev.CreatedAt {
					latest[key] = ev
				}
			}
		}(r)
	}
	wg.Wait()

	if len(p.relays) > 0 && len(failures) == len(p.relays) {
		return nil, &domain.QueryError{Failures: failures}
	}
	out := make([]*nostr.Event, 0, len(latest))
	for _, ev := range latest {
		out = append(out, ev)
	}
	return out, nil
}

// Close releases every endpoint. Errors are logged, not returned; there is
// nothing a caller can do about a socket that will not close.
func (p *Pool) Close() {
	for _, r := range p.relays {
		if err := r.Close(); err != nil {
			p.log.Debug("relay close", zap.String("relay", r.URL()), zap.Error(err))
		}
	}
}

// replaceableKey identifies a replaceable event by author and d-tag.
// Events without a d-tag fall back to their id so they are never merged.
func replaceableKey(ev *nostr.Event) string {
	if tag := ev.Tags.GetFirst([]string{"d"}); tag != nil {
		return ev.PubKey + "\x00" + tag.Value()
	}
	return ev.PubKey + "\x00" + ev.ID
}

var _ domain.RelayClient = (*Pool)(nil)
