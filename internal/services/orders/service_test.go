package orders_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"

	"mostro/internal/domain"
	"mostro/internal/services/orders"
)

const mostroPub = "25990d8f6e55ede920c826aa219d69b1ab39cae02e489337e88e3b7ec4377c2c"
const clientPub = "1111222233334444111122223333444411112222333344441111222233334444"

// callLog records the order of collaborator calls across both fakes so a
// test can assert, e.g., that verify happens before publish.
type callLog struct {
	calls []string
}

type fakeSigner struct {
	log *callLog

	encryptErr error
	signErr    error
	verifyOK   bool
	verifyErr  error

	lastRecipient string
	lastPlaintext string
}

func (f *fakeSigner) PublicKey() string { return clientPub }

func (f *fakeSigner) EncryptTo(recipientPub, plaintext string) (string, error) {
	f.log.calls = append(f.log.calls, "encrypt")
	f.lastRecipient = recipientPub
	f.lastPlaintext = plaintext
	if f.encryptErr != nil {
		return "", f.encryptErr
	}
	return "ct:" + plaintext, nil
}

func (f *fakeSigner) Sign(ev *nostr.Event) error {
	f.log.calls = append(f.log.calls, "sign")
	ev.PubKey = clientPub
	ev.ID = "event-id-1"
	ev.Sig = "sig"
	return f.signErr
}

func (f *fakeSigner) Verify(ev nostr.Event) (bool, error) {
	f.log.calls = append(f.log.calls, "verify")
	return f.verifyOK, f.verifyErr
}

type fakeRelays struct {
	log *callLog

	publishErr error
	published  []nostr.Event

	events     []*nostr.Event
	queryErr   error
	lastFilter nostr.Filter
}

func (f *fakeRelays) Publish(ctx context.Context, ev nostr.Event) error {
	f.log.calls = append(f.log.calls, "publish")
	f.published = append(f.published, ev)
	return f.publishErr
}

func (f *fakeRelays) Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	f.log.calls = append(f.log.calls, "query")
	f.lastFilter = filter
	return f.events, f.queryErr
}

func newService(t *testing.T) (*orders.Service, *fakeSigner, *fakeRelays) {
	t.Helper()
	log := &callLog{}
	signer := &fakeSigner{log: log, verifyOK: true}
	relays := &fakeRelays{log: log}
	svc := orders.New(signer, relays, mostroPub, zap.NewNop())
	return svc, signer, relays
}

func sellIntent() domain.OrderIntent {
	return domain.OrderIntent{
		Side:          domain.SideSell,
		Amount:        100000,
		FiatCode:      "USD",
		FiatAmount:    50,
		PaymentMethod: "bank-transfer",
		Premium:       2,
	}
}

func TestSubmitNewPipeline(t *testing.T) {
	svc, signer, relays := newService(t)

	id, err := svc.SubmitNew(context.Background(), sellIntent())
	if err != nil {
		t.Fatalf("SubmitNew: %v", err)
	}
	if id != "event-id-1" {
		t.Errorf("event id = %q", id)
	}

	want := []string{"encrypt", "sign", "verify", "publish"}
	if !reflect.DeepEqual(signer.log.calls, want) {
		t.Errorf("call order = %v, want %v", signer.log.calls, want)
	}

	if signer.lastRecipient != mostroPub {
		t.Errorf("encrypted for %q, want mostro", signer.lastRecipient)
	}

	// The plaintext handed to the encryptor is the canonical envelope.
	var env domain.Envelope
	if err := json.Unmarshal([]byte(signer.lastPlaintext), &env); err != nil {
		t.Fatalf("plaintext is not an envelope: %v", err)
	}
	if env.Order.Action != domain.ActionNewOrder || env.Order.Version != 1 {
		t.Errorf("envelope header = %+v", env.Order)
	}
	c := env.Order.Content.Order
	if c.Status != "pending" || c.CreatedAt != 0 || c.FiatCode != "USD" || c.Kind != "sell" {
		t.Errorf("envelope content = %+v", c)
	}

	if len(relays.published) != 1 {
		t.Fatalf("published %d events, want 1", len(relays.published))
	}
	ev := relays.published[0]
	if ev.Kind != nostr.KindEncryptedDirectMessage {
		t.Errorf("kind = %d, want 4", ev.Kind)
	}
	if tag := ev.Tags.GetFirst([]string{"p"}); tag == nil || tag.Value() != mostroPub {
		t.Errorf("p tag = %v, want mostro pubkey", ev.Tags)
	}
	if ev.Content != "ct:"+signer.lastPlaintext {
		t.Error("published content is not the ciphertext")
	}
}

func TestSubmitNewEncryptionFailureIsFatal(t *testing.T) {
	svc, signer, relays := newService(t)
	signer.encryptErr = errors.New("bad shared secret")

	_, err := svc.SubmitNew(context.Background(), sellIntent())
	if !errors.Is(err, domain.ErrEncryptionFailed) {
		t.Fatalf("err = %v, want ErrEncryptionFailed", err)
	}
	if len(relays.published) != 0 {
		t.Error("nothing must be published after an encryption failure")
	}
}

func TestSubmitNewUnverifiedEventNeverPublished(t *testing.T) {
	svc, signer, relays := newService(t)
	signer.verifyOK = false

	_, err := svc.SubmitNew(context.Background(), sellIntent())
	if !errors.Is(err, domain.ErrSignatureInvalid) {
		t.Fatalf("err = %v, want ErrSignatureInvalid", err)
	}
	for _, call := range signer.log.calls {
		if call == "publish" {
			t.Fatal("unverified event reached the publish step")
		}
	}
	if len(relays.published) != 0 {
		t.Error("unverified event was published")
	}
}

func TestSubmitNewPublishFailurePropagates(t *testing.T) {
	svc, _, relays := newService(t)
	relays.publishErr = &domain.PublishError{Failures: map[string]error{
		"wss://a": errors.New("timeout"),
		"wss://b": errors.New("closed"),
	}}

	_, err := svc.SubmitNew(context.Background(), sellIntent())
	var pe *domain.PublishError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want PublishError", err)
	}
	if len(pe.Failures) != 2 {
		t.Errorf("failures = %d, want 2", len(pe.Failures))
	}
}

func TestSubmitNewRejectsInvalidIntentBeforeAnyCall(t *testing.T) {
	svc, signer, _ := newService(t)

	_, err := svc.SubmitNew(context.Background(), domain.OrderIntent{Side: "hodl"})
	var invalid *domain.InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidArgumentError", err)
	}
	if len(signer.log.calls) != 0 {
		t.Errorf("collaborators called on invalid input: %v", signer.log.calls)
	}
}

func TestCancelPipeline(t *testing.T) {
	svc, signer, _ := newService(t)

	id, err := svc.Cancel(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if id != "event-id-1" {
		t.Errorf("event id = %q", id)
	}

	var env domain.Envelope
	if err := json.Unmarshal([]byte(signer.lastPlaintext), &env); err != nil {
		t.Fatalf("plaintext is not an envelope: %v", err)
	}
	if env.Order.Action != domain.ActionCancel || env.Order.OrderID != "abc123" {
		t.Errorf("envelope = %+v", env.Order)
	}
	if env.Order.Content != nil {
		t.Error("cancel envelope must not carry content")
	}
}

func TestSubmitWithoutIdentity(t *testing.T) {
	svc := orders.New(nil, &fakeRelays{log: &callLog{}}, mostroPub, zap.NewNop())
	if _, err := svc.SubmitNew(context.Background(), sellIntent()); !errors.Is(err, orders.ErrNoIdentity) {
		t.Fatalf("err = %v, want ErrNoIdentity", err)
	}
	if _, err := svc.Cancel(context.Background(), "abc"); !errors.Is(err, orders.ErrNoIdentity) {
		t.Fatalf("err = %v, want ErrNoIdentity", err)
	}
}

func TestListPendingFilterAndDecode(t *testing.T) {
	svc, _, relays := newService(t)
	relays.events = []*nostr.Event{
		{
			CreatedAt: nostr.Timestamp(1700000000),
			Tags: nostr.Tags{
				{"d", "abc123"}, {"k", "buy"}, {"s", "pending"},
				{"f", "EUR"}, {"fa", "75"}, {"amt", "0"},
			},
		},
	}

	before := time.Now()
	list, err := svc.ListPending(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("orders = %d, want 1", len(list))
	}
	if list[0].ID != "abc123" || list[0].Amount != 0 || list[0].FiatAmount != 75 {
		t.Errorf("decoded = %+v", list[0])
	}

	f := relays.lastFilter
	if !reflect.DeepEqual(f.Kinds, []int{domain.OrderEventKind}) {
		t.Errorf("kinds = %v", f.Kinds)
	}
	if !reflect.DeepEqual(f.Authors, []string{mostroPub}) {
		t.Errorf("authors = %v", f.Authors)
	}
	if !reflect.DeepEqual(f.Tags["s"], []string{"pending"}) {
		t.Errorf("status filter = %v", f.Tags)
	}
	if f.Since == nil {
		t.Fatal("filter has no since bound")
	}
	// Default window is 48h before "now".
	wantSince := before.Add(-orders.DefaultWindow).Unix()
	if got := int64(*f.Since); got < wantSince-5 || got > wantSince+5 {
		t.Errorf("since = %d, want about %d", got, wantSince)
	}
}

func TestListPendingWithAllRelaysDown(t *testing.T) {
	svc, _, relays := newService(t)
	relays.queryErr = &domain.QueryError{Failures: map[string]error{
		"wss://a": errors.New("dial refused"),
	}}

	list, err := svc.ListPending(context.Background(), time.Hour)
	if err != nil {
		t.Fatalf("all relays down must degrade to empty, got %v", err)
	}
	if len(list) != 0 {
		t.Errorf("orders = %d, want 0", len(list))
	}
}

func TestListPendingPropagatesUnexpectedErrors(t *testing.T) {
	svc, _, relays := newService(t)
	relays.queryErr = fmt.Errorf("subscription refused")

	if _, err := svc.ListPending(context.Background(), time.Hour); err == nil {
		t.Fatal("unexpected query errors must propagate")
	}
}
