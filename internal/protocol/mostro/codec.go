package mostro

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nbd-wtf/go-nostr"

	"mostro/internal/domain"
)

// ParseIntent validates raw CLI arguments and normalizes them into an
// OrderIntent. Side is lowercased, the fiat code uppercased; premium
// defaults to 0 when empty. The returned error names the offending field.
func ParseIntent(side, amount, fiatCode, fiatAmount, paymentMethod, premium, buyerInvoice string) (domain.OrderIntent, error) {
	var intent domain.OrderIntent

	s := domain.Side(strings.ToLower(strings.TrimSpace(side)))
	if s != domain.SideBuy && s != domain.SideSell {
		return intent, &domain.InvalidArgumentError{Field: "side", Value: side, Reason: `must be "buy" or "sell"`}
	}

	amt, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		return intent, &domain.InvalidArgumentError{Field: "amount", Value: amount, Reason: "not an integer"}
	}

	code := strings.ToUpper(strings.TrimSpace(fiatCode))
	if code == "" {
		return intent, &domain.InvalidArgumentError{Field: "fiat_code", Value: fiatCode, Reason: "must not be empty"}
	}

	fiatAmt, err := strconv.ParseInt(fiatAmount, 10, 64)
	if err != nil {
		return intent, &domain.InvalidArgumentError{Field: "fiat_amount", Value: fiatAmount, Reason: "not an integer"}
	}

	var prem int64
	if premium != "" {
		prem, err = strconv.ParseInt(premium, 10, 64)
		if err != nil {
			return intent, &domain.InvalidArgumentError{Field: "premium", Value: premium, Reason: "not an integer"}
		}
	}

	return domain.OrderIntent{
		Side:          s,
		Amount:        amt,
		FiatCode:      code,
		FiatAmount:    fiatAmt,
		PaymentMethod: paymentMethod,
		Premium:       prem,
		BuyerInvoice:  buyerInvoice,
	}, nil
}

// NewOrder builds a version-1 new-order envelope from an intent. Status is
// fixed to pending and created_at to 0; Mostro assigns the authoritative
// timestamp on its side.
func NewOrder(requesterPub string, intent domain.OrderIntent) (domain.Envelope, error) {
	side := domain.Side(strings.ToLower(string(intent.Side)))
	if side != domain.SideBuy && side != domain.SideSell {
		return domain.Envelope{}, &domain.InvalidArgumentError{Field: "side", Value: string(intent.Side), Reason: `must be "buy" or "sell"`}
	}
	code := strings.ToUpper(strings.TrimSpace(intent.FiatCode))
	if code == "" {
		return domain.Envelope{}, &domain.InvalidArgumentError{Field: "fiat_code", Value: intent.FiatCode, Reason: "must not be empty"}
	}

	return domain.Envelope{
		Order: domain.OrderMessage{
			Version: domain.EnvelopeVersion,
			Pubkey:  requesterPub,
			Action:  domain.ActionNewOrder,
			Content: &domain.EnvelopeContent{
				Order: domain.OrderContent{
					Kind:          string(side),
					Status:        domain.StatusPending,
					Amount:        intent.Amount,
					FiatCode:      code,
					FiatAmount:    intent.FiatAmount,
					PaymentMethod: intent.PaymentMethod,
					Premium:       intent.Premium,
					BuyerInvoice:  intent.BuyerInvoice,
					CreatedAt:     0,
				},
			},
		},
	}, nil
}

// Cancel builds a version-1 cancel envelope for an existing order id.
func Cancel(requesterPub, orderID string) (domain.Envelope, error) {
	if strings.TrimSpace(orderID) == "" {
		return domain.Envelope{}, &domain.InvalidArgumentError{Field: "order_id", Value: orderID, Reason: "must not be empty"}
	}
	return domain.Envelope{
		Order: domain.OrderMessage{
			Version: domain.EnvelopeVersion,
			Pubkey:  requesterPub,
			Action:  domain.ActionCancel,
			OrderID: orderID,
		},
	}, nil
}

// Encode dispatches on action. Exactly one of intent and orderID is
// consulted, matching the envelope's tagged-union shape.
func Encode(action domain.Action, requesterPub string, intent domain.OrderIntent, orderID string) (domain.Envelope, error) {
	switch action {
	case domain.ActionNewOrder:
		return NewOrder(requesterPub, intent)
	case domain.ActionCancel:
		return Cancel(requesterPub, orderID)
	default:
		return domain.Envelope{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedAction, action)
	}
}

// OrderFromTags flattens an order-book event's tag list into an Order.
// The tag list is read as a key/value mapping (first element to second,
// last occurrence winning). Missing numeric tags decode to 0 and missing
// string tags to ""; malformed tags never make this fail, so one bad event
// cannot abort a whole listing.
func OrderFromTags(tags nostr.Tags, createdAt int64) domain.Order {
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		if len(tag) >= 2 {
			m[tag[0]] = tag[1]
		}
	}
	return domain.Order{
		ID:            m["d"],
		Kind:          m["k"],
		Status:        m["s"],
		Amount:        intOrZero(m["amt"]),
		FiatCode:      m["f"],
		FiatAmount:    intOrZero(m["fa"]),
		PaymentMethod: m["pm"],
		Premium:       intOrZero(m["premium"]),
		CreatedAt:     createdAt,
	}
}

func intOrZero(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
