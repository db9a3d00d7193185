package domain

// OrderEventKind is the replaceable event kind Mostro publishes its order
// book under. Only the latest created_at per (author, d-tag) is current.
const OrderEventKind = 38383

// EnvelopeVersion is the protocol version this client speaks.
const EnvelopeVersion = 1

// Action discriminates the envelope variants.
type Action string

const (
	ActionNewOrder Action = "new-order"
	ActionCancel   Action = "cancel"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// StatusPending marks orders that have not been taken yet. It is the only
// status this client ever writes or filters on.
const StatusPending = "pending"

// OrderIntent is the human-supplied input to a new-order submission.
// Amount of 0 means "at market price". It is built once from CLI arguments
// and never mutated.
type OrderIntent struct {
	Side          Side
	Amount        int64
	FiatCode      string
	FiatAmount    int64
	PaymentMethod string
	Premium       int64
	BuyerInvoice  string
}

// OrderContent is the order body carried inside a new-order envelope.
// CreatedAt is always 0 on the wire; Mostro assigns the real timestamp.
type OrderContent struct {
	Kind          string `json:"kind"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
	FiatCode      string `json:"fiat_code"`
	FiatAmount    int64  `json:"fiat_amount"`
	PaymentMethod string `json:"payment_method"`
	Premium       int64  `json:"premium"`
	BuyerInvoice  string `json:"buyer_invoice,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

// EnvelopeContent wraps OrderContent under the protocol's "order" key.
type EnvelopeContent struct {
	Order OrderContent `json:"order"`
}

// OrderMessage is the versioned, action-tagged message sent to Mostro.
// Action determines which of Content and OrderID is set: new-order carries
// Content and no OrderID, cancel carries OrderID and no Content.
type OrderMessage struct {
	Version int              `json:"version"`
	Pubkey  string           `json:"pubkey"`
	Action  Action           `json:"action"`
	Content *EnvelopeContent `json:"content,omitempty"`
	OrderID string           `json:"id,omitempty"`
}

// Envelope is the full wire payload prior to NIP-04 encryption.
type Envelope struct {
	Order OrderMessage `json:"order"`
}

// Order is a pending order decoded from a Mostro order-book event's tags,
// flattened for display. Numeric fields missing from the tags are 0.
type Order struct {
	ID            string
	Kind          string
	Status        string
	Amount        int64
	FiatCode      string
	FiatAmount    int64
	PaymentMethod string
	Premium       int64
	CreatedAt     int64
}
