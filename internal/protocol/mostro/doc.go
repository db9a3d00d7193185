// Package mostro implements the Mostro order-message codec.
//
// The encode direction turns validated order input into the versioned,
// action-tagged envelope Mostro expects inside an encrypted direct message.
// The decode direction flattens a published order-book event's tag list
// into a displayable order. Both directions are pure; networking and
// cryptography live elsewhere.
package mostro
