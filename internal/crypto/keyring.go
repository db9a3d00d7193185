package crypto

import (
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"

	"mostro/internal/domain"
)

// Keyring wraps a hex-encoded secp256k1 secret key and exposes the three
// operations a submission needs: NIP-04 encryption toward a recipient,
// event signing, and local signature verification.
type Keyring struct {
	secretKey string
	publicKey string
}

// NewKeyring derives the public key from sk (hex) and returns the keyring.
func NewKeyring(sk string) (*Keyring, error) {
	pk, err := nostr.GetPublicKey(sk)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	return &Keyring{secretKey: sk, publicKey: pk}, nil
}

// PublicKey returns the hex public key of this identity.
func (k *Keyring) PublicKey() string { return k.publicKey }

// EncryptTo encrypts plaintext for recipientPub using the NIP-04 shared
// secret between our secret key and the recipient's public key.
func (k *Keyring) EncryptTo(recipientPub, plaintext string) (string, error) {
	shared, err := nip04.ComputeSharedSecret(recipientPub, k.secretKey)
	if err != nil {
		return "", fmt.Errorf("compute shared secret: %w", err)
	}
	ct, err := nip04.Encrypt(plaintext, shared)
	if err != nil {
		return "", fmt.Errorf("nip04 encrypt: %w", err)
	}
	return ct, nil
}

// Sign fills in the event's pubkey, id and signature.
func (k *Keyring) Sign(ev *nostr.Event) error {
	return ev.Sign(k.secretKey)
}

// Verify checks the event's signature against its id and pubkey.
func (k *Keyring) Verify(ev nostr.Event) (bool, error) {
	return ev.CheckSignature()
}

var _ domain.Signer = (*Keyring)(nil)
