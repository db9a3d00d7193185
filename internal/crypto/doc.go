// Package crypto exposes the client identity as a Keyring.
//
// All primitives (secp256k1 Schnorr signatures, NIP-04 shared-secret
// encryption) are delegated to go-nostr; this package only binds them to
// one secret key so the transport pipeline can be exercised against the
// domain.Signer interface.
package crypto
