package app

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/nbd-wtf/go-nostr/nip19"
)

// DefaultMostroPubKey is the Mostro daemon this client targets unless
// overridden.
const DefaultMostroPubKey = "25990d8f6e55ede920c826aa219d69b1ab39cae02e489337e88e3b7ec4377c2c"

// DefaultRelays is the redundant relay set used when none is configured.
var DefaultRelays = []string{
	"wss://nostr.wine",
	"wss://btc.klendazu.com",
	"wss://relay.damus.io",
	"wss://nos.lol",
}

// Environment variables consulted by Load. Flags take precedence.
const (
	EnvMostroPubKey = "MOSTRO_PUBKEY"
	EnvSecretKey    = "NOSTR_SECRET_KEY"
	EnvRelays       = "MOSTRO_RELAYS"
)

// Config is the explicit load-time configuration passed into components.
// Keys are held in hex form; bech32 input is decoded once here.
type Config struct {
	MostroPubKey string   // counterparty public key, hex
	SecretKey    string   // our secret key, hex; empty means read-only
	Relays       []string // websocket relay URLs
}

// Load resolves configuration from flags (highest precedence), the
// environment, and compiled-in defaults. npub/nsec values are accepted and
// decoded; invalid key material fails here, before any network call.
func Load(mostroFlag, secretFlag, relaysFlag string) (Config, error) {
	cfg := Config{
		MostroPubKey: DefaultMostroPubKey,
		Relays:       DefaultRelays,
	}

	if v := firstOf(mostroFlag, os.Getenv(EnvMostroPubKey)); v != "" {
		pk, err := DecodePublicKey(v)
		if err != nil {
			return Config{}, fmt.Errorf("mostro pubkey: %w", err)
		}
		cfg.MostroPubKey = pk
	}
	if v := firstOf(secretFlag, os.Getenv(EnvSecretKey)); v != "" {
		sk, err := DecodeSecretKey(v)
		if err != nil {
			return Config{}, fmt.Errorf("secret key: %w", err)
		}
		cfg.SecretKey = sk
	}
	if v := firstOf(relaysFlag, os.Getenv(EnvRelays)); v != "" {
		cfg.Relays = SplitRelays(v)
		if len(cfg.Relays) == 0 {
			return Config{}, fmt.Errorf("relay list is empty")
		}
	}
	return cfg, nil
}

// DecodePublicKey accepts an npub bech32 string or 64 hex characters and
// returns the hex form.
func DecodePublicKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "npub") {
		prefix, value, err := nip19.Decode(s)
		if err != nil {
			return "", fmt.Errorf("decode npub: %w", err)
		}
		if prefix != "npub" {
			return "", fmt.Errorf("unexpected bech32 prefix %q", prefix)
		}
		return value.(string), nil
	}
	if err := checkHexKey(s); err != nil {
		return "", err
	}
	return strings.ToLower(s), nil
}

// DecodeSecretKey accepts an nsec bech32 string or 64 hex characters and
// returns the hex form.
func DecodeSecretKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "nsec") {
		prefix, value, err := nip19.Decode(s)
		if err != nil {
			return "", fmt.Errorf("decode nsec: %w", err)
		}
		if prefix != "nsec" {
			return "", fmt.Errorf("unexpected bech32 prefix %q", prefix)
		}
		return value.(string), nil
	}
	if err := checkHexKey(s); err != nil {
		return "", err
	}
	return strings.ToLower(s), nil
}

// SplitRelays parses a comma-separated relay list, trimming whitespace and
// dropping empty entries.
func SplitRelays(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if u := strings.TrimSpace(part); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func checkHexKey(s string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("not hex or bech32: %q", s)
	}
	if len(b) != 32 {
		return fmt.Errorf("want 32 bytes, got %d", len(b))
	}
	return nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
