package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnsupportedAction indicates the codec was asked to encode an
	// action it does not know.
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrEncryptionFailed indicates the envelope could not be encrypted
	// for the recipient. Fatal for the submission; nothing was sent.
	ErrEncryptionFailed = errors.New("envelope encryption failed")

	// ErrSignatureInvalid indicates a freshly signed event did not pass
	// local verification. Such an event is never published.
	ErrSignatureInvalid = errors.New("event signature did not verify")
)

// InvalidArgumentError reports malformed order input, naming the field.
type InvalidArgumentError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// PublishError means every configured relay rejected or timed out on a
// publish. Failures is keyed by relay URL.
type PublishError struct {
	Failures map[string]error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed on all %d relays: %s", len(e.Failures), joinFailures(e.Failures))
}

// QueryError means every configured relay failed to answer a query.
// Failures is keyed by relay URL.
type QueryError struct {
	Failures map[string]error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed on all %d relays: %s", len(e.Failures), joinFailures(e.Failures))
}

func joinFailures(failures map[string]error) string {
	parts := make([]string, 0, len(failures))
	for url, err := range failures {
		parts = append(parts, url+": "+err.Error())
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
