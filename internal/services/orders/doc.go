// Package orders is the pipeline between the CLI and the relay network:
// it encodes order intents into encrypted, signed direct messages for
// Mostro and decodes Mostro's published order book into displayable rows.
package orders
