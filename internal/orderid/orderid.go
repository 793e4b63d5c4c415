// Package orderid generates the short customer-facing order codes
// printed on confirmations and receipts, distinct from the internal
// primary key.
package orderid

import (
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length of a public order id.
	Length = 8

	// DefaultMaxAttempts bounds collision retries. At 36^8 possible
	// codes collisions are vanishingly rare, but the loop must not be
	// unbounded.
	DefaultMaxAttempts = 10
)

// ErrExhausted is returned when every attempt collided with an
// existing id.
var ErrExhausted = errors.New("orderid: exhausted generation attempts")

// Generator produces unique public order ids. Uniqueness is checked
// through the injected Exists lookup rather than any global state.
type Generator struct {
	Exists      func(id string) (bool, error)
	MaxAttempts int
}

func New(exists func(id string) (bool, error)) *Generator {
	return &Generator{Exists: exists, MaxAttempts: DefaultMaxAttempts}
}

// Next returns a fresh id not present in the store. It retries on
// collision up to MaxAttempts times and then fails with ErrExhausted.
func (g *Generator) Next() (string, error) {
	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		id, err := random()
		if err != nil {
			return "", err
		}
		taken, err := g.Exists(id)
		if err != nil {
			return "", fmt.Errorf("orderid: uniqueness check: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrExhausted
}

func random() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("orderid: entropy: %w", err)
	}
	out := make([]byte, Length)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out), nil
}
