// Package vocab holds the bounded, deduplicated collection of user-selected
// terms awaiting batch submission to the generation layer.
package vocab

import (
	"fmt"
	"strings"
	"sync"
)

// Cart capacity and the size window required to send a batch.
const (
	Capacity = 10
	SendMin  = 5
	SendMax  = 8
)

// NotSendableError rejects a TrySend whose cart size is outside [SendMin,
// SendMax]. The cart is left untouched.
type NotSendableError struct {
	Size int
}

func (e *NotSendableError) Error() string {
	return fmt.Sprintf("cart has %d items, need between %d and %d to send", e.Size, SendMin, SendMax)
}

// Cart is an ordered, case-insensitively unique list of collected terms
// with a hard capacity. All methods are safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	words []string
}

func NewCart() *Cart {
	return &Cart{}
}

// Normalize is the canonical form of a term: trimmed and lower-cased.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Add inserts a term. It reports false, changing nothing, when the
// normalized word is empty, already present, or the cart is at capacity.
func (c *Cart) Add(word string) bool {
	w := Normalize(word)
	if w == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.words) >= Capacity {
		return false
	}
	for _, existing := range c.words {
		if existing == w {
			return false
		}
	}
	c.words = append(c.words, w)
	return true
}

// Remove deletes a term by exact normalized match.
func (c *Cart) Remove(word string) bool {
	w := Normalize(word)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.words {
		if existing == w {
			c.words = append(c.words[:i], c.words[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.words = nil
}

// Words returns a copy of the collected terms in insertion order.
func (c *Cart) Words() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

// Len returns the current cart size.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.words)
}

// TrySend atomically hands the batch over and clears the cart when the size
// is within the send window; otherwise it fails with *NotSendableError and
// has no side effects.
func (c *Cart) TrySend() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.words)
	if n < SendMin || n > SendMax {
		return nil, &NotSendableError{Size: n}
	}
	batch := c.words
	c.words = nil
	return batch, nil
}
