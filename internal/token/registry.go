// Package token provides the static token registry and exact decimal/base-unit
// amount conversion.
package token

import (
	"strings"

	"github.com/agnivade/levenshtein"

	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// Info describes a registered token. Entries are immutable after startup.
type Info struct {
	Symbol   string
	Address  string
	Decimals int
	Name     string
	Native   bool // true for the chain's native currency; no allowance concept applies
}

// Registry is a static symbol → token table. Lookups are case-insensitive.
type Registry struct {
	tokens map[string]Info
	order  []string
}

// NewRegistry builds a registry from the given entries. Later entries with a
// duplicate symbol override earlier ones.
func NewRegistry(tokens []Info) *Registry {
	r := &Registry{
		tokens: make(map[string]Info, len(tokens)),
	}
	for _, t := range tokens {
		key := strings.ToUpper(t.Symbol)
		if _, exists := r.tokens[key]; !exists {
			r.order = append(r.order, key)
		}
		r.tokens[key] = t
	}
	return r
}

// Lookup resolves a token symbol. Unknown symbols are a fatal precondition
// failure for the requested operation; the error carries a nearest-symbol
// suggestion when one is close enough to look like a typo.
func (r *Registry) Lookup(symbol string) (Info, error) {
	info, exists := r.tokens[strings.ToUpper(symbol)]
	if !exists {
		err := coreerr.WithDetails(coreerr.ErrUnknownToken, map[string]string{
			"symbol": symbol,
		})
		if suggestion := r.closest(symbol); suggestion != "" {
			err = coreerr.WithSuggestion(err, "did you mean "+suggestion+"?")
		}
		return Info{}, err
	}
	return info, nil
}

// Has reports whether a symbol is registered.
func (r *Registry) Has(symbol string) bool {
	_, exists := r.tokens[strings.ToUpper(symbol)]
	return exists
}

// Symbols returns the registered symbols in registration order.
func (r *Registry) Symbols() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// maxSuggestionDistance bounds how far a typo can be from a known symbol
// before suggesting it would be noise.
const maxSuggestionDistance = 2

// closest returns the registered symbol nearest to the input, or "" when
// nothing is within the suggestion distance.
func (r *Registry) closest(symbol string) string {
	upper := strings.ToUpper(symbol)

	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, key := range r.order {
		if d := levenshtein.ComputeDistance(upper, key); d < bestDist {
			best = key
			bestDist = d
		}
	}
	return best
}
