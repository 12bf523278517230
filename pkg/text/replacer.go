// Package text implements placeholder substitution for file content.
package text

import (
	"fmt"
	"strings"
)

// DefaultFormat is the default placeholder token format. The single %s slot
// receives the placeholder name.
const DefaultFormat = "{{ %s }}"

// Replacer builds placeholder tokens from a single-slot format string and
// replaces them in content.
type Replacer struct {
	format string
}

// NewReplacer creates a Replacer for the given token format. An empty
// format selects DefaultFormat.
func NewReplacer(format string) *Replacer {
	if format == "" {
		format = DefaultFormat
	}
	return &Replacer{format: format}
}

// Format returns the token format in use.
func (r *Replacer) Format() string {
	return r.format
}

// Token returns the literal token searched for the given placeholder name.
func (r *Replacer) Token(name string) string {
	return fmt.Sprintf(r.format, name)
}

// Result holds the outcome of a replacement pass.
type Result struct {
	OriginalContent  []byte
	ModifiedContent  []byte
	ReplacementCount int
	WasModified      bool
}

// Replace substitutes every occurrence of each placeholder's token with its
// value and returns the result. Replacements apply sequentially in map
// iteration order; a value that introduces text matching another token is
// itself substituted if that token's replacement runs later. Values are not
// escaped.
func (r *Replacer) Replace(content []byte, replacements map[string]string) *Result {
	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := string(content)
	for name, value := range replacements {
		token := r.Token(name)
		next := strings.ReplaceAll(current, token, value)
		if next != current {
			result.WasModified = true
			result.ReplacementCount += strings.Count(current, token)
		}
		current = next
	}

	result.ModifiedContent = []byte(current)
	return result
}
