package analyzer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Filters is the set of predicates accepted by list and natural language queries.
// A nil field means the predicate is not applied.
type Filters struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// ParseFilters reads filters from query parameters. Parameters that are absent are
// left unset; malformed ones fail with ErrValidation.
func ParseFilters(params url.Values) (Filters, error) {
	var filters Filters

	if raw, ok := lookup(params, "is_palindrome"); ok {
		switch strings.ToLower(raw) {
		case "true":
			filters.IsPalindrome = ptr(true)
		case "false":
			filters.IsPalindrome = ptr(false)
		default:
			return Filters{}, fmt.Errorf("%w: invalid is_palindrome value", ErrValidation)
		}
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"min_length", &filters.MinLength},
		{"max_length", &filters.MaxLength},
		{"word_count", &filters.WordCount},
	}
	for _, field := range ints {
		raw, ok := lookup(params, field.name)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Filters{}, fmt.Errorf("%w: invalid %s", ErrValidation, field.name)
		}
		*field.dst = ptr(n)
	}

	if raw, ok := lookup(params, "contains_character"); ok {
		if utf8.RuneCountInString(raw) != 1 {
			return Filters{}, fmt.Errorf("%w: contains_character must be a single character", ErrValidation)
		}
		filters.ContainsCharacter = ptr(raw)
	}

	return filters, nil
}

// IsEmpty reports whether no predicate is set
func (f Filters) IsEmpty() bool {
	return f.IsPalindrome == nil && f.MinLength == nil && f.MaxLength == nil &&
		f.WordCount == nil && f.ContainsCharacter == nil
}

// Match reports whether a record satisfies every set predicate
func (f Filters) Match(r *Record) bool {
	if f.IsPalindrome != nil && r.Properties.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.MinLength != nil && r.Properties.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && r.Properties.Length > *f.MaxLength {
		return false
	}
	if f.WordCount != nil && r.Properties.WordCount != *f.WordCount {
		return false
	}
	if f.ContainsCharacter != nil && !strings.Contains(r.Value, *f.ContainsCharacter) {
		return false
	}
	return true
}

// lookup returns the last value of a parameter that is present, even if empty
func lookup(params url.Values, key string) (string, bool) {
	values, ok := params[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

func ptr[T any](v T) *T {
	return &v
}
