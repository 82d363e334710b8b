package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	longerThanCharactersPattern = regexp.MustCompile(`longer than (\d+) characters`)
	longerThanPattern           = regexp.MustCompile(`longer than (\d+)`)
	letterPattern               = regexp.MustCompile(`letter\s+([a-z])`)
	containingLetterPattern     = regexp.MustCompile(`containing the letter\s+([a-z])`)
)

// ParseNaturalLanguage turns a free text query into filters using a fixed list of
// keyword rules, applied in order over the lowercased query:
//
//  1. "single word"                  -> word_count = 1
//  2. "palindrom"                    -> is_palindrome = true
//  3. "longer than N characters"     -> min_length = N+1
//  4. "longer than N"                -> min_length = N+1, only if 3 did not match
//  5. "letter X"                     -> contains_character = X
//  6. "containing the letter X"      -> contains_character = X, overwriting 5
//  7. "first vowel"                  -> contains_character = "a", only if still unset
//
// An empty query, or one where no rule matches, fails with ErrValidation.
func ParseNaturalLanguage(query string) (Filters, error) {
	if query == "" {
		return Filters{}, fmt.Errorf("%w: empty query", ErrValidation)
	}

	q := strings.ToLower(query)
	var filters Filters

	if strings.Contains(q, "single word") {
		filters.WordCount = ptr(1)
	}

	if strings.Contains(q, "palindrom") {
		filters.IsPalindrome = ptr(true)
	}

	if n, ok, err := matchInt(longerThanCharactersPattern, q); err != nil {
		return Filters{}, err
	} else if ok {
		filters.MinLength = ptr(n + 1)
	}

	if filters.MinLength == nil {
		if n, ok, err := matchInt(longerThanPattern, q); err != nil {
			return Filters{}, err
		} else if ok {
			filters.MinLength = ptr(n + 1)
		}
	}

	if m := letterPattern.FindStringSubmatch(q); m != nil {
		filters.ContainsCharacter = ptr(m[1])
	}

	if m := containingLetterPattern.FindStringSubmatch(q); m != nil {
		filters.ContainsCharacter = ptr(m[1])
	}

	if strings.Contains(q, "first vowel") && filters.ContainsCharacter == nil {
		filters.ContainsCharacter = ptr("a")
	}

	if filters.IsEmpty() {
		return Filters{}, fmt.Errorf("%w: unable to parse natural language query", ErrValidation)
	}

	return filters, nil
}

// matchInt extracts the first integer group of a pattern
func matchInt(pattern *regexp.Regexp, q string) (int, bool, error) {
	m := pattern.FindStringSubmatch(q)
	if m == nil {
		return 0, false, nil
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false, fmt.Errorf("%w: number out of range in query", ErrValidation)
	}
	return n, true, nil
}
