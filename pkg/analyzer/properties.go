package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Properties holds the attributes derived from a stored value
type Properties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// Hash returns the hex encoded SHA-256 digest of a value, used as its record id
func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// Derive computes every property of a value. It never fails.
func Derive(value string) Properties {
	frequency := CharacterFrequency(value)

	return Properties{
		Length:                utf8.RuneCountInString(value),
		IsPalindrome:          IsPalindrome(value),
		UniqueCharacters:      len(frequency),
		WordCount:             WordCount(value),
		SHA256Hash:            Hash(value),
		CharacterFrequencyMap: frequency,
	}
}

// IsPalindrome reports whether the ASCII letters and digits of a value read the same
// in both directions, ignoring case. A value with none of them is a palindrome.
func IsPalindrome(value string) bool {
	normalized := normalize(value)

	for i, j := 0, len(normalized)-1; i < j; i, j = i+1, j-1 {
		if normalized[i] != normalized[j] {
			return false
		}
	}
	return true
}

// WordCount returns the number of whitespace separated words in a value
func WordCount(value string) int {
	return len(strings.Fields(value))
}

// CharacterFrequency counts each character of a value exactly as written
func CharacterFrequency(value string) map[string]int {
	frequency := make(map[string]int)
	for _, r := range value {
		frequency[string(r)]++
	}
	return frequency
}

// normalize keeps only ASCII letters and digits, lowercased
func normalize(value string) []byte {
	out := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		}
	}
	return out
}
