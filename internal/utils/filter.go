package utils

import (
	"unicode"
)

// FilterLetters keeps only the letters of s, in order.
// Digits, punctuation, spaces and symbols are dropped before any search runs.
func FilterLetters(s string) []rune {
	letters := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	return letters
}

// LowerLetters lowercases the runes in place and returns them.
func LowerLetters(letters []rune) []rune {
	for i, r := range letters {
		letters[i] = unicode.ToLower(r)
	}
	return letters
}

// ContainsNumbers checks if a string contains any numeric digits
func ContainsNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// HasOnlyLetters reports whether every rune of s is a letter.
// An empty string has no letters and reports false.
func HasOnlyLetters(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
