package game

import "strings"

// Evaluate scores guess against secret using the two-pass Wordle algorithm.
//
// Pass 1:
//   - Mark exact matches.
//   - Pool the secret letters at the remaining (non-exact) positions.
//
// Pass 2:
//   - Left to right over non-exact positions: if the pool still holds the
//     guessed letter, mark Present and take one from the pool; otherwise Absent.
//
// Both words are lower-cased first. Anything else malformed fails fast.
func Evaluate(secret, guess string) (Result, error) {
	var res Result
	secret, guess = strings.ToLower(secret), strings.ToLower(guess)
	if err := validateWord(secret); err != nil {
		return res, err
	}
	if err := validateWord(guess); err != nil {
		return res, err
	}

	var pool [AlphabetSize]int
	for i := 0; i < WordLength; i++ {
		if guess[i] == secret[i] {
			res[i] = MarkExact
		} else {
			pool[idx(secret[i])]++
		}
	}

	for i := 0; i < WordLength; i++ {
		if res[i] == MarkExact {
			continue
		}
		j := idx(guess[i])
		if pool[j] > 0 {
			res[i] = MarkPresent
			pool[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res, nil
}

// idx maps a lowercase ASCII letter to 0..25.
// Assumes inputs are validated to a–z elsewhere.
func idx(c byte) int { return int(c - 'a') }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
