// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

import (
	"strings"
	"unicode"
)

// KnownHelmetBrands is the brand vocabulary used for fit checks.
var KnownHelmetBrands = newSet(
	"shoei", "arai", "agv", "hjc", "bell", "scorpion", "ls2", "icon", "sedici",
	"shark", "schuberth", "suomy", "simpson", "nolan", "xlite", "caberg", "klim",
)

// modelStopwords are tokens that never identify a helmet model.
var modelStopwords = newSet(
	"helmet", "visor", "shield", "pinlock", "face", "clear", "dark", "smoke",
	"tinted", "replacement", "motorcycle", "racing", "race", "edition", "with",
	"for", "the", "and", "kit", "pack", "single", "dual", "v", "pro", "plus",
	"series",
)

// fitSensitiveTerms mark accessories that only fit particular helmets.
var fitSensitiveTerms = []string{
	"visor", "shield", "faceshield", "face-shield", "pinlock", "cheek",
	"cheekpad", "cheek-pad", "peak", "spoiler",
}

type stringSet map[string]struct{}

func newSet(items ...string) stringSet {
	s := make(stringSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// Identity is the brand and model tokens found in a product id.
type Identity struct {
	Brands []string
	Models []string
}

// ExtractIdentity tokenizes text and splits the tokens into brand tokens
// (from the vocabulary) and model tokens (two or more characters, neither a
// brand nor a stopword). Token order is preserved and duplicates dropped.
func ExtractIdentity(text string) Identity {
	var id Identity
	seen := make(map[string]bool)
	for _, tok := range Tokens(text) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		switch {
		case KnownHelmetBrands.has(tok):
			id.Brands = append(id.Brands, tok)
		case len(tok) >= 2 && !modelStopwords.has(tok):
			id.Models = append(id.Models, tok)
		}
	}
	return id
}

// HasBrand reports whether any brand token was found.
func (id Identity) HasBrand() bool {
	return len(id.Brands) > 0
}

// BrandConflict reports whether both sides name brands and share none.
func (id Identity) BrandConflict(other Identity) bool {
	return id.HasBrand() && other.HasBrand() && !overlaps(id.Brands, other.Brands)
}

// Overlaps reports whether the two identities share any brand or model.
func (id Identity) Overlaps(other Identity) bool {
	return overlaps(id.Brands, other.Brands) || overlaps(id.Models, other.Models)
}

// SharesBrand reports whether the identities share a brand token.
func (id Identity) SharesBrand(other Identity) bool {
	return overlaps(id.Brands, other.Brands)
}

// SharesModel reports whether the identities share a model token.
func (id Identity) SharesModel(other Identity) bool {
	return overlaps(id.Models, other.Models)
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Tokens splits lowercased text into maximal runs of ASCII letters and digits.
func Tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// BrandToken returns the first hyphen-separated segment of a slug that is
// not purely numeric and contains a letter. It is the light brand notion
// used while serving; empty when no segment qualifies.
func BrandToken(slug string) string {
	for _, part := range strings.Split(NormalizeRuntime(slug), "-") {
		if part == "" || isDigits(part) {
			continue
		}
		if strings.IndexFunc(part, unicode.IsLetter) >= 0 {
			return part
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsFitSensitive reports whether the id names an accessory that must match a
// specific helmet.
func IsFitSensitive(productID string) bool {
	lower := strings.ToLower(productID)
	for _, term := range fitSensitiveTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// HasForMarker reports whether the id carries a standalone "for" token, as in
// "pinlock-insert-for-shoei-x15".
func HasForMarker(productID string) bool {
	for _, tok := range Tokens(productID) {
		if tok == "for" {
			return true
		}
	}
	return false
}
