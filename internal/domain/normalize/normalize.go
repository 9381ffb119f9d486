// Package normalize maps noisy curated names onto a canonical comparison
// form and produces the search variants used to fan out catalog queries.
package normalize

import "strings"

// Version markers that separate a base name from a trailing version or build
// tag, matched case-insensitively against the raw name.
var versionMarkers = []string{
	"_v", " v", "version ", "_ver", " ver",
	".0.", ".1.", ".2.", ".3.", ".4.", ".5.",
}

// Name lowercases, maps '_', '-' and '.' to spaces, collapses consecutive
// whitespace and trims. It is idempotent and total; an empty string maps to
// an empty string.
func Name(raw string) string {
	n := strings.ToLower(raw)
	n = strings.ReplaceAll(n, "_", " ")
	n = strings.ReplaceAll(n, "-", " ")
	n = strings.ReplaceAll(n, ".", " ")
	return strings.Join(strings.Fields(n), " ")
}

// SearchVariants returns the de-duplicated set of query strings for a raw
// name: the raw name itself, the prefix before the first version marker when
// one is present, and the normalized forms of both. Order carries no meaning.
func SearchVariants(raw string) []string {
	base := raw
	lower := strings.ToLower(raw)
	for _, marker := range versionMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 {
			base = raw[:idx]
			break
		}
	}

	variants := []string{raw}
	if base != raw {
		variants = append(variants, base)
	}
	variants = append(variants, Name(raw))
	if base != raw {
		variants = append(variants, Name(base))
	}

	seen := make(map[string]struct{}, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Compare scores two names against each other. Equal normalized forms are an
// exact match with similarity 1. When one normalized form contains the other,
// similarity is the length ratio min/max. Anything else scores zero.
func Compare(a, b string) (exact bool, similarity float64) {
	na := Name(a)
	nb := Name(b)

	if na == nb {
		return true, 1.0
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		minLen, maxLen := len(na), len(nb)
		if minLen > maxLen {
			minLen, maxLen = maxLen, minLen
		}
		if maxLen == 0 {
			return false, 0
		}
		return false, float64(minLen) / float64(maxLen)
	}

	return false, 0
}
