// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank turns a noisy multi-source record collection into a clean,
// bounded, ordered selection: cross-source deduplication by fuzzy title
// match, keyword relevance scoring, topic classification, and quota-based
// section assignment.
//
// See docs/ARCHITECTURE § Ranking.
package rank

import "strings"

// MatchThreshold is the similarity ratio at or above which two titles are
// considered the same work.
const MatchThreshold = 0.85

// NormalizeTitle lowercases the title, strips every character other than
// ASCII letters, digits, and whitespace, and collapses whitespace runs.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TitlesMatch reports whether two titles refer to the same work, using the
// default threshold.
func TitlesMatch(a, b string) bool {
	return TitlesMatchThreshold(a, b, MatchThreshold)
}

// TitlesMatchThreshold compares normalized titles by Ratcliff/Obershelp
// similarity. The relation is symmetric and reflexive but not transitive:
// a~b and b~c do not imply a~c, which is why deduplication scans accepted
// representatives linearly instead of building match groups.
func TitlesMatchThreshold(a, b string, threshold float64) bool {
	return Similarity(NormalizeTitle(a), NormalizeTitle(b)) >= threshold
}

// Similarity returns the Ratcliff/Obershelp ratio 2*M/T for two strings,
// where M is the total length of matched blocks (longest matching block,
// recursing on the pieces to its left and right) and T the combined length.
// Two empty strings are identical (ratio 1).
func Similarity(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 1.0
	}
	ab, bb := []byte(a), []byte(b)

	// Positions of each byte in b, for the inner matching loop. Normalized
	// titles are ASCII so byte indexing is exact.
	b2j := make(map[byte][]int, len(bb))
	for j, c := range bb {
		b2j[c] = append(b2j[c], j)
	}

	matched := matchBlocks(ab, bb, 0, len(ab), 0, len(bb), b2j)
	return 2.0 * float64(matched) / float64(len(a)+len(b))
}

// matchBlocks sums matched block lengths over a[alo:ahi] vs b[blo:bhi].
func matchBlocks(a, b []byte, alo, ahi, blo, bhi int, b2j map[byte][]int) int {
	i, j, k := longestMatch(a, alo, ahi, blo, bhi, b2j)
	if k == 0 {
		return 0
	}
	return k +
		matchBlocks(a, b, alo, i, blo, j, b2j) +
		matchBlocks(a, b, i+k, ahi, j+k, bhi, b2j)
}

// longestMatch finds the longest block where a[i:i+k] == b[j:j+k] within the
// given bounds, preferring the earliest block on ties.
func longestMatch(a []byte, alo, ahi, blo, bhi int, b2j map[byte][]int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
