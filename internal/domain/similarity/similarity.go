// Package similarity computes similarity measures between skill vectors
// and normalized texts.
package similarity

import (
	"math"

	"github.com/okian/matchday/internal/domain/feature"
)

// Cosine returns the cosine similarity of two vectors. Defined as 0 when
// either vector is the zero vector.
func Cosine(a, b feature.Vector) float64 {
	var dot, na, nb float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, x := range a {
		na += x * x
	}
	for _, x := range b {
		nb += x * x
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Ratio normalizes both texts and returns their longest-matching-blocks
// similarity as a percentage in [0,100]: 2*M/T*100 where M is the total
// length of matched blocks and T the combined length of both sequences.
// Symmetric in its arguments.
func Ratio(text1, text2 string) float64 {
	a := feature.Normalize(text1)
	b := feature.Normalize(text2)
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := matchingBlocksTotal(a, b)
	return 2 * float64(matched) / float64(len(a)+len(b)) * 100
}

// matchingBlocksTotal sums the lengths of the matching blocks found by
// recursively locating the longest common substring and descending into
// the unmatched pieces on either side.
func matchingBlocksTotal(a, b string) int {
	// Index positions of each byte in b once; normalized text is ASCII
	// so byte positions and character positions coincide.
	b2j := make(map[byte][]int, len(b))
	for j := 0; j < len(b); j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	total := 0
	stack := []span{{0, len(a), 0, len(b)}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		bi, bj, size := longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if size == 0 {
			continue
		}
		total += size
		stack = append(stack,
			span{s.alo, bi, s.blo, bj},
			span{bi + size, s.ahi, bj + size, s.bhi},
		)
	}
	return total
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] with
// alo<=i<i+k<=ahi and blo<=j<j+k<=bhi. Earliest match in a wins ties,
// then earliest in b, matching the classic sequence-matcher behavior.
func longestMatch(a string, b2j map[byte][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	// j2len[j] holds the length of the longest match ending at a[i-1], b[j-1].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
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
