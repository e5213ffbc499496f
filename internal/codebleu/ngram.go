package codebleu

import (
	"math"
	"strings"
)

const maxOrder = 4

// Tokenize splits code on whitespace.
func Tokenize(code string) []string {
	return strings.Fields(code)
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], "\x00")]++
	}
	return counts
}

func brevityPenalty(candLen, refLen int) float64 {
	if candLen == 0 {
		return 0
	}
	if candLen > refLen {
		return 1
	}
	return math.Exp(1 - float64(refLen)/float64(candLen))
}

// BLEU is sentence-level BLEU-4 with uniform weights and no smoothing. Any
// order without a matching n-gram makes the score 0.
func BLEU(candidate, reference []string) float64 {
	var logSum float64
	for n := 1; n <= maxOrder; n++ {
		cand := ngramCounts(candidate, n)
		ref := ngramCounts(reference, n)
		var clipped, total int
		for g, c := range cand {
			total += c
			clipped += min(c, ref[g])
		}
		if clipped == 0 || total == 0 {
			return 0
		}
		logSum += math.Log(float64(clipped)/float64(total)) / maxOrder
	}
	return brevityPenalty(len(candidate), len(reference)) * math.Exp(logSum)
}

// Weight of a reference unigram in WeightedBLEU.
const (
	keywordWeight = 1.0
	otherWeight   = 0.2
)

// WeightedBLEU matches against the reference's n-grams, weighting Java
// keywords above other unigrams. Orders above one are unweighted.
func WeightedBLEU(candidate, reference []string) float64 {
	var logSum float64
	for n := 1; n <= maxOrder; n++ {
		cand := ngramCounts(candidate, n)
		ref := ngramCounts(reference, n)
		var matched, total float64
		for g, c := range ref {
			w := 1.0
			if n == 1 {
				w = otherWeight
				if IsKeyword(g) {
					w = keywordWeight
				}
			}
			total += float64(c) * w
			matched += float64(min(c, cand[g])) * w
		}
		if matched == 0 || total == 0 {
			return 0
		}
		logSum += math.Log(matched/total) / maxOrder
	}
	return brevityPenalty(len(candidate), len(reference)) * math.Exp(logSum)
}
