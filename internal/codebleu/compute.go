package codebleu

import (
	"sync"

	"github.com/jdkbench/jdkmig/internal/parser"
)

// Component weights of the combined score.
const (
	WeightNgram         = 0.25
	WeightWeightedNgram = 0.25
	WeightSyntax        = 0.25
	WeightDataflow      = 0.25
)

// Scorer computes scores with a reusable Java parser. It is safe for
// concurrent use; calls are serialized on the parser.
type Scorer struct {
	mu sync.Mutex
	p  *parser.Parser
}

func NewScorer() (*Scorer, error) {
	p, err := parser.NewParser(parser.Java)
	if err != nil {
		return nil, err
	}
	return &Scorer{p: p}, nil
}

func (s *Scorer) Close() {
	s.p.Close()
}

// wrap places a method inside a class so it parses as a member.
func wrap(code string) []byte {
	return []byte("class __Wrapper {\n" + code + "\n}")
}

// Compute scores candidate against reference.
func (s *Scorer) Compute(candidate, reference string) (Score, error) {
	var sc Score
	candTokens, refTokens := Tokenize(candidate), Tokenize(reference)
	sc.NgramMatch = BLEU(candTokens, refTokens)
	sc.WeightedNgramMatch = WeightedBLEU(candTokens, refTokens)

	s.mu.Lock()
	defer s.mu.Unlock()

	cand, err := s.p.Parse(wrap(candidate))
	if err != nil {
		return Score{}, err
	}
	defer cand.Close()
	ref, err := s.p.Parse(wrap(reference))
	if err != nil {
		return Score{}, err
	}
	defer ref.Close()

	sc.SyntaxMatch = syntaxMatch(cand, ref)
	sc.DataflowMatch = dataflowMatch(dataflowEdges(cand), dataflowEdges(ref))

	sc.CodeBLEU = WeightNgram*sc.NgramMatch +
		WeightWeightedNgram*sc.WeightedNgramMatch +
		WeightSyntax*sc.SyntaxMatch +
		WeightDataflow*sc.DataflowMatch
	return sc, nil
}

// Compute scores candidate against reference with a fresh parser.
func Compute(candidate, reference string) (Score, error) {
	s, err := NewScorer()
	if err != nil {
		return Score{}, err
	}
	defer s.Close()
	return s.Compute(candidate, reference)
}
