// Package bionic sizes the bold lead of a word for bionic-style reading.
package bionic

import (
	"math"
	"strings"

	"github.com/rivo/uniseg"
)

const (
	defaultShortMax    = 2
	defaultMediumMax   = 4
	defaultMediumRatio = 0.5
	defaultLongRatio   = 0.4
)

// Policy holds the length thresholds and ratios used to size a lead.
type Policy struct {
	ShortMax    int
	MediumMax   int
	MediumRatio float64
	LongRatio   float64
}

func DefaultPolicy() Policy {
	return Policy{
		ShortMax:    defaultShortMax,
		MediumMax:   defaultMediumMax,
		MediumRatio: defaultMediumRatio,
		LongRatio:   defaultLongRatio,
	}
}

// LeadLength returns how many leading characters of a word of length n are
// emphasized. The result is always within [1, n] for n >= 1, and 0 otherwise.
func (p Policy) LeadLength(n int) int {
	if n <= 0 {
		return 0
	}

	var lead int
	switch {
	case n <= p.ShortMax:
		lead = 1
	case n <= p.MediumMax:
		lead = int(math.Ceil(float64(n) * p.MediumRatio))
	default:
		lead = int(math.Ceil(float64(n) * p.LongRatio))
	}

	return min(max(lead, 1), n)
}

// Split cuts core into its emphasized lead and the remainder, counting
// grapheme clusters so a combining mark stays with its base letter.
func (p Policy) Split(core string) (lead, rest string) {
	clusters := Graphemes(core)
	n := p.LeadLength(len(clusters))
	return strings.Join(clusters[:n], ""), strings.Join(clusters[n:], "")
}

// Graphemes splits s into user-perceived characters.
func Graphemes(s string) []string {
	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}

// LeadLength applies the default policy.
func LeadLength(n int) int {
	return DefaultPolicy().LeadLength(n)
}
