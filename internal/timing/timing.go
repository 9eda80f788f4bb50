// Package timing estimates per-word time windows from a total audio duration
// and resolves a playback position to the word being spoken.
package timing

import (
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"readalong/internal/tokenize"
)

// None is the active index reported when no word is being spoken.
const None = -1

const defaultMinCharWeight = 3

// WordTiming is the half-open window [StartMs, EndMs) of one countable word.
type WordTiming struct {
	Index   int
	Text    string
	StartMs int64
	EndMs   int64
}

func (w WordTiming) Contains(ms int64) bool {
	return w.StartMs <= ms && ms < w.EndMs
}

func (w WordTiming) Duration() time.Duration {
	return time.Duration(w.EndMs-w.StartMs) * time.Millisecond
}

// Policy tunes how the total duration is shared between words.
type Policy struct {
	// MinCharWeight is the weight floor so short words are not given
	// near-zero time.
	MinCharWeight int
}

func DefaultPolicy() Policy {
	return Policy{MinCharWeight: defaultMinCharWeight}
}

func (p Policy) floor() int {
	if p.MinCharWeight < 1 {
		return 1
	}
	return p.MinCharWeight
}

// Weight returns the share weight of a word of the given rune length.
func (p Policy) Weight(length int) int {
	return max(p.floor(), length)
}

// EstimateWordTimings tokenizes text and estimates windows for its countable
// words over totalMs.
func EstimateWordTimings(text string, totalMs int64, p Policy) []WordTiming {
	return Estimate(tokenize.CountableWords(text), totalMs, p)
}

// Estimate lays out one window per word, weighted by rune length.
func Estimate(words []string, totalMs int64, p Policy) []WordTiming {
	lengths := make([]int, len(words))
	for i, w := range words {
		lengths[i] = utf8.RuneCountInString(w)
	}

	timings := EstimateLengths(lengths, totalMs, p)
	for i := range timings {
		timings[i].Text = words[i]
	}
	return timings
}

// EstimateLengths lays out one window per word length. The windows start at
// 0, touch each other, and the last one ends exactly at totalMs. Boundaries
// come from the cumulative weight, so rounding never drifts, and every
// window is at least 1ms long whenever totalMs covers one per word.
func EstimateLengths(lengths []int, totalMs int64, p Policy) []WordTiming {
	if len(lengths) == 0 {
		return nil
	}
	if totalMs < 0 {
		totalMs = 0
	}

	var sum int64
	for _, l := range lengths {
		sum += int64(p.Weight(l))
	}

	n := int64(len(lengths))
	reserve := totalMs >= n

	timings := make([]WordTiming, len(lengths))
	var start, cum int64
	for i, l := range lengths {
		cum += int64(p.Weight(l))
		end := (2*cum*totalMs + sum) / (2 * sum)
		if reserve {
			remaining := n - int64(i) - 1
			end = min(max(end, start+1), totalMs-remaining)
		}
		end = min(end, totalMs)
		timings[i] = WordTiming{Index: i, StartMs: start, EndMs: end}
		start = end
	}
	timings[len(timings)-1].EndMs = totalMs

	return timings
}

// Resolve returns the window containing ms. Positions before 0 or at or past
// the end of the last window resolve to nothing.
func Resolve(timings []WordTiming, ms int64) (WordTiming, bool) {
	i := ResolveIndex(timings, ms)
	if i == None {
		return WordTiming{}, false
	}
	return timings[i], true
}

// ResolveIndex is Resolve returning the word index, or None.
func ResolveIndex(timings []WordTiming, ms int64) int {
	if len(timings) == 0 || ms < 0 || ms >= timings[len(timings)-1].EndMs {
		return None
	}

	i := sort.Search(len(timings), func(i int) bool {
		return timings[i].EndMs > ms
	})
	if i == len(timings) || !timings[i].Contains(ms) {
		return None
	}
	return i
}

// MillisFromSeconds converts a media duration in seconds. NaN, infinite and
// negative values are reported as unusable.
func MillisFromSeconds(sec float64) (int64, bool) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		return 0, false
	}
	return int64(math.Round(sec * 1000)), true
}
