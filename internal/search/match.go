package search

import (
	"runtime"
	"strings"

	"github.com/kk-code-lab/thwack/internal/textutil"
)

// MatchedPath is a file path that contains every cluster of a query, in
// order. Positions are cluster indexes into the relative and absolute
// strings respectively, strictly increasing, one per query cluster.
type MatchedPath struct {
	absolute     string
	relative     string
	relGraphemes []string
	absGraphemes []string
	relPositions []int
	absPositions []int
	depth        int
	distance     int
}

// Match scores absolute against query. startingPoint must be a prefix of
// absolute; the relative form drops it and a single leading separator.
// It reports false unless every query cluster can be placed.
func Match(query, startingPoint, absolute string) (*MatchedPath, bool) {
	needle := queryClusters(query)
	relative := relativePath(startingPoint, absolute)

	relGraphemes := textutil.Graphemes(relative)
	relPositions, ok := reversePositions(needle, relGraphemes)
	if !ok {
		return nil, false
	}

	absGraphemes := textutil.Graphemes(absolute)
	absPositions, ok := reversePositions(needle, absGraphemes)
	if !ok {
		// The relative path is a suffix of the absolute one.
		absPositions = shiftPositions(relPositions, len(absGraphemes)-len(relGraphemes))
	}

	return &MatchedPath{
		absolute:     absolute,
		relative:     relative,
		relGraphemes: relGraphemes,
		absGraphemes: absGraphemes,
		relPositions: relPositions,
		absPositions: absPositions,
		depth:        depthOf(relative),
		distance:     distanceOf(relPositions),
	}, true
}

func (m *MatchedPath) Absolute() string { return m.absolute }
func (m *MatchedPath) Relative() string { return m.relative }

// Depth is the number of separators in the relative path.
func (m *MatchedPath) Depth() int { return m.depth }

// Distance is the sum of gaps between consecutive relative positions, so a
// contiguous match of n clusters has distance n-1.
func (m *MatchedPath) Distance() int { return m.distance }

// Positions returns the matched cluster indexes of the relative path.
func (m *MatchedPath) Positions() []int { return append([]int(nil), m.relPositions...) }

// AbsolutePositions returns the matched cluster indexes of the absolute path.
func (m *MatchedPath) AbsolutePositions() []int { return append([]int(nil), m.absPositions...) }

func (m *MatchedPath) String() string { return m.relative }

// Compare orders by distance, then depth, then the relative path byte-wise.
func Compare(a, b *MatchedPath) int {
	switch {
	case a.distance != b.distance:
		return a.distance - b.distance
	case a.depth != b.depth:
		return a.depth - b.depth
	}
	return strings.Compare(a.relative, b.relative)
}

func relativePath(startingPoint, absolute string) string {
	rel := strings.TrimPrefix(absolute, startingPoint)
	if rel != "" && isSeparator(rel[0]) {
		rel = rel[1:]
	}
	return rel
}

func depthOf(relative string) int {
	depth := 0
	for i := 0; i < len(relative); i++ {
		if isSeparator(relative[i]) {
			depth++
		}
	}
	return depth
}

// Both separators count on every platform so that Windows style paths rank
// the same everywhere.
func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

func queryClusters(query string) []string {
	if runtime.GOOS == "windows" {
		// "/" cannot appear in a Windows file name, so it can only mean a separator.
		query = strings.ReplaceAll(query, "/", `\`)
	}
	return textutil.Graphemes(query)
}

// reversePositions places the needle from its last cluster to its first,
// each time taking the right-most equal cluster left of the previous one.
func reversePositions(needle, haystack []string) ([]int, bool) {
	positions := make([]int, len(needle))
	end := len(haystack)
	for qi := len(needle) - 1; qi >= 0; qi-- {
		found := -1
		for hi := end - 1; hi >= 0; hi-- {
			if clustersEqual(needle[qi], haystack[hi]) {
				found = hi
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		positions[qi] = found
		end = found
	}
	return positions, true
}

// clustersEqual ignores ASCII case only. Other clusters must be byte-equal,
// so a precomposed letter does not match its decomposed form.
func clustersEqual(needle, hay string) bool {
	if len(needle) == 1 && len(hay) == 1 {
		return asciiLower(needle[0]) == asciiLower(hay[0])
	}
	return needle == hay
}

func asciiLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func distanceOf(positions []int) int {
	total := 0
	for i := 1; i < len(positions); i++ {
		total += positions[i] - positions[i-1]
	}
	return total
}

func shiftPositions(positions []int, offset int) []int {
	out := make([]int, len(positions))
	for i, p := range positions {
		out[i] = p + offset
	}
	return out
}
