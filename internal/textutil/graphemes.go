package textutil

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const variationSelector16 = 0xFE0F

// Graphemes splits text into user-perceived characters.
func Graphemes(text string) []string {
	if text == "" {
		return nil
	}
	clusters := make([]string, 0, len(text))
	state := -1
	rest := text
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

// ClusterWidth reports the terminal columns a single grapheme cluster occupies.
// The result is always 1 or 2: wide and emoji clusters take two columns,
// everything else (including controls, drawn as a placeholder) takes one.
func ClusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	first, size := utf8.DecodeRuneInString(cluster)
	var width int
	if size == len(cluster) {
		// Single runes go through runewidth so the ambiguous-width setting
		// that tcell honours applies here as well.
		width = runewidth.RuneWidth(first)
	} else {
		width = uniseg.StringWidth(cluster)
		for _, r := range cluster[size:] {
			if r == variationSelector16 {
				width = 2
				break
			}
		}
	}
	switch {
	case width < 1:
		return 1
	case width > 2:
		return 2
	}
	return width
}

// CellWidth is the width tcell gives the cell that holds cluster. tcell
// sizes cells by the first rune alone, so clusters widened by a variation
// selector or a second regional indicator get one column here.
func CellWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	first, _ := utf8.DecodeRuneInString(cluster)
	return min(max(runewidth.RuneWidth(first), 1), 2)
}

// DisplayWidth reports the printable width of text measured cluster by cluster.
func DisplayWidth(text string) int {
	width := 0
	for _, cluster := range Graphemes(text) {
		width += ClusterWidth(cluster)
	}
	return width
}
