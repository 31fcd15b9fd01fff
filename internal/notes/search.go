package notes

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SearchString is the text a note is matched against.
func SearchString(n Note) string {
	return n.Title + " " + strings.ReplaceAll(n.Content, "\n", " ")
}

// Search returns the indices of notes matching query, best match first.
// An empty query matches every note in list order.
func Search(list []Note, query string) []int {
	if strings.TrimSpace(query) == "" {
		indices := make([]int, len(list))
		for i := range list {
			indices[i] = i
		}
		return indices
	}

	names := make([]string, len(list))
	for i, n := range list {
		names[i] = SearchString(n)
	}
	matches := fuzzy.Find(query, names)
	indices := make([]int, len(matches))
	for i, match := range matches {
		indices[i] = match.Index
	}
	return indices
}
