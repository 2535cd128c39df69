// Package diff classifies line-level differences between an original and a
// tailored document for display. The classification is intentionally coarse:
// exact-text membership scans plus an index-aligned modification pass, not an
// edit-distance diff. A single inserted line shifts the index alignment of
// everything after it; that behavior is part of the displayed contract.
package diff

import (
	"fmt"
	"strings"
)

// Result holds the classified lines. All three sequences preserve the scan
// order of their driving text: tailored order for Added, original order for
// Removed and Modified.
type Result struct {
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Modified []string `json:"modified"`
}

// Highlight compares two full texts line by line. It is pure: identical
// inputs always produce identical results.
func Highlight(original, tailored string) Result {
	originalLines := strings.Split(original, "\n")
	tailoredLines := strings.Split(tailored, "\n")

	originalSet := toSet(originalLines)
	tailoredSet := toSet(tailoredLines)

	result := Result{
		Added:    []string{},
		Removed:  []string{},
		Modified: []string{},
	}

	addedSet := make(map[string]bool)
	for _, line := range tailoredLines {
		if !originalSet[line] && strings.TrimSpace(line) != "" {
			result.Added = append(result.Added, line)
			addedSet[line] = true
		}
	}

	removedSet := make(map[string]bool)
	for _, line := range originalLines {
		if !tailoredSet[line] && strings.TrimSpace(line) != "" {
			result.Removed = append(result.Removed, line)
			removedSet[line] = true
		}
	}

	// Index-aligned modification pass over positions present in both texts.
	for i, line := range originalLines {
		if i >= len(tailoredLines) {
			break
		}
		tailoredLine := tailoredLines[i]
		if line != tailoredLine &&
			!addedSet[tailoredLine] &&
			!removedSet[line] &&
			strings.TrimSpace(line) != "" &&
			strings.TrimSpace(tailoredLine) != "" {
			result.Modified = append(result.Modified, fmt.Sprintf("%s → %s", line, tailoredLine))
		}
	}

	return result
}

func toSet(lines []string) map[string]bool {
	set := make(map[string]bool, len(lines))
	for _, line := range lines {
		set[line] = true
	}
	return set
}
