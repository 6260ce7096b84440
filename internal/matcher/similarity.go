package matcher

import "strings"

// LevenshteinDistance calculates the edit distance between two strings.
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	d := make([][]int, len(s1)+1)
	for i := range d {
		d[i] = make([]int, len(s2)+1)
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			d[i][j] = min(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[len(s1)][len(s2)]
}

// SimilarityRatio calculates the similarity ratio between two strings
// (0.0 to 1.0) as 1 - (distance / max(len(s1), len(s2))).
func SimilarityRatio(s1, s2 string) float64 {
	if len(s1) == 0 && len(s2) == 0 {
		return 1.0
	}

	distance := LevenshteinDistance(s1, s2)
	maxLen := max(len(s1), len(s2))
	return 1.0 - float64(distance)/float64(maxLen)
}

// MostSimilarLine finds the line in content most similar to the search
// text. Used to build actionable error messages when a search span cannot
// be located. Returns a 1-based line number.
func MostSimilarLine(content, search string) (lineNum int, line string, ratio float64) {
	lines := strings.Split(content, "\n")
	bestRatio := 0.0
	bestLineNum := 0
	bestLine := ""

	// Also try the first line of a multiline search; models often get
	// the opening line right and drift afterwards.
	searchFirstLine := search
	if idx := strings.Index(search, "\n"); idx > 0 {
		searchFirstLine = search[:idx]
	}

	for i, line := range lines {
		r1 := SimilarityRatio(strings.TrimSpace(line), strings.TrimSpace(search))
		r2 := SimilarityRatio(strings.TrimSpace(line), strings.TrimSpace(searchFirstLine))

		r := max(r1, r2)
		if r > bestRatio {
			bestRatio = r
			bestLineNum = i + 1
			bestLine = line
		}
	}

	return bestLineNum, bestLine, bestRatio
}
