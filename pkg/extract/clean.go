package extract

import "strings"

// Clean normalizes body per §4.4's pre-scan text-cleaning rules: collapse
// runs of 3+ newlines to two, runs of 3+ spaces to one, and suppress
// near-duplicate adjacent lines whose character similarity exceeds
// threshold (a tolerant LCS ratio), which otherwise causes the same entity
// to be detected twice when HTML-to-markdown conversion repeats a line.
func Clean(body string, nearDuplicateThreshold float64) string {
	body = collapseNewlineRuns(body)
	body = collapseSpaceRuns(body)
	body = suppressNearDuplicateLines(body, nearDuplicateThreshold)
	return body
}

func collapseNewlineRuns(s string) string {
	var b strings.Builder
	run := 0
	for _, r := range s {
		if r == '\n' {
			run++
			if run <= 2 {
				b.WriteRune(r)
			}
			continue
		}
		run = 0
		b.WriteRune(r)
	}
	return b.String()
}

func collapseSpaceRuns(s string) string {
	var b strings.Builder
	run := 0
	flush := func() {
		if run >= 3 {
			run = 1
		}
		b.WriteString(strings.Repeat(" ", run))
		run = 0
	}
	for _, r := range s {
		if r == ' ' {
			run++
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return b.String()
}

// suppressNearDuplicateLines drops a line that is near-identical to the
// immediately preceding non-blank line, per the "Boston\n\n\nBoston"
// artifact example in §4.4.
func suppressNearDuplicateLines(s string, threshold float64) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	var lastNonBlank string
	haveLast := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, line)
			continue
		}
		if haveLast && lcsRatio(trimmed, lastNonBlank) > threshold {
			continue
		}
		out = append(out, line)
		lastNonBlank = trimmed
		haveLast = true
	}
	return strings.Join(out, "\n")
}

// lcsRatio returns 2*|LCS(a,b)| / (|a|+|b|), a tolerant similarity measure
// that is 1.0 for identical strings and degrades gracefully for near
// matches (punctuation drift, whitespace drift).
func lcsRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)

	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[m]
	return 2 * float64(lcs) / float64(n+m)
}
