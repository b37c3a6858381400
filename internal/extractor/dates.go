package extractor

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// Numeric year-month-day with -, / or . separators. Anchored so the
	// textual form can never half-match this branch.
	numericDatePattern = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})$`)

	// "Day Monthname Year" with a month name of at least three letters.
	textualDatePattern = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})$`)
)

var textualDateLayouts = []string{"2 January 2006", "2 Jan 2006"}

// NormalizeDate converts a free-text date expression to YYYY-MM-DD.
//
// The numeric form is reassembled from its captured groups without
// validation: out-of-range month or day values pass through unchanged.
// This mirrors the persisted-record convention and is a documented
// limitation, not a defect to fix here. The textual form is parsed as a
// calendar date and rejected when invalid.
func NormalizeDate(text string) (string, bool) {
	s := strings.TrimSpace(text)

	if m := numericDatePattern.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3], true
	}

	if m := textualDatePattern.FindStringSubmatch(s); m != nil {
		candidate := fmt.Sprintf("%s %s %s", m[1], m[2], m[3])
		for _, layout := range textualDateLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t.Format("2006-01-02"), true
			}
		}
	}

	return "", false
}
