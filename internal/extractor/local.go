package extractor

import (
	"regexp"
	"strings"
)

// matcher pairs a label pattern with an optional normalizer for its capture.
type matcher struct {
	pattern   *regexp.Regexp
	normalize func(string) (string, bool)
}

// apply runs the matcher against text and returns a non-empty value on
// success.
func (m matcher) apply(text string) (string, bool) {
	match := m.pattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	captured := strings.TrimSpace(match[1])
	if m.normalize != nil {
		return m.normalize(captured)
	}
	if captured == "" {
		return "", false
	}
	return captured, true
}

// Local extracts the fixed fields with ordered label matchers. For each
// field the matchers are tried in priority order and the first non-empty
// normalized capture wins; later alternatives are not consulted. Extraction
// is total: absent matches resolve to the UNKNOWN placeholder.
type Local struct {
	name []matcher
	id   []matcher
	date []matcher
}

// NewLocal compiles the matcher lists.
func NewLocal() *Local {
	return &Local{
		name: []matcher{
			{pattern: regexp.MustCompile(`(?i)name\s*:?\s*([A-Za-z][A-Za-z .,'-]*)`)},
		},
		id: []matcher{
			{pattern: regexp.MustCompile(`(?i)passport\s*no\.?\s*:?\s*([A-Za-z0-9]+)`)},
			{pattern: regexp.MustCompile(`(?i)document\s*id\s*:?\s*([A-Za-z0-9]+)`)},
		},
		date: []matcher{
			{pattern: regexp.MustCompile(`(?i)issue\s*date\s*:?\s*([^\n]+)`), normalize: NormalizeDate},
			{pattern: regexp.MustCompile(`(?i)issued\s+on\s*:?\s*([^\n]+)`), normalize: NormalizeDate},
		},
	}
}

// Extract parses rawText into a Result. It never fails.
func (l *Local) Extract(rawText string) Result {
	return Result{
		Fields: Fields{
			ApplicantName: firstMatch(l.name, rawText),
			DocumentID:    firstMatch(l.id, rawText),
			IssueDate:     firstMatch(l.date, rawText),
		},
		Source: SourceLocal,
	}
}

// firstMatch returns the first successful capture, or Unknown.
func firstMatch(matchers []matcher, text string) string {
	for _, m := range matchers {
		if value, ok := m.apply(text); ok {
			return value
		}
	}
	return Unknown
}
