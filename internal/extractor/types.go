// Package extractor converts raw document text into a fixed-field record,
// either through a remote structured-extraction provider or a deterministic
// local parser.
package extractor

import "time"

// SourceLocal tags results produced by the offline parser.
const SourceLocal = "local-extractor"

// Unknown is the placeholder for fields the local parser cannot find.
const Unknown = "UNKNOWN"

// Fields holds the extracted values for the fixed schema.
type Fields struct {
	ApplicantName string `json:"applicantName" yaml:"applicantName" validate:"required"`
	DocumentID    string `json:"documentId" yaml:"documentId" validate:"required"`
	IssueDate     string `json:"issueDate" yaml:"issueDate" validate:"required"`
}

// Result is a set of extracted fields plus the extractor that produced them.
type Result struct {
	Fields `yaml:",inline"`
	Source string `json:"source" yaml:"source"`
}

// Artifact is the structured record of one extraction run. RawText is the
// exact input supplied to that run. Artifacts are never mutated; a new
// extraction produces a new artifact.
type Artifact struct {
	Result      `yaml:",inline"`
	RawText     string    `json:"rawText" yaml:"rawText"`
	ProcessedAt time.Time `json:"processedAt" yaml:"processedAt"`
}
