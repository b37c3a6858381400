package extractor

import "testing"

const sampleText = `REPUBLIC OF EXAMPLE
Name: Jane Doe
Passport No: X1234567
Nationality: Examplish
Issue Date: 2021-05-17
Expiry Date: 2031-05-16`

func TestLocal_Extract_SampleDocument(t *testing.T) {
	result := NewLocal().Extract(sampleText)

	if result.ApplicantName != "Jane Doe" {
		t.Errorf("applicantName = %q, want %q", result.ApplicantName, "Jane Doe")
	}
	if result.DocumentID != "X1234567" {
		t.Errorf("documentId = %q, want %q", result.DocumentID, "X1234567")
	}
	if result.IssueDate != "2021-05-17" {
		t.Errorf("issueDate = %q, want %q", result.IssueDate, "2021-05-17")
	}
	if result.Source != SourceLocal {
		t.Errorf("source = %q, want %q", result.Source, SourceLocal)
	}
}

func TestLocal_Extract_EmptyInput(t *testing.T) {
	result := NewLocal().Extract("")

	if result.ApplicantName != Unknown {
		t.Errorf("applicantName = %q, want %q", result.ApplicantName, Unknown)
	}
	if result.DocumentID != Unknown {
		t.Errorf("documentId = %q, want %q", result.DocumentID, Unknown)
	}
	if result.IssueDate != Unknown {
		t.Errorf("issueDate = %q, want %q", result.IssueDate, Unknown)
	}
	if result.Source != SourceLocal {
		t.Errorf("source = %q, want %q", result.Source, SourceLocal)
	}
}

func TestLocal_Extract_CaseInsensitiveLabels(t *testing.T) {
	result := NewLocal().Extract("NAME: John Smith\nPASSPORT NO: AB99\nISSUE DATE: 3 March 2019")

	if result.ApplicantName != "John Smith" {
		t.Errorf("applicantName = %q, want %q", result.ApplicantName, "John Smith")
	}
	if result.DocumentID != "AB99" {
		t.Errorf("documentId = %q, want %q", result.DocumentID, "AB99")
	}
	if result.IssueDate != "2019-03-03" {
		t.Errorf("issueDate = %q, want %q", result.IssueDate, "2019-03-03")
	}
}

func TestLocal_Extract_DocumentIDFallback(t *testing.T) {
	result := NewLocal().Extract("Name: A B\nDocument ID: DOC42")

	if result.DocumentID != "DOC42" {
		t.Errorf("documentId = %q, want %q", result.DocumentID, "DOC42")
	}
}

func TestLocal_Extract_PassportTakesPriorityOverDocumentID(t *testing.T) {
	result := NewLocal().Extract("Document ID: SECOND\nPassport No: FIRST1")

	// Matcher order decides, not position in the text.
	if result.DocumentID != "FIRST1" {
		t.Errorf("documentId = %q, want %q", result.DocumentID, "FIRST1")
	}
}

func TestLocal_Extract_IssuedOnFallback(t *testing.T) {
	result := NewLocal().Extract("Issued on: 17 May 2021")

	if result.IssueDate != "2021-05-17" {
		t.Errorf("issueDate = %q, want %q", result.IssueDate, "2021-05-17")
	}
}

func TestLocal_Extract_UnparseableDateFallsThrough(t *testing.T) {
	// The Issue Date capture does not normalize, so the Issued on label is
	// consulted next.
	result := NewLocal().Extract("Issue Date: sometime in spring\nIssued on: 2020/01/02")

	if result.IssueDate != "2020-01-02" {
		t.Errorf("issueDate = %q, want %q", result.IssueDate, "2020-01-02")
	}
}

func TestLocal_Extract_UnparseableDateEverywhere(t *testing.T) {
	result := NewLocal().Extract("Issue Date: unknown\nIssued on: also unknown")

	if result.IssueDate != Unknown {
		t.Errorf("issueDate = %q, want %q", result.IssueDate, Unknown)
	}
}

func TestLocal_Extract_TrimsCapturedName(t *testing.T) {
	result := NewLocal().Extract("Name:   Mary Ann O'Neil-Smith   \nrest")

	if result.ApplicantName != "Mary Ann O'Neil-Smith" {
		t.Errorf("applicantName = %q, want %q", result.ApplicantName, "Mary Ann O'Neil-Smith")
	}
}
