package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/clarityhq/clarity/pkg/models"
)

// fakeBinaryStore serves attachment bytes from a map; missing paths error.
type fakeBinaryStore struct {
	files map[string][]byte
}

func (s *fakeBinaryStore) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, ErrFileNotFound
	}
	return data, nil
}

func testCompany() *models.Company {
	value := 50000.0
	return &models.Company{
		ID:                  "c1",
		Name:                "Acme",
		Type:                models.CompanyTypeCustomer,
		Status:              models.CompanyStatusActive,
		Industry:            "Manufacturing",
		PrimaryContactName:  "Dana Reeve",
		PrimaryContactEmail: "dana@acme.test",
		ContractValue:       &value,
	}
}

func TestBuildContext_AllSections(t *testing.T) {
	builder := NewContextBuilder(&fakeBinaryStore{})

	meeting := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	transcripts := []models.Transcript{{
		ID:          "t1",
		Title:       "Kickoff Call",
		MeetingDate: meeting,
		Summary:     "Agreed on rollout phases",
		KeyPoints:   models.StringArray{"Phase one in Q2", "Weekly syncs"},
		Content:     "Full discussion of the rollout.",
	}}
	emails := []models.Email{{
		ID:          "e1",
		Subject:     "Renewal terms",
		FromAddress: "dana@acme.test",
		ToAddresses: models.StringArray{"sales@clarity.local", "legal@clarity.local"},
		SentDate:    meeting,
		Body:        "Please confirm the renewal terms.",
	}}
	documents := []models.Document{{
		ID:      "d1",
		Title:   "MSA",
		Type:    models.DocumentTypeContract,
		Content: "Master services agreement body.",
	}}
	media := []models.MediaAsset{{
		ID:               "m1",
		Title:            "Pricing sheet",
		FileType:         models.FileTypeDocument,
		OriginalFilename: "pricing.txt",
		MimeType:         "text/plain",
		ExtractedText:    "Tier pricing details.",
	}}

	text, attachments := builder.BuildContext(context.Background(),
		testCompany(), transcripts, emails, documents, media)

	for _, want := range []string{
		"# Company Information: Acme",
		"Industry: Manufacturing",
		"Primary Contact: Dana Reeve (dana@acme.test)",
		"Contract Value: $50000",
		"Notes: N/A",
		"# Meeting Transcripts",
		"## Kickoff Call (3/14/2026)",
		"Summary: Agreed on rollout phases",
		"- Phase one in Q2",
		"Full Transcript:\nFull discussion of the rollout.",
		"# Email Exchanges",
		"## Email: Renewal terms",
		"To: sales@clarity.local, legal@clarity.local",
		"# Documents",
		"## MSA (contract)",
		"# Uploaded Media",
		"## Pricing sheet (document)",
		"Original File: pricing.txt",
		"Content:\nTier pricing details.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("context missing %q\n\ncontext:\n%s", want, text)
		}
	}

	if len(attachments) != 0 {
		t.Fatalf("len(attachments) = %d, want 0 for text-only media", len(attachments))
	}

	// Sections appear in fixed order.
	order := []string{"# Company Information", "# Meeting Transcripts", "# Email Exchanges", "# Documents", "# Uploaded Media"}
	last := -1
	for _, heading := range order {
		idx := strings.Index(text, heading)
		if idx <= last {
			t.Fatalf("section %q out of order (index %d after %d)", heading, idx, last)
		}
		last = idx
	}
}

func TestBuildContext_OmitsEmptySections(t *testing.T) {
	builder := NewContextBuilder(&fakeBinaryStore{})

	text, _ := builder.BuildContext(context.Background(), testCompany(), nil, nil, nil, nil)

	for _, heading := range []string{"# Meeting Transcripts", "# Email Exchanges", "# Documents", "# Uploaded Media"} {
		if strings.Contains(text, heading) {
			t.Errorf("empty section %q should be omitted", heading)
		}
	}
	if !strings.Contains(text, "# Company Information: Acme") {
		t.Fatalf("company profile must always be present")
	}
}

func TestBuildContext_NoContractValueLineWhenUnset(t *testing.T) {
	builder := NewContextBuilder(&fakeBinaryStore{})
	company := testCompany()
	company.ContractValue = nil

	text, _ := builder.BuildContext(context.Background(), company, nil, nil, nil, nil)

	if strings.Contains(text, "Contract Value:") {
		t.Fatalf("unset contract value must not produce a line")
	}
}

func TestBuildContext_ImageAttachments(t *testing.T) {
	store := &fakeBinaryStore{files: map[string][]byte{
		"/uploads/a.png": []byte("png-bytes"),
	}}
	builder := NewContextBuilder(store)

	media := []models.MediaAsset{
		{
			ID:       "m1",
			Title:    "Dashboard screenshot",
			FilePath: "/uploads/a.png",
			MimeType: "image/png",
			FileType: models.FileTypeImage,
		},
		{
			// Unreadable file: skipped, not fatal.
			ID:       "m2",
			Title:    "Missing screenshot",
			FilePath: "/uploads/gone.png",
			MimeType: "image/png",
			FileType: models.FileTypeImage,
		},
		{
			// Non-image never becomes an attachment.
			ID:       "m3",
			Title:    "Notes",
			FilePath: "/uploads/a.png",
			MimeType: "text/plain",
			FileType: models.FileTypeDocument,
		},
	}

	_, attachments := builder.BuildContext(context.Background(), testCompany(), nil, nil, nil, media)

	if len(attachments) != 1 {
		t.Fatalf("len(attachments) = %d, want 1", len(attachments))
	}
	got := attachments[0]
	if got.ID != "m1" || got.MimeType != "image/png" || string(got.Data) != "png-bytes" {
		t.Fatalf("attachment = %+v, want m1 with png bytes", got)
	}
}

func TestBuildContext_ImageWithExtractedTextAppearsTwice(t *testing.T) {
	store := &fakeBinaryStore{files: map[string][]byte{
		"/uploads/chart.png": []byte("chart"),
	}}
	builder := NewContextBuilder(store)

	media := []models.MediaAsset{{
		ID:            "m1",
		Title:         "Usage chart",
		FilePath:      "/uploads/chart.png",
		MimeType:      "image/png",
		FileType:      models.FileTypeImage,
		ExtractedText: "Usage doubled in March.",
	}}

	text, attachments := builder.BuildContext(context.Background(), testCompany(), nil, nil, nil, media)

	if !strings.Contains(text, "Usage doubled in March.") {
		t.Fatalf("extracted text of an image must be in the text block")
	}
	if len(attachments) != 1 {
		t.Fatalf("len(attachments) = %d, want 1", len(attachments))
	}
}

func TestBuildContext_WindowerAppliesToFinalText(t *testing.T) {
	builder := NewContextBuilder(&fakeBinaryStore{})
	builder.SetWindower(func(text string) string {
		if len(text) > 40 {
			return text[:40]
		}
		return text
	})

	text, _ := builder.BuildContext(context.Background(), testCompany(), nil, nil, nil, nil)

	if len(text) != 40 {
		t.Fatalf("len(text) = %d, want windowed to 40", len(text))
	}
}

func TestFSBinaryStore_MissingFile(t *testing.T) {
	store := NewFSBinaryStore()
	if _, err := store.ReadFile(context.Background(), "/nonexistent/file.png"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("ReadFile() error = %v, want ErrFileNotFound", err)
	}
}
