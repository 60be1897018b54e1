package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/clarityhq/clarity/pkg/models"
)

// fakeGenerator returns a canned answer or error and records the parts it saw.
type fakeGenerator struct {
	answer   string
	err      error
	gotParts []PromptPart
}

func (g *fakeGenerator) Generate(_ context.Context, parts []PromptPart) (string, error) {
	g.gotParts = parts
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

// failingRecorder always fails its write.
type failingRecorder struct{}

func (failingRecorder) Record(string, string, string, string, []models.Source) (*models.ChatHistoryEntry, error) {
	return nil, errors.New("disk full")
}

type askHarness struct {
	database *gorm.DB
	records  *RecordService
	history  *HistoryService
	company  *models.Company
}

func newAskHarness(t *testing.T) *askHarness {
	t.Helper()
	database := newTestDB(t)
	records := NewRecordService(database)
	return &askHarness{
		database: database,
		records:  records,
		history:  NewHistoryService(database),
		company:  createTestCompany(t, records, "Acme"),
	}
}

func (h *askHarness) service(t *testing.T, gen Generator, recorder HistoryRecorder) *AskService {
	t.Helper()
	media := NewMediaService(h.database, h.records, t.TempDir())
	builder := NewContextBuilder(&fakeBinaryStore{})
	if recorder == nil {
		recorder = h.history
	}
	return NewAskService(h.records, media, builder, gen, recorder)
}

func TestAsk_AnswerWithSourcesPersisted(t *testing.T) {
	h := newAskHarness(t)
	if _, err := h.records.CreateTranscript(h.company.ID, &models.CreateTranscriptRequest{
		Title:   "Kickoff Call",
		Content: "We agreed on a Q2 rollout.",
		Summary: "Rollout agreed",
	}); err != nil {
		t.Fatalf("CreateTranscript() error = %v", err)
	}

	gen := &fakeGenerator{answer: "According to the Kickoff Call, rollout starts in Q2."}
	ask := h.service(t, gen, nil)

	resp, err := ask.Ask(context.Background(), h.company.ID, "When does rollout start?", "u1")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Answer != gen.answer {
		t.Fatalf("resp.Answer = %q", resp.Answer)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Title != "Kickoff Call" {
		t.Fatalf("resp.Sources = %+v, want the kickoff transcript", resp.Sources)
	}

	// The generator saw the serialized context and the question.
	if len(gen.gotParts) != 2 {
		t.Fatalf("generator got %d parts, want 2", len(gen.gotParts))
	}
	if !strings.Contains(gen.gotParts[0].Text, "We agreed on a Q2 rollout.") {
		t.Fatalf("context part missing transcript content")
	}
	if gen.gotParts[1].Text != "Question: When does rollout start?" {
		t.Fatalf("question part = %q", gen.gotParts[1].Text)
	}

	// The persisted entry carries exactly the sources the caller saw.
	entries, err := h.history.ListRecent(h.company.ID, 0)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Question != "When does rollout start?" || entry.Answer != gen.answer {
		t.Fatalf("entry = %+v", entry)
	}
	if len(entry.Sources) != len(resp.Sources) || entry.Sources[0] != resp.Sources[0] {
		t.Fatalf("persisted sources %+v differ from response sources %+v", entry.Sources, resp.Sources)
	}
}

func TestAsk_PersistedSourcesMatchCap(t *testing.T) {
	h := newAskHarness(t)
	for _, title := range []string{"Sync 1", "Sync 2", "Sync 3", "Sync 4", "Sync 5", "Sync 6", "Sync 7"} {
		if _, err := h.records.CreateTranscript(h.company.ID, &models.CreateTranscriptRequest{
			Title: title, Content: "notes for " + title,
		}); err != nil {
			t.Fatalf("CreateTranscript(%q) error = %v", title, err)
		}
	}

	ask := h.service(t, &fakeGenerator{answer: "Summarizing every meeting."}, nil)
	resp, err := ask.Ask(context.Background(), h.company.ID, "Summarize all meetings", "u1")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(resp.Sources) != MaxSources {
		t.Fatalf("len(resp.Sources) = %d, want %d", len(resp.Sources), MaxSources)
	}

	entries, err := h.history.ListRecent(h.company.ID, 0)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 1 || len(entries[0].Sources) != MaxSources {
		t.Fatalf("persisted sources = %+v, want the same capped list", entries)
	}
}

func TestAsk_ValidationErrors(t *testing.T) {
	h := newAskHarness(t)
	ask := h.service(t, &fakeGenerator{answer: "ok"}, nil)

	if _, err := ask.Ask(context.Background(), h.company.ID, "   ", "u1"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("blank question error = %v, want ErrInvalidRequest", err)
	}
	if _, err := ask.Ask(context.Background(), "", "question", "u1"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("blank company error = %v, want ErrInvalidRequest", err)
	}
	if _, err := ask.Ask(context.Background(), "missing", "question", "u1"); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("unknown company error = %v, want ErrCompanyNotFound", err)
	}
}

func TestAsk_GenerationNotConfigured(t *testing.T) {
	h := newAskHarness(t)
	ask := h.service(t, &fakeGenerator{err: ErrGenerationNotConfigured}, nil)

	_, err := ask.Ask(context.Background(), h.company.ID, "question", "u1")
	if !errors.Is(err, ErrGenerationNotConfigured) {
		t.Fatalf("Ask() error = %v, want ErrGenerationNotConfigured", err)
	}

	// No history row on a failed generation.
	entries, err := h.history.ListRecent(h.company.ID, 0)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0 after failed generation", len(entries))
	}
}

func TestAsk_GenerationErrorPassesThrough(t *testing.T) {
	h := newAskHarness(t)
	genErr := &GenerationError{Err: errors.New("model timeout")}
	ask := h.service(t, &fakeGenerator{err: genErr}, nil)

	_, err := ask.Ask(context.Background(), h.company.ID, "question", "u1")
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("Ask() error = %v, want *GenerationError", err)
	}
}

func TestAsk_HistoryFailureStillReturnsAnswer(t *testing.T) {
	h := newAskHarness(t)
	ask := h.service(t, &fakeGenerator{answer: "The answer."}, failingRecorder{})

	resp, err := ask.Ask(context.Background(), h.company.ID, "question", "u1")
	if err != nil {
		t.Fatalf("Ask() error = %v, want answer despite history failure", err)
	}
	if resp.Answer != "The answer." {
		t.Fatalf("resp.Answer = %q", resp.Answer)
	}
}

func TestAsk_OnlyCompletedMediaInContext(t *testing.T) {
	h := newAskHarness(t)
	uploads := t.TempDir()
	media := NewMediaService(h.database, h.records, uploads)

	completed, err := media.PasteContent(h.company.ID, &models.PasteMediaRequest{
		Title:   "Pricing notes",
		Content: "Tier pricing details.",
	}, "u1")
	if err != nil {
		t.Fatalf("PasteContent() error = %v", err)
	}
	// A pending asset must never reach the context.
	pending := &models.MediaAsset{
		ID:               "pending-1",
		CompanyID:        h.company.ID,
		Title:            "Unprocessed upload",
		FileType:         models.FileTypeDocument,
		OriginalFilename: "raw.bin",
		StoredFilename:   "raw.bin",
		FilePath:         "/nowhere/raw.bin",
		MimeType:         "application/octet-stream",
		ProcessingStatus: models.ProcessingStatusPending,
	}
	if err := h.database.Create(pending).Error; err != nil {
		t.Fatalf("create pending asset: %v", err)
	}

	gen := &fakeGenerator{answer: "ok"}
	builder := NewContextBuilder(NewFSBinaryStore())
	ask := NewAskService(h.records, media, builder, gen, h.history)

	if _, err := ask.Ask(context.Background(), h.company.ID, "question", "u1"); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	contextPart := gen.gotParts[0].Text
	if !strings.Contains(contextPart, completed.ExtractedText) {
		t.Fatalf("context missing completed media text")
	}
	if strings.Contains(contextPart, "Unprocessed upload") {
		t.Fatalf("pending media leaked into context")
	}
}
