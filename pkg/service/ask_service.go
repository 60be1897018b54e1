// Ask orchestrator - the end-to-end question answering pipeline
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/clarityhq/clarity/pkg/models"
	"github.com/clarityhq/clarity/pkg/utils"
)

// AskService sequences the full pipeline: validate, load records, serialize
// context, generate, attribute sources, persist history.
type AskService struct {
	records   *RecordService
	media     *MediaService
	builder   *ContextBuilder
	generator Generator
	history   HistoryRecorder
	logger    *slog.Logger
}

// NewAskService creates the orchestrator with its collaborators injected
func NewAskService(
	records *RecordService,
	media *MediaService,
	builder *ContextBuilder,
	generator Generator,
	history HistoryRecorder,
) *AskService {
	return &AskService{
		records:   records,
		media:     media,
		builder:   builder,
		generator: generator,
		history:   history,
		logger:    utils.GetLogger(),
	}
}

// Ask answers a free-text question about a company and records the exchange.
//
// The sources returned are exactly the capped list that gets persisted, so
// history read-back always matches what the caller saw. A history write
// failure is logged and swallowed: the user already waited for generation,
// so the answer is delivered regardless.
func (s *AskService) Ask(ctx context.Context, companyID, question, userID string) (*models.AskResponse, error) {
	if strings.TrimSpace(companyID) == "" || strings.TrimSpace(question) == "" {
		return nil, ErrInvalidRequest
	}

	company, err := s.records.GetCompany(companyID)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return nil, err
		}
		return nil, &StorageError{Op: "load company", Err: err}
	}

	transcripts, err := s.records.ListTranscripts(companyID)
	if err != nil {
		return nil, &StorageError{Op: "load transcripts", Err: err}
	}
	emails, err := s.records.ListEmails(companyID)
	if err != nil {
		return nil, &StorageError{Op: "load emails", Err: err}
	}
	documents, err := s.records.ListDocuments(companyID)
	if err != nil {
		return nil, &StorageError{Op: "load documents", Err: err}
	}
	media, err := s.media.ListCompletedAssets(companyID)
	if err != nil {
		return nil, &StorageError{Op: "load media", Err: err}
	}

	contextText, attachments := s.builder.BuildContext(ctx, company, transcripts, emails, documents, media)
	parts := BuildPrompt(company.Name, contextText, question, attachments)

	answer, err := s.generator.Generate(ctx, parts)
	if err != nil {
		return nil, err
	}

	sources := ExtractSources(answer, transcripts, emails, documents, media)

	if _, err := s.history.Record(companyID, userID, question, answer, sources); err != nil {
		s.logger.Error("Failed to persist chat history entry",
			"company_id", companyID, "user_id", userID, "error", err)
	}

	return &models.AskResponse{Answer: answer, Sources: sources}, nil
}
