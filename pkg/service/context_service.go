// Context assembly - serializes a company's full record set for the model
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/clarityhq/clarity/pkg/models"
	"github.com/clarityhq/clarity/pkg/utils"
)

// meetingDateFormat matches the short date style used in context headings.
const meetingDateFormat = "1/2/2006"

// Attachment is one inlineable binary pulled from a media asset.
type Attachment struct {
	ID       string
	Title    string
	MimeType string
	Data     []byte
}

// ContextWindower can shrink the assembled text before it is sent to the
// model. The default is nil: the entire record set is serialized unabridged,
// which will outgrow any model's input limit as a company accumulates history.
type ContextWindower func(text string) string

// ContextBuilder serializes a company's records into one ordered text block
// plus image attachments.
type ContextBuilder struct {
	files    BinaryStore
	windower ContextWindower
	logger   *slog.Logger
}

// NewContextBuilder creates a context builder reading binaries from files
func NewContextBuilder(files BinaryStore) *ContextBuilder {
	return &ContextBuilder{
		files:  files,
		logger: utils.GetLogger(),
	}
}

// SetWindower installs an optional truncation hook applied to the final text.
func (b *ContextBuilder) SetWindower(w ContextWindower) {
	b.windower = w
}

// BuildContext serializes the company profile and all its records, in fixed
// order: profile, transcripts, emails, documents, media with extracted text.
// Empty sections are omitted. Nothing is truncated or deduplicated.
func (b *ContextBuilder) BuildContext(
	ctx context.Context,
	company *models.Company,
	transcripts []models.Transcript,
	emails []models.Email,
	documents []models.Document,
	media []models.MediaAsset,
) (string, []Attachment) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Company Information: %s\n", company.Name))
	sb.WriteString(fmt.Sprintf("Type: %s\n", company.Type))
	sb.WriteString(fmt.Sprintf("Industry: %s\n", orNA(company.Industry)))
	sb.WriteString(fmt.Sprintf("Status: %s\n", company.Status))
	sb.WriteString(fmt.Sprintf("Description: %s\n", orNA(company.Description)))
	sb.WriteString(fmt.Sprintf("Primary Contact: %s (%s)\n",
		orNA(company.PrimaryContactName), orNA(company.PrimaryContactEmail)))
	if company.ContractValue != nil {
		sb.WriteString(fmt.Sprintf("Contract Value: $%s\n",
			strconv.FormatFloat(*company.ContractValue, 'f', -1, 64)))
	}
	sb.WriteString(fmt.Sprintf("Notes: %s\n\n", orNA(company.Notes)))

	if len(transcripts) > 0 {
		sb.WriteString("# Meeting Transcripts\n\n")
		for _, t := range transcripts {
			sb.WriteString(fmt.Sprintf("## %s (%s)\n", t.Title, t.MeetingDate.Format(meetingDateFormat)))
			if t.Summary != "" {
				sb.WriteString(fmt.Sprintf("Summary: %s\n", t.Summary))
			}
			if len(t.KeyPoints) > 0 {
				sb.WriteString("Key Points:\n")
				for _, p := range t.KeyPoints {
					sb.WriteString(fmt.Sprintf("- %s\n", p))
				}
			}
			sb.WriteString(fmt.Sprintf("\nFull Transcript:\n%s\n\n", t.Content))
		}
	}

	if len(emails) > 0 {
		sb.WriteString("# Email Exchanges\n\n")
		for _, e := range emails {
			sb.WriteString(fmt.Sprintf("## Email: %s\n", e.Subject))
			sb.WriteString(fmt.Sprintf("From: %s\n", e.FromAddress))
			sb.WriteString(fmt.Sprintf("To: %s\n", strings.Join(e.ToAddresses, ", ")))
			sb.WriteString(fmt.Sprintf("Date: %s\n", e.SentDate.Format(meetingDateFormat)))
			sb.WriteString(fmt.Sprintf("\n%s\n\n", e.Body))
		}
	}

	if len(documents) > 0 {
		sb.WriteString("# Documents\n\n")
		for _, d := range documents {
			sb.WriteString(fmt.Sprintf("## %s (%s)\n", d.Title, d.Type))
			if d.Content != "" {
				sb.WriteString(fmt.Sprintf("%s\n\n", d.Content))
			}
		}
	}

	// Only media with extracted text contributes to the text block. Completed
	// image files become inline attachments instead.
	withText := make([]models.MediaAsset, 0, len(media))
	for _, m := range media {
		if m.ExtractedText != "" {
			withText = append(withText, m)
		}
	}
	if len(withText) > 0 {
		sb.WriteString("# Uploaded Media\n\n")
		for _, m := range withText {
			sb.WriteString(fmt.Sprintf("## %s (%s)\n", m.Title, m.FileType))
			sb.WriteString(fmt.Sprintf("Original File: %s\n", m.OriginalFilename))
			if m.Description != "" {
				sb.WriteString(fmt.Sprintf("Description: %s\n", m.Description))
			}
			sb.WriteString(fmt.Sprintf("Content:\n%s\n\n", m.ExtractedText))
		}
	}

	attachments := b.collectAttachments(ctx, media)

	text := sb.String()
	if b.windower != nil {
		text = b.windower(text)
	}
	return text, attachments
}

// collectAttachments reads every completed image asset's bytes, in the order
// the store returned them. Unreadable files are skipped, not fatal.
func (b *ContextBuilder) collectAttachments(ctx context.Context, media []models.MediaAsset) []Attachment {
	var attachments []Attachment
	for _, m := range media {
		if !m.IsImage() {
			continue
		}
		data, err := b.files.ReadFile(ctx, m.FilePath)
		if err != nil {
			b.logger.Warn("Skipping unreadable media file", "id", m.ID, "path", m.FilePath, "error", err)
			continue
		}
		attachments = append(attachments, Attachment{
			ID:       m.ID,
			Title:    m.Title,
			MimeType: m.MimeType,
			Data:     data,
		})
	}
	return attachments
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
