// Source attribution - heuristic citation extraction from answer text
package service

import (
	"fmt"
	"strings"

	"github.com/clarityhq/clarity/pkg/models"
)

// MaxSources caps the attributed source list.
const MaxSources = 5

const excerptLength = 200

// ExtractSources scans the answer text against every candidate record and
// returns the capped citation list. Matching is case-insensitive substring
// checking, deliberately loose: generic words like "meeting" or "email" flag
// every record of that kind. Candidates keep record-set iteration order
// (transcripts, emails, documents, media); the first MaxSources survive.
// There is no relevance ranking.
func ExtractSources(
	answer string,
	transcripts []models.Transcript,
	emails []models.Email,
	documents []models.Document,
	media []models.MediaAsset,
) []models.Source {
	lower := strings.ToLower(answer)
	sources := []models.Source{}

	for _, t := range transcripts {
		if strings.Contains(lower, strings.ToLower(t.Title)) ||
			strings.Contains(lower, "transcript") ||
			strings.Contains(lower, "meeting") {
			sources = append(sources, models.Source{
				Type:    models.SourceTypeTranscript,
				ID:      t.ID,
				Title:   t.Title,
				Excerpt: transcriptExcerpt(t),
			})
		}
	}

	for _, e := range emails {
		if strings.Contains(lower, strings.ToLower(e.Subject)) ||
			strings.Contains(lower, "email") {
			sources = append(sources, models.Source{
				Type:    models.SourceTypeEmail,
				ID:      e.ID,
				Title:   e.Subject,
				Excerpt: truncateExcerpt(e.Body),
			})
		}
	}

	for _, d := range documents {
		if strings.Contains(lower, strings.ToLower(d.Title)) ||
			strings.Contains(lower, strings.ToLower(d.Type)) {
			excerpt := ""
			if d.Content != "" {
				excerpt = truncateExcerpt(d.Content)
			}
			sources = append(sources, models.Source{
				Type:    models.SourceTypeDocument,
				ID:      d.ID,
				Title:   d.Title,
				Excerpt: excerpt,
			})
		}
	}

	for _, m := range media {
		if mediaCited(lower, m) {
			sources = append(sources, models.Source{
				Type:    models.SourceTypeMedia,
				ID:      m.ID,
				Title:   m.Title,
				Excerpt: mediaExcerpt(m),
			})
		}
	}

	if len(sources) > MaxSources {
		sources = sources[:MaxSources]
	}
	return sources
}

func mediaCited(lowerAnswer string, m models.MediaAsset) bool {
	if strings.Contains(lowerAnswer, strings.ToLower(m.Title)) ||
		strings.Contains(lowerAnswer, strings.ToLower(m.FileType)) ||
		strings.Contains(lowerAnswer, strings.ToLower(m.OriginalFilename)) {
		return true
	}
	for _, word := range []string{"media", "file", "image", "screenshot"} {
		if strings.Contains(lowerAnswer, word) {
			return true
		}
	}
	return false
}

func transcriptExcerpt(t models.Transcript) string {
	if t.Summary != "" {
		return t.Summary
	}
	return truncateExcerpt(t.Content)
}

func mediaExcerpt(m models.MediaAsset) string {
	if m.ExtractedText != "" {
		return truncateExcerpt(m.ExtractedText)
	}
	return fmt.Sprintf("[%s: %s]", m.FileType, m.OriginalFilename)
}

func truncateExcerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text + "..."
	}
	return string(runes[:excerptLength]) + "..."
}
