// Error taxonomy shared by the ask pipeline and the HTTP layer
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest means the caller's input is missing or malformed.
	ErrInvalidRequest = errors.New("company_id and question are required")

	// ErrCompanyNotFound means the requested company does not exist.
	ErrCompanyNotFound = errors.New("company not found")

	// Record lookup errors for the CRUD surface.
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrEmailNotFound      = errors.New("email not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrMediaNotFound      = errors.New("media file not found")
	ErrFileNotFound       = errors.New("file not found on disk")
	ErrUserNotFound       = errors.New("user not found")

	// ErrGenerationNotConfigured means no API credential is available. This is
	// a deployment problem, distinct from transient generation failures.
	ErrGenerationNotConfigured = errors.New("generation client not configured: GEMINI_API_KEY is not set")
)

// GenerationError wraps any provider-side generation failure (timeout, quota,
// malformed response). It is deliberately a different kind than
// ErrGenerationNotConfigured so callers can tell the two apart.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// StorageError wraps a record or history store failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
