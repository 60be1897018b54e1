package service

import (
	"errors"
	"os"
	"testing"

	"github.com/clarityhq/clarity/pkg/models"
)

func TestPasteContent_CreatesCompletedAsset(t *testing.T) {
	database := newTestDB(t)
	records := NewRecordService(database)
	company := createTestCompany(t, records, "Acme")
	media := NewMediaService(database, records, t.TempDir())

	asset, err := media.PasteContent(company.ID, &models.PasteMediaRequest{
		Title:   "Pricing notes",
		Content: "Tier pricing details.",
	}, "u1")
	if err != nil {
		t.Fatalf("PasteContent() error = %v", err)
	}

	if asset.ProcessingStatus != models.ProcessingStatusCompleted {
		t.Fatalf("ProcessingStatus = %q, want completed", asset.ProcessingStatus)
	}
	if asset.ExtractedText != "Tier pricing details." {
		t.Fatalf("ExtractedText = %q", asset.ExtractedText)
	}
	if asset.FileType != models.FileTypeDocument {
		t.Fatalf("FileType = %q, want default document", asset.FileType)
	}
	if asset.MimeType != "text/plain" {
		t.Fatalf("MimeType = %q", asset.MimeType)
	}

	data, err := os.ReadFile(asset.FilePath)
	if err != nil {
		t.Fatalf("backing file not written: %v", err)
	}
	if string(data) != "Tier pricing details." {
		t.Fatalf("backing file content = %q", data)
	}
}

func TestPasteContent_Validation(t *testing.T) {
	database := newTestDB(t)
	records := NewRecordService(database)
	company := createTestCompany(t, records, "Acme")
	media := NewMediaService(database, records, t.TempDir())

	if _, err := media.PasteContent(company.ID, &models.PasteMediaRequest{Content: "  "}, "u1"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("blank content error = %v, want ErrInvalidRequest", err)
	}
	if _, err := media.PasteContent(company.ID, &models.PasteMediaRequest{
		Content: "x", ContentType: "spreadsheet",
	}, "u1"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("bad content type error = %v, want ErrInvalidRequest", err)
	}
	if _, err := media.PasteContent("missing", &models.PasteMediaRequest{Content: "x"}, "u1"); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("unknown company error = %v, want ErrCompanyNotFound", err)
	}
}

func TestUpdateAsset_ExtractedTextCompletes(t *testing.T) {
	database := newTestDB(t)
	records := NewRecordService(database)
	company := createTestCompany(t, records, "Acme")
	media := NewMediaService(database, records, t.TempDir())

	pending := &models.MediaAsset{
		ID:               "m1",
		CompanyID:        company.ID,
		Title:            "Upload",
		FileType:         models.FileTypeImage,
		OriginalFilename: "a.png",
		StoredFilename:   "a.png",
		FilePath:         "/uploads/a.png",
		MimeType:         "image/png",
		ProcessingStatus: models.ProcessingStatusPending,
	}
	if err := database.Create(pending).Error; err != nil {
		t.Fatalf("create asset: %v", err)
	}

	text := "OCR text from the screenshot"
	updated, err := media.UpdateAsset("m1", &models.UpdateMediaRequest{ExtractedText: &text})
	if err != nil {
		t.Fatalf("UpdateAsset() error = %v", err)
	}
	if updated.ExtractedText != text {
		t.Fatalf("ExtractedText = %q", updated.ExtractedText)
	}
	if updated.ProcessingStatus != models.ProcessingStatusCompleted {
		t.Fatalf("ProcessingStatus = %q, want completed after extraction", updated.ProcessingStatus)
	}
}

func TestUpdateAsset_EmptyUpdateRejected(t *testing.T) {
	database := newTestDB(t)
	records := NewRecordService(database)
	company := createTestCompany(t, records, "Acme")
	media := NewMediaService(database, records, t.TempDir())

	asset, err := media.PasteContent(company.ID, &models.PasteMediaRequest{Content: "x"}, "u1")
	if err != nil {
		t.Fatalf("PasteContent() error = %v", err)
	}
	if _, err := media.UpdateAsset(asset.ID, &models.UpdateMediaRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("UpdateAsset() error = %v, want ErrInvalidRequest", err)
	}
}

func TestDeleteAsset_RemovesBackingFile(t *testing.T) {
	database := newTestDB(t)
	records := NewRecordService(database)
	company := createTestCompany(t, records, "Acme")
	media := NewMediaService(database, records, t.TempDir())

	asset, err := media.PasteContent(company.ID, &models.PasteMediaRequest{Content: "bye"}, "u1")
	if err != nil {
		t.Fatalf("PasteContent() error = %v", err)
	}

	if err := media.DeleteAsset(asset.ID); err != nil {
		t.Fatalf("DeleteAsset() error = %v", err)
	}
	if _, err := media.GetAsset(asset.ID); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("GetAsset() after delete error = %v, want ErrMediaNotFound", err)
	}
	if _, err := os.Stat(asset.FilePath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("backing file still exists after delete")
	}
}

func TestReextractText_RefreshesFromDisk(t *testing.T) {
	database := newTestDB(t)
	records := NewRecordService(database)
	company := createTestCompany(t, records, "Acme")
	media := NewMediaService(database, records, t.TempDir())

	asset, err := media.PasteContent(company.ID, &models.PasteMediaRequest{Content: "old text"}, "u1")
	if err != nil {
		t.Fatalf("PasteContent() error = %v", err)
	}
	if err := os.WriteFile(asset.FilePath, []byte("new text"), 0o600); err != nil {
		t.Fatalf("rewrite backing file: %v", err)
	}

	refreshed, err := media.ReextractText(asset.ID)
	if err != nil {
		t.Fatalf("ReextractText() error = %v", err)
	}
	if refreshed.ExtractedText != "new text" {
		t.Fatalf("ExtractedText = %q, want re-read file content", refreshed.ExtractedText)
	}
	if refreshed.ProcessingStatus != models.ProcessingStatusCompleted {
		t.Fatalf("ProcessingStatus = %q", refreshed.ProcessingStatus)
	}
}

func TestReextractText_MissingFile(t *testing.T) {
	database := newTestDB(t)
	records := NewRecordService(database)
	company := createTestCompany(t, records, "Acme")
	media := NewMediaService(database, records, t.TempDir())

	asset, err := media.PasteContent(company.ID, &models.PasteMediaRequest{Content: "x"}, "u1")
	if err != nil {
		t.Fatalf("PasteContent() error = %v", err)
	}
	if err := os.Remove(asset.FilePath); err != nil {
		t.Fatalf("remove backing file: %v", err)
	}

	if _, err := media.ReextractText(asset.ID); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("ReextractText() error = %v, want ErrFileNotFound", err)
	}
}

func TestListCompletedAssets_FiltersPending(t *testing.T) {
	database := newTestDB(t)
	records := NewRecordService(database)
	company := createTestCompany(t, records, "Acme")
	media := NewMediaService(database, records, t.TempDir())

	if _, err := media.PasteContent(company.ID, &models.PasteMediaRequest{Title: "Done", Content: "x"}, "u1"); err != nil {
		t.Fatalf("PasteContent() error = %v", err)
	}
	pending := &models.MediaAsset{
		ID:               "p1",
		CompanyID:        company.ID,
		Title:            "Pending",
		FileType:         models.FileTypeOther,
		OriginalFilename: "p.bin",
		StoredFilename:   "p.bin",
		FilePath:         "/nowhere/p.bin",
		MimeType:         "application/octet-stream",
		ProcessingStatus: models.ProcessingStatusPending,
	}
	if err := database.Create(pending).Error; err != nil {
		t.Fatalf("create pending asset: %v", err)
	}

	completed, err := media.ListCompletedAssets(company.ID)
	if err != nil {
		t.Fatalf("ListCompletedAssets() error = %v", err)
	}
	if len(completed) != 1 || completed[0].Title != "Done" {
		t.Fatalf("ListCompletedAssets() = %+v, want only the completed asset", completed)
	}
}
