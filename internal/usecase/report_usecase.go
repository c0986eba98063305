package usecase

import (
	"context"

	"moducare/internal/domain/entity"
)

// ReportDetailOutput pairs the raw record with its projection; the UI
// renders both.
type ReportDetailOutput struct {
	Record    *entity.DiagnosisRecord
	Projected entity.ProjectedResult
}

// ReportUsecase exposes the cache-fronted diagnosis data pipeline.
type ReportUsecase interface {
	// ListReports returns the diagnosis history list.
	ListReports(ctx context.Context) ([]entity.ReportSummary, error)

	// ReportDetail returns one diagnosis record with its projection.
	ReportDetail(ctx context.Context, id int64) (*ReportDetailOutput, error)

	// Diary returns the photo diary for one scalp region, substituting the
	// placeholder entry when the region has no photos yet.
	Diary(ctx context.Context, diaryType entity.DiaryType) ([]entity.DiaryEntry, error)

	// UploadPhoto registers a photo under a region and invalidates exactly
	// that region's diary cache key.
	UploadPhoto(ctx context.Context, imageURL string, diaryType entity.DiaryType) (*entity.DiaryEntry, error)

	// GenerateDocument renders the report sheet for one diagnosis and
	// returns the file path.
	GenerateDocument(ctx context.Context, id int64) (string, error)
}
