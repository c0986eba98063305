package repository

import (
	"context"

	"moducare/internal/domain/entity"
)

// ReportAPI is the diagnosis history endpoint set.
type ReportAPI interface {
	ListReports(ctx context.Context) ([]entity.ReportSummary, error)
	GetReportDetail(ctx context.Context, id int64) (*entity.DiagnosisRecord, error)
}

// DiaryAPI is the per-region photo diary endpoint set.
type DiaryAPI interface {
	ListDiary(ctx context.Context, diaryType entity.DiaryType) ([]entity.DiaryEntry, error)

	// UploadPhoto registers an already-uploaded photo URL under the given
	// region and returns the created entry.
	UploadPhoto(ctx context.Context, imageURL string, diaryType entity.DiaryType) (*entity.DiaryEntry, error)
}
