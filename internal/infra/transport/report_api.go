package transport

import (
	"context"
	"net/http"
	"strconv"

	"moducare/internal/domain/entity"
	domainerrors "moducare/internal/domain/errors"
	"moducare/internal/domain/repository"

	"github.com/pkg/errors"
)

// reportAPI implements repository.ReportAPI and repository.DiaryAPI against
// the diagnosis and diary endpoints.
type reportAPI struct {
	client *Client
}

// NewReportAPI creates the diagnosis history endpoint set.
func NewReportAPI(client *Client) repository.ReportAPI {
	return &reportAPI{client: client}
}

// NewDiaryAPI creates the photo diary endpoint set.
func NewDiaryAPI(client *Client) repository.DiaryAPI {
	return &reportAPI{client: client}
}

// ListReports fetches the diagnosis history list.
func (r *reportAPI) ListReports(ctx context.Context) ([]entity.ReportSummary, error) {
	var list []entity.ReportSummary
	if err := r.client.do(ctx, http.MethodGet, "/diagnosis", nil, &list, nil); err != nil {
		return nil, errors.Wrap(err, "list reports")
	}

	return list, nil
}

// GetReportDetail fetches one diagnosis record.
func (r *reportAPI) GetReportDetail(ctx context.Context, id int64) (*entity.DiagnosisRecord, error) {
	var record entity.DiagnosisRecord
	if err := r.client.do(ctx, http.MethodGet, "/diagnosis/"+strconv.FormatInt(id, 10), nil, &record, nil); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, domainerrors.ErrReportNotFound.WrapMessage("report detail")
		}

		return nil, errors.Wrap(err, "get report detail")
	}

	return &record, nil
}

// ListDiary fetches the photo diary for one scalp region.
func (r *reportAPI) ListDiary(ctx context.Context, diaryType entity.DiaryType) ([]entity.DiaryEntry, error) {
	if !diaryType.Valid() {
		return nil, domainerrors.ErrInvalidDiaryType.WithDetails(string(diaryType))
	}

	var list []entity.DiaryEntry
	if err := r.client.do(ctx, http.MethodGet, "/diaries/"+string(diaryType), nil, &list, nil); err != nil {
		return nil, errors.Wrap(err, "list diary")
	}

	return list, nil
}

// UploadPhoto registers an uploaded photo URL under the given region.
func (r *reportAPI) UploadPhoto(ctx context.Context, imageURL string, diaryType entity.DiaryType) (*entity.DiaryEntry, error) {
	if !diaryType.Valid() {
		return nil, domainerrors.ErrInvalidDiaryType.WithDetails(string(diaryType))
	}

	payload := map[string]string{
		"img":  imageURL,
		"type": string(diaryType),
	}

	var created entity.DiaryEntry
	if err := r.client.do(ctx, http.MethodPost, "/diaries", payload, &created, nil); err != nil {
		return nil, errors.Wrap(err, "upload photo")
	}

	return &created, nil
}
