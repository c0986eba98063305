package impl

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"moducare/config"
	"moducare/internal/domain/entity"
	domainerrors "moducare/internal/domain/errors"
	"moducare/internal/domain/repository"
	"moducare/internal/domain/service"
	"moducare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Placeholder diary entry shown while a region has no photos yet.
// Substitution happens here, on top of the raw fetch result; the cache
// itself stays ignorant of it.
var placeholderDiaryEntry = entity.DiaryEntry{
	ImageURL: "https://moducare.s3.ap-northeast-2.amazonaws.com/uploads/MainCharacter.png",
	RegDate:  "2024-01-04",
}

// reportService implements the ReportUsecase interface: every read goes
// through the data cache, every write invalidates exactly the keys it
// touched.
type reportService struct {
	reportAPI repository.ReportAPI
	diaryAPI  repository.DiaryAPI
	cache     service.DataCache
	store     service.SecureStore
	sink      service.RenderSink
	qr        service.QRCodeService
	logger    *slog.Logger

	barScale      int
	detailBaseURL string
}

// ReportServiceParams holds dependencies for reportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	ReportAPI repository.ReportAPI
	DiaryAPI  repository.DiaryAPI
	Cache     service.DataCache
	Store     service.SecureStore
	Sink      service.RenderSink
	QR        service.QRCodeService
	Config    *config.Config
	Logger    *slog.Logger
}

// NewReportService is the constructor for reportService.
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	return &reportService{
		reportAPI:     params.ReportAPI,
		diaryAPI:      params.DiaryAPI,
		cache:         params.Cache,
		store:         params.Store,
		sink:          params.Sink,
		qr:            params.QR,
		logger:        params.Logger,
		barScale:      params.Config.Report.BarScale,
		detailBaseURL: params.Config.Report.DetailBaseURL,
	}
}

// ListReports returns the cached diagnosis history list.
func (srv *reportService) ListReports(ctx context.Context) ([]entity.ReportSummary, error) {
	value, err := srv.cache.Fetch(ctx, service.CacheKeyReportList, func(ctx context.Context) (any, error) {
		return srv.reportAPI.ListReports(ctx)
	})
	if err != nil {
		return nil, asLoaderError(err)
	}

	list, _ := value.([]entity.ReportSummary)

	return list, nil
}

// ReportDetail returns one cached diagnosis record with its projection. The
// projection is recomputed on every call; only the raw record is cached.
func (srv *reportService) ReportDetail(ctx context.Context, id int64) (*usecase.ReportDetailOutput, error) {
	value, err := srv.cache.Fetch(ctx, service.CacheKeyReportDetail(id), func(ctx context.Context) (any, error) {
		return srv.reportAPI.GetReportDetail(ctx, id)
	})
	if err != nil {
		return nil, asLoaderError(err)
	}

	record, _ := value.(*entity.DiagnosisRecord)

	return &usecase.ReportDetailOutput{
		Record:    record,
		Projected: ProjectDiagnosis(record),
	}, nil
}

// Diary returns the cached photo diary for one region, substituting the
// placeholder entry when the region is empty.
func (srv *reportService) Diary(ctx context.Context, diaryType entity.DiaryType) ([]entity.DiaryEntry, error) {
	key, err := diaryCacheKey(diaryType)
	if err != nil {
		return nil, err
	}

	value, err := srv.cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return srv.diaryAPI.ListDiary(ctx, diaryType)
	})
	if err != nil {
		return nil, asLoaderError(err)
	}

	list, _ := value.([]entity.DiaryEntry)
	if len(list) == 0 {
		return []entity.DiaryEntry{placeholderDiaryEntry}, nil
	}

	return list, nil
}

// UploadPhoto registers a photo under one region and invalidates exactly
// that region's diary key, never the other region and never report keys.
func (srv *reportService) UploadPhoto(ctx context.Context, imageURL string, diaryType entity.DiaryType) (*entity.DiaryEntry, error) {
	key, err := diaryCacheKey(diaryType)
	if err != nil {
		return nil, err
	}

	created, err := srv.diaryAPI.UploadPhoto(ctx, imageURL, diaryType)
	if err != nil {
		return nil, err
	}

	srv.cache.Invalidate(key)
	srv.logger.Info("photo uploaded", slog.String("type", string(diaryType)))

	return created, nil
}

// GenerateDocument renders the report sheet for one diagnosis and returns
// the file path.
func (srv *reportService) GenerateDocument(ctx context.Context, id int64) (string, error) {
	detail, err := srv.ReportDetail(ctx, id)
	if err != nil {
		return "", err
	}

	// Absent profile fields render as empty strings, not as an error: the
	// sheet must come out even when the store was cleared meanwhile.
	var profile entity.UserProfile
	if _, err := srv.store.Get(ctx, service.StoreKeyProfile, &profile); err != nil {
		srv.logger.Warn("failed to read stored profile for report sheet", slog.Any("error", err))
	}

	qrDataURI := srv.reportQRDataURI(id)

	sheet, err := buildReportSheet(profile, detail.Record, detail.Projected, srv.barScale, qrDataURI)
	if err != nil {
		return "", domainerrors.ErrRenderFailure.WrapMessage(err.Error())
	}

	path, err := srv.sink.Render(ctx, sheet, reportFileName(profile, detail.Record))
	if err != nil {
		return "", err
	}

	return path, nil
}

// reportQRDataURI builds the embedded QR code linking back to the report
// detail. A missing base URL or a QR failure just drops the code from the
// sheet.
func (srv *reportService) reportQRDataURI(id int64) string {
	if srv.detailBaseURL == "" {
		return ""
	}

	detailURL := fmt.Sprintf("%s/%d", strings.TrimRight(srv.detailBaseURL, "/"), id)
	png, err := srv.qr.GenerateReportQR(detailURL)
	if err != nil {
		srv.logger.Warn("failed to generate report QR code", slog.Any("error", err))

		return ""
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// reportFileName mirrors the historical MODUCARE_<name>_<date> naming and
// falls back to a UUID when both parts are empty.
func reportFileName(profile entity.UserProfile, record *entity.DiagnosisRecord) string {
	name := strings.TrimSpace(profile.Name)
	date := ""
	if record != nil {
		date = strings.TrimSpace(record.Date)
	}
	if name == "" && date == "" {
		return "MODUCARE_" + uuid.New().String() + ".html"
	}

	sanitize := func(s string) string {
		return strings.Map(func(r rune) rune {
			switch r {
			case '/', '\\', ':', ' ':
				return '_'
			default:
				return r
			}
		}, s)
	}

	return "MODUCARE_" + sanitize(name) + "_" + sanitize(date) + ".html"
}

// diaryCacheKey maps a region to its cache key.
func diaryCacheKey(diaryType entity.DiaryType) (string, error) {
	switch diaryType {
	case entity.DiaryLine:
		return service.CacheKeyDiaryLine, nil
	case entity.DiaryTop:
		return service.CacheKeyDiaryTop, nil
	default:
		return "", domainerrors.ErrInvalidDiaryType.WithDetails(string(diaryType))
	}
}

// asLoaderError keeps domain errors intact and folds everything else into
// the loader-failure class.
func asLoaderError(err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.ErrLoaderFailed.WrapMessage(err.Error())
}
