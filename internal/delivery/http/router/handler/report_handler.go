package handler

import (
	"net/http"
	"strconv"

	"moducare/internal/delivery/http/response"
	"moducare/internal/domain/entity"
	domainerrors "moducare/internal/domain/errors"
	"moducare/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ReportHandler exposes the cached diagnosis data pipeline over the local
// gateway.
type ReportHandler struct {
	reportUC usecase.ReportUsecase
}

// NewReportHandler is the constructor for ReportHandler.
func NewReportHandler(reportUC usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// UploadPhotoRequest is the payload for the diary upload endpoint.
type UploadPhotoRequest struct {
	ImageURL string `json:"img" validate:"required,url"`
	Type     string `json:"type" validate:"required"`
}

// DocumentResponse carries the path of a generated report sheet.
type DocumentResponse struct {
	Path string `json:"path"`
}

// List returns the diagnosis history.
func (h *ReportHandler) List(c echo.Context) error {
	reports, err := h.reportUC.ListReports(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, reports, "")
}

// Detail returns one diagnosis record with its projection.
func (h *ReportHandler) Detail(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}

	detail, err := h.reportUC.ReportDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, detail, "")
}

// Document renders the report sheet for one diagnosis.
func (h *ReportHandler) Document(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}

	path, err := h.reportUC.GenerateDocument(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, DocumentResponse{Path: path}, "결과지 생성 완료")
}

// Diary returns the photo diary for one scalp region.
func (h *ReportHandler) Diary(c echo.Context) error {
	entries, err := h.reportUC.Diary(c.Request().Context(), entity.DiaryType(c.Param("type")))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, entries, "")
}

// Upload registers a photo under one scalp region.
func (h *ReportHandler) Upload(c echo.Context) error {
	var req UploadPhotoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_REQUEST_BODY", "요청 형식이 올바르지 않습니다")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entry, err := h.reportUC.UploadPhoto(c.Request().Context(), req.ImageURL, entity.DiaryType(req.Type))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, entry, "사진 등록 완료")
}

func reportID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails("invalid report id: " + c.Param("id"))
	}

	return id, nil
}
