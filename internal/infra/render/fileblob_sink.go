// Package render implements the document render sink on top of a local
// blob bucket.
package render

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"moducare/config"
	domainerrors "moducare/internal/domain/errors"
	"moducare/internal/domain/service"
	"moducare/internal/util"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
)

// fileblobSink writes rendered documents into a fileblob bucket. Blob
// writers only commit on a clean close, so a failed render leaves no
// partial file behind.
type fileblobSink struct {
	outputDir string
	logger    *slog.Logger
}

// NewFileblobSink creates the sink and ensures the output directory exists.
func NewFileblobSink(cfg *config.Config, logger *slog.Logger) (service.RenderSink, error) {
	outputDir := cfg.Report.OutputDir
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create report output directory")
	}

	return &fileblobSink{
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// Render persists the HTML document and returns its file path.
func (s *fileblobSink) Render(ctx context.Context, html string, fileName string) (string, error) {
	bucket, err := fileblob.OpenBucket(s.outputDir, nil)
	if err != nil {
		return "", domainerrors.ErrRenderFailure.WrapMessage(err.Error())
	}
	defer bucket.Close()

	opts := &blob.WriterOptions{ContentType: "text/html; charset=utf-8"}
	if err := bucket.WriteAll(ctx, fileName, []byte(html), opts); err != nil {
		return "", domainerrors.ErrRenderFailure.WrapMessage(err.Error())
	}

	path := filepath.Join(s.outputDir, fileName)
	s.logger.Info("report document rendered",
		slog.String("path", path),
		slog.String("size", util.FormatBytes(int64(len(html)))),
	)

	return path, nil
}
