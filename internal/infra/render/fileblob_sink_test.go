package render

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"moducare/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSinkConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Report = &config.ReportConfig{OutputDir: filepath.Join(t.TempDir(), "reports")}

	return cfg
}

func TestFileblobSink_RendersDocument(t *testing.T) {
	cfg := newTestSinkConfig(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sink, err := NewFileblobSink(cfg, logger)
	require.NoError(t, err)

	path, err := sink.Render(context.Background(), "<html><body>결과지</body></html>", "MODUCARE_test.html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Report.OutputDir, "MODUCARE_test.html"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "결과지")
}

func TestFileblobSink_OverwritesExistingDocument(t *testing.T) {
	cfg := newTestSinkConfig(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sink, err := NewFileblobSink(cfg, logger)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = sink.Render(ctx, "first", "sheet.html")
	require.NoError(t, err)
	path, err := sink.Render(ctx, "second", "sheet.html")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}
