package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"moducare/config"
	"moducare/internal/domain/entity"
	"moducare/internal/domain/repository"
	"moducare/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			RefreshInterval: 27 * time.Minute,
			RefreshMargin:   3 * time.Minute,
		},
		Report: &config.ReportConfig{
			BarScale:      50,
			DetailBaseURL: "https://app.moducare.example/reports",
		},
	}

	return cfg
}

// fakeAuthAPI implements repository.AuthAPI with canned responses and call
// counters.
type fakeAuthAPI struct {
	mu sync.Mutex

	loginResult *repository.LoginResult
	loginErr    error

	refreshAccessToken string
	refreshErr         error
	refreshCalls       int
	lastRefreshToken   string

	logoutErr error
	deleteErr error
}

func (f *fakeAuthAPI) Login(_ context.Context, _ repository.LoginCredentials) (*repository.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loginErr != nil {
		return nil, f.loginErr
	}

	return f.loginResult, nil
}

func (f *fakeAuthAPI) Refresh(_ context.Context, refreshToken string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.refreshCalls++
	f.lastRefreshToken = refreshToken
	if f.refreshErr != nil {
		return "", f.refreshErr
	}

	return f.refreshAccessToken, nil
}

func (f *fakeAuthAPI) Logout(_ context.Context) error {
	return f.logoutErr
}

func (f *fakeAuthAPI) DeleteMember(_ context.Context) error {
	return f.deleteErr
}

func (f *fakeAuthAPI) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.refreshCalls
}

// fakeStore implements service.SecureStore on a plain map, mirroring the
// JSON round-trip of the real store.
type fakeStore struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]json.RawMessage)}
}

func (s *fakeStore) Get(_ context.Context, key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(raw, out)
}

func (s *fakeStore) Set(_ context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = raw

	return nil
}

func (s *fakeStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)

	return nil
}

func (s *fakeStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.values[key]

	return ok
}

// fakeRegistry implements service.HeaderRegistry.
type fakeRegistry struct {
	mu      sync.Mutex
	headers map[string]string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{headers: make(map[string]string)}
}

func (r *fakeRegistry) SetHeader(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.headers[name] = value
}

func (r *fakeRegistry) RemoveHeader(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.headers, name)
}

func (r *fakeRegistry) Headers() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]string, len(r.headers))
	for name, value := range r.headers {
		snapshot[name] = value
	}

	return snapshot
}

func (r *fakeRegistry) header(name string) string {
	return r.Headers()[name]
}

// recordingCache implements service.DataCache with real memoization so
// loader call counts observe caching and invalidation behavior.
type recordingCache struct {
	mu          sync.Mutex
	entries     map[string]any
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string]any)}
}

func (c *recordingCache) Fetch(ctx context.Context, key string, loader service.CacheLoader) (any, error) {
	c.mu.Lock()
	if value, ok := c.entries[key]; ok {
		c.mu.Unlock()

		return value, nil
	}
	c.mu.Unlock()

	value, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()

	return value, nil
}

func (c *recordingCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidated = append(c.invalidated, prefix)
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// fakeReportAPI implements repository.ReportAPI and repository.DiaryAPI.
type fakeReportAPI struct {
	mu sync.Mutex

	reports []entity.ReportSummary
	records map[int64]*entity.DiagnosisRecord
	diaries map[entity.DiaryType][]entity.DiaryEntry

	listCalls   int
	detailCalls map[int64]int
	diaryCalls  map[entity.DiaryType]int

	listErr   error
	detailErr error
	uploadErr error
}

func newFakeReportAPI() *fakeReportAPI {
	return &fakeReportAPI{
		records:     make(map[int64]*entity.DiagnosisRecord),
		diaries:     make(map[entity.DiaryType][]entity.DiaryEntry),
		detailCalls: make(map[int64]int),
		diaryCalls:  make(map[entity.DiaryType]int),
	}
}

func (f *fakeReportAPI) ListReports(_ context.Context) ([]entity.ReportSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.reports, nil
}

func (f *fakeReportAPI) GetReportDetail(_ context.Context, id int64) (*entity.DiagnosisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.detailCalls[id]++
	if f.detailErr != nil {
		return nil, f.detailErr
	}

	return f.records[id], nil
}

func (f *fakeReportAPI) ListDiary(_ context.Context, diaryType entity.DiaryType) ([]entity.DiaryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.diaryCalls[diaryType]++

	return f.diaries[diaryType], nil
}

func (f *fakeReportAPI) UploadPhoto(_ context.Context, imageURL string, diaryType entity.DiaryType) (*entity.DiaryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return nil, f.uploadErr
	}

	entry := entity.DiaryEntry{ImageURL: imageURL, RegDate: "2024-06-01"}
	f.diaries[diaryType] = append(f.diaries[diaryType], entry)

	return &entry, nil
}

// fakeSink implements service.RenderSink and captures the rendered document.
type fakeSink struct {
	mu       sync.Mutex
	html     string
	fileName string
	err      error
}

func (s *fakeSink) Render(_ context.Context, html string, fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}
	s.html = html
	s.fileName = fileName

	return "/reports/" + fileName, nil
}

// fakeQR implements service.QRCodeService.
type fakeQR struct {
	lastURL string
	err     error
}

func (q *fakeQR) GenerateReportQR(detailURL string) ([]byte, error) {
	q.lastURL = detailURL
	if q.err != nil {
		return nil, q.err
	}

	return []byte("qr-png"), nil
}
