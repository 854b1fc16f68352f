package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/torkelwestby/christmas-rebus/internal/platform/airtable"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
	"github.com/torkelwestby/christmas-rebus/internal/platform/openai"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errAI = errors.New("ai down")

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

// performJSON routes one request through an isolated engine and returns the
// recorder.
func performJSON(t *testing.T, register func(*gin.Engine), method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	register(r)

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// fakeStore is an in-test record store; err short-circuits every call.
type fakeStore struct {
	records []airtable.Record
	err     error

	createdFields map[string]any
	updatedFields map[string]any
	deletedID     string
}

func (f *fakeStore) List(_ context.Context, _ string, _ airtable.ListParams) (airtable.ListResult, error) {
	if f.err != nil {
		return airtable.ListResult{}, f.err
	}
	return airtable.ListResult{Records: f.records}, nil
}

func (f *fakeStore) Create(_ context.Context, _ string, fields map[string]any, _ bool) (airtable.Record, error) {
	if f.err != nil {
		return airtable.Record{}, f.err
	}
	f.createdFields = fields
	return airtable.Record{ID: "recNew", Fields: fields}, nil
}

func (f *fakeStore) Update(_ context.Context, _ string, recordID string, fields map[string]any, _ bool) (airtable.Record, error) {
	if f.err != nil {
		return airtable.Record{}, f.err
	}
	f.updatedFields = fields
	return airtable.Record{ID: recordID, Fields: fields}, nil
}

func (f *fakeStore) Delete(_ context.Context, _ string, recordID string) error {
	if f.err != nil {
		return f.err
	}
	f.deletedID = recordID
	return nil
}

// stubAI satisfies the full text-generation interface with canned output.
type stubAI struct {
	text string
	obj  map[string]any
	err  error
}

func (s *stubAI) GenerateText(_ context.Context, _, _ string) (string, error) {
	return s.text, s.err
}

func (s *stubAI) GenerateJSON(_ context.Context, _, _, _ string, _ map[string]any) (map[string]any, error) {
	return s.obj, s.err
}

func (s *stubAI) GenerateJSONWithImages(_ context.Context, _, _ string, _ []openai.ImageInput, _ string, _ map[string]any) (map[string]any, error) {
	return s.obj, s.err
}

var _ openai.Client = (*stubAI)(nil)
var _ airtable.Client = (*fakeStore)(nil)

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body=%s", w.Code, want, w.Body.String())
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}
