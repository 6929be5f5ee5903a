package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/smart-resume/internal/generation"
	"github.com/jonathan/smart-resume/internal/rendering"
	"github.com/jonathan/smart-resume/internal/storage"
	"github.com/jonathan/smart-resume/internal/storage/local"
	"github.com/jonathan/smart-resume/internal/types"
)

const janeDoe = `{
	"name": "Jane Doe",
	"email": "jane@x.com",
	"phone": "555-1234",
	"linkedin_url": "linkedin.com/in/jane",
	"summary": "Engineer",
	"experiences": [
		{"job_title": "SWE", "company": "Acme", "duration": "2020-2023", "description": "Built things"}
	],
	"skills": "Python, Go",
	"degree": "BS CS",
	"university": "State U",
	"graduation_year": "2020"
}`

// mockGenerator returns a fixed resume or error
type mockGenerator struct {
	text  string
	err   error
	calls int
}

func (m *mockGenerator) Generate(_ context.Context, _ string) (types.GeneratedResume, error) {
	m.calls++
	if m.err != nil {
		return types.GeneratedResume{}, m.err
	}
	return types.GeneratedResume{RawText: m.text}, nil
}

type failingStore struct{}

func (failingStore) Save(context.Context, string, string, io.Reader) (int64, error) {
	return 0, errors.New("bucket unavailable")
}

func (failingStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("bucket unavailable")
}

type testServer struct {
	*Server
	gen *mockGenerator
	reg *prometheus.Registry
}

func newTestServer(t *testing.T, gen *mockGenerator, store storage.Store) *testServer {
	t.Helper()
	if store == nil {
		store = local.New(t.TempDir())
	}
	reg := prometheus.NewRegistry()
	s, err := New(Config{
		Port:      0,
		Generator: gen,
		Renderer:  rendering.NewRenderer(store),
		Store:     store,
		Model:     "gemini-test",
		Registry:  reg,
	})
	require.NoError(t, err)
	return &testServer{Server: s, gen: gen, reg: reg}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeGenerate(t *testing.T, w *httptest.ResponseRecorder) GenerateResponse {
	t.Helper()
	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &mockGenerator{}, nil)

	w := s.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "gemini-test", resp["model"])
}

func TestCreateResume_Success(t *testing.T) {
	s := newTestServer(t, &mockGenerator{text: "JANE DOE\nSoftware Engineer"}, nil)

	w := s.do(http.MethodPost, "/resumes", janeDoe)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeGenerate(t, w)
	_, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "JANE DOE\nSoftware Engineer", resp.Preview)
	assert.Empty(t, resp.GenerationError)
	assert.Empty(t, resp.RenderError)
	assert.Equal(t, "/resumes/"+resp.ID+"/download", resp.DownloadURL)
	assert.Equal(t, "Generated_Resume.docx", resp.FileName)
	assert.Greater(t, resp.Size, int64(0))
	assert.Equal(t, 1, s.gen.calls)

	dl := s.do(http.MethodGet, resp.DownloadURL, "")
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, rendering.ContentType, dl.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Generated_Resume.docx"`, dl.Header().Get("Content-Disposition"))
	assert.Equal(t, resp.Size, int64(dl.Body.Len()))

	paragraphs, err := rendering.ExtractParagraphs(dl.Body.Bytes())
	require.NoError(t, err)
	assert.Contains(t, paragraphs, "Jane Doe")
	assert.Contains(t, paragraphs, "SWE at Acme (2020-2023)")
	assert.Contains(t, paragraphs, "BS CS, State U (2020)")
	assert.NotContains(t, paragraphs, "Software Engineer")
}

func TestCreateResume_GenerationFailure(t *testing.T) {
	s := newTestServer(t, &mockGenerator{err: &generation.GenerationError{Cause: errors.New("boom")}}, nil)

	w := s.do(http.MethodPost, "/resumes", janeDoe)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeGenerate(t, w)
	assert.Equal(t, "An error occurred: boom", resp.Preview)
	assert.Equal(t, "An error occurred: boom", resp.GenerationError)
	assert.NotEmpty(t, resp.DownloadURL)
}

func TestCreateResume_EmptyGeneration(t *testing.T) {
	s := newTestServer(t, &mockGenerator{err: generation.ErrEmptyResponse}, nil)

	w := s.do(http.MethodPost, "/resumes", janeDoe)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeGenerate(t, w)
	assert.Equal(t, "Error generating resume.", resp.Preview)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.generations.WithLabelValues(outcomeEmpty)))
}

func TestCreateResume_RenderFailure(t *testing.T) {
	s := newTestServer(t, &mockGenerator{text: "ok"}, failingStore{})

	w := s.do(http.MethodPost, "/resumes", janeDoe)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeGenerate(t, w)
	assert.Equal(t, "ok", resp.Preview)
	assert.True(t, strings.HasPrefix(resp.RenderError, "Error saving resume:"), resp.RenderError)
	assert.Empty(t, resp.DownloadURL)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.documents.WithLabelValues(outcomeError)))
}

func TestCreateResume_InvalidBody(t *testing.T) {
	var eleven []string
	for i := 0; i < 11; i++ {
		eleven = append(eleven, fmt.Sprintf(`{"job_title": "R%d"}`, i))
	}

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"name": `},
		{name: "missing name", body: `{"experiences": [{}]}`},
		{name: "no experiences", body: `{"name": "Jane", "experiences": []}`},
		{name: "too many experiences", body: `{"name": "Jane", "experiences": [` + strings.Join(eleven, ",") + `]}`},
		{name: "unknown field", body: `{"name": "Jane", "experiences": [{}], "age": 30}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{text: "x"}
			s := newTestServer(t, gen, nil)

			w := s.do(http.MethodPost, "/resumes", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, 0, gen.calls)
		})
	}
}

func TestCreateResume_EmptyName(t *testing.T) {
	s := newTestServer(t, &mockGenerator{text: "x"}, nil)

	w := s.do(http.MethodPost, "/resumes", `{"name": "", "experiences": [{}]}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, s.gen.calls)
	resp := decodeGenerate(t, w)
	require.NotEmpty(t, resp.DownloadURL)

	dl := s.do(http.MethodGet, resp.DownloadURL, "")
	paragraphs, err := rendering.ExtractParagraphs(dl.Body.Bytes())
	require.NoError(t, err)
	require.NotEmpty(t, paragraphs)
	assert.Equal(t, "", paragraphs[0])
}

func TestCreateResume_MalformedBody(t *testing.T) {
	s := newTestServer(t, &mockGenerator{text: "x"}, nil)

	w := s.do(http.MethodPost, "/resumes", `{"name": "Jane", "experiences": [`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "malformed JSON")
}

func TestCreateResume_UniqueDocuments(t *testing.T) {
	s := newTestServer(t, &mockGenerator{text: "x"}, nil)

	first := decodeGenerate(t, s.do(http.MethodPost, "/resumes", janeDoe))
	second := decodeGenerate(t, s.do(http.MethodPost, "/resumes", strings.Replace(janeDoe, "Jane Doe", "John Roe", 1)))

	require.NotEqual(t, first.ID, second.ID)

	firstDoc := s.do(http.MethodGet, first.DownloadURL, "")
	text, err := rendering.ExtractText(firstDoc.Body.Bytes())
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.NotContains(t, text, "John Roe")
}

func TestDownload_Errors(t *testing.T) {
	s := newTestServer(t, &mockGenerator{}, nil)

	w := s.do(http.MethodGet, "/resumes/not-a-uuid/download", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/resumes/"+uuid.New().String()+"/download", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateResumeStream(t *testing.T) {
	s := newTestServer(t, &mockGenerator{text: "streamed"}, nil)

	w := s.do(http.MethodPost, "/resumes/stream", janeDoe)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event: progress\n"))
	assert.Equal(t, 1, strings.Count(body, "event: complete\n"))
	assert.Contains(t, body, `"step":"generate_resume"`)
	assert.Contains(t, body, `"preview":"streamed"`)
}

func TestCreateResumeStream_InvalidBody(t *testing.T) {
	s := newTestServer(t, &mockGenerator{text: "x"}, nil)

	w := s.do(http.MethodPost, "/resumes/stream", `{"name": "Jane"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &mockGenerator{}, nil)

	w := s.do(http.MethodOptions, "/resumes", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, &mockGenerator{text: "x"}, nil)

	s.do(http.MethodPost, "/resumes", janeDoe)
	s.do(http.MethodGet, "/health", "")

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requestCount.WithLabelValues("POST", "POST /resumes", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requestCount.WithLabelValues("GET", "GET /health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.generations.WithLabelValues(outcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.documents.WithLabelValues(outcomeSuccess)))

	w := s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `resume_generations_total{outcome="success"} 1`)
	assert.NotContains(t, w.Body.String(), `path="GET /metrics"`)
}

func TestMetricsMiddleware_Unmatched(t *testing.T) {
	s := newTestServer(t, &mockGenerator{}, nil)

	w := s.do(http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requestCount.WithLabelValues("GET", "unmatched", "404")))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestSSEWriter_WriteEvent(t *testing.T) {
	w := httptest.NewRecorder()
	sse, err := NewSSEWriter(w)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("progress", map[string]string{"step": "build_prompt"}))
	sse.WriteError("bad")

	var expected bytes.Buffer
	expected.WriteString("event: progress\ndata: {\"step\":\"build_prompt\"}\n\n")
	expected.WriteString("event: error\ndata: {\"error\":\"bad\"}\n\n")
	assert.Equal(t, expected.String(), w.Body.String())
}
