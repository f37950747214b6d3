package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/papersmith/papersmith/internal/llm"
	"github.com/papersmith/papersmith/internal/paper"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const syllabus = `UNIT I: Nature and scope of management, functions of management, planning process,
decision making, organising, staffing, directing and controlling. Page 4`

func testPaper() *paper.QuestionPaper {
	p := &paper.QuestionPaper{PartC: []string{"Discuss the evolution of management thought."}}
	for i := 1; i <= paper.PartAQuota; i++ {
		p.PartA = append(p.PartA, fmt.Sprintf("Define term %d.", i))
	}
	for i := 1; i <= paper.PartBQuota; i++ {
		p.PartB = append(p.PartB, paper.EitherOr{A: fmt.Sprintf("Explain %d.", i), B: fmt.Sprintf("Discuss %d.", i)})
	}
	return p
}

func newTestServer(t *testing.T, provider llm.Provider, opts RouterOptions) *httptest.Server {
	t.Helper()
	gen := paper.New(provider, paper.DefaultConfig(), nil)
	srv := httptest.NewServer(NewRouter(NewHandler(gen, nil), opts, nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url+"/generate-questions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func requestBody(t *testing.T, syllabusText, subject string) string {
	t.Helper()
	data, err := json.Marshal(paper.Request{SyllabusText: syllabusText, SubjectName: subject})
	require.NoError(t, err)
	return string(data)
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Error
}

func TestAlive(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider(), RouterOptions{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, AliveMessage, readAll(t, resp))
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider(), RouterOptions{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"UP"}`, readAll(t, resp))
}

func TestGenerateQuestions_OK(t *testing.T) {
	want := testPaper()
	data, err := json.Marshal(want)
	require.NoError(t, err)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Here you go:\n```json\n" + string(data) + "\n```"})
	srv := newTestServer(t, mock, RouterOptions{MaxBodyBytes: 1 << 20})

	resp, body := postJSON(t, srv.URL, requestBody(t, syllabus, "Principles of Management"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got paper.QuestionPaper
	require.NoError(t, json.Unmarshal(body, &got))
	if diff := cmp.Diff(*want, got); diff != "" {
		t.Fatalf("paper mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateQuestions_ShortSyllabus(t *testing.T) {
	mock := llm.NewMockProvider()
	srv := newTestServer(t, mock, RouterOptions{})

	resp, body := postJSON(t, srv.URL, requestBody(t, "Management", ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, body), "at least 50 characters")
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerateQuestions_BadBodies(t *testing.T) {
	mock := llm.NewMockProvider()
	srv := newTestServer(t, mock, RouterOptions{})

	for _, body := range []string{"", "not json", `["a"]`, `{"syllabusText": 42}`, `{}`} {
		resp, respBody := postJSON(t, srv.URL, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		assert.NotEmpty(t, decodeError(t, respBody), "body %q", body)
	}
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerateQuestions_BodyTooLarge(t *testing.T) {
	mock := llm.NewMockProvider()
	srv := newTestServer(t, mock, RouterOptions{MaxBodyBytes: 256})

	resp, body := postJSON(t, srv.URL, requestBody(t, strings.Repeat("syllabus ", 100), ""))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "request body too large", decodeError(t, body))
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerateQuestions_PipelineErrorsAreGeneric(t *testing.T) {
	tests := []struct {
		name     string
		response llm.MockResponse
		want     string
	}{
		{
			name:     "malformed output",
			response: llm.MockResponse{Text: `I cannot comply. {"partA": "secret-payload"`},
			want:     kindMessages[paper.KindMalformedOutput],
		},
		{
			name:     "missing partB",
			response: llm.MockResponse{Text: `{"partA":["q"],"partC":["c"]}`},
			want:     kindMessages[paper.KindMalformedOutput],
		},
		{
			name:     "provider unavailable",
			response: llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: fmt.Errorf("401 invalid key sk-secret")}},
			want:     kindMessages[paper.KindProviderUnavailable],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, llm.NewMockProvider(tt.response), RouterOptions{})

			resp, body := postJSON(t, srv.URL, requestBody(t, syllabus, ""))
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.Equal(t, tt.want, decodeError(t, body))
			assert.NotContains(t, string(body), "secret")
		})
	}
}

// hangingProvider never returns until released and ignores cancellation.
type hangingProvider struct {
	release chan struct{}
	calls   chan struct{}
}

func (h *hangingProvider) Generate(_ context.Context, _ llm.Request) (*llm.Response, error) {
	h.calls <- struct{}{}
	<-h.release
	return &llm.Response{Text: "{}"}, nil
}

func TestGenerateQuestions_TimeoutAbandonsProvider(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hang := &hangingProvider{release: make(chan struct{}), calls: make(chan struct{}, 4)}
	provider := llm.WithTimeout(hang, 50*time.Millisecond)

	gen := paper.New(provider, paper.DefaultConfig(), nil)
	router := NewRouter(NewHandler(gen, nil), RouterOptions{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/generate-questions", strings.NewReader(requestBody(t, syllabus, "")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	start := time.Now()
	router.ServeHTTP(rec, req)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, kindMessages[paper.KindProviderTimeout], decodeError(t, rec.Body.Bytes()))
	assert.Len(t, hang.calls, 1, "provider must be called exactly once")

	close(hang.release)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, llm.NewMockProvider(), RouterOptions{AllowedOrigins: []string{"https://exams.example.edu"}})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/generate-questions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://exams.example.edu")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://exams.example.edu", resp.Header.Get("Access-Control-Allow-Origin"))
}
