package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evalio/callaudit/internal/adapters/http/api"
	"github.com/evalio/callaudit/internal/domain/rubric"
	"github.com/evalio/callaudit/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

const testMaxUpload = 8 << 20

// Mock implementations for testing
type mockAnalyzer struct {
	result    types.AnalysisResult
	err       error
	calls     int
	lastName  string
	lastBytes int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, filename string, audio io.Reader) (types.AnalysisResult, error) {
	m.calls++
	m.lastName = filename
	b, _ := io.ReadAll(audio)
	m.lastBytes = len(b)
	if m.err != nil {
		return types.AnalysisResult{}, m.err
	}
	return m.result, nil
}

func (m *mockAnalyzer) Rubric() []rubric.Parameter {
	return rubric.Table()
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

// multipartBody builds a multipart form with one audio file field.
func multipartBody(field, filename string, content []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile(field, filename)
	_, _ = fw.Write(content)
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func sampleResult() types.AnalysisResult {
	scores := make(map[string]int)
	for _, p := range rubric.Table() {
		scores[p.Key] = p.Weight
	}
	return types.AnalysisResult{
		ID:              "11111111-2222-3333-4444-555555555555",
		Transcript:      "Agent: hello.",
		Scores:          scores,
		OverallFeedback: "Strong call.",
		Observation:     "Nothing to flag.",
		Total:           rubric.MaxTotal(),
		MaxTotal:        rubric.MaxTotal(),
	}
}

func TestAnalyzeHandler_HandleAnalyze(t *testing.T) {
	Convey("Given an analyze handler", t, func() {
		analyzer := &mockAnalyzer{result: sampleResult()}
		handler := api.NewAnalyzeHandler(analyzer, testMaxUpload)

		Convey("When posting a valid MP3 upload", func() {
			body, contentType := multipartBody("audio", "call.mp3", []byte("fake-mp3-bytes"))
			req := httptest.NewRequest("POST", "/analyze", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler.HandleAnalyze(w, req)

			Convey("Then it returns the analysis result", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got types.AnalysisResult
				So(json.NewDecoder(w.Body).Decode(&got), ShouldBeNil)
				So(got.Transcript, ShouldEqual, "Agent: hello.")
				So(len(got.Scores), ShouldEqual, len(rubric.Table()))
			})

			Convey("Then the orchestrator saw the upload", func() {
				So(analyzer.calls, ShouldEqual, 1)
				So(analyzer.lastName, ShouldEqual, "call.mp3")
				So(analyzer.lastBytes, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the audio field is missing", func() {
			body, contentType := multipartBody("wrong_field", "call.mp3", []byte("x"))
			req := httptest.NewRequest("POST", "/analyze", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler.HandleAnalyze(w, req)

			Convey("Then it fails fast with a client error", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "missing_file")
			})

			Convey("Then no external work was attempted", func() {
				So(analyzer.calls, ShouldEqual, 0)
			})
		})

		Convey("When the body is not multipart at all", func() {
			req := httptest.NewRequest("POST", "/analyze", bytes.NewReader([]byte("raw bytes")))
			w := httptest.NewRecorder()

			handler.HandleAnalyze(w, req)

			Convey("Then it fails fast with a client error", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(analyzer.calls, ShouldEqual, 0)
			})
		})

		Convey("When the file extension is not an audio container", func() {
			body, contentType := multipartBody("audio", "notes.txt", []byte("x"))
			req := httptest.NewRequest("POST", "/analyze", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler.HandleAnalyze(w, req)

			Convey("Then it rejects the media type", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "unsupported_media")
				So(analyzer.calls, ShouldEqual, 0)
			})
		})

		Convey("When transcription fails upstream", func() {
			analyzer.err = api.ErrUpstream
			body, contentType := multipartBody("audio", "call.wav", []byte("x"))
			req := httptest.NewRequest("POST", "/analyze", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler.HandleAnalyze(w, req)

			Convey("Then the failure surfaces as a bad gateway", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "transcription_failed")
			})
		})

		Convey("When using a non-POST method", func() {
			req := httptest.NewRequest("GET", "/analyze", nil)
			w := httptest.NewRecorder()

			handler.HandleAnalyze(w, req)

			Convey("Then it returns not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRubricHandler_HandleGetRubric(t *testing.T) {
	Convey("Given a rubric handler", t, func() {
		handler := api.NewRubricHandler(&mockAnalyzer{})

		Convey("When requesting the rubric", func() {
			req := httptest.NewRequest("GET", "/rubric", nil)
			w := httptest.NewRecorder()

			handler.HandleGetRubric(w, req)

			Convey("Then it returns all parameters in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var params []rubric.Parameter
				So(json.NewDecoder(w.Body).Decode(&params), ShouldBeNil)
				So(len(params), ShouldEqual, len(rubric.Table()))
				So(params[0].Key, ShouldEqual, rubric.Table()[0].Key)
			})
		})

		Convey("When using a non-GET method", func() {
			req := httptest.NewRequest("POST", "/rubric", nil)
			w := httptest.NewRecorder()

			handler.HandleGetRubric(w, req)

			Convey("Then it returns not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		handler := api.NewStatsHandler(&mockStatsProvider{
			stats: map[string]interface{}{
				"analysesCompleted": 4,
				"analysesDegraded":  1,
			},
		})

		Convey("When handling a stats request", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()

			handler.HandleStats(w, req)

			Convey("Then it returns the snapshot", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var resp map[string]interface{}
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				// JSON numbers decode as float64
				So(resp["analysesCompleted"], ShouldEqual, 4.0)
			})
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler", t, func() {
		handler := api.NewHealthHandler()

		Convey("When handling a health check request", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()

			handler.HandleHealth(w, req)

			Convey("Then it returns OK status", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		analyzer := &mockAnalyzer{result: sampleResult()}
		statsProvider := &mockStatsProvider{stats: map[string]interface{}{}}
		server := api.NewServer(analyzer, statsProvider, testMaxUpload)
		mux := http.NewServeMux()

		Convey("When registering routes", func() {
			server.Register(context.Background(), mux)

			Convey("Then the health endpoint is reachable", func() {
				req := httptest.NewRequest("GET", "/healthz", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("Then the stats endpoint is reachable", func() {
				req := httptest.NewRequest("GET", "/stats", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("Then the rubric endpoint is reachable", func() {
				req := httptest.NewRequest("GET", "/rubric", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("Then an upload flows end to end", func() {
				body, contentType := multipartBody("audio", "call.mp3", []byte("bytes"))
				req := httptest.NewRequest("POST", "/analyze", body)
				req.Header.Set("Content-Type", contentType)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
