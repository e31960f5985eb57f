package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gcbaptista/go-ir-engine/config"
	"github.com/gcbaptista/go-ir-engine/internal/engine"
	"github.com/gcbaptista/go-ir-engine/internal/metrics"
	"github.com/gcbaptista/go-ir-engine/internal/testutil"
	"github.com/gcbaptista/go-ir-engine/model"
)

func setupTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Corpus.DataDir = testutil.WriteHotelCorpus(t)
	cfg.Corpus.StopwordsFile = ""
	cfg.Snapshot.Path = filepath.Join(t.TempDir(), "snapshot.gob")

	eng, err := engine.New(cfg, nil)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	t.Cleanup(eng.Close)
	return eng
}

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(eng, config.Default().Server, metrics.New(prometheus.NewRegistry()))
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v (%s)", err, w.Body.String())
	}
	return response
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := doRequest(router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	response := decode(t, w)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["documents"] != float64(2) {
		t.Errorf("Expected 2 documents, got %v", response["documents"])
	}
}

func TestStatsAndEnginesHandlers(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := doRequest(router, "GET", "/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	stats := decode(t, w)
	if stats["documents"] != float64(2) || stats["terms"] != float64(4) {
		t.Errorf("Unexpected stats: %v", stats)
	}
	if stats["loaded_from"] != "corpus" {
		t.Errorf("Expected loaded_from 'corpus', got %v", stats["loaded_from"])
	}

	w = doRequest(router, "GET", "/engines", nil)
	engines := decode(t, w)
	if engines["default"] != "vector" {
		t.Errorf("Expected default engine 'vector', got %v", engines["default"])
	}
	if list, ok := engines["engines"].([]interface{}); !ok || len(list) != 3 {
		t.Errorf("Expected 3 engines, got %v", engines["engines"])
	}
}

func TestSearchHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedCode   ErrorCode
		validateFunc   func(t *testing.T, response map[string]interface{})
	}{
		{
			name:           "default vector engine",
			requestBody:    SearchRequest{Query: "hotel clean"},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, response map[string]interface{}) {
				if response["engine"] != "vector" {
					t.Errorf("Expected engine 'vector', got %v", response["engine"])
				}
				if response["total"] != float64(2) {
					t.Errorf("Expected 2 hits, got %v", response["total"])
				}
				hits := response["hits"].([]interface{})
				first := hits[0].(map[string]interface{})["document"].(map[string]interface{})
				if first["id"] != float64(0) {
					t.Errorf("Expected document 0 first, got %v", first["id"])
				}
				if response["query_id"] == "" {
					t.Error("Expected a query id")
				}
			},
		},
		{
			name:           "boolean and",
			requestBody:    SearchRequest{Engine: "boolean", Query: "hotel and dirty"},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, response map[string]interface{}) {
				if response["total"] != float64(1) {
					t.Errorf("Expected 1 hit, got %v", response["total"])
				}
			},
		},
		{
			name:           "probabilistic by menu code",
			requestBody:    SearchRequest{Engine: "3", Query: "dirty"},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, response map[string]interface{}) {
				if response["engine"] != "probabilistic" {
					t.Errorf("Expected engine 'probabilistic', got %v", response["engine"])
				}
			},
		},
		{
			name:           "pagination past the end",
			requestBody:    SearchRequest{Query: "hotel", Page: 5, PageSize: 1},
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, response map[string]interface{}) {
				if hits := response["hits"].([]interface{}); len(hits) != 0 {
					t.Errorf("Expected no hits, got %d", len(hits))
				}
				if response["total"] != float64(2) {
					t.Errorf("Expected total 2, got %v", response["total"])
				}
			},
		},
		{
			name:           "unknown engine",
			requestBody:    SearchRequest{Engine: "bm25", Query: "hotel"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeUnknownEngine,
		},
		{
			name:           "malformed boolean query",
			requestBody:    SearchRequest{Engine: "boolean", Query: "hotel clean room"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidQuery,
		},
		{
			name:           "negative page",
			requestBody:    SearchRequest{Query: "hotel", Page: -1},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidationFailed,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "POST", "/search", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d. Response: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			response := decode(t, w)
			if tt.expectedCode != "" && response["code"] != string(tt.expectedCode) {
				t.Errorf("Expected error code %s, got %v", tt.expectedCode, response["code"])
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, response)
			}
		})
	}
}

func TestSearchQueryHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := doRequest(router, "GET", "/search?q=hotel&engine=boolean", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Response: %s", http.StatusOK, w.Code, w.Body.String())
	}
	response := decode(t, w)
	if response["total"] != float64(2) {
		t.Errorf("Expected 2 hits, got %v", response["total"])
	}

	w = doRequest(router, "GET", "/search?q=hotel&page=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d for a non-numeric page, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestDocumentHandlers(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	t.Run("get document", func(t *testing.T) {
		w := doRequest(router, "GET", "/documents/1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
		}
		doc := decode(t, w)
		if doc["date"] != "2020-01-02" || doc["text"] != "hotel dirty" {
			t.Errorf("Unexpected document: %v", doc)
		}
	})

	t.Run("missing document", func(t *testing.T) {
		w := doRequest(router, "GET", "/documents/99", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected status %d, got %d", http.StatusNotFound, w.Code)
		}
		if code := decode(t, w)["code"]; code != string(ErrorCodeDocumentNotFound) {
			t.Errorf("Expected code %s, got %v", ErrorCodeDocumentNotFound, code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := doRequest(router, "GET", "/documents/abc", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("list documents", func(t *testing.T) {
		w := doRequest(router, "GET", "/documents?page=1&page_size=1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
		}
		response := decode(t, w)
		if docs := response["documents"].([]interface{}); len(docs) != 1 {
			t.Errorf("Expected 1 document, got %d", len(docs))
		}
		if response["total"] != float64(2) || response["pages"] != float64(2) {
			t.Errorf("Unexpected pagination: %v", response)
		}
	})
}

func TestReindexAndJobHandlers(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	w := doRequest(router, "POST", "/reindex", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status %d, got %d", http.StatusAccepted, w.Code)
	}
	jobID, _ := decode(t, w)["job_id"].(string)
	if jobID == "" {
		t.Fatal("Expected a job id")
	}

	job := testutil.WaitForJob(t, eng.Jobs(), jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, model.JobTypeReindex)

	w = doRequest(router, "GET", "/jobs/"+jobID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if status := decode(t, w)["status"]; status != string(model.JobStatusCompleted) {
		t.Errorf("Expected completed job, got %v", status)
	}

	w = doRequest(router, "POST", "/snapshot", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status %d, got %d", http.StatusAccepted, w.Code)
	}
	snapshotID, _ := decode(t, w)["job_id"].(string)
	testutil.WaitForJob(t, eng.Jobs(), snapshotID, testutil.DefaultJobPollingOptions())

	w = doRequest(router, "GET", "/jobs?status=completed", nil)
	if total := decode(t, w)["total"]; total != float64(2) {
		t.Errorf("Expected 2 completed jobs, got %v", total)
	}

	w = doRequest(router, "GET", "/jobs?status=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d for an unknown status, got %d", http.StatusBadRequest, w.Code)
	}

	w = doRequest(router, "GET", "/jobs/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	w = doRequest(router, "GET", "/jobs/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if rate := decode(t, w)["success_rate"]; rate != float64(1) {
		t.Errorf("Expected success rate 1, got %v", rate)
	}
}

func TestMiddleware(t *testing.T) {
	eng := setupTestEngine(t)

	t.Run("request id", func(t *testing.T) {
		router := setupTestRouter(eng)

		w := doRequest(router, "GET", "/health", nil)
		if w.Header().Get(requestIDHeader) == "" {
			t.Error("Expected a generated request id")
		}

		req, _ := http.NewRequest("GET", "/documents/99", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Header().Get(requestIDHeader) != "abc-123" {
			t.Errorf("Expected request id to be echoed, got %q", w.Header().Get(requestIDHeader))
		}
		if id := decode(t, w)["request_id"]; id != "abc-123" {
			t.Errorf("Expected request id in error body, got %v", id)
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		w := doRequest(setupTestRouter(eng), "OPTIONS", "/search", nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status %d, got %d", http.StatusNoContent, w.Code)
		}
	})

	t.Run("rate limit", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		server := config.Default().Server
		server.RateLimit = 0.001
		server.RateBurst = 1
		router := NewRouter(eng, server, nil)

		if w := doRequest(router, "GET", "/stats", nil); w.Code != http.StatusOK {
			t.Fatalf("Expected first request to pass, got %d", w.Code)
		}
		w := doRequest(router, "GET", "/stats", nil)
		if w.Code != http.StatusTooManyRequests {
			t.Errorf("Expected status %d, got %d", http.StatusTooManyRequests, w.Code)
		}
		if code := decode(t, w)["code"]; code != string(ErrorCodeRateLimited) {
			t.Errorf("Expected code %s, got %v", ErrorCodeRateLimited, code)
		}
		if w := doRequest(router, "GET", "/health", nil); w.Code != http.StatusOK {
			t.Errorf("Expected health checks to bypass the limiter, got %d", w.Code)
		}
	})

	t.Run("request size limit", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		server := config.Default().Server
		server.MaxRequestBytes = 16
		router := NewRouter(eng, server, nil)

		body := SearchRequest{Query: strings.Repeat("hotel ", 20)}
		if w := doRequest(router, "POST", "/search", body); w.Code != http.StatusBadRequest {
			t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		router := setupTestRouter(eng)
		doRequest(router, "GET", "/stats", nil)

		w := doRequest(router, "GET", "/metrics", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
		}
		if !strings.Contains(w.Body.String(), `ire_http_requests_total{method="GET",path="/stats",status="200"} 1`) {
			t.Errorf("Expected the /stats request to be counted, got:\n%s", w.Body.String())
		}
	})

	t.Run("metrics disabled", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := NewRouter(eng, config.Default().Server, nil)
		if w := doRequest(router, "GET", "/metrics", nil); w.Code != http.StatusNotFound {
			t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}
