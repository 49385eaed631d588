package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vhscom/calc/internal/api"
	"github.com/vhscom/calc/internal/calc"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(token string) http.Handler {
	return NewRouter(Options{Token: token, Logger: testLogger()})
}

func postEvaluate(t *testing.T, h http.Handler, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter("secret")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter("")

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "calc API v1" {
		t.Errorf("Expected body 'calc API v1', got '%s'", w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	mux := newTestRouter("")

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantResult string
		wantCode   string
	}{
		{"sum", `{"expression":"2+2"}`, http.StatusOK, "4", ""},
		{"division", `{"expression":"10/4"}`, http.StatusOK, "2.5", ""},
		{"percent", `{"expression":"5%"}`, http.StatusOK, "0.05", ""},
		{"empty", `{"expression":""}`, http.StatusOK, "", ""},
		{"not a number", `{"expression":"0/0"}`, http.StatusOK, "", ""},
		{"division by zero", `{"expression":"1/0"}`, http.StatusUnprocessableEntity, "", string(calc.KindDivisionByZero)},
		{"invalid characters", `{"expression":"a+1"}`, http.StatusUnprocessableEntity, "", string(calc.KindInvalidCharacters)},
		{"malformed", `{"expression":"(1+2"}`, http.StatusUnprocessableEntity, "", string(calc.KindMalformedExpression)},
		{"bad json", `{"expression":`, http.StatusBadRequest, "", api.CodeBadRequest},
	}

	mux := newTestRouter("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postEvaluate(t, mux, tt.body, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %q", ct)
			}

			if tt.wantCode != "" {
				var apiErr api.APIError
				if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if apiErr.Code != tt.wantCode {
					t.Errorf("Expected code %q, got %q", tt.wantCode, apiErr.Code)
				}
				return
			}

			var resp api.EvaluateResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if resp.Result != tt.wantResult {
				t.Errorf("Expected result %q, got %q", tt.wantResult, resp.Result)
			}
		})
	}
}

func TestEvaluateRequiresToken(t *testing.T) {
	mux := newTestRouter("secret")

	w := postEvaluate(t, mux, `{"expression":"1+1"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
	var apiErr api.APIError
	json.Unmarshal(w.Body.Bytes(), &apiErr)
	if apiErr.Code != api.CodeInvalidToken {
		t.Errorf("Expected code %q, got %q", api.CodeInvalidToken, apiErr.Code)
	}

	w = postEvaluate(t, mux, `{"expression":"1+1"}`, http.Header{"Authorization": {"Bearer wrong"}})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401 for wrong token, got %d", w.Code)
	}

	w = postEvaluate(t, mux, `{"expression":"1+1"}`, http.Header{"Authorization": {"Bearer secret"}})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 with token, got %d", w.Code)
	}
}

func TestRequestIDAssigned(t *testing.T) {
	mux := newTestRouter("")

	w := postEvaluate(t, mux, `{"expression":"1"}`, nil)
	if id := w.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("Expected generated UUID request ID, got %q", id)
	}

	w = postEvaluate(t, mux, `{"expression":"1"}`, http.Header{RequestIDHeader: {"abc-123"}})
	if id := w.Header().Get(RequestIDHeader); id != "abc-123" {
		t.Errorf("Expected propagated request ID 'abc-123', got %q", id)
	}
}

func TestEvaluateBodyTooLarge(t *testing.T) {
	mux := newTestRouter("")
	body := `{"expression":"` + strings.Repeat("1", maxBodyBytes) + `"}`

	w := postEvaluate(t, mux, body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}
