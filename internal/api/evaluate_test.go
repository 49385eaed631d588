package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vhscom/calc/internal/calc"
)

func TestEvaluate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/evaluate" {
			t.Errorf("expected /evaluate, got %s", r.URL.Path)
		}
		var req EvaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Expression != "10/4" {
			t.Errorf("expected expression '10/4', got %q", req.Expression)
		}
		json.NewEncoder(w).Encode(EvaluateResponse{Result: "2.5"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	got, err := c.Evaluate(context.Background(), "10/4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2.5" {
		t.Fatalf("expected '2.5', got %q", got)
	}
}

func TestEvaluateMapsErrorKinds(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{string(calc.KindDivisionByZero), calc.ErrDivisionByZero},
		{string(calc.KindInvalidCharacters), calc.ErrInvalidCharacters},
		{string(calc.KindMalformedExpression), calc.ErrMalformedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(APIError{Error: "evaluation failed", Code: tt.code})
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "")
			_, err := c.Evaluate(context.Background(), "x")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEvaluateUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(APIError{Error: "Unauthorized", Code: CodeInvalidToken})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-token")
	_, err := c.Evaluate(context.Background(), "1+1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code != CodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN error, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected /health, got %s", r.URL.Path)
		}
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, "")
	if err := c.Health(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
