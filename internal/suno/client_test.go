package suno

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubmitReturnsTaskID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/generate" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %s", got)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload["model"] != "V5" {
			t.Fatalf("unexpected model: %v", payload["model"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"msg":  "success",
			"data": map[string]any{"taskId": "abc123"},
		})
	}))
	defer ts.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	taskID, err := client.Submit(context.Background(), map[string]any{"model": "V5"})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if taskID != "abc123" {
		t.Fatalf("unexpected task id: %s", taskID)
	}
}

func TestSubmitMissingAPIKey(t *testing.T) {
	client, err := NewClient(Options{})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if _, err := client.Submit(context.Background(), map[string]any{}); err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestSubmitEnvelopeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 429, "msg": "insufficient credits"})
	}))
	defer ts.Close()

	client, _ := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	_, err := client.Submit(context.Background(), map[string]any{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != 429 || apiErr.Msg != "insufficient credits" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestSubmitMissingTaskID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200, "msg": "success", "data": map[string]any{}})
	}))
	defer ts.Close()

	client, _ := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.Submit(context.Background(), map[string]any{}); err != ErrNoTaskID {
		t.Fatalf("expected ErrNoTaskID, got %v", err)
	}
}

func TestRecordInfoDecodesStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate/record-info" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("taskId"); got != "abc123" {
			t.Fatalf("unexpected taskId param: %s", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"msg":  "success",
			"data": map[string]any{
				"taskId": "abc123",
				"status": StatusFirstSuccess,
			},
		})
	}))
	defer ts.Close()

	client, _ := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	info, err := client.RecordInfo(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("RecordInfo error: %v", err)
	}
	if info.Status != StatusFirstSuccess {
		t.Fatalf("unexpected status: %s", info.Status)
	}
}

func TestRecordInfoHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	client, _ := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.RecordInfo(context.Background(), "abc123"); err == nil {
		t.Fatalf("expected error on http failure")
	}
}

func TestIsFailureStatus(t *testing.T) {
	for _, status := range []string{StatusCreateTaskFailed, StatusGenerateAudioFailed, StatusCallbackException, StatusSensitiveWordError} {
		if !IsFailureStatus(status) {
			t.Fatalf("%s should be a failure status", status)
		}
	}
	for _, status := range []string{StatusPending, StatusTextSuccess, StatusFirstSuccess, StatusSuccess} {
		if IsFailureStatus(status) {
			t.Fatalf("%s should not be a failure status", status)
		}
	}
}
