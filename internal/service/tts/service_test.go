package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"iyan-ordering/internal/domain"
)

func TestSynthesizeRequiresText(t *testing.T) {
	svc := New("", nil)
	if _, err := svc.Synthesize(context.Background(), "   "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Synthesize(context.Background(), strings.Repeat("a", MaxTextLength+1)); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for long text, got %v", err)
	}
}

func TestSynthesizeWithoutUpstream(t *testing.T) {
	svc := New("", nil)
	if svc.Enabled() {
		t.Fatalf("expected disabled service")
	}
	if _, err := svc.Synthesize(context.Background(), "hello"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestSynthesizeForwardsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body["text"] != "Welcome to Ile Iyan" {
			t.Errorf("text = %q", body["text"])
		}
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write([]byte("RIFF"))
	}))
	defer srv.Close()

	audio, err := New(srv.URL, srv.Client()).Synthesize(context.Background(), " Welcome to Ile Iyan ")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if audio.ContentType != "audio/wav" || string(audio.Data) != "RIFF" {
		t.Fatalf("unexpected audio %+v", audio)
	}
}

func TestSynthesizeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, srv.Client()).Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
