package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ikalang/ika-backend/internal/domain"
	"github.com/ikalang/ika-backend/internal/phrasebank"
	"github.com/ikalang/ika-backend/internal/service/engine"
)

// engineServiceMock is a func-field mock of engineService. Unset fields
// fail the test when called.
type engineServiceMock struct {
	t *testing.T

	LookupFunc           func(ctx context.Context, input engine.LookupInput) (engine.LookupResult, error)
	ListEntriesFunc      func(ctx context.Context, input engine.ListInput) (engine.ListResult, error)
	TranslateFunc        func(ctx context.Context, input engine.TranslateInput) (engine.TranslateResult, error)
	ChunkTranslateFunc   func(ctx context.Context, input engine.ChunkInput) (phrasebank.ChunkResult, error)
	GenerateFunc         func(ctx context.Context, input engine.GenerateInput) (engine.GenerateResult, error)
	NaturalizeFunc       func(ctx context.Context, input engine.NaturalizeInput) (engine.NaturalizeResult, error)
	AnnotatePhonemesFunc func(ctx context.Context, input engine.PhonemesInput) (string, error)
	AudioKeyFunc         func(ctx context.Context, input engine.AudioKeyInput) (engine.AudioKeyResult, error)
	AudioFileFunc        func(ctx context.Context, name string) (string, error)
	StoreAudioFunc       func(ctx context.Context, name string, r io.Reader) (int64, error)
	ReloadFunc           func(ctx context.Context) (engine.Info, error)
}

func (m *engineServiceMock) unexpected(name string) {
	m.t.Helper()
	m.t.Fatalf("unexpected call to %s", name)
}

func (m *engineServiceMock) Lookup(ctx context.Context, input engine.LookupInput) (engine.LookupResult, error) {
	if m.LookupFunc == nil {
		m.unexpected("Lookup")
	}
	return m.LookupFunc(ctx, input)
}

func (m *engineServiceMock) ListEntries(ctx context.Context, input engine.ListInput) (engine.ListResult, error) {
	if m.ListEntriesFunc == nil {
		m.unexpected("ListEntries")
	}
	return m.ListEntriesFunc(ctx, input)
}

func (m *engineServiceMock) Translate(ctx context.Context, input engine.TranslateInput) (engine.TranslateResult, error) {
	if m.TranslateFunc == nil {
		m.unexpected("Translate")
	}
	return m.TranslateFunc(ctx, input)
}

func (m *engineServiceMock) ChunkTranslate(ctx context.Context, input engine.ChunkInput) (phrasebank.ChunkResult, error) {
	if m.ChunkTranslateFunc == nil {
		m.unexpected("ChunkTranslate")
	}
	return m.ChunkTranslateFunc(ctx, input)
}

func (m *engineServiceMock) Generate(ctx context.Context, input engine.GenerateInput) (engine.GenerateResult, error) {
	if m.GenerateFunc == nil {
		m.unexpected("Generate")
	}
	return m.GenerateFunc(ctx, input)
}

func (m *engineServiceMock) Naturalize(ctx context.Context, input engine.NaturalizeInput) (engine.NaturalizeResult, error) {
	if m.NaturalizeFunc == nil {
		m.unexpected("Naturalize")
	}
	return m.NaturalizeFunc(ctx, input)
}

func (m *engineServiceMock) AnnotatePhonemes(ctx context.Context, input engine.PhonemesInput) (string, error) {
	if m.AnnotatePhonemesFunc == nil {
		m.unexpected("AnnotatePhonemes")
	}
	return m.AnnotatePhonemesFunc(ctx, input)
}

func (m *engineServiceMock) AudioKey(ctx context.Context, input engine.AudioKeyInput) (engine.AudioKeyResult, error) {
	if m.AudioKeyFunc == nil {
		m.unexpected("AudioKey")
	}
	return m.AudioKeyFunc(ctx, input)
}

func (m *engineServiceMock) AudioFile(ctx context.Context, name string) (string, error) {
	if m.AudioFileFunc == nil {
		m.unexpected("AudioFile")
	}
	return m.AudioFileFunc(ctx, name)
}

func (m *engineServiceMock) StoreAudio(ctx context.Context, name string, r io.Reader) (int64, error) {
	if m.StoreAudioFunc == nil {
		m.unexpected("StoreAudio")
	}
	return m.StoreAudioFunc(ctx, name, r)
}

func (m *engineServiceMock) Reload(ctx context.Context) (engine.Info, error) {
	if m.ReloadFunc == nil {
		m.unexpected("Reload")
	}
	return m.ReloadFunc(ctx)
}

func newTestRouter(t *testing.T, svc *engineServiceMock) http.Handler {
	t.Helper()
	svc.t = t
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(NewHealthHandler(readyInfo(), nil, "test"), NewEngineHandler(svc, logger))
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestEngineHandler_Lookup(t *testing.T) {
	t.Parallel()

	var got engine.LookupInput
	svc := &engineServiceMock{
		LookupFunc: func(_ context.Context, input engine.LookupInput) (engine.LookupResult, error) {
			got = input
			return engine.LookupResult{
				Found:     true,
				Query:     "hello",
				Direction: input.Direction,
				Candidates: []domain.LexEntry{
					{ID: "g1", Domain: "greeting", SourceText: "hello", TargetText: "ndewo"},
				},
			}, nil
		},
	}

	rec := serve(newTestRouter(t, svc), http.MethodPost, "/lookup", `{"text":"Hello","direction":"en_to_ika"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if got.Text != "Hello" || got.Direction != domain.DirectionEnToIka {
		t.Errorf("service received %+v", got)
	}
	resp := decodeBody[engine.LookupResult](t, rec)
	if !resp.Found || len(resp.Candidates) != 1 || resp.Candidates[0].TargetText != "ndewo" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestEngineHandler_BadBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"malformed json", "/lookup", `{"text":`},
		{"unknown field", "/translate", `{"text":"hi","lang":"ika"}`},
		{"empty body", "/generate", ""},
		{"wrong type", "/naturalize", `{"intent_text":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(newTestRouter(t, &engineServiceMock{}), http.MethodPost, tt.target, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			resp := decodeBody[errorResponse](t, rec)
			if resp.Error != "invalid request body" {
				t.Errorf("error = %q", resp.Error)
			}
		})
	}
}

func TestEngineHandler_BodyTooLarge(t *testing.T) {
	t.Parallel()

	body := `{"text":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := serve(newTestRouter(t, &engineServiceMock{}), http.MethodPost, "/phonemes", body)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestEngineHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.NewValidationError("text", "required"), http.StatusBadRequest, "validation error"},
		{"not found", fmt.Errorf("audio x: %w", domain.ErrNotFound), http.StatusNotFound, "not found"},
		{"already exists", fmt.Errorf("audio x: %w", domain.ErrAlreadyExists), http.StatusConflict, "already exists"},
		{"unavailable", fmt.Errorf("lexicon: %w", domain.ErrUnavailable), http.StatusServiceUnavailable, "dataset unavailable"},
		{"invalid dataset", &domain.DatasetError{File: "templates.yaml", Problems: []string{"bad pool"}}, http.StatusUnprocessableEntity, ""},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &engineServiceMock{
				TranslateFunc: func(context.Context, engine.TranslateInput) (engine.TranslateResult, error) {
					return engine.TranslateResult{}, tt.err
				},
			}

			rec := serve(newTestRouter(t, svc), http.MethodPost, "/translate", `{"text":"water"}`)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			resp := decodeBody[errorResponse](t, rec)
			if tt.wantMsg != "" && resp.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantMsg)
			}
		})
	}
}

func TestEngineHandler_ValidationFields(t *testing.T) {
	t.Parallel()

	svc := &engineServiceMock{
		GenerateFunc: func(context.Context, engine.GenerateInput) (engine.GenerateResult, error) {
			return engine.GenerateResult{}, domain.NewValidationErrors([]domain.FieldError{
				{Field: "kind", Message: "required"},
				{Field: "length", Message: "must be short, medium or long"},
			})
		},
	}

	rec := serve(newTestRouter(t, svc), http.MethodPost, "/generate", `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody[errorResponse](t, rec)
	if len(resp.Fields) != 2 || resp.Fields[0].Field != "kind" {
		t.Errorf("fields = %+v", resp.Fields)
	}
}

func TestEngineHandler_Translate(t *testing.T) {
	t.Parallel()

	var got engine.TranslateInput
	svc := &engineServiceMock{
		TranslateFunc: func(_ context.Context, input engine.TranslateInput) (engine.TranslateResult, error) {
			got = input
			return engine.TranslateResult{Found: true, Text: "ka ri", Engine: engine.EngineRuleBased}, nil
		},
	}

	body := `{"text":"eat","mode":"en_to_ika","tense":"past","negate":true,"question":true}`
	rec := serve(newTestRouter(t, svc), http.MethodPost, "/translate", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := engine.TranslateInput{
		Text:     "eat",
		Mode:     domain.TranslateMode("en_to_ika"),
		Tense:    "past",
		Negate:   true,
		Question: true,
	}
	if got != want {
		t.Errorf("service received %+v, want %+v", got, want)
	}
	if resp := decodeBody[engine.TranslateResult](t, rec); resp.Text != "ka ri" {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestEngineHandler_Dictionary(t *testing.T) {
	t.Parallel()

	var got engine.ListInput
	svc := &engineServiceMock{
		ListEntriesFunc: func(_ context.Context, input engine.ListInput) (engine.ListResult, error) {
			got = input
			return engine.ListResult{Entries: []domain.LexEntry{}, Limit: input.Limit}, nil
		},
	}
	router := newTestRouter(t, svc)

	rec := serve(router, http.MethodGet, "/dictionary?q=wa&domain=general&limit=25", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != (engine.ListInput{Domain: "general", Prefix: "wa", Limit: 25}) {
		t.Errorf("service received %+v", got)
	}

	rec = serve(router, http.MethodGet, "/dictionary?limit=many", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric limit, got %d", rec.Code)
	}
}

func TestEngineHandler_ChunkGenerateNaturalize(t *testing.T) {
	t.Parallel()

	seed := uint64(7)
	svc := &engineServiceMock{
		ChunkTranslateFunc: func(_ context.Context, input engine.ChunkInput) (phrasebank.ChunkResult, error) {
			return phrasebank.ChunkResult{Tokens: []string{"good", "morning"}, Chunks: []string{"ndewo ụtụtụ"}}, nil
		},
		GenerateFunc: func(_ context.Context, input engine.GenerateInput) (engine.GenerateResult, error) {
			if input.Kind != domain.KindPoem || input.Length != domain.LengthShort || input.Seed == nil || *input.Seed != seed {
				t.Errorf("generate input %+v", input)
			}
			return engine.GenerateResult{Text: "mụ ri"}, nil
		},
		NaturalizeFunc: func(_ context.Context, input engine.NaturalizeInput) (engine.NaturalizeResult, error) {
			if input.IntentText != "sorry" || input.Tone != domain.TonePolite || input.Seed != nil {
				t.Errorf("naturalize input %+v", input)
			}
			return engine.NaturalizeResult{Text: "ndo"}, nil
		},
	}
	router := newTestRouter(t, svc)

	rec := serve(router, http.MethodPost, "/chunk", `{"text":"good morning"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("chunk: expected 200, got %d", rec.Code)
	}
	if resp := decodeBody[phrasebank.ChunkResult](t, rec); len(resp.Chunks) != 1 {
		t.Errorf("chunk response %+v", resp)
	}

	rec = serve(router, http.MethodPost, "/generate", `{"kind":"poem","length":"short","seed":7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d", rec.Code)
	}

	rec = serve(router, http.MethodPost, "/naturalize", `{"intent_text":"sorry","tone":"polite"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("naturalize: expected 200, got %d", rec.Code)
	}
	if resp := decodeBody[engine.NaturalizeResult](t, rec); resp.Text != "ndo" {
		t.Errorf("naturalize text = %q", resp.Text)
	}
}

func TestEngineHandler_Phonemes(t *testing.T) {
	t.Parallel()

	svc := &engineServiceMock{
		AnnotatePhonemesFunc: func(_ context.Context, input engine.PhonemesInput) (string, error) {
			return "<speak>" + input.Text + "</speak>", nil
		},
	}

	rec := serve(newTestRouter(t, svc), http.MethodPost, "/phonemes", `{"text":"ndewo"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeBody[phonemesResponse](t, rec); resp.SSML != "<speak>ndewo</speak>" {
		t.Errorf("ssml = %q", resp.SSML)
	}
}

func TestEngineHandler_AudioKey(t *testing.T) {
	t.Parallel()

	svc := &engineServiceMock{
		AudioKeyFunc: func(_ context.Context, input engine.AudioKeyInput) (engine.AudioKeyResult, error) {
			if input.Format != "wav" || input.Voice != "v1" {
				t.Errorf("audio key input %+v", input)
			}
			return engine.AudioKeyResult{Key: "k", FileName: "k.wav", Format: "wav"}, nil
		},
	}

	rec := serve(newTestRouter(t, svc), http.MethodPost, "/audio/key", `{"text":"ndewo","voice":"v1","format":"wav"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeBody[engine.AudioKeyResult](t, rec); resp.FileName != "k.wav" {
		t.Errorf("file name = %q", resp.FileName)
	}
}

func TestEngineHandler_AudioFile(t *testing.T) {
	t.Parallel()

	name := strings.Repeat("a", 64) + ".mp3"
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("ID3-audio"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	svc := &engineServiceMock{
		AudioFileFunc: func(_ context.Context, got string) (string, error) {
			if got == name {
				return path, nil
			}
			return "", fmt.Errorf("audio %s: %w", got, domain.ErrNotFound)
		},
	}
	router := newTestRouter(t, svc)

	rec := serve(router, http.MethodGet, "/audio/"+name, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Header().Get("Cache-Control"), "immutable") {
		t.Errorf("cache control = %q", rec.Header().Get("Cache-Control"))
	}
	if rec.Body.String() != "ID3-audio" {
		t.Errorf("body = %q", rec.Body.String())
	}

	rec = serve(router, http.MethodGet, "/audio/"+strings.Repeat("b", 64)+".mp3", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing file, got %d", rec.Code)
	}
}

func TestEngineHandler_AudioUpload(t *testing.T) {
	t.Parallel()

	name := strings.Repeat("c", 64) + ".ogg"
	var stored bytes.Buffer
	svc := &engineServiceMock{
		StoreAudioFunc: func(_ context.Context, got string, r io.Reader) (int64, error) {
			if got != name {
				return 0, fmt.Errorf("audio %s: %w", got, domain.ErrAlreadyExists)
			}
			return io.Copy(&stored, r)
		},
	}
	router := newTestRouter(t, svc)

	rec := serve(router, http.MethodPut, "/audio/"+name, "OggS-data")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody[audioStoredResponse](t, rec)
	if resp.FileName != name || resp.Bytes != int64(len("OggS-data")) {
		t.Errorf("response %+v", resp)
	}
	if stored.String() != "OggS-data" {
		t.Errorf("stored %q", stored.String())
	}

	rec = serve(router, http.MethodPut, "/audio/other.ogg", "x")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestEngineHandler_Reload(t *testing.T) {
	t.Parallel()

	svc := &engineServiceMock{
		ReloadFunc: func(context.Context) (engine.Info, error) {
			return engine.Info{Ready: true}, nil
		},
	}

	rec := serve(newTestRouter(t, svc), http.MethodPost, "/admin/reload", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeBody[engine.Info](t, rec); !resp.Ready {
		t.Error("expected ready info")
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := serve(newTestRouter(t, &engineServiceMock{}), http.MethodGet, "/lookup", "")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRouter_HealthRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &engineServiceMock{})
	for _, path := range []string{"/live", "/ready", "/health", "/build-info"} {
		if rec := serve(router, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}
