package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ikalang/ika-backend/internal/audio"
	"github.com/ikalang/ika-backend/internal/domain"
	"github.com/ikalang/ika-backend/internal/phrasebank"
	"github.com/ikalang/ika-backend/internal/service/engine"
)

// maxAudioBytes caps uploaded audio files.
const maxAudioBytes = 20 << 20

// engineService defines the operations EngineHandler needs.
type engineService interface {
	Lookup(ctx context.Context, input engine.LookupInput) (engine.LookupResult, error)
	ListEntries(ctx context.Context, input engine.ListInput) (engine.ListResult, error)
	Translate(ctx context.Context, input engine.TranslateInput) (engine.TranslateResult, error)
	ChunkTranslate(ctx context.Context, input engine.ChunkInput) (phrasebank.ChunkResult, error)
	Generate(ctx context.Context, input engine.GenerateInput) (engine.GenerateResult, error)
	Naturalize(ctx context.Context, input engine.NaturalizeInput) (engine.NaturalizeResult, error)
	AnnotatePhonemes(ctx context.Context, input engine.PhonemesInput) (string, error)
	AudioKey(ctx context.Context, input engine.AudioKeyInput) (engine.AudioKeyResult, error)
	AudioFile(ctx context.Context, name string) (string, error)
	StoreAudio(ctx context.Context, name string, r io.Reader) (int64, error)
	Reload(ctx context.Context) (engine.Info, error)
}

// EngineHandler serves the lexicon engine endpoints.
type EngineHandler struct {
	svc engineService
	log *slog.Logger
}

// NewEngineHandler creates an EngineHandler.
func NewEngineHandler(svc engineService, logger *slog.Logger) *EngineHandler {
	return &EngineHandler{svc: svc, log: logger.With("handler", "engine")}
}

type lookupRequest struct {
	Text      string `json:"text"`
	Direction string `json:"direction"`
}

type textRequest struct {
	Text string `json:"text"`
}

type translateRequest struct {
	Text     string `json:"text"`
	Mode     string `json:"mode"`
	Tense    string `json:"tense"`
	Negate   bool   `json:"negate"`
	Question bool   `json:"question"`
}

type generateRequest struct {
	Kind   string  `json:"kind"`
	Length string  `json:"length"`
	Source string  `json:"source"`
	Seed   *uint64 `json:"seed"`
}

type naturalizeRequest struct {
	IntentText string  `json:"intent_text"`
	Tone       string  `json:"tone"`
	Length     string  `json:"length"`
	Seed       *uint64 `json:"seed"`
}

type phonemesResponse struct {
	SSML string `json:"ssml"`
}

type audioKeyRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice"`
	Rate   string `json:"rate"`
	Pitch  string `json:"pitch"`
	Format string `json:"format"`
}

type audioStoredResponse struct {
	FileName string `json:"file_name"`
	Bytes    int64  `json:"bytes"`
}

// Lookup handles POST /lookup.
func (h *EngineHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(h.log, w, r, err)
		return
	}

	result, err := h.svc.Lookup(r.Context(), engine.LookupInput{
		Text:      req.Text,
		Direction: domain.Direction(req.Direction),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Dictionary handles GET /dictionary?q=&domain=&limit=.
func (h *EngineHandler) Dictionary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := engine.ListInput{
		Domain: q.Get("domain"),
		Prefix: q.Get("q"),
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		input.Limit = limit
	}

	result, err := h.svc.ListEntries(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Translate handles POST /translate.
func (h *EngineHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(h.log, w, r, err)
		return
	}

	result, err := h.svc.Translate(r.Context(), engine.TranslateInput{
		Text:     req.Text,
		Mode:     domain.TranslateMode(req.Mode),
		Tense:    req.Tense,
		Negate:   req.Negate,
		Question: req.Question,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Chunk handles POST /chunk.
func (h *EngineHandler) Chunk(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(h.log, w, r, err)
		return
	}

	result, err := h.svc.ChunkTranslate(r.Context(), engine.ChunkInput{Text: req.Text})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Generate handles POST /generate.
func (h *EngineHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(h.log, w, r, err)
		return
	}

	result, err := h.svc.Generate(r.Context(), engine.GenerateInput{
		Kind:   domain.Kind(req.Kind),
		Length: domain.Length(req.Length),
		Source: domain.GenerationSource(req.Source),
		Seed:   req.Seed,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Naturalize handles POST /naturalize.
func (h *EngineHandler) Naturalize(w http.ResponseWriter, r *http.Request) {
	var req naturalizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(h.log, w, r, err)
		return
	}

	result, err := h.svc.Naturalize(r.Context(), engine.NaturalizeInput{
		IntentText: req.IntentText,
		Tone:       domain.Tone(req.Tone),
		Length:     domain.Length(req.Length),
		Seed:       req.Seed,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Phonemes handles POST /phonemes.
func (h *EngineHandler) Phonemes(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(h.log, w, r, err)
		return
	}

	ssml, err := h.svc.AnnotatePhonemes(r.Context(), engine.PhonemesInput{Text: req.Text})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, phonemesResponse{SSML: ssml})
}

// AudioKey handles POST /audio/key.
func (h *EngineHandler) AudioKey(w http.ResponseWriter, r *http.Request) {
	var req audioKeyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(h.log, w, r, err)
		return
	}

	result, err := h.svc.AudioKey(r.Context(), engine.AudioKeyInput{
		Text:   req.Text,
		Voice:  req.Voice,
		Rate:   req.Rate,
		Pitch:  req.Pitch,
		Format: req.Format,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AudioFile handles GET /audio/{filename}.
func (h *EngineHandler) AudioFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")

	path, err := h.svc.AudioFile(r.Context(), name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", audio.ContentType(name))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeFile(w, r, path)
}

// AudioUpload handles PUT /audio/{filename}.
func (h *EngineHandler) AudioUpload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")

	n, err := h.svc.StoreAudio(r.Context(), name, http.MaxBytesReader(w, r.Body, maxAudioBytes))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, audioStoredResponse{FileName: name, Bytes: n})
}

// Reload handles POST /admin/reload.
func (h *EngineHandler) Reload(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Reload(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}
