package rest

import "net/http"

// NewRouter registers every HTTP endpoint on a new ServeMux. Cross-cutting
// middleware is applied by the caller around the returned handler.
func NewRouter(health *HealthHandler, eng *EngineHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /build-info", health.BuildInfo)

	mux.HandleFunc("POST /lookup", eng.Lookup)
	mux.HandleFunc("GET /dictionary", eng.Dictionary)
	mux.HandleFunc("POST /translate", eng.Translate)
	mux.HandleFunc("POST /chunk", eng.Chunk)
	mux.HandleFunc("POST /generate", eng.Generate)
	mux.HandleFunc("POST /naturalize", eng.Naturalize)
	mux.HandleFunc("POST /phonemes", eng.Phonemes)

	mux.HandleFunc("POST /audio/key", eng.AudioKey)
	mux.HandleFunc("GET /audio/{filename}", eng.AudioFile)
	mux.HandleFunc("PUT /audio/{filename}", eng.AudioUpload)

	mux.HandleFunc("POST /admin/reload", eng.Reload)

	return mux
}
