package api

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/rs/cors"

	"trznica/internal/catalog"
)

// NewRouter creates the HTTP handler: the listing API, the static asset
// fallback, and the middleware chain (panic recovery, request logging,
// open CORS).
func NewRouter(cat *catalog.Catalog, staticFS fs.FS) http.Handler {
	itemsHandler := &ItemsHandler{Catalog: cat}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)

	// Plain OPTIONS (non-preflight) gets an empty 200 on any path.
	mux.HandleFunc("OPTIONS /", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Everything else tries the static assets.
	mux.Handle("/", &StaticHandler{FS: staticFS})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Authorization"},
		OptionsSuccessStatus: http.StatusOK,
	})

	return alice.New(RecoverMiddleware, LoggingMiddleware, corsHandler.Handler).Then(mux)
}
