package router

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bloom-market/internal/handler"
	"bloom-market/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// healthResponse is the GET /health body.
type healthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}

// notFoundResponse is the body for unknown paths under the API prefix.
type notFoundResponse struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

// Options configures the route table.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
}

// New creates the HTTP router with all routes and middleware configured.
// Every route lives under the configurable API prefix; unknown paths below
// the prefix answer with a structured Not Found body.
func New(
	shopHandler *handler.ShopHandler,
	customerHandler *handler.CustomerHandler,
	orderHandler *handler.OrderHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	prefix := strings.TrimSuffix(opts.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api"
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Route(prefix, func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(healthResponse{
				OK:   true,
				Time: time.Now().UTC().Format(time.RFC3339),
			})
		})

		r.Get("/shops", shopHandler.List)
		r.Get("/shops/{id}/products", shopHandler.ListProducts)

		r.Post("/customers/prefill", customerHandler.Prefill)

		r.Post("/orders", orderHandler.Create)
		r.Post("/orders/bulk-info", orderHandler.BulkInfo)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, prefix) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(notFoundResponse{
				Error: "Not Found",
				Path:  req.URL.Path,
			})
			return
		}
		http.NotFound(w, req)
	})

	return r
}
