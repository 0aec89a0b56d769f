// Package http provides the HTTP delivery layer of the service: the URL
// shortener, the exercise tracker and the file metadata endpoints.
package http

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/microservices/pkg/middleware/recoverer"
)

const defaultMaxUploadBytes = 10 << 20

// Options configures the routes that depend on deployment settings.
type Options struct {
	// PublicBaseURL is the externally visible scheme and host, used in QR codes.
	PublicBaseURL string
	// MaxUploadBytes caps the size of files sent to the file metadata endpoint.
	MaxUploadBytes int64
}

// NewRouter initializes and returns a new Chi router configured with middleware and the API routes.
func NewRouter(
	logger *httplog.Logger,
	opts Options,
	shortenerUseCase shortenerUseCase,
	trackerUseCase trackerUseCase,
	fileUseCase fileUseCase,
) *chi.Mux {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger, serverErrorResponse))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/shorturl", func(r chi.Router) {
			h := newShortenerHandler(shortenerUseCase, opts.PublicBaseURL)

			r.Post("/", h.shortenURL)

			r.Route("/{shortURL}", func(r chi.Router) {
				r.Get("/", h.redirect)
				r.Get("/qrcode", h.qrCode)
			})
		})

		r.Route("/users", func(r chi.Router) {
			h := newTrackerHandler(trackerUseCase)

			r.Post("/", h.createUser)
			r.Get("/", h.listUsers)

			r.Route("/{userID}", func(r chi.Router) {
				r.Post("/exercises", h.addExercise)
				r.Get("/logs", h.queryLog)
			})
		})

		r.Post("/fileanalyse", newFileHandler(fileUseCase, opts.MaxUploadBytes).analyse)
	})

	return r
}
