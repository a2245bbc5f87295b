// Package api serves the reconstruction pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness and build version
//	POST /v1/schematic       label records → LTspice schematic
//	POST /v1/grid/encode     label records → detector grid
//	POST /v1/grid/decode     detector grid → label records
//
// Boxes travel in percent form: center and size as fractions of the image
// width and height, exactly as in label files. Every response carries an
// X-Request-ID header. Errors are JSON objects with the error code and a
// message; the status follows the code (see [statusFor]).
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/pipeline"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// Server routes API requests to a pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	router   chi.Router
}

// New returns a server that runs requests through runner. Request fields
// left at zero take their value from defaults.
func New(runner *pipeline.Runner, logger *log.Logger, defaults pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		logger:   logger,
		defaults: defaults,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/schematic", s.handleSchematic)
		r.Post("/grid/encode", s.handleEncode)
		r.Post("/grid/decode", s.handleDecode)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:     errorBody{Code: errs.ErrCodeNotFound, Message: "no route for " + r.URL.Path},
			RequestID: RequestIDFrom(r.Context()),
		})
	})
	return r
}
