// Package server exposes the layout engine over HTTP.
//
// The service is geometry only: clients send sprite names and sizes, the
// server packs them and answers with a [sheet.Sheet]. No pixels are sent,
// so trimming never runs; clients that trim do it before measuring.
//
// Routes:
//
//	GET  /healthz      liveness and build version
//	GET  /v1/methods   supported sort methods, pack algorithms, export formats
//	POST /v1/layout    lay out a sprite set
//
// Layouts go through the pipeline runner, so a shared cache (usually
// Redis) makes repeated requests for the same sprite set cheap.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/buildinfo"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/export"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/observability"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/pipeline"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/sheet"
)

const (
	// MaxBodyBytes bounds a layout request body.
	MaxBodyBytes = 4 << 20

	// MaxSprites bounds the sprites in one layout request.
	MaxSprites = 10000

	// MaxSpriteSide bounds the width and height of each requested sprite.
	MaxSpriteSide = 1 << 16

	shutdownTimeout = 10 * time.Second
)

// Server serves layout requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New returns a server that lays out sprites with runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/methods", s.handleMethods)
		r.Post("/layout", s.handleLayout)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

type methodsResponse struct {
	SortMethods    []string `json:"sort_methods"`
	PackAlgorithms []string `json:"pack_algorithms"`
	Formats        []string `json:"formats"`
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, methodsResponse{
		SortMethods:    atlas.SortMethods(),
		PackAlgorithms: atlas.PackAlgorithms(),
		Formats:        export.Formats(),
	})
}

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Options atlas.Options   `json:"options"`
	Sprites []SpriteRequest `json:"sprites"`
}

// SpriteRequest is one sprite to place.
type SpriteRequest struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}

	sprites, err := req.sprites()
	if err != nil {
		writeError(w, r, err)
		return
	}

	var opts pipeline.Options
	opts.SetLayoutOptions(req.Options)
	opts.Logger = s.logger

	res, info, err := s.runner.LayoutGeometry(r.Context(), sprites, opts)
	if err != nil {
		s.logger.Debug("layout failed", "request_id", RequestID(r.Context()), "err", err)
		writeError(w, r, err)
		return
	}

	if info.LayoutHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	lo := opts.LayoutOptions()
	lo.Trim = false
	writeJSON(w, http.StatusOK, sheet.FromResult("", res, lo))
}

func (req LayoutRequest) sprites() ([]atlas.Sprite, error) {
	if len(req.Sprites) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one sprite is required")
	}
	if len(req.Sprites) > MaxSprites {
		return nil, errors.New(errors.ErrCodeInvalidInput, "too many sprites (max %d)", MaxSprites)
	}
	seen := make(map[string]bool, len(req.Sprites))
	out := make([]atlas.Sprite, len(req.Sprites))
	for i, sp := range req.Sprites {
		if err := errors.ValidateSpriteName(sp.Name); err != nil {
			return nil, err
		}
		if seen[sp.Name] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate sprite name %q", sp.Name)
		}
		seen[sp.Name] = true
		if sp.Width > MaxSpriteSide || sp.Height > MaxSpriteSide {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s: size %dx%d exceeds %d pixels per side", sp.Name, sp.Width, sp.Height, MaxSpriteSide)
		}
		out[i] = atlas.NewSprite(sp.Name, sp.Width, sp.Height)
	}
	return out, nil
}

// =============================================================================
// Responses
// =============================================================================

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusFor maps an error to its HTTP status: 400 for bad requests and
// configuration, 422 for layouts that cannot be produced, 500 otherwise.
func StatusFor(err error) int {
	if errors.IsConfiguration(err) {
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeDoesNotFit,
		errors.ErrCodeCanvasTooLarge,
		errors.ErrCodeIndeterminateCanvasSize,
		errors.ErrCodeOverlapViolation:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, StatusFor(err), ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
