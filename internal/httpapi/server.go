// Package httpapi exposes the content service over a local REST API, for
// frontends that speak HTTP instead of MCP stdio. Both transports are
// thin layers over the same service; there is no addressing logic here.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dshills/docview-mcp/internal/service"
	"github.com/dshills/docview-mcp/pkg/types"
)

// Server serves the REST API.
type Server struct {
	service   *service.Service
	chunkSize int // default when requests omit chunk_size
	logger    *slog.Logger
}

// NewServer creates a REST server over the given content service.
// A nil logger discards log output.
func NewServer(svc *service.Service, defaultChunkSize int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{service: svc, chunkSize: defaultChunkSize, logger: logger}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/content", s.handlePutContent)
		r.Post("/content/file", s.handleLoadFile)
		r.Get("/content/{id}", s.handleGetInfo)
		r.Get("/content/{id}/chunks/{index}", s.handleGetChunk)
		r.Get("/content/{id}/chunks", s.handleGetChunkAt)
		r.Get("/content/{id}/full", s.handleGetAll)
		r.Post("/content/{id}/format", s.handleFormat)
		r.Delete("/content/{id}", s.handleClear)
		r.Get("/transforms", s.handleListTransforms)
	})

	return r
}

// ListenAndServe runs the API until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type putContentRequest struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	ChunkSize int    `json:"chunk_size"`
}

func (s *Server) handlePutContent(w http.ResponseWriter, r *http.Request) {
	var req putContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ChunkSize == 0 {
		req.ChunkSize = s.chunkSize
	}

	info, err := s.service.PutContent(r.Context(), req.ID, types.KindRaw, req.Text, req.ChunkSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

type loadFileRequest struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	ChunkSize int    `json:"chunk_size"`
}

func (s *Server) handleLoadFile(w http.ResponseWriter, r *http.Request) {
	var req loadFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}
	if req.ChunkSize == 0 {
		req.ChunkSize = s.chunkSize
	}

	info, err := s.service.PutFile(r.Context(), req.ID, req.Path, req.ChunkSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (s *Server) handleGetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetInfo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleGetChunk(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "chunk index must be an integer")
		return
	}

	resp, err := s.service.FetchChunk(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetChunkAt serves offset-addressed requests; the offset is
// normalized to its owning chunk index by the service.
func (s *Server) handleGetChunkAt(w http.ResponseWriter, r *http.Request) {
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset query parameter must be an integer")
		return
	}

	resp, err := s.service.FetchChunkAt(r.Context(), chi.URLParam(r, "id"), offset)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAll(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.FetchAll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type formatRequest struct {
	Transform string `json:"transform"`
	ChunkSize int    `json:"chunk_size"` // zero inherits the source's
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info, err := s.service.Format(r.Context(), chi.URLParam(r, "id"), req.Transform, req.ChunkSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.service.Clear(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTransforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"transforms": s.service.Transforms()})
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeServiceError maps service failures onto HTTP status codes. Transform
// failures are the expected, user-actionable case and carry the transform's
// own message through.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var terr *types.TransformError
	switch {
	case errors.As(err, &terr):
		writeError(w, http.StatusUnprocessableEntity, terr.Error())
	case errors.Is(err, types.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrOutOfRange):
		writeError(w, http.StatusRequestedRangeNotSatisfiable, err.Error())
	case errors.Is(err, types.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, types.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
