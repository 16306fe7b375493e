package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/pokedex/pkg/client"
	"github.com/Sternrassler/pokedex/pkg/logging"
	"github.com/Sternrassler/pokedex/pkg/metrics"
	"github.com/Sternrassler/pokedex/pkg/pagination"
	"github.com/Sternrassler/pokedex/pkg/pokemon"
)

// pageSource is what the HTTP handlers need from pagination.Loader.
type pageSource interface {
	LoadPage(ctx context.Context, offset, limit int) ([]pokemon.Pokemon, error)
	LoadByID(ctx context.Context, id int) (pokemon.Pokemon, error)
}

// serve: JSON API over pages and details.
func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve Pokémon pages and details as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           newServer(a.loader, a.redis).routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(cmd.Context(), srv, a.logger)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Starting pokedex server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down pokedex server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type server struct {
	loader pageSource
	redis  *redis.Client // nil without response cache
	logger zerolog.Logger
}

func newServer(loader pageSource, rdb *redis.Client) *server {
	return &server{
		loader: loader,
		redis:  rdb,
		logger: logging.NewLogger("server"),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /pokemon", s.handleList)
	mux.HandleFunc("GET /pokemon/{id}", s.handleShow)
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// handleReady fails while the configured cache is unreachable.
func (s *server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("Readiness check failed")
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// pageResponse is one page plus the offset of the page after it.
type pageResponse struct {
	pagination.Page

	// Next is nil once the ceiling is reached.
	Next *int `json:"next"`
}

// handleList serves GET /pokemon?offset=N with the page Plan computes for N.
func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid offset %q", raw))
			return
		}
		offset = n
	}

	req, err := pagination.Plan(pagination.PageState{
		Offset:         offset,
		PageSize:       pagination.DefaultPageSize,
		TotalAvailable: pagination.MaxRecords,
	})
	if errors.Is(err, pagination.ErrExhausted) {
		writeJSON(w, http.StatusOK, pageResponse{
			Page: pagination.Page{Request: pagination.Request{Offset: offset, Terminal: true}, Records: []pokemon.Pokemon{}},
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.loader.LoadPage(r.Context(), req.Offset, req.Limit)
	if err != nil {
		logger := logging.WithPage(s.logger, req.Offset, req.Limit)
		logger.Error().Err(err).Msg("Page load failed")
		writeError(w, http.StatusBadGateway, "failed to load page")
		return
	}

	resp := pageResponse{Page: pagination.Page{Request: req, Records: records}}
	if !req.Terminal {
		next := req.Offset + req.Limit
		resp.Next = &next
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleShow serves GET /pokemon/{id}.
func (s *server) handleShow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", r.PathValue("id")))
		return
	}

	p, err := s.loader.LoadByID(r.Context(), id)
	switch {
	case errors.Is(err, client.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("pokemon %d not found", id))
	case err != nil:
		s.logger.Error().Err(err).Int("id", id).Msg("Detail load failed")
		writeError(w, http.StatusBadGateway, "failed to load pokemon")
	default:
		writeJSON(w, http.StatusOK, p)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
