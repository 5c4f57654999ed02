package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/websetgate/websetgate/internal/config"
	"github.com/websetgate/websetgate/internal/webset"
)

// Poller produces status snapshots for webset jobs.
type Poller interface {
	Poll(ctx context.Context, userID, websetID string, opts webset.PollOptions) (*webset.StatusResponse, error)
	Configured() bool
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	poller Poller
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandler constructs a Handler with the given dependencies.
func NewHandler(poller Poller, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{poller: poller, cfg: cfg, logger: logger}
}

// Router builds the full middleware chain and routes. ctx bounds the
// background work of the rate limiter.
func (h *Handler) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(Logging(h.logger))
	r.Use(CORS(h.cfg.CORSOrigins))

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(Auth([]byte(h.cfg.JWTSecret), h.cfg.JWTAudience, h.logger))
		r.With(RateLimit(ctx, h.cfg.PollRateLimit)).Get("/websets/{webset_id}/status", h.PollStatus)
	})

	return r
}

// PollStatus handles GET /websets/{webset_id}/status.
func (h *Handler) PollStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "webset_id")

	opts, err := parsePollOptions(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp, err := h.poller.Poll(r.Context(), UserID(r.Context()), id, opts)
	if err != nil {
		var ie *webset.InternalError
		switch {
		case errors.Is(err, webset.ErrServiceUnavailable):
			writeError(w, http.StatusServiceUnavailable, webset.ErrServiceUnavailable.Error())
		case errors.As(err, &ie):
			writeError(w, http.StatusInternalServerError, ie.Error())
		default:
			writeError(w, http.StatusInternalServerError, (&webset.InternalError{Err: err}).Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /health and reports whether the upstream is configured.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	websets := "unavailable"
	if h.poller.Configured() {
		websets = "configured"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "websets": websets})
}

func parsePollOptions(q url.Values) (webset.PollOptions, error) {
	opts := webset.DefaultPollOptions()

	if raw := q.Get("include_items"); raw != "" {
		v, err := parseBool(raw)
		if err != nil {
			return opts, err
		}
		opts.IncludeItems = v
	}

	if raw := q.Get("item_limit"); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return opts, errors.Newf("item_limit: invalid integer %q", raw)
		}
		if n < 1 || n > webset.MaxItemLimit {
			return opts, errors.Newf("item_limit: must be between 1 and %d", webset.MaxItemLimit)
		}
		opts.ItemLimit = n
	}

	return opts, nil
}

// parseBool accepts the usual spellings of a query-string boolean.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, errors.Newf("include_items: invalid boolean %q", s)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
