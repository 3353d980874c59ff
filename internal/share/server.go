package share

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// MaxBodyBytes limits POST payloads.
const MaxBodyBytes = 1 << 20

// Error codes returned in error bodies.
const (
	CodeInvalidPayload = "INVALID_PAYLOAD"
	CodeNotFound       = "NOT_FOUND"
	CodeRateLimited    = "RATE_LIMITED"
)

// Server exposes a Store over HTTP.
type Server struct {
	store   *Store
	log     logrus.FieldLogger
	limiter *rate.Limiter
}

// NewServer creates a Server for store.
func NewServer(store *Store, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{store: store, log: log, limiter: rate.NewLimiter(rate.Inf, 1)}
}

// SetRateLimit caps snapshot creation at perSecond requests with the given
// burst. perSecond <= 0 removes the cap.
func (s *Server) SetRateLimit(perSecond float64, burst int) {
	if perSecond <= 0 {
		s.limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	if burst < 1 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Routes returns a chi.Router with the health and snapshot endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(MaxBodyBytes))

	r.Get("/health", s.health)
	r.Route("/api/share-snapshots", func(r chi.Router) {
		r.Post("/", s.create)
		r.Get("/{id}", s.get)
		r.Delete("/{id}", s.delete)
	})
	return r
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type createRequest struct {
	ReportModel json.RawMessage `json:"reportModel"`
	Meta        map[string]any  `json:"meta"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: CodeRateLimited, Message: "too many snapshots, retry later"})
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: CodeInvalidPayload, Message: "request body must be a JSON object"})
		return
	}
	report, ok := decodeObject(req.ReportModel)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: CodeInvalidPayload, Message: "reportModel must be an object"})
		return
	}

	id := s.store.Save(report, req.Meta)
	s.log.WithField("id", id).Debug("share snapshot saved")
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: CodeNotFound, Message: "snapshot not found"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(chi.URLParam(r, "id")) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: CodeNotFound, Message: "snapshot not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
