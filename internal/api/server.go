package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/suavecitoo1998-ship-it/Santa/internal/models"
	"github.com/suavecitoo1998-ship-it/Santa/internal/service"
	"github.com/suavecitoo1998-ship-it/Santa/internal/share"
)

// Server provides the HTTP API and serves the web UI.
type Server struct {
	svc    *service.Service
	logger *logrus.Logger
	mux    *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, logger *logrus.Logger) *Server {
	s := &Server{svc: svc, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	// API – Wishlist
	s.mux.HandleFunc("GET /api/wishes", s.handleGetWishes)
	s.mux.HandleFunc("POST /api/wishes", s.handleAddWish)
	s.mux.HandleFunc("PUT /api/wishes/{id}/purchased", s.handleTogglePurchased)
	s.mux.HandleFunc("POST /api/wishes/{id}/magic", s.handleMagic)
	s.mux.HandleFunc("DELETE /api/wishes/{id}", s.handleDeleteWish)

	// API – Sharing
	s.mux.HandleFunc("GET /api/letter", s.handleLetter)
	s.mux.HandleFunc("GET /api/share", s.handleShare)

	// Operational endpoints
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	// Web UI
	s.mux.HandleFunc("GET /", s.handleIndex)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// ---------------------------------------------------------------------------
// Wishlist
// ---------------------------------------------------------------------------

// wishlistResponse is the snapshot returned by GET /api/wishes: the full
// item list plus the derived total, so the client never computes its own.
type wishlistResponse struct {
	Items      []models.WishItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
}

type addWishRequest struct {
	Title string `json:"title"`
	Price string `json:"price"` // free text, parsed leniently by the engine
	URL   string `json:"url"`
}

func (s *Server) handleGetWishes(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, wishlistResponse{
		Items:      s.svc.Items(),
		TotalPrice: s.svc.TotalPrice(),
	})
}

func (s *Server) handleAddWish(w http.ResponseWriter, r *http.Request) {
	var req addWishRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	item := s.svc.Add(req.Title, req.Price, req.URL)
	if item == nil {
		// The engine re-checks the title on its own; reaching this means
		// the request slipped past the check above.
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	s.respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleTogglePurchased(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.respondError(w, http.StatusBadRequest, "missing wish id")
		return
	}

	s.svc.TogglePurchased(id)
	s.respondJSON(w, http.StatusOK, wishlistResponse{
		Items:      s.svc.Items(),
		TotalPrice: s.svc.TotalPrice(),
	})
}

func (s *Server) handleMagic(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.respondError(w, http.StatusBadRequest, "missing wish id")
		return
	}

	if s.svc.BeginEnrichment(id) {
		s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
		return
	}
	// Missing, purchased or already pending: nothing was issued.
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "unchanged"})
}

func (s *Server) handleDeleteWish(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.respondError(w, http.StatusBadRequest, "missing wish id")
		return
	}

	s.svc.Delete(id)
	s.respondJSON(w, http.StatusNoContent, nil)
}

// ---------------------------------------------------------------------------
// Sharing
// ---------------------------------------------------------------------------

type shareResponse struct {
	Text        string `json:"text"`
	WhatsAppURL string `json:"whatsapp_url"`
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	text := share.Letter(s.svc.Items(), s.svc.TotalPrice())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		s.logger.WithError(err).Error("failed to write letter response")
	}
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	text := share.Letter(s.svc.Items(), s.svc.TotalPrice())
	s.respondJSON(w, http.StatusOK, shareResponse{
		Text:        text,
		WhatsAppURL: share.WhatsAppURL(text),
	})
}

// ---------------------------------------------------------------------------
// Health & web UI
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":                "ok",
		"wishes":                len(s.svc.Items()),
		"enrichments_in_flight": s.svc.InFlight(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Only serve the index page for the root path; return 404 for unknown
	// paths so the API is not accidentally shadowed.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tmpl, err := template.ParseFiles("web/templates/index.html")
	if err != nil {
		s.logger.WithError(err).Error("failed to parse index template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, nil); err != nil {
		s.logger.WithError(err).Error("failed to execute index template")
	}
}
