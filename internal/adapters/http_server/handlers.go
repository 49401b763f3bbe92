// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	A *app.ApprovalService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api/reviews", func(r chi.Router) {
		r.Get("/hostaway", h.getHostaway)
		r.Post("/approve", h.approve)
		r.Get("/approved", h.listApproved)
		r.Get("/website", h.website)
		r.Get("/google", h.googleReviews)
		r.Get("/google/search", h.googleSearch)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

/********** boundary parsing **********/

// parseBoolish normalizes the truthy/falsy string forms the dashboard sends.
// Unrecognized values are treated as absent, not as an error.
func parseBoolish(v string) *bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		b := true
		return &b
	case "false", "0", "no", "off", "":
		b := false
		return &b
	}
	return nil
}

// parseInstant accepts RFC3339 or a bare date (read as midnight UTC).
func parseInstant(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func parseReviewQuery(r *http.Request) (domain.ReviewQuery, *problem) {
	qs := r.URL.Query()
	q := domain.ReviewQuery{
		ListingID: qs.Get("listingId"),
		Channel:   qs.Get("channel"),
	}
	if v := qs.Get("from"); v != "" {
		t, err := parseInstant(v)
		if err != nil {
			return q, &problem{Status: http.StatusBadRequest, Title: "Invalid from", Detail: "from must be an ISO-8601 date or instant"}
		}
		q.From = &t
	}
	if v := qs.Get("to"); v != "" {
		t, err := parseInstant(v)
		if err != nil {
			return q, &problem{Status: http.StatusBadRequest, Title: "Invalid to", Detail: "to must be an ISO-8601 date or instant"}
		}
		q.To = &t
	}
	if v := qs.Get("minRating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 5 {
			return q, &problem{Status: http.StatusBadRequest, Title: "Invalid minRating", Detail: "minRating must be a number in [0,5]"}
		}
		q.MinRating = &f
	}
	if b := parseBoolish(qs.Get("onlyApproved")); b != nil {
		q.OnlyApproved = *b
	}
	return q, nil
}

/********** handlers **********/

func (h *Handlers) getHostaway(w http.ResponseWriter, r *http.Request) {
	q, p := parseReviewQuery(r)
	if p != nil {
		writeProblem(w, p.Status, p.Title, p.Detail)
		return
	}
	payload, err := h.Q.GetReviews(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("corpus query failed")
		writeProblem(w, http.StatusBadGateway, "Upstream Failure", "could not load review corpus")
		return
	}
	writeWithETag(w, r, payload)
}

func (h *Handlers) approve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReviewID string `json:"reviewId"`
		Approved bool   `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected JSON {reviewId, approved}")
		return
	}
	if strings.TrimSpace(body.ReviewID) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "reviewId is required")
		return
	}
	ack, err := h.A.SetApproval(r.Context(), body.ReviewID, body.Approved)
	if err != nil {
		log.Error().Err(err).Str("reviewId", body.ReviewID).Msg("set approval failed")
		writeProblem(w, http.StatusInternalServerError, "Approval Failed", "could not persist approval")
		return
	}
	writeJSON(w, http.StatusOK, ack)
}

func (h *Handlers) listApproved(w http.ResponseWriter, r *http.Request) {
	ids, err := h.A.ListApproved(r.Context(), r.URL.Query().Get("listingId"))
	if err != nil {
		log.Error().Err(err).Msg("list approved failed")
		writeProblem(w, http.StatusInternalServerError, "Approval Failed", "could not list approvals")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"approved": ids})
}

func (h *Handlers) website(w http.ResponseWriter, r *http.Request) {
	listingID := r.URL.Query().Get("listingId")
	if listingID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid listingId", "listingId is required")
		return
	}
	view, err := h.Q.GetPublicListingView(r.Context(), listingID)
	if err != nil {
		log.Error().Err(err).Msg("public listing view failed")
		writeProblem(w, http.StatusBadGateway, "Upstream Failure", "could not load review corpus")
		return
	}
	writeWithETag(w, r, view)
}

func (h *Handlers) googleReviews(w http.ResponseWriter, r *http.Request) {
	placeID := r.URL.Query().Get("placeId")
	if placeID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid placeId", "placeId is required")
		return
	}
	// Disabled/upstream failures are structured results, always 200.
	writeJSON(w, http.StatusOK, h.Q.GoogleReviews(r.Context(), placeID))
}

func (h *Handlers) googleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Q.SearchPlaces(r.Context(), r.URL.Query().Get("query")))
}
