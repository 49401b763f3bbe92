package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	httpserver "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/storage/memory"
)

const mockPath = "../../resources/hostaway-mock.json"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	src := hostaway.NewSource(nil, mockPath, nil, 0)
	store := memory.NewApprovalStore()
	q := app.NewQueryService([]domain.ReviewSource{src}, store, nil)
	a := app.NewApprovalService(store)

	s := httpserver.New()
	s.MountHandlers(&httpserver.Handlers{Q: q, A: a})
	ts := httptest.NewServer(s.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK && out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res
}

func TestHTTP_EndToEnd_ReviewsDashboard(t *testing.T) {
	ts := newTestServer(t)

	// 1. full corpus
	var payload domain.ReviewsPayload
	res := getJSON(t, ts.URL+"/api/reviews/hostaway", &payload)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("hostaway status %d", res.StatusCode)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}
	if len(payload.Reviews) != 8 {
		t.Fatalf("reviews = %d, want 8", len(payload.Reviews))
	}
	if len(payload.Filters.Listings) != 3 || len(payload.Filters.Categories) != 5 {
		t.Fatalf("facets: %+v", payload.Filters)
	}

	// listings ranked by derived average, best first
	if len(payload.Listings) != 3 {
		t.Fatalf("listings = %d", len(payload.Listings))
	}
	top := payload.Listings[0]
	if top.ListingID != "2b-n1-a-29-shoreditch-heights" {
		t.Fatalf("top listing = %s", top.ListingID)
	}
	if top.AvgOverall == nil || math.Abs(*top.AvgOverall-4.83) > 1e-9 {
		t.Fatalf("top avgOverall = %v, want 4.83", top.AvgOverall)
	}

	// derived ratings from category scores
	byID := map[string]domain.Review{}
	for _, r := range payload.Reviews {
		byID[r.ID] = r
	}
	if r := byID["hostaway:7453"]; r.Rating == nil || *r.Rating != 5.0 {
		t.Fatalf("7453 rating = %v, want 5.0", r.Rating)
	}
	if r := byID["hostaway:7702"]; r.Rating == nil || *r.Rating != 4.7 {
		t.Fatalf("7702 rating = %v, want 4.7", r.Rating)
	}
	if r := byID["hostaway:7803"]; r.Rating != nil {
		t.Fatalf("7803 rating = %v, want absent", *r.Rating)
	}

	// 2. conditional GET replays the ETag
	req, _ := http.NewRequest("GET", ts.URL+"/api/reviews/hostaway", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("conditional status %d, want 304", res2.StatusCode)
	}

	// 3. minRating filters on the derived rating, absent counting as 0
	var filtered domain.ReviewsPayload
	getJSON(t, ts.URL+"/api/reviews/hostaway?minRating=4", &filtered)
	if len(filtered.Reviews) != 5 {
		t.Fatalf("minRating=4 reviews = %d, want 5", len(filtered.Reviews))
	}

	// 4. approve one review
	body := bytes.NewBufferString(`{"reviewId": "hostaway:7518", "approved": true}`)
	resp, err := http.Post(ts.URL+"/api/reviews/approve", "application/json", body)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	var ack domain.ApprovalAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	resp.Body.Close()
	if !ack.OK || !ack.Approved || ack.ReviewID != "hostaway:7518" {
		t.Fatalf("ack: %+v", ack)
	}

	// 5. approved list honors the loose listing filter
	var approved struct {
		Approved []string `json:"approved"`
	}
	getJSON(t, ts.URL+"/api/reviews/approved?listingId=7518", &approved)
	if len(approved.Approved) != 1 || approved.Approved[0] != "hostaway:7518" {
		t.Fatalf("approved: %+v", approved.Approved)
	}

	// 6. public view: stats over the whole group, reviews approved-only
	var view domain.PublicListingView
	getJSON(t, ts.URL+"/api/reviews/website?listingId=2b-n1-a-29-shoreditch-heights", &view)
	if view.Listing == nil {
		t.Fatalf("expected listing stats")
	}
	if view.Listing.TotalReviews != 3 {
		t.Fatalf("totalReviews = %d, want 3", view.Listing.TotalReviews)
	}
	if math.Abs(view.Listing.ApprovalRate-1.0/3.0) > 1e-9 {
		t.Fatalf("approvalRate = %v, want 1/3", view.Listing.ApprovalRate)
	}
	if len(view.Reviews) != 1 || view.Reviews[0].ID != "hostaway:7518" {
		t.Fatalf("public reviews: %+v", view.Reviews)
	}

	// 7. unconfigured map integration degrades, never errors
	var gr domain.GoogleReviewsResult
	res = getJSON(t, ts.URL+"/api/reviews/google?placeId=p1", &gr)
	if res.StatusCode != http.StatusOK || gr.Enabled || gr.Reason == "" {
		t.Fatalf("google result: status=%d %+v", res.StatusCode, gr)
	}
	var sr domain.PlaceSearchResult
	getJSON(t, ts.URL+"/api/reviews/google/search?query=", &sr)
	if !sr.Enabled || sr.Candidates == nil || len(sr.Candidates) != 0 {
		t.Fatalf("search result: %+v", sr)
	}
}

func TestHTTP_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	cases := []string{
		"/api/reviews/hostaway?minRating=9",
		"/api/reviews/hostaway?from=not-a-date",
		"/api/reviews/website",
		"/api/reviews/google",
	}
	for _, path := range cases {
		res := getJSON(t, ts.URL+path, nil)
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want 400", path, res.StatusCode)
		}
	}

	res, err := http.Post(ts.URL+"/api/reviews/approve", "application/json",
		bytes.NewBufferString(`{"approved": true}`))
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("approve without reviewId status = %d, want 400", res.StatusCode)
	}
}

func TestHTTP_HealthAndUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	res := getJSON(t, ts.URL+"/healthz", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("healthz status %d", res.StatusCode)
	}

	res = getJSON(t, fmt.Sprintf("%s/api/reviews/nope", ts.URL), nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown route status %d", res.StatusCode)
	}
}
