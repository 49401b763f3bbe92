package domain

import "context"

// ReviewSource supplies raw records for one channel. Fetch is a pure read;
// implementations may cache the payload but must not mutate it.
type ReviewSource interface {
	Channel() Channel
	Fetch(ctx context.Context) ([]RawReview, error)
}

// ApprovalStore is the manually curated set of review ids fit for public
// display. SetApproval is idempotent in both directions. ListApproved applies
// a loose substring containment match against the composite id string when a
// filter is given; that looseness is a compatibility contract, not a bug.
type ApprovalStore interface {
	SetApproval(ctx context.Context, reviewID string, approved bool) error
	ListApproved(ctx context.Context, listingFilter string) ([]string, error)
	// Snapshot returns the current approved set; the normalizer takes one
	// snapshot per pipeline run so stamps reflect the store at read time.
	Snapshot(ctx context.Context) (map[string]bool, error)
}

// PlacesClient is the narrow collaborator over the map-service API. The core
// pipeline never performs network I/O directly.
type PlacesClient interface {
	PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, error)
	SearchPlaces(ctx context.Context, query string) ([]PlaceCandidate, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models for the pass-through and command surfaces.

type PlaceDetails struct {
	PlaceID string
	Name    string
	Address string
	Rating  *float64
	Total   int
	Reviews []GoogleReview
}

type PlaceSummary struct {
	Name   string   `json:"name"`
	Rating *float64 `json:"rating,omitempty"`
	Total  int      `json:"total"`
}

type PlaceCandidate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// GoogleReviewsResult degrades to {enabled:false, reason|error} instead of
// failing the request when the integration is unconfigured or the upstream
// call fails.
type GoogleReviewsResult struct {
	Enabled bool          `json:"enabled"`
	Reason  string        `json:"reason,omitempty"`
	Error   string        `json:"error,omitempty"`
	Place   *PlaceSummary `json:"place,omitempty"`
	Reviews []Review      `json:"reviews,omitempty"`
}

type PlaceSearchResult struct {
	Enabled    bool             `json:"enabled"`
	Reason     string           `json:"reason,omitempty"`
	Error      string           `json:"error,omitempty"`
	Candidates []PlaceCandidate `json:"candidates"`
}

type ApprovalAck struct {
	OK       bool   `json:"ok"`
	ReviewID string `json:"reviewId"`
	Approved bool   `json:"approved"`
}

// PublicListingView is the contract for a public single-property display:
// stats cover the listing's whole group, the review list only approved ones.
type PublicListingView struct {
	Listing *ListingStats `json:"listing"`
	Reviews []Review      `json:"reviews"`
}
