package domain

import "time"

// Channel identifies the system a raw review record came from.
type Channel string

const (
	ChannelHostaway Channel = "hostaway"
	ChannelGoogle   Channel = "google"
	ChannelAirbnb   Channel = "airbnb"
	ChannelBooking  Channel = "booking"
)

type ReviewType string

const (
	TypeHostToGuest ReviewType = "host-to-guest"
	TypeGuestToHost ReviewType = "guest-to-host"
	TypePublic      ReviewType = "public"
)

type ReviewStatus string

const (
	StatusPublished ReviewStatus = "published"
	StatusHidden    ReviewStatus = "hidden"
	StatusPending   ReviewStatus = "pending"
)

// CategoryRating is one sub-score (e.g. cleanliness) on the canonical 0..5 scale.
type CategoryRating struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// Review is the canonical channel-agnostic review. Rating is nil when the
// source carried no overall score and none could be derived from categories.
// Approved is stamped from the approval store at normalization time and is
// never persisted on the review itself.
type Review struct {
	ID          string           `json:"id"`
	ListingID   string           `json:"listingId"`
	ListingName string           `json:"listingName"`
	Channel     Channel          `json:"channel"`
	Type        ReviewType       `json:"type"`
	Rating      *float64         `json:"rating"`
	Categories  []CategoryRating `json:"categories"`
	Comment     string           `json:"comment"`
	Status      ReviewStatus     `json:"status"`
	SubmittedAt time.Time        `json:"submittedAt"`
	GuestName   *string          `json:"guestName"`
	Approved    bool             `json:"approved"`
}

// ListingStats are per-listing aggregates over a review set. AvgOverall is
// nil when no review in the group carries an overall rating.
type ListingStats struct {
	ListingID    string             `json:"listingId"`
	ListingName  string             `json:"listingName"`
	TotalReviews int                `json:"totalReviews"`
	AvgOverall   *float64           `json:"avgOverall"`
	ByCategory   map[string]float64 `json:"byCategory"`
	ApprovalRate float64            `json:"approvalRate"`
}

type ListingRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DateRange struct {
	Min *time.Time `json:"min"`
	Max *time.Time `json:"max"`
}

// FiltersMeta is the facet block for the dashboard UI. It is always computed
// over the full unfiltered corpus so facets stay stable as filters change.
type FiltersMeta struct {
	Channels   []string     `json:"channels"`
	Listings   []ListingRef `json:"listings"`
	Categories []string     `json:"categories"`
	DateRange  DateRange    `json:"dateRange"`
}

type ReviewsPayload struct {
	Reviews  []Review       `json:"reviews"`
	Listings []ListingStats `json:"listings"`
	Filters  FiltersMeta    `json:"filters"`
}

// ReviewQuery is the filter set for corpus queries. Zero values mean "not
// filtered on". All present predicates combine by logical AND.
type ReviewQuery struct {
	ListingID    string
	Channel      string
	From         *time.Time // inclusive
	To           *time.Time // inclusive
	MinRating    *float64   // absent review rating compares as 0
	OnlyApproved bool
}
