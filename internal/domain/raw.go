package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexID accepts a JSON string or number; either way the value is kept as its
// string form. Empty means the field was absent or null.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*f = ""
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = FlexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("listing id is neither string nor number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// HostawayReview is the raw record shape of the Hostaway reviews endpoint.
// Category ratings are on the 0..10 scale; SubmittedAt is a zoneless
// "YYYY-MM-DD HH:MM:SS" string interpreted as UTC during normalization.
type HostawayReview struct {
	ID             int64              `json:"id"`
	Type           string             `json:"type"`
	Status         string             `json:"status"`
	Rating         *float64           `json:"rating"`
	PublicReview   string             `json:"publicReview"`
	ReviewCategory []HostawayCategory `json:"reviewCategory"`
	SubmittedAt    string             `json:"submittedAt"`
	GuestName      string             `json:"guestName"`
	ListingName    string             `json:"listingName"`
	ListingID      FlexID             `json:"listingId"`
}

type HostawayCategory struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// GoogleReview is one raw Place Details review plus the place context needed
// for id construction. Google guarantees no stable per-review id, so Position
// (ordinal within the fetched list) is part of the identity.
type GoogleReview struct {
	PlaceID    string
	PlaceName  string
	Position   int
	AuthorName string
	Rating     *float64
	Text       string
	Time       int64 // unix seconds
}

// RawReview is the tagged per-channel variant handed to the normalizer.
// Exactly the field matching Channel is set.
type RawReview struct {
	Channel  Channel
	Hostaway *HostawayReview
	Google   *GoogleReview
}
