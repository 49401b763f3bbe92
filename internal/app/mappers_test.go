package app

import (
	"errors"
	"testing"
	"time"

	"flex_reviews/internal/domain"
)

func pf(f float64) *float64 { return &f }

func baseRaw() domain.HostawayReview {
	return domain.HostawayReview{
		ID:           7453,
		Type:         "guest-to-host",
		Status:       "published",
		PublicReview: "Great stay",
		SubmittedAt:  "2020-08-21 22:45:14",
		GuestName:    "Shane Finkelstein",
		ListingName:  "2B N1 A - 29 Shoreditch Heights",
	}
}

func TestNormalizeHostaway_CategoryScaleAndOverallFallback(t *testing.T) {
	raw := baseRaw()
	raw.Rating = nil
	raw.ReviewCategory = []domain.HostawayCategory{
		{Category: "cleanliness", Rating: 8},
		{Category: "communication", Rating: 10},
	}

	rv, err := normalizeHostaway(raw, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(rv.Categories) != 2 {
		t.Fatalf("categories: %+v", rv.Categories)
	}
	if rv.Categories[0].Category != "cleanliness" || rv.Categories[0].Rating != 4.0 {
		t.Fatalf("cleanliness: %+v", rv.Categories[0])
	}
	if rv.Categories[1].Category != "communication" || rv.Categories[1].Rating != 5.0 {
		t.Fatalf("communication: %+v", rv.Categories[1])
	}
	if rv.Rating == nil || *rv.Rating != 4.5 {
		t.Fatalf("overall = %v, want 4.5", rv.Rating)
	}
}

func TestNormalizeHostaway_Identity(t *testing.T) {
	rv, err := normalizeHostaway(baseRaw(), nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rv.ID != "hostaway:7453" {
		t.Fatalf("id = %s", rv.ID)
	}
	if rv.ListingID != "2b-n1-a-29-shoreditch-heights" {
		t.Fatalf("listingId = %s", rv.ListingID)
	}
	if rv.Channel != domain.ChannelHostaway || rv.Type != domain.TypeGuestToHost || rv.Status != domain.StatusPublished {
		t.Fatalf("unexpected enums: %+v", rv)
	}
	want := time.Date(2020, 8, 21, 22, 45, 14, 0, time.UTC)
	if !rv.SubmittedAt.Equal(want) {
		t.Fatalf("submittedAt = %v, want %v", rv.SubmittedAt, want)
	}
	if rv.GuestName == nil || *rv.GuestName != "Shane Finkelstein" {
		t.Fatalf("guestName = %v", rv.GuestName)
	}
	if rv.Approved {
		t.Fatalf("approved should default to false")
	}
}

func TestNormalizeHostaway_ExplicitRatingWins(t *testing.T) {
	raw := baseRaw()
	raw.Rating = pf(3.0)
	raw.ReviewCategory = []domain.HostawayCategory{{Category: "cleanliness", Rating: 10}}

	rv, err := normalizeHostaway(raw, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rv.Rating == nil || *rv.Rating != 3.0 {
		t.Fatalf("overall = %v, want explicit 3.0", rv.Rating)
	}
}

func TestNormalizeHostaway_AbsentRatingStaysAbsent(t *testing.T) {
	raw := baseRaw()
	raw.Rating = nil
	raw.ReviewCategory = nil

	rv, err := normalizeHostaway(raw, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rv.Rating != nil {
		t.Fatalf("overall = %v, want absent (not 0)", *rv.Rating)
	}
	if rv.Categories == nil || len(rv.Categories) != 0 {
		t.Fatalf("categories should be empty, got %+v", rv.Categories)
	}
}

func TestNormalizeHostaway_ExplicitListingID(t *testing.T) {
	raw := baseRaw()
	raw.ListingID = "101"

	rv, err := normalizeHostaway(raw, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rv.ListingID != "101" {
		t.Fatalf("listingId = %s, want explicit 101", rv.ListingID)
	}
}

func TestNormalizeHostaway_ApprovalStamp(t *testing.T) {
	rv, err := normalizeHostaway(baseRaw(), map[string]bool{"hostaway:7453": true})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !rv.Approved {
		t.Fatalf("expected approved stamp from store snapshot")
	}
}

func TestNormalizeHostaway_BadTimestamp(t *testing.T) {
	for _, ts := range []string{"", "   ", "21/08/2020 22:45", "2020-08-21T22:45:14Z"} {
		raw := baseRaw()
		raw.SubmittedAt = ts
		if _, err := normalizeHostaway(raw, nil); !errors.Is(err, domain.ErrMalformedRecord) {
			t.Fatalf("submittedAt %q: want ErrMalformedRecord, got %v", ts, err)
		}
	}
}

func TestNormalizeGoogle_FixedFields(t *testing.T) {
	rv := normalizeGoogle(domain.GoogleReview{
		PlaceID:    "ChIJabc",
		PlaceName:  "Soho Lofts",
		Position:   2,
		AuthorName: "A. Writer",
		Rating:     pf(4),
		Text:       "Nice place",
		Time:       1700000000,
	})
	if rv.ID != "google:ChIJabc:2" {
		t.Fatalf("id = %s", rv.ID)
	}
	if rv.Channel != domain.ChannelGoogle || rv.Type != domain.TypePublic || rv.Status != domain.StatusPublished {
		t.Fatalf("unexpected fixed fields: %+v", rv)
	}
	if rv.Approved {
		t.Fatalf("google reviews are never approved")
	}
	if rv.Categories == nil || len(rv.Categories) != 0 {
		t.Fatalf("categories should be empty, got %+v", rv.Categories)
	}
	if rv.Rating == nil || *rv.Rating != 4 {
		t.Fatalf("rating should pass through unchanged, got %v", rv.Rating)
	}
	if want := time.Unix(1700000000, 0).UTC(); !rv.SubmittedAt.Equal(want) {
		t.Fatalf("submittedAt = %v, want %v", rv.SubmittedAt, want)
	}
}

func TestNormalizeGoogle_FallbackPlaceName(t *testing.T) {
	rv := normalizeGoogle(domain.GoogleReview{PlaceID: "p"})
	if rv.ListingName != "Google Place" {
		t.Fatalf("listingName = %s", rv.ListingName)
	}
}

func TestNormalizeRaw_ExhaustiveDispatch(t *testing.T) {
	if _, err := normalizeRaw(domain.RawReview{Channel: "fax"}, nil); !errors.Is(err, domain.ErrUnknownChannel) {
		t.Fatalf("want ErrUnknownChannel, got %v", err)
	}
	if _, err := normalizeRaw(domain.RawReview{Channel: domain.ChannelHostaway}, nil); !errors.Is(err, domain.ErrMalformedRecord) {
		t.Fatalf("want ErrMalformedRecord for missing payload, got %v", err)
	}
}

func TestRound1_HalfAwayFromZero(t *testing.T) {
	cases := []struct{ raw, want float64 }{
		{0, 0},
		{1, 0.5},
		{7, 3.5},
		{8, 4.0},
		{8.5, 4.3}, // 4.25 rounds up
		{9, 4.5},
		{10, 5.0},
	}
	for _, c := range cases {
		if got := round1(c.raw / 2); got != c.want {
			t.Fatalf("round1(%v/2) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"2B N1 A - 29 Shoreditch Heights": "2b-n1-a-29-shoreditch-heights",
		"Studio W1 C - 42 Soho Lofts":     "studio-w1-c-42-soho-lofts",
		"Héllo  Flat_5":                   "h-llo-flat-5",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
