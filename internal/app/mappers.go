package app

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"flex_reviews/internal/domain"
)

// submittedAtLayout is Hostaway's zoneless "date time" form, read as UTC.
const submittedAtLayout = "2006-01-02 15:04:05"

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeRaw dispatches on the channel tag. Unknown channels and records
// missing their variant payload are normalization failures, never a silent
// "shape assumed" fallthrough.
func normalizeRaw(raw domain.RawReview, approved map[string]bool) (domain.Review, error) {
	switch raw.Channel {
	case domain.ChannelHostaway:
		if raw.Hostaway == nil {
			return domain.Review{}, fmt.Errorf("hostaway variant missing payload: %w", domain.ErrMalformedRecord)
		}
		return normalizeHostaway(*raw.Hostaway, approved)
	case domain.ChannelGoogle:
		if raw.Google == nil {
			return domain.Review{}, fmt.Errorf("google variant missing payload: %w", domain.ErrMalformedRecord)
		}
		return normalizeGoogle(*raw.Google), nil
	default:
		return domain.Review{}, fmt.Errorf("%w: %q", domain.ErrUnknownChannel, raw.Channel)
	}
}

func normalizeHostaway(raw domain.HostawayReview, approved map[string]bool) (domain.Review, error) {
	id := fmt.Sprintf("%s:%d", domain.ChannelHostaway, raw.ID)

	// Category ratings arrive on a 0..10 scale; canonical is halved and
	// rounded half-away-from-zero to 1 decimal.
	cats := make([]domain.CategoryRating, 0, len(raw.ReviewCategory))
	for _, c := range raw.ReviewCategory {
		cats = append(cats, domain.CategoryRating{
			Category: c.Category,
			Rating:   round1(c.Rating / 2),
		})
	}

	// Overall fallback: explicit rating wins; else mean of the converted
	// categories; else absent. Never coerced to zero here.
	var overall *float64
	switch {
	case raw.Rating != nil:
		v := *raw.Rating
		overall = &v
	case len(cats) > 0:
		sum := 0.0
		for _, c := range cats {
			sum += c.Rating
		}
		v := round1(sum / float64(len(cats)))
		overall = &v
	}

	submittedAt, err := parseSubmittedAt(raw.SubmittedAt)
	if err != nil {
		return domain.Review{}, fmt.Errorf("review %s: %w", id, err)
	}

	listingID := string(raw.ListingID)
	if listingID == "" {
		listingID = slugify(raw.ListingName)
	}

	return domain.Review{
		ID:          id,
		ListingID:   listingID,
		ListingName: raw.ListingName,
		Channel:     domain.ChannelHostaway,
		Type:        domain.ReviewType(raw.Type),
		Rating:      overall,
		Categories:  cats,
		Comment:     raw.PublicReview,
		Status:      domain.ReviewStatus(raw.Status),
		SubmittedAt: submittedAt,
		GuestName:   ptrStr(raw.GuestName),
		Approved:    approved[id],
	}, nil
}

// normalizeGoogle maps one Place Details review. The approval overlay does
// not apply to this channel; ratings are assumed to already be 0..5.
func normalizeGoogle(raw domain.GoogleReview) domain.Review {
	name := raw.PlaceName
	if name == "" {
		name = "Google Place"
	}
	return domain.Review{
		ID:          fmt.Sprintf("%s:%s:%d", domain.ChannelGoogle, raw.PlaceID, raw.Position),
		ListingID:   raw.PlaceID,
		ListingName: name,
		Channel:     domain.ChannelGoogle,
		Type:        domain.TypePublic,
		Rating:      raw.Rating,
		Categories:  []domain.CategoryRating{},
		Comment:     raw.Text,
		Status:      domain.StatusPublished,
		SubmittedAt: time.Unix(raw.Time, 0).UTC(),
		GuestName:   ptrStr(raw.AuthorName),
		Approved:    false,
	}
}

func parseSubmittedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("submittedAt missing: %w", domain.ErrMalformedRecord)
	}
	t, err := time.ParseInLocation(submittedAtLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("submittedAt %q: %w", s, domain.ErrMalformedRecord)
	}
	return t, nil
}

// slugify derives a stable listing id from a listing name: lowercase, every
// run of characters outside [a-z0-9] collapsed into a single hyphen.
func slugify(name string) string {
	return slugPattern.ReplaceAllString(strings.ToLower(name), "-")
}

/********** tiny helpers **********/

// round1 and round2 round half away from zero, matching the source channels'
// arithmetic. Tests pin exact values.
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
