package app

import "flex_reviews/internal/domain"

// applyFilters keeps the reviews matching every present predicate. The
// predicates commute; matchesQuery short-circuits for speed only, never for
// correctness. Input order is preserved.
func applyFilters(in []domain.Review, q domain.ReviewQuery) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		if matchesQuery(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matchesQuery(r domain.Review, q domain.ReviewQuery) bool {
	if q.ListingID != "" && r.ListingID != q.ListingID {
		return false
	}
	if q.Channel != "" && string(r.Channel) != q.Channel {
		return false
	}
	// Both date bounds are inclusive and compare full instants.
	if q.From != nil && r.SubmittedAt.Before(*q.From) {
		return false
	}
	if q.To != nil && r.SubmittedAt.After(*q.To) {
		return false
	}
	if q.MinRating != nil {
		// An absent overall rating compares as 0 here, so any positive
		// minRating excludes it. The rating field itself stays nil.
		rating := 0.0
		if r.Rating != nil {
			rating = *r.Rating
		}
		if rating < *q.MinRating {
			return false
		}
	}
	if q.OnlyApproved && !r.Approved {
		return false
	}
	return true
}
