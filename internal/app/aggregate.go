package app

import (
	"sort"

	"flex_reviews/internal/domain"
)

// aggregateListings groups reviews by listing id and computes the summary
// statistics. The group's display name is the listingName of the first review
// seen for that id. Category averages only count the reviews that carry the
// category, so a category present on one review of N is that review's value
// exactly.
func aggregateListings(in []domain.Review) []domain.ListingStats {
	type group struct {
		name  string
		items []domain.Review
	}
	order := make([]string, 0)
	groups := make(map[string]*group)
	for _, r := range in {
		g, ok := groups[r.ListingID]
		if !ok {
			g = &group{name: r.ListingName}
			groups[r.ListingID] = g
			order = append(order, r.ListingID)
		}
		g.items = append(g.items, r)
	}

	out := make([]domain.ListingStats, 0, len(order))
	for _, id := range order {
		g := groups[id]

		var ratingSum float64
		rated := 0
		catSum := make(map[string]float64)
		catCount := make(map[string]int)
		approvedCount := 0
		for _, r := range g.items {
			if r.Rating != nil {
				ratingSum += *r.Rating
				rated++
			}
			for _, c := range r.Categories {
				catSum[c.Category] += c.Rating
				catCount[c.Category]++
			}
			if r.Approved {
				approvedCount++
			}
		}

		st := domain.ListingStats{
			ListingID:    id,
			ListingName:  g.name,
			TotalReviews: len(g.items),
			ByCategory:   make(map[string]float64, len(catSum)),
			ApprovalRate: float64(approvedCount) / float64(len(g.items)),
		}
		if rated > 0 {
			avg := round2(ratingSum / float64(rated))
			st.AvgOverall = &avg
		}
		for cat, sum := range catSum {
			st.ByCategory[cat] = round2(sum / float64(catCount[cat]))
		}
		out = append(out, st)
	}

	// Descending by avgOverall; an absent average ranks as 0 for the
	// comparison only, the field itself stays nil.
	sort.SliceStable(out, func(i, j int) bool {
		return overallSortKey(out[i]) > overallSortKey(out[j])
	})
	return out
}

func overallSortKey(s domain.ListingStats) float64 {
	if s.AvgOverall == nil {
		return 0
	}
	return *s.AvgOverall
}
