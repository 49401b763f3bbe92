package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"flex_reviews/internal/domain"
)

const placesDisabledReason = "Set GOOGLE_PLACES_API_KEY to enable."

// QueryService orchestrates the pipeline: load raw records from every
// registered channel source, normalize, compute the facet block over the full
// corpus, then filter and aggregate the response set.
type QueryService struct {
	sources []domain.ReviewSource
	store   domain.ApprovalStore
	places  domain.PlacesClient // nil when the integration is not configured
}

func NewQueryService(sources []domain.ReviewSource, store domain.ApprovalStore, places domain.PlacesClient) *QueryService {
	return &QueryService{sources: sources, store: store, places: places}
}

func (s *QueryService) GetReviews(ctx context.Context, q domain.ReviewQuery) (domain.ReviewsPayload, error) {
	corpus, err := s.loadCorpus(ctx)
	if err != nil {
		return domain.ReviewsPayload{}, err
	}
	meta := filtersMeta(corpus)
	filtered := applyFilters(corpus, q)
	return domain.ReviewsPayload{
		Reviews:  filtered,
		Listings: aggregateListings(filtered),
		Filters:  meta,
	}, nil
}

// GetPublicListingView returns the data for a public single-property page:
// the listing's stats computed over its whole group (so approvalRate still
// counts unapproved reviews) and the approved reviews only.
func (s *QueryService) GetPublicListingView(ctx context.Context, listingID string) (domain.PublicListingView, error) {
	payload, err := s.GetReviews(ctx, domain.ReviewQuery{ListingID: listingID})
	if err != nil {
		return domain.PublicListingView{}, err
	}
	view := domain.PublicListingView{Reviews: make([]domain.Review, 0, len(payload.Reviews))}
	if len(payload.Listings) > 0 {
		st := payload.Listings[0]
		view.Listing = &st
	}
	for _, r := range payload.Reviews {
		if r.Approved {
			view.Reviews = append(view.Reviews, r)
		}
	}
	return view, nil
}

// loadCorpus fans raw loading out across sources, takes one approval snapshot
// for the whole pass, and normalizes. A record that fails normalization is
// dropped with a warn log; it never reaches the canonical corpus.
func (s *QueryService) loadCorpus(ctx context.Context) ([]domain.Review, error) {
	approved, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("approval snapshot: %w", err)
	}

	batches := make([][]domain.RawReview, len(s.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			raws, err := src.Fetch(gctx)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", src.Channel(), err)
			}
			batches[i] = raws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corpus := make([]domain.Review, 0)
	for _, batch := range batches {
		for _, raw := range batch {
			rv, err := normalizeRaw(raw, approved)
			if err != nil {
				log.Warn().Err(err).Str("channel", string(raw.Channel)).Msg("dropping unnormalizable review")
				continue
			}
			corpus = append(corpus, rv)
		}
	}
	return corpus, nil
}

// filtersMeta builds the UI facet descriptor from the full unfiltered corpus:
// distinct channels, listing id/name pairs and category labels in first-seen
// order, plus the global submission range.
func filtersMeta(corpus []domain.Review) domain.FiltersMeta {
	meta := domain.FiltersMeta{
		Channels:   []string{},
		Listings:   []domain.ListingRef{},
		Categories: []string{},
	}
	seenChannel := make(map[string]bool)
	seenListing := make(map[string]bool)
	seenCategory := make(map[string]bool)
	for _, r := range corpus {
		if ch := string(r.Channel); !seenChannel[ch] {
			seenChannel[ch] = true
			meta.Channels = append(meta.Channels, ch)
		}
		if !seenListing[r.ListingID] {
			seenListing[r.ListingID] = true
			meta.Listings = append(meta.Listings, domain.ListingRef{ID: r.ListingID, Name: r.ListingName})
		}
		for _, c := range r.Categories {
			if !seenCategory[c.Category] {
				seenCategory[c.Category] = true
				meta.Categories = append(meta.Categories, c.Category)
			}
		}
		t := r.SubmittedAt
		if meta.DateRange.Min == nil || t.Before(*meta.DateRange.Min) {
			tt := t
			meta.DateRange.Min = &tt
		}
		if meta.DateRange.Max == nil || t.After(*meta.DateRange.Max) {
			tt := t
			meta.DateRange.Max = &tt
		}
	}
	return meta
}

// GoogleReviews passes one place's reviews through normalization. Missing
// credential and upstream failures both degrade to a structured result.
func (s *QueryService) GoogleReviews(ctx context.Context, placeID string) domain.GoogleReviewsResult {
	if s.places == nil {
		return domain.GoogleReviewsResult{Reason: placesDisabledReason}
	}
	det, err := s.places.PlaceDetails(ctx, placeID)
	if err != nil {
		return domain.GoogleReviewsResult{Error: err.Error()}
	}
	reviews := make([]domain.Review, 0, len(det.Reviews))
	for i, raw := range det.Reviews {
		raw.PlaceID = placeID
		raw.PlaceName = det.Name
		raw.Position = i
		reviews = append(reviews, normalizeGoogle(raw))
	}
	return domain.GoogleReviewsResult{
		Enabled: true,
		Place:   &domain.PlaceSummary{Name: det.Name, Rating: det.Rating, Total: det.Total},
		Reviews: reviews,
	}
}

func (s *QueryService) SearchPlaces(ctx context.Context, query string) domain.PlaceSearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		// An empty query short-circuits before the credential check so the
		// dashboard's empty search box never renders a disabled banner.
		return domain.PlaceSearchResult{Enabled: true, Candidates: []domain.PlaceCandidate{}}
	}
	if s.places == nil {
		return domain.PlaceSearchResult{Reason: placesDisabledReason}
	}
	candidates, err := s.places.SearchPlaces(ctx, query)
	if err != nil {
		return domain.PlaceSearchResult{Error: err.Error()}
	}
	if candidates == nil {
		candidates = []domain.PlaceCandidate{}
	}
	return domain.PlaceSearchResult{Enabled: true, Candidates: candidates}
}
