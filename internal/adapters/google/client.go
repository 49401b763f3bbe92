package google

import (
	"context"
	"fmt"
	"net/url"

	"flex_reviews/internal/adapters/httpapi"
	"flex_reviews/internal/domain"
)

const detailFields = "name,place_id,formatted_address,rating,user_ratings_total,reviews"
const searchFields = "place_id,name,formatted_address"

// Client talks to the Google Places web service. The Places API reports most
// failures as HTTP 200 with a non-OK status field; those are surfaced as
// errors here and degraded to structured results by the query facade.
type Client struct {
	base string
	key  string
	api  *httpapi.Client
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	return &Client{base: base, key: key, api: httpapi.New("google_places", rps, nil)}, nil
}

func (c *Client) PlaceDetails(ctx context.Context, placeID string) (domain.PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailFields)
	q.Set("key", c.key)

	var resp detailsResponse
	if err := c.api.GetJSON(ctx, c.base+"/details/json?"+q.Encode(), "place_details", &resp); err != nil {
		return domain.PlaceDetails{}, err
	}
	if resp.Status != "OK" {
		if resp.ErrorMessage != "" {
			return domain.PlaceDetails{}, fmt.Errorf("places: %s", resp.ErrorMessage)
		}
		return domain.PlaceDetails{}, fmt.Errorf("places: %s", resp.Status)
	}

	det := domain.PlaceDetails{
		PlaceID: placeID,
		Name:    resp.Result.Name,
		Address: resp.Result.FormattedAddress,
		Rating:  resp.Result.Rating,
		Total:   resp.Result.UserRatingsTotal,
	}
	det.Reviews = make([]domain.GoogleReview, 0, len(resp.Result.Reviews))
	for _, r := range resp.Result.Reviews {
		det.Reviews = append(det.Reviews, domain.GoogleReview{
			AuthorName: r.AuthorName,
			Rating:     r.Rating,
			Text:       r.Text,
			Time:       r.Time,
		})
	}
	return det, nil
}

func (c *Client) SearchPlaces(ctx context.Context, query string) ([]domain.PlaceCandidate, error) {
	q := url.Values{}
	q.Set("input", query)
	q.Set("inputtype", "textquery")
	q.Set("fields", searchFields)
	q.Set("key", c.key)

	var resp searchResponse
	if err := c.api.GetJSON(ctx, c.base+"/findplacefromtext/json?"+q.Encode(), "find_place", &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		if resp.ErrorMessage != "" {
			return nil, fmt.Errorf("places: %s", resp.ErrorMessage)
		}
		return nil, fmt.Errorf("places: %s", resp.Status)
	}
	out := make([]domain.PlaceCandidate, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		out = append(out, domain.PlaceCandidate{
			ID:      cand.PlaceID,
			Name:    cand.Name,
			Address: cand.FormattedAddress,
		})
	}
	return out, nil
}

/********** wire shapes **********/

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Name             string       `json:"name"`
		PlaceID          string       `json:"place_id"`
		FormattedAddress string       `json:"formatted_address"`
		Rating           *float64     `json:"rating"`
		UserRatingsTotal int          `json:"user_ratings_total"`
		Reviews          []wireReview `json:"reviews"`
	} `json:"result"`
}

type wireReview struct {
	AuthorName string   `json:"author_name"`
	Rating     *float64 `json:"rating"`
	Text       string   `json:"text"`
	Time       int64    `json:"time"`
}

type searchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Candidates   []struct {
		PlaceID          string `json:"place_id"`
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"candidates"`
}
