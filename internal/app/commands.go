package app

import (
	"context"
	"fmt"

	"flex_reviews/internal/domain"
)

// ApprovalService wraps the operator-facing approval commands. The store
// itself decides durability; this layer only shapes acknowledgments.
type ApprovalService struct {
	store domain.ApprovalStore
}

func NewApprovalService(store domain.ApprovalStore) *ApprovalService {
	return &ApprovalService{store: store}
}

func (s *ApprovalService) SetApproval(ctx context.Context, reviewID string, approved bool) (domain.ApprovalAck, error) {
	if reviewID == "" {
		return domain.ApprovalAck{}, fmt.Errorf("reviewId is required: %w", domain.ErrMalformedRecord)
	}
	if err := s.store.SetApproval(ctx, reviewID, approved); err != nil {
		return domain.ApprovalAck{}, fmt.Errorf("set approval %s: %w", reviewID, err)
	}
	return domain.ApprovalAck{OK: true, ReviewID: reviewID, Approved: approved}, nil
}

// ListApproved returns the currently approved ids. listingFilter, when given,
// is matched by loose substring containment on the composite id.
func (s *ApprovalService) ListApproved(ctx context.Context, listingFilter string) ([]string, error) {
	ids, err := s.store.ListApproved(ctx, listingFilter)
	if err != nil {
		return nil, fmt.Errorf("list approved: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
