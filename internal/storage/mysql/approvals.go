package mysql

import (
	"context"
	"database/sql"
)

// ApprovalStore is the durable approval set. Same contract as the in-memory
// store; each insert/remove is a single atomic statement, so concurrent
// operator actions cannot corrupt the set.
type ApprovalStore struct{ db *sql.DB }

func NewApprovalStore(db *sql.DB) *ApprovalStore { return &ApprovalStore{db: db} }

func (s *ApprovalStore) SetApproval(ctx context.Context, reviewID string, approved bool) error {
	if approved {
		_, err := s.db.ExecContext(ctx, approveSQL, reviewID)
		return err
	}
	_, err := s.db.ExecContext(ctx, unapproveSQL, reviewID)
	return err
}

func (s *ApprovalStore) ListApproved(ctx context.Context, listingFilter string) ([]string, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if listingFilter == "" {
		rows, err = s.db.QueryContext(ctx, listApprovedSQL)
	} else {
		rows, err = s.db.QueryContext(ctx, listApprovedFilteredSQL, listingFilter)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *ApprovalStore) Snapshot(ctx context.Context) (map[string]bool, error) {
	ids, err := s.ListApproved(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
