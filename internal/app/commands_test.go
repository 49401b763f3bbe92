package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/storage/memory"
)

func TestApproval_RoundTrip(t *testing.T) {
	svc := app.NewApprovalService(memory.NewApprovalStore())
	ctx := context.Background()

	ack, err := svc.SetApproval(ctx, "hostaway:7453", true)
	require.NoError(t, err)
	require.True(t, ack.OK)
	require.Equal(t, "hostaway:7453", ack.ReviewID)
	require.True(t, ack.Approved)

	ids, err := svc.ListApproved(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"hostaway:7453"}, ids)

	ack, err = svc.SetApproval(ctx, "hostaway:7453", false)
	require.NoError(t, err)
	require.False(t, ack.Approved)

	ids, err = svc.ListApproved(ctx, "")
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestApproval_UnapproveIsIdempotent(t *testing.T) {
	svc := app.NewApprovalService(memory.NewApprovalStore())
	ctx := context.Background()

	// unapproving an id that was never approved is a no-op
	_, err := svc.SetApproval(ctx, "hostaway:1", false)
	require.NoError(t, err)

	_, err = svc.SetApproval(ctx, "hostaway:2", true)
	require.NoError(t, err)
	_, err = svc.SetApproval(ctx, "hostaway:2", true)
	require.NoError(t, err)

	ids, err := svc.ListApproved(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"hostaway:2"}, ids)
}

func TestApproval_ListFilterIsSubstringMatch(t *testing.T) {
	svc := app.NewApprovalService(memory.NewApprovalStore())
	ctx := context.Background()

	for _, id := range []string{"hostaway:7453", "hostaway:7518", "google:abc:0"} {
		_, err := svc.SetApproval(ctx, id, true)
		require.NoError(t, err)
	}

	ids, err := svc.ListApproved(ctx, "745")
	require.NoError(t, err)
	require.Equal(t, []string{"hostaway:7453"}, ids)

	ids, err = svc.ListApproved(ctx, "hostaway")
	require.NoError(t, err)
	require.Equal(t, []string{"hostaway:7453", "hostaway:7518"}, ids)

	ids, err = svc.ListApproved(ctx, "nope")
	require.NoError(t, err)
	require.NotNil(t, ids)
	require.Empty(t, ids)
}

func TestApproval_EmptyIDRejected(t *testing.T) {
	svc := app.NewApprovalService(memory.NewApprovalStore())

	_, err := svc.SetApproval(context.Background(), "", true)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrMalformedRecord)
}
