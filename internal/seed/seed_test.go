package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
	"github.com/Shivanand-hulikatti/event-lodging/internal/seed"
	"github.com/Shivanand-hulikatti/event-lodging/internal/testutil"
)

func TestDemo(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewSQLiteStore(t)

	ds, err := seed.Demo(ctx, store, "demo@lodging.test")
	require.NoError(t, err)
	require.Len(t, ds.RoomIDs, 3)

	enrollment, err := store.FindEnrollmentByUser(ctx, ds.UserID)
	require.NoError(t, err)
	ticket, err := store.FindTicketByEnrollment(ctx, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketPaid, ticket.Status)
	assert.Equal(t, ds.LodgingTicketTypeID, ticket.TicketTypeID)

	for i, roomID := range ds.RoomIDs {
		occ, err := store.FindRoomWithOccupancy(ctx, roomID)
		require.NoError(t, err)
		assert.Equal(t, i+1, occ.Capacity)
		assert.Zero(t, occ.Occupants)
	}

	_, err = seed.Demo(ctx, store, "demo@lodging.test")
	require.Error(t, err, "email is unique")
}

func TestEnrollAttendeeDefaultsToPaid(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewSQLiteStore(t)

	tt, err := store.CreateTicketType(ctx, model.TicketType{Name: "In person + hotel", IncludesHotel: true})
	require.NoError(t, err)

	userID, err := seed.EnrollAttendee(ctx, store, seed.Attendee{Email: "a@lodging.test", TicketTypeID: tt.ID})
	require.NoError(t, err)

	enrollment, err := store.FindEnrollmentByUser(ctx, userID)
	require.NoError(t, err)
	ticket, err := store.FindTicketByEnrollment(ctx, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketPaid, ticket.Status)
}
