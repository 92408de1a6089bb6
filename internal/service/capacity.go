package service

import (
	"context"

	"github.com/Shivanand-hulikatti/event-lodging/internal/apperr"
	"github.com/Shivanand-hulikatti/event-lodging/internal/model"
	"github.com/Shivanand-hulikatti/event-lodging/internal/repository"
)

// LoadRoomWithOccupancy returns the room's capacity and current occupant
// count. Ids below 1 never match a room and are NotFound without a lookup.
//
// Called with the Queries of a RunInTx transaction, the room stays locked
// until that transaction ends.
func LoadRoomWithOccupancy(ctx context.Context, q repository.Queries, roomID int) (model.RoomOccupancy, error) {
	if roomID <= 0 {
		return model.RoomOccupancy{}, apperr.ErrNotFound.WithOp("find room")
	}

	occ, err := q.FindRoomWithOccupancy(ctx, roomID)
	if err != nil {
		return model.RoomOccupancy{}, storeError("find room", err)
	}
	return occ, nil
}
