// Package precheck implements C7, the pre-run checker: rejecting snapshots
// where two slots in the same room overlap. A violation is fatal and
// aborts before any scheduling work (spec §4.7).
package precheck

import (
	"fmt"
	"sort"

	"github.com/bjornarhem/bips/internal/bipserrors"
	"github.com/bjornarhem/bips/internal/domain"
)

// NoRoomOverlap groups slots by room, sorts each room's slots by start
// time, and asserts pairwise non-overlap (prev.End <= next.Start). Returns
// a bipserrors.CategoryInput error identifying the offending room and
// slots on the first violation found.
func NoRoomOverlap(slots []domain.Slot) error {
	byRoom := make(map[domain.RoomID][]domain.Slot)
	for _, s := range slots {
		byRoom[s.Room] = append(byRoom[s.Room], s)
	}

	rooms := make([]domain.RoomID, 0, len(byRoom))
	for room := range byRoom {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i] < rooms[j] })

	for _, room := range rooms {
		roomSlots := byRoom[room]
		sort.Slice(roomSlots, func(i, j int) bool { return roomSlots[i].Start.Before(roomSlots[j].Start) })
		for i := 0; i < len(roomSlots)-1; i++ {
			if roomSlots[i].End.After(roomSlots[i+1].Start) {
				return bipserrors.WrapInput(fmt.Errorf(
					"room %d: slot %d (%s-%s) overlaps slot %d (%s-%s)",
					room,
					roomSlots[i].ID, roomSlots[i].Start, roomSlots[i].End,
					roomSlots[i+1].ID, roomSlots[i+1].Start, roomSlots[i+1].End,
				))
			}
		}
	}
	return nil
}
