package realtime

import (
	"sync"
)

// Event is a change notification fanned out to a family's open sockets
type Event struct {
	Table          string `json:"table"`
	Action         string `json:"action"` // 'insert' or 'update'
	FamilyID       int64  `json:"familyId"`
	RowID          int64  `json:"rowId,omitempty"`
	ActorProfileID int64  `json:"actorProfileId,omitempty"`
}

// Hub fans change events out to subscribers grouped by family. One hub
// serves the whole process; every feature publishes through it.
type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[*subscriber]struct{}
}

type subscriber struct {
	familyID  int64
	profileID int64
	ch        chan Event
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{rooms: make(map[int64]map[*subscriber]struct{})}
}

// Subscribe registers a listener for a family's events. The returned
// channel is buffered; a subscriber that stops draining has events
// dropped rather than blocking the publisher.
func (h *Hub) Subscribe(familyID, profileID int64) (<-chan Event, func()) {
	sub := &subscriber{
		familyID:  familyID,
		profileID: profileID,
		ch:        make(chan Event, 32),
	}

	h.mu.Lock()
	room, ok := h.rooms[familyID]
	if !ok {
		room = make(map[*subscriber]struct{})
		h.rooms[familyID] = room
	}
	room[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if room, ok := h.rooms[familyID]; ok {
			delete(room, sub)
			if len(room) == 0 {
				delete(h.rooms, familyID)
			}
		}
		h.mu.Unlock()
	}

	return sub.ch, cancel
}

// Publish delivers an event to every subscriber of its family
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.rooms[event.FamilyID] {
		select {
		case sub.ch <- event:
		default:
			// Slow consumer; drop instead of blocking
		}
	}
}

// SubscriberCount reports how many sockets a family has open
func (h *Hub) SubscriberCount(familyID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[familyID])
}
