// Package conversation implements the chat-side core of the client: the
// ordered message log, the editable pending-operation draft, inbound message
// decoding and the confirm/cancel reconciliation with the backend.
package conversation

import "github.com/dmitrijs2005/moneytalk/internal/client/models"

// Store is an ordered, in-memory chat transcript with identity-based lookup.
// Index order equals chronological order: Append adds the newest message,
// Prepend inserts an older batch (itself already in chronological order) at
// the front. The store never touches the network.
//
// All mutations happen on the single UI/event goroutine; no locking.
type Store struct {
	msgs []models.Message
}

func NewStore() *Store {
	return &Store{}
}

// Reset replaces the whole transcript (first history load).
func (s *Store) Reset(msgs []models.Message) {
	s.msgs = append(s.msgs[:0:0], msgs...)
}

// Append adds the newest message at the end.
func (s *Store) Append(m models.Message) {
	s.msgs = append(s.msgs, m)
}

// Prepend inserts an older batch in front of the current transcript.
func (s *Store) Prepend(batch []models.Message) {
	if len(batch) == 0 {
		return
	}
	merged := make([]models.Message, 0, len(batch)+len(s.msgs))
	merged = append(merged, batch...)
	merged = append(merged, s.msgs...)
	s.msgs = merged
}

// RemoveByID removes the message with the given id and returns it together
// with the index it occupied, so callers can restore it after a failed
// optimistic removal.
func (s *Store) RemoveByID(id string) (models.Message, int, bool) {
	for i, m := range s.msgs {
		if m.ID == id {
			s.msgs = append(s.msgs[:i], s.msgs[i+1:]...)
			return m, i, true
		}
	}
	return models.Message{}, 0, false
}

// Insert places m at index i, shifting later messages right. Out-of-range
// indexes clamp to the nearest end.
func (s *Store) Insert(i int, m models.Message) {
	if i < 0 {
		i = 0
	}
	if i > len(s.msgs) {
		i = len(s.msgs)
	}
	s.msgs = append(s.msgs, models.Message{})
	copy(s.msgs[i+1:], s.msgs[i:])
	s.msgs[i] = m
}

// ReplaceByID swaps the stored message with the given id for m. Used when a
// client placeholder id is exchanged for a server id, or when a message's
// payload changes (query-result pagination).
func (s *Store) ReplaceByID(id string, m models.Message) bool {
	for i := range s.msgs {
		if s.msgs[i].ID == id {
			s.msgs[i] = m
			return true
		}
	}
	return false
}

// Get returns the message with the given id.
func (s *Store) Get(id string) (models.Message, bool) {
	for _, m := range s.msgs {
		if m.ID == id {
			return m, true
		}
	}
	return models.Message{}, false
}

// Last returns the newest message.
func (s *Store) Last() (models.Message, bool) {
	if len(s.msgs) == 0 {
		return models.Message{}, false
	}
	return s.msgs[len(s.msgs)-1], true
}

// OldestID returns the id of the oldest message, used as the paging cursor
// when loading older history.
func (s *Store) OldestID() (string, bool) {
	if len(s.msgs) == 0 {
		return "", false
	}
	return s.msgs[0].ID, true
}

func (s *Store) Len() int {
	return len(s.msgs)
}

// Messages returns a copy of the transcript in chronological order.
func (s *Store) Messages() []models.Message {
	out := make([]models.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}
