package store

import (
	"sync"

	"github.com/SkyFish-bot/werewolves/internal/models"
)

// RoomStore manages room storage. It is constructed once at process start
// and passed by reference to every handler; insert on create and remove on
// host disconnect are the only lifecycle moves.
type RoomStore struct {
	rooms map[string]*models.Room
	mu    sync.RWMutex
}

// NewRoomStore creates a new room store
func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*models.Room),
	}
}

// Get retrieves a room by code
func (s *RoomStore) Get(code string) (*models.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, exists := s.rooms[code]
	return room, exists
}

// Set stores a room
func (s *RoomStore) Set(code string, room *models.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[code] = room
}

// Delete removes a room
func (s *RoomStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Exists checks if a room code is taken
func (s *RoomStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.rooms[code]
	return exists
}

// Count returns the number of active rooms
func (s *RoomStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
