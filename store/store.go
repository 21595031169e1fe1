// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"slices"

	"github.com/danielhkuo/ideaboard/models"
)

// Store holds the client's current view of the idea list. It is owned by a
// single goroutine and does no locking.
type Store struct {
	ideas   []models.Idea
	pending []models.Idea
}

func New() *Store {
	return &Store{}
}

// Load replaces the entire list with the server response. Display-only
// records added by Prepend are dropped.
func (s *Store) Load(ideas []models.Idea) {
	s.ideas = slices.Clone(ideas)
	s.pending = nil
}

// Replace swaps the record with the given id for rec. It returns false and
// leaves the list untouched when no record has that id.
func (s *Store) Replace(id models.ID, rec models.Idea) bool {
	replaced := false
	for i := range s.pending {
		if s.pending[i].ID == id {
			s.pending[i] = rec
			replaced = true
		}
	}
	for i := range s.ideas {
		if s.ideas[i].ID == id {
			s.ideas[i] = rec
			replaced = true
		}
	}
	return replaced
}

// Prepend shows a freshly created record ahead of the loaded list until the
// next Load.
func (s *Store) Prepend(rec models.Idea) {
	s.pending = append([]models.Idea{rec}, s.pending...)
}

// Ideas returns the list in display order
func (s *Store) Ideas() []models.Idea {
	out := make([]models.Idea, 0, len(s.pending)+len(s.ideas))
	out = append(out, s.pending...)
	return append(out, s.ideas...)
}

// Get looks up a record by id
func (s *Store) Get(id models.ID) (models.Idea, bool) {
	for _, list := range [][]models.Idea{s.pending, s.ideas} {
		for _, idea := range list {
			if idea.ID == id {
				return idea, true
			}
		}
	}
	return models.Idea{}, false
}

func (s *Store) Len() int {
	return len(s.pending) + len(s.ideas)
}
