package lang

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// MaxFavorites is the number of languages that can be pinned at once.
const MaxFavorites = 5

// MsgFavoritesFull is the notice shown when pinning a language past the limit.
const MsgFavoritesFull = "[Favorites limit reached (5)]"

// ErrFavoritesFull is returned when the favorites list is at MaxFavorites.
var ErrFavoritesFull = errors.New("lang: favorites limit reached")

// Selection is the ordered favorites list plus the active language.
// The active language, when set, is always a favorite. Safe for concurrent use.
type Selection struct {
	mu        sync.Mutex
	favorites []string
	active    string
}

// NewSelection restores a selection. Unknown codes are dropped, the list is
// cut to MaxFavorites, and an active language that is not a favorite falls
// back to the first favorite.
func NewSelection(favorites []string, active string) *Selection {
	favs := Filter(favorites)
	if len(favs) > MaxFavorites {
		favs = favs[:MaxFavorites]
	}
	s := &Selection{favorites: favs}
	if slices.Contains(favs, active) {
		s.active = active
	} else if len(favs) > 0 {
		s.active = favs[0]
	}
	return s
}

// Active returns the active language code, or "" if none is selected.
func (s *Selection) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Favorites returns a copy of the favorites in pin order.
func (s *Selection) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.favorites)
}

// IsFavorite reports whether code is pinned.
func (s *Selection) IsFavorite(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.favorites, code)
}

// Add pins code. The first favorite becomes active.
func (s *Selection) Add(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(code)
}

func (s *Selection) addLocked(code string) error {
	if !Valid(code) {
		return fmt.Errorf("lang: unknown language %q", code)
	}
	if slices.Contains(s.favorites, code) {
		return nil
	}
	if len(s.favorites) >= MaxFavorites {
		return ErrFavoritesFull
	}
	s.favorites = append(s.favorites, code)
	if s.active == "" {
		s.active = code
	}
	return nil
}

// Remove unpins code. Removing the active language activates the first
// remaining favorite, or none.
func (s *Selection) Remove(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(code)
}

func (s *Selection) removeLocked(code string) bool {
	i := slices.Index(s.favorites, code)
	if i < 0 {
		return false
	}
	s.favorites = slices.Delete(s.favorites, i, i+1)
	if s.active == code {
		s.active = ""
		if len(s.favorites) > 0 {
			s.active = s.favorites[0]
		}
	}
	return true
}

// Toggle pins code if it is not a favorite and unpins it otherwise.
func (s *Selection) Toggle(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeLocked(code) {
		return nil
	}
	return s.addLocked(code)
}

// SetActive makes code the active language, pinning it first if needed.
func (s *Selection) SetActive(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addLocked(code); err != nil {
		return err
	}
	s.active = code
	return nil
}
