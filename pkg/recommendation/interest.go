package recommendation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownInterest = errors.New("unknown interest")

type Interest string

const (
	Movie       Interest = "movie"
	Restaurants Interest = "restaurants"
	Sightseeing Interest = "sightseeing"
	Shopping    Interest = "shopping"
	Photo       Interest = "photo"
	Cafe        Interest = "cafe"
	Nightview   Interest = "nightview"
)

// Interests lists every known interest in display order.
var Interests = []Interest{Movie, Restaurants, Sightseeing, Shopping, Photo, Cafe, Nightview}

func (i Interest) Valid() bool {
	_, ok := catalog[i]
	return ok
}

// ParseInterests converts raw tags into interests. Tags are trimmed and lower-cased,
// blanks are skipped and duplicates collapse while keeping the first position.
func ParseInterests(raw []string) ([]Interest, error) {
	interests := make([]Interest, 0, len(raw))
	seen := make(map[Interest]bool, len(raw))
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		interest := Interest(tag)
		if !interest.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownInterest, tag)
		}
		if seen[interest] {
			continue
		}
		seen[interest] = true
		interests = append(interests, interest)
	}
	return interests, nil
}
