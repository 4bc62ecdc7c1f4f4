// Package track provides the catalog of raceable tracks and the capacity
// defaults new queues are created with.
package track

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Track struct {
	Name       string
	Limit      int // queue capacity
	MinPlayers int // players needed before the start countdown begins
}

type Catalog struct {
	tracks []Track
	byName map[string]Track
}

// New builds a catalog. Later entries with the same (case-insensitive) name
// replace earlier ones.
func New(tracks ...Track) *Catalog {
	c := &Catalog{byName: make(map[string]Track, len(tracks))}
	for _, t := range tracks {
		key := normalize(t.Name)
		if key == "" {
			continue
		}
		if _, dup := c.byName[key]; !dup {
			c.tracks = append(c.tracks, t)
		} else {
			for i := range c.tracks {
				if normalize(c.tracks[i].Name) == key {
					c.tracks[i] = t
				}
			}
		}
		c.byName[key] = t
	}
	return c
}

// Parse reads a comma separated list of "Name[:limit[:min]]" entries.
// Missing numbers take defLimit and defMin; min is capped at limit.
func Parse(raw string, defLimit, defMin int) (*Catalog, error) {
	var tracks []Track
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		t := Track{Name: strings.TrimSpace(parts[0]), Limit: defLimit, MinPlayers: defMin}
		if t.Name == "" {
			return nil, errors.Errorf("track entry %q has no name", entry)
		}
		if len(parts) > 3 {
			return nil, errors.Errorf("track entry %q: too many fields", entry)
		}
		if len(parts) > 1 {
			n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, errors.Wrapf(err, "track %q limit", t.Name)
			}
			t.Limit = n
		}
		if len(parts) > 2 {
			n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
			if err != nil {
				return nil, errors.Wrapf(err, "track %q min players", t.Name)
			}
			t.MinPlayers = n
		}
		if t.Limit <= 0 {
			return nil, errors.Errorf("track %q: limit must be positive", t.Name)
		}
		if t.MinPlayers <= 0 {
			t.MinPlayers = 1
		}
		if t.MinPlayers > t.Limit {
			t.MinPlayers = t.Limit
		}
		tracks = append(tracks, t)
	}
	if len(tracks) == 0 {
		return nil, errors.New("no tracks configured")
	}
	return New(tracks...), nil
}

// Lookup finds a track ignoring case and surrounding spaces.
func (c *Catalog) Lookup(name string) (Track, bool) {
	t, ok := c.byName[normalize(name)]
	return t, ok
}

func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.tracks))
	for _, t := range c.tracks {
		out = append(out, t.Name)
	}
	return out
}

func (c *Catalog) Tracks() []Track {
	return append([]Track(nil), c.tracks...)
}

func (c *Catalog) Len() int { return len(c.tracks) }

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
