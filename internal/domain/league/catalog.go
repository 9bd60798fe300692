package league

import "fmt"

// Catalog is the immutable league allow-list plus its display priority.
type Catalog struct {
	byID     map[int64]League
	position map[int64]int
	ids      []int64
}

// NewCatalog ranks leagues by their index in priority. Priority ids must be in leagues.
func NewCatalog(leagues []League, priority []int64) (Catalog, error) {
	c := Catalog{
		byID:     make(map[int64]League, len(leagues)),
		position: make(map[int64]int, len(leagues)),
		ids:      make([]int64, 0, len(leagues)),
	}
	for _, l := range leagues {
		if err := l.Validate(); err != nil {
			return Catalog{}, err
		}
		if _, dup := c.byID[l.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate league id %d", l.ID)
		}
		l.DisplayRank = 0
		c.byID[l.ID] = l
		c.position[l.ID] = len(c.ids)
		c.ids = append(c.ids, l.ID)
	}

	for i, id := range priority {
		l, ok := c.byID[id]
		if !ok {
			return Catalog{}, fmt.Errorf("priority references unknown league id %d", id)
		}
		if l.DisplayRank != 0 {
			return Catalog{}, fmt.Errorf("league id %d listed twice in priority", id)
		}
		l.DisplayRank = i + 1
		c.byID[id] = l
	}

	return c, nil
}

// MustCatalog panics on an invalid table; used for the built-in default.
func MustCatalog(leagues []League, priority []int64) Catalog {
	c, err := NewCatalog(leagues, priority)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Catalog) Lookup(id int64) (League, bool) {
	l, ok := c.byID[id]
	return l, ok
}

func (c Catalog) Contains(id int64) bool {
	_, ok := c.byID[id]
	return ok
}

func (c Catalog) Len() int {
	return len(c.ids)
}

// Less orders ranked leagues by rank, then unranked leagues by catalog insertion order.
func (c Catalog) Less(a, b int64) bool {
	la, lb := c.byID[a], c.byID[b]
	switch {
	case la.DisplayRank > 0 && lb.DisplayRank > 0:
		return la.DisplayRank < lb.DisplayRank
	case la.DisplayRank > 0:
		return true
	case lb.DisplayRank > 0:
		return false
	default:
		return c.position[a] < c.position[b]
	}
}
