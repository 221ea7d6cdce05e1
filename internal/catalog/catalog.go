// Package catalog serves the bundled, read-only list of majors and their
// per-year curricula.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/alexanderramin/compass/internal/domain"
)

//go:embed data/bethune-cookman.json
var bundled []byte

var (
	ErrInvalidDataset = errors.New("invalid catalog dataset")
	ErrUnknownMajor   = errors.New("unknown major")
)

// Catalog is an immutable, ordered set of majors. It is safe for
// concurrent use.
type Catalog struct {
	university string
	majors     []domain.Major
	byName     map[string]int
}

type rawSemester struct {
	Fall   []string `json:"fall"`
	Spring []string `json:"spring"`
}

type rawDataset struct {
	University string `json:"university"`
	Majors     []struct {
		Name       string                 `json:"name"`
		Curriculum map[string]rawSemester `json:"curriculum"`
	} `json:"majors"`
}

var yearKeys = map[string]domain.YearKey{
	"freshman":  domain.YearFreshman,
	"sophomore": domain.YearSophomore,
	"junior":    domain.YearJunior,
	"senior":    domain.YearSenior,
}

// Load parses and validates a dataset. Majors keep dataset order;
// a repeated name is rejected.
func Load(raw []byte) (*Catalog, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var ds rawDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{
		university: ds.University,
		majors:     make([]domain.Major, 0, len(ds.Majors)),
		byName:     make(map[string]int, len(ds.Majors)),
	}
	for _, m := range ds.Majors {
		if _, dup := c.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate major %q", ErrInvalidDataset, m.Name)
		}
		cur := make(domain.Curriculum, len(m.Curriculum))
		for k, sem := range m.Curriculum {
			cur[yearKeys[k]] = domain.Semester{Fall: sem.Fall, Spring: sem.Spring}
		}
		c.byName[m.Name] = len(c.majors)
		c.majors = append(c.majors, domain.Major{Name: m.Name, Curriculum: cur})
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog built from the bundled dataset.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(bundled)
	})
	return defaultCat, defaultErr
}

// University names the institution the dataset describes.
func (c *Catalog) University() string { return c.university }

// Names returns major names in dataset order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.majors))
	for i, m := range c.majors {
		out[i] = m.Name
	}
	return out
}

// Majors returns a copy of every entry.
func (c *Catalog) Majors() []domain.Major {
	return slices.Clone(c.majors)
}

// Contains reports whether name is an exact catalog major name.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Find looks a major up by exact name.
func (c *Catalog) Find(name string) (domain.Major, error) {
	i, ok := c.byName[name]
	if !ok {
		return domain.Major{}, fmt.Errorf("major %q: %w", name, ErrUnknownMajor)
	}
	return c.majors[i], nil
}

// Roadmap returns one year's courses for the named major. An unknown
// major yields empty semesters, matching how the dashboard treats a
// major it has no data for.
func (c *Catalog) Roadmap(name string, y domain.YearKey) domain.Semester {
	m, err := c.Find(name)
	if err != nil {
		return domain.Semester{Fall: []string{}, Spring: []string{}}
	}
	return m.Year(y)
}
