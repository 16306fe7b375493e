// Package pokemon holds the normalized Pokémon record and the adapter that
// builds it from raw PokeAPI payloads.
//
// Nothing outside this package and pkg/pokeapi depends on the upstream JSON
// schema: consumers work with Pokemon only.
package pokemon

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Pokemon is the normalized record produced by FromDetail.
type Pokemon struct {
	Number    int      `json:"number"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Types     []string `json:"types"`
	Photo     string   `json:"photo"`
	Height    int      `json:"height"` // decimetres
	Weight    int      `json:"weight"` // hectograms
	Stats     Stats    `json:"stats"`
	Abilities []string `json:"abilities"`
	Moves     []string `json:"moves"`
}

// HeightMeters returns Height converted from decimetres.
func (p Pokemon) HeightMeters() decimal.Decimal {
	return decimal.New(int64(p.Height), -1)
}

// WeightKilograms returns Weight converted from hectograms.
func (p Pokemon) WeightKilograms() decimal.Decimal {
	return decimal.New(int64(p.Weight), -1)
}

// Stat is a single named metric.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Stats is an insertion-ordered name to value mapping.
// The zero value is ready to use.
type Stats struct {
	entries []Stat
	index   map[string]int
}

// Set stores value under name. An existing name keeps its position and
// takes the new value.
func (s *Stats) Set(name string, value int) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.entries[i].Value = value
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Stat{Name: name, Value: value})
}

// Get returns the value stored under name.
func (s Stats) Get(name string) (int, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.entries[i].Value, true
}

// Len returns the number of distinct names.
func (s Stats) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the stats in insertion order.
func (s Stats) Entries() []Stat {
	out := make([]Stat, len(s.entries))
	copy(out, s.entries)
	return out
}

// MarshalJSON encodes the stats as an ordered list so that order survives
// the round trip.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

// UnmarshalJSON decodes the list form written by MarshalJSON.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var entries []Stat
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*s = Stats{}
	for _, e := range entries {
		s.Set(e.Name, e.Value)
	}
	return nil
}
