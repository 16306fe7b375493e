// Package pokeapi defines the JSON shapes returned by the PokeAPI v2 REST service.
//
// Only the fields consumed by this module are declared; unknown fields are
// ignored by encoding/json.
package pokeapi

import "strings"

// DefaultBaseURL is the public PokeAPI v2 root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// NamedResource is the summary reference used throughout PokeAPI:
// a display name plus the URL of the full resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListResponse is the body of a paginated list endpoint such as /pokemon.
type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// PokemonDetail is the body of /pokemon/{id}.
type PokemonDetail struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"` // decimetres
	Weight    int           `json:"weight"` // hectograms
	Types     []TypeSlot    `json:"types"`
	Sprites   Sprites       `json:"sprites"`
	Stats     []StatEntry   `json:"stats"`
	Abilities []AbilitySlot `json:"abilities"`
	Moves     []MoveEntry   `json:"moves"`
}

// TypeSlot binds a type to its slot on a Pokémon. Slot 1 is the primary type.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// Sprites holds image references. Only the dream world artwork is decoded.
type Sprites struct {
	FrontDefault string       `json:"front_default"`
	Other        OtherSprites `json:"other"`
}

// OtherSprites groups the alternative artwork collections.
type OtherSprites struct {
	DreamWorld Artwork `json:"dream_world"`
}

// Artwork is a single artwork collection.
type Artwork struct {
	FrontDefault string `json:"front_default"`
}

// StatEntry is one base stat of a Pokémon.
type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// AbilitySlot is one ability of a Pokémon. Hidden abilities are the rare
// secondary ones.
type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// MoveEntry is one learnable move.
type MoveEntry struct {
	Move NamedResource `json:"move"`
}

// ResourceID extracts the trailing numeric segment of a resource URL such as
// "https://pokeapi.co/api/v2/pokemon/25/". It returns "" if there is none.
func ResourceID(url string) string {
	trimmed := strings.TrimRight(url, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	id := trimmed[idx+1:]
	for _, r := range id {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return id
}
