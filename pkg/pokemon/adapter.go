package pokemon

import "github.com/Sternrassler/pokedex/pkg/pokeapi"

// MaxMoves is the number of moves kept from the source move list.
const MaxMoves = 4

// FromDetail converts a raw detail payload into a Pokemon.
//
// The conversion is pure and never fails. Input is not validated: a payload
// without types yields an empty Type.
func FromDetail(detail *pokeapi.PokemonDetail) Pokemon {
	p := Pokemon{
		Number: detail.ID,
		Name:   detail.Name,
		Photo:  detail.Sprites.Other.DreamWorld.FrontDefault,
		Height: detail.Height,
		Weight: detail.Weight,
	}

	p.Types = make([]string, 0, len(detail.Types))
	for _, slot := range detail.Types {
		p.Types = append(p.Types, slot.Type.Name)
	}
	if len(p.Types) > 0 {
		p.Type = p.Types[0]
	}

	for _, s := range detail.Stats {
		p.Stats.Set(s.Stat.Name, s.BaseStat)
	}

	p.Abilities = make([]string, 0, len(detail.Abilities))
	for _, a := range detail.Abilities {
		if a.IsHidden {
			continue
		}
		p.Abilities = append(p.Abilities, a.Ability.Name)
	}

	n := min(MaxMoves, len(detail.Moves))
	p.Moves = make([]string, 0, n)
	for _, m := range detail.Moves[:n] {
		p.Moves = append(p.Moves, m.Move.Name)
	}

	return p
}
