package pokemon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/pokedex/pkg/pokeapi"
)

const bulbasaurJSON = `{
	"id": 1,
	"name": "bulbasaur",
	"height": 7,
	"weight": 69,
	"types": [
		{"slot": 1, "type": {"name": "grass", "url": "https://pokeapi.co/api/v2/type/12/"}},
		{"slot": 2, "type": {"name": "poison", "url": "https://pokeapi.co/api/v2/type/4/"}}
	],
	"sprites": {
		"front_default": "https://example.com/front/1.png",
		"other": {"dream_world": {"front_default": "https://example.com/dream-world/1.svg"}}
	},
	"stats": [
		{"base_stat": 45, "effort": 0, "stat": {"name": "hp"}},
		{"base_stat": 49, "effort": 0, "stat": {"name": "attack"}},
		{"base_stat": 65, "effort": 1, "stat": {"name": "special-attack"}}
	],
	"abilities": [
		{"ability": {"name": "overgrow"}, "is_hidden": false, "slot": 1},
		{"ability": {"name": "chlorophyll"}, "is_hidden": true, "slot": 3}
	],
	"moves": [
		{"move": {"name": "razor-wind"}},
		{"move": {"name": "swords-dance"}},
		{"move": {"name": "cut"}},
		{"move": {"name": "bind"}},
		{"move": {"name": "vine-whip"}},
		{"move": {"name": "headbutt"}}
	]
}`

func decodeDetail(t *testing.T, raw string) *pokeapi.PokemonDetail {
	t.Helper()
	var detail pokeapi.PokemonDetail
	require.NoError(t, json.Unmarshal([]byte(raw), &detail))
	return &detail
}

func TestFromDetail(t *testing.T) {
	p := FromDetail(decodeDetail(t, bulbasaurJSON))

	assert.Equal(t, 1, p.Number)
	assert.Equal(t, "bulbasaur", p.Name)
	assert.Equal(t, []string{"grass", "poison"}, p.Types)
	assert.Equal(t, "grass", p.Type)
	assert.Equal(t, "https://example.com/dream-world/1.svg", p.Photo)
	assert.Equal(t, 7, p.Height)
	assert.Equal(t, 69, p.Weight)
	assert.Equal(t, []Stat{
		{Name: "hp", Value: 45},
		{Name: "attack", Value: 49},
		{Name: "special-attack", Value: 65},
	}, p.Stats.Entries())
	assert.Equal(t, []string{"overgrow"}, p.Abilities)
	assert.Equal(t, []string{"razor-wind", "swords-dance", "cut", "bind"}, p.Moves)
}

func TestFromDetail_PrimaryTypeIsFirst(t *testing.T) {
	tests := []struct {
		name  string
		types []string
	}{
		{"single type", []string{"fire"}},
		{"dual type", []string{"water", "flying"}},
		{"same type twice", []string{"normal", "normal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := &pokeapi.PokemonDetail{ID: 7}
			for i, name := range tt.types {
				detail.Types = append(detail.Types, pokeapi.TypeSlot{
					Slot: i + 1,
					Type: pokeapi.NamedResource{Name: name},
				})
			}

			p := FromDetail(detail)
			require.NotEmpty(t, p.Types)
			assert.Equal(t, p.Types[0], p.Type)
			assert.Equal(t, tt.types, p.Types)
		})
	}
}

func TestFromDetail_NoTypes(t *testing.T) {
	p := FromDetail(&pokeapi.PokemonDetail{ID: 1, Name: "missingno"})
	assert.Empty(t, p.Types)
	assert.Equal(t, "", p.Type)
}

func TestFromDetail_MoveCount(t *testing.T) {
	for _, count := range []int{0, 1, 3, 4, 5, 80} {
		detail := &pokeapi.PokemonDetail{}
		for i := 0; i < count; i++ {
			detail.Moves = append(detail.Moves, pokeapi.MoveEntry{
				Move: pokeapi.NamedResource{Name: "move-" + string(rune('a'+i%26))},
			})
		}

		p := FromDetail(detail)
		assert.Len(t, p.Moves, min(MaxMoves, count), "source moves: %d", count)
		for i, name := range p.Moves {
			assert.Equal(t, detail.Moves[i].Move.Name, name)
		}
	}
}

func TestFromDetail_ExcludesHiddenAbilities(t *testing.T) {
	detail := &pokeapi.PokemonDetail{
		Abilities: []pokeapi.AbilitySlot{
			{Ability: pokeapi.NamedResource{Name: "static"}, IsHidden: false, Slot: 1},
			{Ability: pokeapi.NamedResource{Name: "lightning-rod"}, IsHidden: true, Slot: 3},
			{Ability: pokeapi.NamedResource{Name: "plus"}, IsHidden: false, Slot: 2},
			{Ability: pokeapi.NamedResource{Name: "minus"}, IsHidden: true, Slot: 3},
		},
	}

	p := FromDetail(detail)
	assert.Equal(t, []string{"static", "plus"}, p.Abilities)
	assert.NotContains(t, p.Abilities, "lightning-rod")
	assert.NotContains(t, p.Abilities, "minus")
}

func TestFromDetail_DuplicateStatLastWins(t *testing.T) {
	detail := &pokeapi.PokemonDetail{
		Stats: []pokeapi.StatEntry{
			{BaseStat: 10, Stat: pokeapi.NamedResource{Name: "hp"}},
			{BaseStat: 20, Stat: pokeapi.NamedResource{Name: "speed"}},
			{BaseStat: 30, Stat: pokeapi.NamedResource{Name: "hp"}},
		},
	}

	p := FromDetail(detail)
	assert.Equal(t, []Stat{{Name: "hp", Value: 30}, {Name: "speed", Value: 20}}, p.Stats.Entries())

	hp, ok := p.Stats.Get("hp")
	assert.True(t, ok)
	assert.Equal(t, 30, hp)
}
