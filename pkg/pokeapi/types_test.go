package pokeapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceID(t *testing.T) {
	tests := map[string]string{
		"https://pokeapi.co/api/v2/pokemon/25/": "25",
		"https://pokeapi.co/api/v2/pokemon/151": "151",
		"/api/v2/pokemon/1/":                    "1",
		"https://pokeapi.co/api/v2/pokemon/":    "",
		"https://pokeapi.co/api/v2/pokemon/mew": "",
		"":                                      "",
	}

	for in, want := range tests {
		assert.Equal(t, want, ResourceID(in), "ResourceID(%q)", in)
	}
}

func TestListResponse_Decode(t *testing.T) {
	const body = `{
		"count": 1302,
		"next": "https://pokeapi.co/api/v2/pokemon?offset=10&limit=10",
		"previous": null,
		"results": [
			{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"},
			{"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"}
		]
	}`

	var list ListResponse
	require.NoError(t, json.Unmarshal([]byte(body), &list))

	assert.Equal(t, 1302, list.Count)
	require.NotNil(t, list.Next)
	assert.Nil(t, list.Previous)
	require.Len(t, list.Results, 2)
	assert.Equal(t, "ivysaur", list.Results[1].Name)
	assert.Equal(t, "2", ResourceID(list.Results[1].URL))
}
