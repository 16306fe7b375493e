package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Sternrassler/pokedex/pkg/pokeapi"
)

// ListPokemon fetches one page of summary references from /pokemon.
func (c *Client) ListPokemon(ctx context.Context, offset, limit int) (*pokeapi.ListResponse, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0 (got %d)", ErrInvalidArgument, offset)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be > 0 (got %d)", ErrInvalidArgument, limit)
	}

	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	var list pokeapi.ListResponse
	if err := c.GetJSON(ctx, "/pokemon?"+query.Encode(), &list); err != nil {
		return nil, fmt.Errorf("list pokemon (offset %d, limit %d): %w", offset, limit, err)
	}
	return &list, nil
}

// GetPokemon fetches the detail payload a summary reference points to.
func (c *Client) GetPokemon(ctx context.Context, resourceURL string) (*pokeapi.PokemonDetail, error) {
	if resourceURL == "" {
		return nil, fmt.Errorf("%w: empty resource url", ErrInvalidArgument)
	}

	var detail pokeapi.PokemonDetail
	if err := c.GetJSON(ctx, resourceURL, &detail); err != nil {
		return nil, fmt.Errorf("get pokemon %s: %w", resourceURL, err)
	}
	return &detail, nil
}

// GetPokemonByID fetches /pokemon/{id} directly.
func (c *Client) GetPokemonByID(ctx context.Context, id int) (*pokeapi.PokemonDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be > 0 (got %d)", ErrInvalidArgument, id)
	}
	return c.GetPokemon(ctx, fmt.Sprintf("/pokemon/%d/", id))
}
