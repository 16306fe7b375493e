package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Sternrassler/pokedex/pkg/logging"
	"github.com/Sternrassler/pokedex/pkg/pokeapi"
	"github.com/Sternrassler/pokedex/pkg/pokemon"
)

// Source is the subset of the PokeAPI client the loader needs.
type Source interface {
	// ListPokemon fetches summary references for [offset, offset+limit).
	ListPokemon(ctx context.Context, offset, limit int) (*pokeapi.ListResponse, error)

	// GetPokemon fetches the detail a summary reference points to.
	GetPokemon(ctx context.Context, resourceURL string) (*pokeapi.PokemonDetail, error)

	// GetPokemonByID fetches one detail by its numeric id.
	GetPokemonByID(ctx context.Context, id int) (*pokeapi.PokemonDetail, error)
}

// LoaderConfig holds loader configuration.
type LoaderConfig struct {
	// MaxConcurrency bounds parallel detail requests within one page.
	// Zero or negative means one goroutine per summary.
	MaxConcurrency int
}

// DefaultLoaderConfig lets a full page of details run at once.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		MaxConcurrency: DefaultPageSize,
	}
}

// Loader resolves pages of Pokémon.
type Loader struct {
	source Source
	config LoaderConfig
	logger zerolog.Logger
}

// NewLoader creates a new page loader.
func NewLoader(source Source, config LoaderConfig) *Loader {
	return &Loader{
		source: source,
		config: config,
		logger: logging.NewLogger("pagination"),
	}
}

// LoadPage fetches the summaries for [offset, offset+limit), then resolves
// every summary's detail concurrently. It returns only when all details are
// resolved; any failure discards the page. Records keep summary order.
func (l *Loader) LoadPage(ctx context.Context, offset, limit int) ([]pokemon.Pokemon, error) {
	start := time.Now()

	list, err := l.source.ListPokemon(ctx, offset, limit)
	if err != nil {
		pokeapiPageFailuresTotal.Inc()
		return nil, fmt.Errorf("fetch summaries: %w", err)
	}
	summaries := list.Results
	logger := logging.WithPage(l.logger, offset, limit)

	logger.Debug().
		Int("summaries", len(summaries)).
		Msg("Resolving page details")

	records := make([]pokemon.Pokemon, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	if l.config.MaxConcurrency > 0 {
		g.SetLimit(l.config.MaxConcurrency)
	}

	for i, summary := range summaries {
		g.Go(func() error {
			detail, err := l.source.GetPokemon(gctx, summary.URL)
			if err != nil && gctx.Err() != nil && ctx.Err() == nil {
				// A sibling failed first and the group cancelled this fetch
				return fmt.Errorf("resolve %s: %w", summary.Name, err)
			}
			if err != nil {
				logger.Warn().
					Err(err).
					Str("name", summary.Name).
					Str("id", pokeapi.ResourceID(summary.URL)).
					Msg("Detail fetch failed")
				return fmt.Errorf("resolve %s: %w", summary.Name, err)
			}
			records[i] = pokemon.FromDetail(detail)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		pokeapiPageFailuresTotal.Inc()
		return nil, err
	}

	pokeapiPagesLoadedTotal.Inc()
	pokeapiRecordsLoadedTotal.Add(float64(len(records)))
	pokeapiPageDuration.Observe(time.Since(start).Seconds())

	logger.Info().
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Page loaded")

	return records, nil
}

// LoadByID resolves a single Pokémon for the detail view.
func (l *Loader) LoadByID(ctx context.Context, id int) (pokemon.Pokemon, error) {
	detail, err := l.source.GetPokemonByID(ctx, id)
	if err != nil {
		return pokemon.Pokemon{}, err
	}
	return pokemon.FromDetail(detail), nil
}
