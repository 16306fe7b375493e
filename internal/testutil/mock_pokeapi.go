// Package testutil provides testing utilities for the PokeAPI client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Sternrassler/pokedex/pkg/pokeapi"
)

// BasePath is the API root served by MockPokeAPI.
const BasePath = "/api/v2"

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockPokeAPI is a configurable mock PokeAPI server for testing.
// It serves /pokemon list pages and /pokemon/{id}/ details for ids 1..Count.
type MockPokeAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)
	delays   map[int]time.Duration
	count    int

	// Tracking
	requestCount      int
	conditionalCount  int
	pathCounts        map[string]int
	lastRequestHeader http.Header
	inFlight          int
	maxInFlight       int
}

// NewMockPokeAPI creates a mock server holding count Pokémon.
func NewMockPokeAPI(count int) *MockPokeAPI {
	mock := &MockPokeAPI{
		handlers:   make(map[string]func(w http.ResponseWriter, r *http.Request)),
		delays:     make(map[int]time.Duration),
		pathCounts: make(map[string]int),
		count:      count,
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.pathCounts[r.URL.Path]++
		mock.lastRequestHeader = r.Header.Clone()
		if r.Header.Get("If-None-Match") != "" || r.Header.Get("If-Modified-Since") != "" {
			mock.conditionalCount++
		}
		mock.inFlight++
		if mock.inFlight > mock.maxInFlight {
			mock.maxInFlight = mock.inFlight
		}
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		defer func() {
			mock.mu.Lock()
			mock.inFlight--
			mock.mu.Unlock()
		}()

		if exists {
			handler(w, r)
			return
		}
		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the API root of the mock, e.g. http://127.0.0.1:1234/api/v2.
func (m *MockPokeAPI) URL() string {
	return m.server.URL + BasePath
}

// Close shuts down the mock server.
func (m *MockPokeAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockPokeAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.conditionalCount = 0
	m.pathCounts = make(map[string]int)
	m.lastRequestHeader = nil
	m.maxInFlight = 0
}

// DetailPath returns the request path of a Pokémon detail.
func DetailPath(id int) string {
	return fmt.Sprintf("%s/pokemon/%d/", BasePath, id)
}

// SetHandler sets a custom handler for a specific path.
func (m *MockPokeAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockPokeAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// FailDetail makes the detail of id answer with status.
func (m *MockPokeAPI) FailDetail(id int, status int) {
	m.SetResponse(DetailPath(id), MockResponse{
		StatusCode: status,
		Body:       http.StatusText(status),
	})
}

// DelayDetail slows down the detail of id by d.
func (m *MockPokeAPI) DelayDetail(id int, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays[id] = d
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockPokeAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// GetPathCount returns the number of requests made to path.
func (m *MockPokeAPI) GetPathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// GetConditionalCount returns the number of conditional requests.
func (m *MockPokeAPI) GetConditionalCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conditionalCount
}

// GetMaxInFlight returns the highest number of concurrent requests seen.
func (m *MockPokeAPI) GetMaxInFlight() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxInFlight
}

// GetLastRequestHeader returns the headers of the most recent request.
func (m *MockPokeAPI) GetLastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRequestHeader.Clone()
}

// defaultHandler serves list and detail endpoints with PokeAPI-like headers.
func (m *MockPokeAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400, s-maxage=86400")

	path := strings.TrimPrefix(r.URL.Path, BasePath)
	switch {
	case path == "/pokemon" || path == "/pokemon/":
		m.serveList(w, r)
	case strings.HasPrefix(path, "/pokemon/"):
		id, err := strconv.Atoi(strings.Trim(strings.TrimPrefix(path, "/pokemon/"), "/"))
		if err != nil || id < 1 || id > m.count {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		m.serveDetail(w, r, id)
	default:
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

func (m *MockPokeAPI) serveList(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	list := pokeapi.ListResponse{Count: m.count, Results: []pokeapi.NamedResource{}}
	for id := offset + 1; id <= offset+limit && id <= m.count; id++ {
		list.Results = append(list.Results, pokeapi.NamedResource{
			Name: Name(id),
			URL:  m.server.URL + DetailPath(id),
		})
	}
	if offset+limit < m.count {
		next := fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", m.URL(), offset+limit, limit)
		list.Next = &next
	}

	json.NewEncoder(w).Encode(list)
}

func (m *MockPokeAPI) serveDetail(w http.ResponseWriter, r *http.Request, id int) {
	m.mu.RLock()
	delay := m.delays[id]
	m.mu.RUnlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	etag := fmt.Sprintf(`"pokemon-%d"`, id)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Detail(id))
}

// Name returns the synthetic name of id.
func Name(id int) string {
	return fmt.Sprintf("pokemon-%d", id)
}

// Detail builds a synthetic detail payload for id: two types, one hidden
// ability, six stats and five moves.
func Detail(id int) pokeapi.PokemonDetail {
	named := func(name string) pokeapi.NamedResource {
		return pokeapi.NamedResource{Name: name}
	}
	return pokeapi.PokemonDetail{
		ID:     id,
		Name:   Name(id),
		Height: id % 20,
		Weight: id * 10,
		Types: []pokeapi.TypeSlot{
			{Slot: 1, Type: named(fmt.Sprintf("type-%d", id%18))},
			{Slot: 2, Type: named("normal")},
		},
		Sprites: pokeapi.Sprites{
			Other: pokeapi.OtherSprites{
				DreamWorld: pokeapi.Artwork{FrontDefault: fmt.Sprintf("https://img.example/dream-world/%d.svg", id)},
			},
		},
		Stats: []pokeapi.StatEntry{
			{BaseStat: 40 + id%10, Stat: named("hp")},
			{BaseStat: 50, Stat: named("attack")},
			{BaseStat: 45, Stat: named("defense")},
			{BaseStat: 60, Stat: named("special-attack")},
			{BaseStat: 55, Stat: named("special-defense")},
			{BaseStat: 70, Stat: named("speed")},
		},
		Abilities: []pokeapi.AbilitySlot{
			{Ability: named("visible-ability"), Slot: 1},
			{Ability: named("hidden-ability"), IsHidden: true, Slot: 3},
		},
		Moves: []pokeapi.MoveEntry{
			{Move: named("move-1")}, {Move: named("move-2")}, {Move: named("move-3")},
			{Move: named("move-4")}, {Move: named("move-5")},
		},
	}
}
