package cache

import (
	"net/url"
	"testing"
)

func TestCacheKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  CacheKey
		want string
	}{
		{
			name: "detail endpoint no params",
			key: CacheKey{
				Endpoint: "/api/v2/pokemon/25/",
			},
			want: "pokeapi:api/v2/pokemon/25",
		},
		{
			name: "empty endpoint",
			key:  CacheKey{},
			want: "pokeapi",
		},
		{
			name: "list endpoint with query params (sorted)",
			key: CacheKey{
				Endpoint: "/api/v2/pokemon",
				QueryParams: url.Values{
					"offset": []string{"10"},
					"limit":  []string{"10"},
				},
			},
			want: "pokeapi:api/v2/pokemon:limit=10:offset=10",
		},
		{
			name: "first value of repeated param",
			key: CacheKey{
				Endpoint: "/api/v2/pokemon",
				QueryParams: url.Values{
					"limit": []string{"5", "10"},
				},
			},
			want: "pokeapi:api/v2/pokemon:limit=5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.key.String()
			if got != tt.want {
				t.Errorf("CacheKey.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCacheKey_Determinism ensures same input always produces same key
func TestCacheKey_Determinism(t *testing.T) {
	key := CacheKey{
		Endpoint: "/api/v2/pokemon",
		QueryParams: url.Values{
			"offset": []string{"140"},
			"limit":  []string{"10"},
			"lang":   []string{"en"},
		},
	}

	first := key.String()
	for i := 0; i < 10; i++ {
		if result := key.String(); result != first {
			t.Errorf("result[%d] = %v, want %v (not deterministic)", i, result, first)
		}
	}
}

func TestKeyForURL(t *testing.T) {
	u, err := url.Parse("https://pokeapi.co/api/v2/pokemon?offset=0&limit=10")
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}

	got := KeyForURL(u).String()
	want := "pokeapi:api/v2/pokemon:limit=10:offset=0"
	if got != want {
		t.Errorf("KeyForURL() = %v, want %v", got, want)
	}
}
