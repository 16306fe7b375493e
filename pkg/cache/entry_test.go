package cache

import (
	"testing"
	"time"
)

func TestCacheEntry_IsExpired(t *testing.T) {
	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{"expired a day ago", time.Now().Add(-24 * time.Hour), true},
		{"fresh for a day", time.Now().Add(24 * time.Hour), false},
		{"just expired", time.Now().Add(-1 * time.Second), true},
		{"zero expiry", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &CacheEntry{Expires: tt.expires}
			if got := entry.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCacheEntry_TTL(t *testing.T) {
	tests := []struct {
		name    string
		expires time.Time
		wantMin time.Duration
		wantMax time.Duration
	}{
		{"max-age 86400", time.Now().Add(24 * time.Hour), 23*time.Hour + 59*time.Minute, 24 * time.Hour},
		{"already expired", time.Now().Add(-1 * time.Hour), 0, 0},
		{"zero expiry", time.Time{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &CacheEntry{Expires: tt.expires}
			got := entry.TTL()
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("TTL() = %v, want between %v and %v", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestCacheEntry_Age(t *testing.T) {
	if got := (&CacheEntry{}).Age(); got != 0 {
		t.Errorf("Age() without CachedAt = %v, want 0", got)
	}

	entry := &CacheEntry{CachedAt: time.Now().Add(-10 * time.Minute)}
	if got := entry.Age(); got < 10*time.Minute || got > 11*time.Minute {
		t.Errorf("Age() = %v, want about 10m", got)
	}
}

func TestCacheEntry_CanRevalidate(t *testing.T) {
	tests := []struct {
		name  string
		entry CacheEntry
		want  bool
	}{
		{"etag", CacheEntry{ETag: `W/"pokemon-25"`}, true},
		{"last modified", CacheEntry{LastModified: time.Now().Add(-time.Hour)}, true},
		{"no validator", CacheEntry{Data: []byte(`{}`)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.CanRevalidate(); got != tt.want {
				t.Errorf("CanRevalidate() = %v, want %v", got, tt.want)
			}
		})
	}
}
