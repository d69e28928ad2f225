package server

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/archivecache"
	"github.com/preston-bernstein/trivia-admin-service/internal/config"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/email"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers/fixture"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers/jarchive"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

func TestProviderFactoryFixtureServesGames(t *testing.T) {
	prov := newProviderFactory(nil, nil).build(config.ArchiveConfig{Provider: "fixture"})
	if prov == nil {
		t.Fatalf("expected provider")
	}
	if _, err := prov.FetchGameByDate(context.Background(), "2025-01-06"); err != nil {
		t.Fatalf("expected fixture game, got %v", err)
	}
}

func TestProviderFactoryWrapsJArchiveWithCache(t *testing.T) {
	cfg := config.ArchiveConfig{
		Provider:     "jarchive",
		BaseURL:      "http://archive.invalid",
		MinInterval:  time.Millisecond,
		CacheEnabled: true,
		CacheDir:     t.TempDir(),
	}
	prov := newProviderFactory(nil, nil).build(cfg)
	if _, ok := prov.(*archivecache.CachedProvider); !ok {
		t.Fatalf("expected cached provider, got %T", prov)
	}

	cfg.CacheEnabled = false
	prov = newProviderFactory(nil, nil).build(cfg)
	if _, ok := prov.(*archivecache.CachedProvider); ok {
		t.Fatalf("expected no cache when disabled")
	}
}

func TestSelectProvider(t *testing.T) {
	if _, ok := selectProvider(config.ArchiveConfig{Provider: "JArchive", BaseURL: "http://example.com"}, nil).(*jarchive.Client); !ok {
		t.Fatalf("expected jarchive client")
	}
	if _, ok := selectProvider(config.ArchiveConfig{Provider: "unknown"}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback")
	}
}

func TestNormalizeProviderName(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"JArchive", "jarchive"},
		{"", "fixture"},
	}
	for _, tc := range cases {
		if got := normalizeProviderName(tc.raw, fixture.New()); got != tc.want {
			t.Fatalf("normalizeProviderName(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected generic name for nil provider, got %q", got)
	}
}

func TestOpenStoreMemorySeedsWhenAsked(t *testing.T) {
	st, err := openStore(context.Background(), config.StoreConfig{Driver: "memory", Seed: true}, nil)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer st.Close()
	n, err := st.CountUsers(context.Background())
	if err != nil || n == 0 {
		t.Fatalf("expected seeded users, got %d err=%v", n, err)
	}

	empty, err := openStore(context.Background(), config.StoreConfig{}, nil)
	if err != nil {
		t.Fatalf("openStore default: %v", err)
	}
	if _, total, _ := empty.ListUsers(context.Background(), users.Filter{}); total != 0 {
		t.Fatalf("expected empty store without seed, got %d users", total)
	}
	if _, ok := empty.(*store.MemoryStore); !ok {
		t.Fatalf("expected memory store by default")
	}
}

func TestBuildSender(t *testing.T) {
	if _, ok := buildSender(config.EmailConfig{}, nil).(*email.LogSender); !ok {
		t.Fatalf("expected log sender by default")
	}
	if _, ok := buildSender(config.EmailConfig{Provider: "sendgrid"}, nil).(*email.LogSender); !ok {
		t.Fatalf("expected log sender when sendgrid key is missing")
	}
	cfg := config.EmailConfig{Provider: "sendgrid", APIKey: "SG.key", FromAddress: "admin@example.com", FromName: "Trivia"}
	if _, ok := buildSender(cfg, nil).(*email.SendgridSender); !ok {
		t.Fatalf("expected sendgrid sender")
	}
}
