package economy

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/snakeclash/config"
)

func testConfig() *config.Config {
	return config.MustDefaults()
}

func TestLoadSubstitutesDefault(t *testing.T) {
	cfg := testConfig()
	rec, substituted, err := Load(NewMemoryRepository(), &cfg.Economy)
	require.NoError(t, err)
	assert.True(t, substituted)
	assert.Equal(t, Record{Coins: 500}, rec)
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "economy.json")
	repo := NewFileRepository(path)

	_, err := repo.Get()
	require.ErrorIs(t, err, ErrNotFound)

	want := Record{
		Coins:              1234,
		Gems:               3,
		Upgrades:           Upgrades{Level: 2, Speed: 5, Magnet: 1},
		LastClaimTimestamp: 1700000000000,
	}
	require.NoError(t, repo.Put(want))

	got, err := NewFileRepository(path).Get()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStats(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name     string
		upgrades Upgrades
		want     PlayerStats
	}{
		{"base", Upgrades{}, PlayerStats{StartLevel: 10, MoveSpeed: 8, MagnetRadius: 4}},
		{"upgraded", Upgrades{Level: 2, Speed: 5, Magnet: 4}, PlayerStats{StartLevel: 20, MoveSpeed: 10, MagnetRadius: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Stats(tt.upgrades, &cfg.Player)
			assert.InDelta(t, tt.want.StartLevel, got.StartLevel, 1e-9)
			assert.InDelta(t, tt.want.MoveSpeed, got.MoveSpeed, 1e-9)
			assert.InDelta(t, tt.want.MagnetRadius, got.MagnetRadius, 1e-9)
		})
	}
}

func TestCommit(t *testing.T) {
	cfg := testConfig()
	repo := NewMemoryRepositoryWith(Record{Coins: 100, Upgrades: Upgrades{Speed: 2}})

	rec, err := Commit(repo, &cfg.Economy, 249.9)
	require.NoError(t, err)
	assert.Equal(t, 349, rec.Coins)
	assert.Equal(t, 2, rec.Upgrades.Speed, "commit must not touch upgrades")
	assert.Equal(t, 1, repo.Puts())
}

func TestPurchase(t *testing.T) {
	cfg := testConfig()
	repo := NewMemoryRepositoryWith(Record{Coins: 500})

	rec, err := Purchase(repo, &cfg.Economy, "speed")
	require.NoError(t, err)
	assert.Equal(t, 400, rec.Coins)
	assert.Equal(t, 1, rec.Upgrades.Speed)

	// Next speed level costs 350
	rec, err = Purchase(repo, &cfg.Economy, "speed")
	require.NoError(t, err)
	assert.Equal(t, 50, rec.Coins)
	assert.Equal(t, 2, rec.Upgrades.Speed)

	_, err = Purchase(repo, &cfg.Economy, "magnet")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = Purchase(repo, &cfg.Economy, "gems")
	assert.ErrorIs(t, err, ErrUnknownUpgrade)

	stored, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Coins)
}

func TestClaimDaily(t *testing.T) {
	cfg := testConfig()
	repo := NewMemoryRepository()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rec, err := ClaimDaily(repo, &cfg.Economy, now)
	require.NoError(t, err)
	assert.Equal(t, 1500, rec.Coins)
	assert.Equal(t, now.UnixMilli(), rec.LastClaimTimestamp)

	_, err = ClaimDaily(repo, &cfg.Economy, now.Add(23*time.Hour))
	assert.ErrorIs(t, err, ErrDailyUnavailable)

	rec, err = ClaimDaily(repo, &cfg.Economy, now.Add(25*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2500, rec.Coins)
}

func TestLoadClampsNegativeCounters(t *testing.T) {
	cfg := testConfig()
	repo := NewMemoryRepositoryWith(Record{Coins: -5, Upgrades: Upgrades{Level: -1}})
	rec, _, err := Load(repo, &cfg.Economy)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Coins)
	assert.Equal(t, 0, rec.Upgrades.Level)
}
