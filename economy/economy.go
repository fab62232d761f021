// Package economy holds the persistent coin and upgrade record shared across sessions.
package economy

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pthm-cable/snakeclash/config"
)

var (
	// ErrNotFound is returned by a Repository with no stored record.
	ErrNotFound = errors.New("economy record not found")
	// ErrInsufficientFunds is returned when a purchase costs more than the balance.
	ErrInsufficientFunds = errors.New("insufficient coins")
	// ErrUnknownUpgrade is returned for an upgrade name outside level/speed/magnet.
	ErrUnknownUpgrade = errors.New("unknown upgrade")
	// ErrDailyUnavailable is returned when the daily reward was claimed too recently.
	ErrDailyUnavailable = errors.New("daily reward not available yet")
)

// Upgrades holds the purchased upgrade levels.
type Upgrades struct {
	Level  int `json:"level"`
	Speed  int `json:"speed"`
	Magnet int `json:"magnet"`
}

// Record is the persisted economy.
type Record struct {
	Coins              int      `json:"coins"`
	Gems               int      `json:"gems"`
	Upgrades           Upgrades `json:"upgrades"`
	LastClaimTimestamp int64    `json:"lastClaimTimestamp"` // Unix milliseconds
}

// Default returns the record substituted when none is stored.
func Default(cfg *config.EconomyConfig) Record {
	return Record{Coins: cfg.DefaultCoins}
}

// Repository reads and writes the economy record.
// Put must be complete when it returns: a following Get sees the new record.
type Repository interface {
	Get() (Record, error)
	Put(Record) error
}

// Load reads the record, substituting the default when none is stored.
// substituted reports whether the default was used.
func Load(repo Repository, cfg *config.EconomyConfig) (rec Record, substituted bool, err error) {
	rec, err = repo.Get()
	if errors.Is(err, ErrNotFound) {
		return Default(cfg), true, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("loading economy: %w", err)
	}
	return rec.sanitized(), false, nil
}

// sanitized clamps counters that must never be negative.
func (r Record) sanitized() Record {
	r.Coins = max(r.Coins, 0)
	r.Gems = max(r.Gems, 0)
	r.Upgrades.Level = max(r.Upgrades.Level, 0)
	r.Upgrades.Speed = max(r.Upgrades.Speed, 0)
	r.Upgrades.Magnet = max(r.Upgrades.Magnet, 0)
	return r
}

// Commit adds session currency to the stored balance. Fractional coins are dropped.
func Commit(repo Repository, cfg *config.EconomyConfig, sessionCoins float64) (Record, error) {
	rec, _, err := Load(repo, cfg)
	if err != nil {
		return Record{}, err
	}
	if sessionCoins > 0 {
		rec.Coins += int(math.Floor(sessionCoins))
	}
	if err := repo.Put(rec); err != nil {
		return Record{}, fmt.Errorf("committing session coins: %w", err)
	}
	return rec, nil
}

// PlayerStats are the starting stats derived from upgrades.
type PlayerStats struct {
	StartLevel   float64
	MoveSpeed    float64
	MagnetRadius float64
}

// Stats derives starting stats from upgrade levels.
func Stats(u Upgrades, cfg *config.PlayerConfig) PlayerStats {
	return PlayerStats{
		StartLevel:   cfg.BaseLevel + float64(u.Level)*cfg.LevelPerUpgrade,
		MoveSpeed:    cfg.BaseSpeed + float64(u.Speed)*cfg.SpeedPerUpgrade,
		MagnetRadius: cfg.BaseMagnet + float64(u.Magnet)*cfg.MagnetPerUpgrade,
	}
}

// UpgradeCost returns the price of the next level for an upgrade at level.
func UpgradeCost(level int, cfg *config.EconomyConfig) int {
	return cfg.UpgradeBaseCost + level*cfg.UpgradeCostStep
}

// upgradeSlot returns a pointer to the named upgrade counter.
func upgradeSlot(u *Upgrades, name string) (*int, error) {
	switch name {
	case "level":
		return &u.Level, nil
	case "speed":
		return &u.Speed, nil
	case "magnet":
		return &u.Magnet, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownUpgrade, name)
	}
}

// Purchase buys one level of the named upgrade and persists the result.
func Purchase(repo Repository, cfg *config.EconomyConfig, name string) (Record, error) {
	rec, _, err := Load(repo, cfg)
	if err != nil {
		return Record{}, err
	}
	slot, err := upgradeSlot(&rec.Upgrades, name)
	if err != nil {
		return rec, err
	}
	cost := UpgradeCost(*slot, cfg)
	if rec.Coins < cost {
		return rec, fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, name, cost, rec.Coins)
	}
	rec.Coins -= cost
	*slot++
	if err := repo.Put(rec); err != nil {
		return Record{}, fmt.Errorf("saving upgrade: %w", err)
	}
	return rec, nil
}

// DailyAvailable reports whether the daily reward can be claimed at now.
func DailyAvailable(rec Record, now time.Time, cfg *config.EconomyConfig) bool {
	interval := time.Duration(cfg.DailyInterval * float64(time.Hour))
	last := time.UnixMilli(rec.LastClaimTimestamp)
	return now.Sub(last) > interval
}

// ClaimDaily grants the daily reward and stamps the claim time.
func ClaimDaily(repo Repository, cfg *config.EconomyConfig, now time.Time) (Record, error) {
	rec, _, err := Load(repo, cfg)
	if err != nil {
		return Record{}, err
	}
	if !DailyAvailable(rec, now, cfg) {
		return rec, ErrDailyUnavailable
	}
	rec.Coins += cfg.DailyReward
	rec.LastClaimTimestamp = now.UnixMilli()
	if err := repo.Put(rec); err != nil {
		return Record{}, fmt.Errorf("saving daily claim: %w", err)
	}
	return rec, nil
}
