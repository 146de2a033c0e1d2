package selector

import (
	"crypto/md5"
	"log/slog"
	"math/big"
	mrand "math/rand"
	"time"

	"github.com/statline-game/statline/internal/dependencies/clock"
	"github.com/statline-game/statline/internal/dependencies/random"
	"github.com/statline-game/statline/internal/model"
)

// ReferenceTimezone is where the daily puzzle rolls over: one player
// per calendar day in US Eastern time, regardless of client timezone
const ReferenceTimezone = "America/New_York"

// Service picks target players from the eligible pool. The daily pick
// is a pure function of the calendar date and the pool ordering; the
// random pick draws from the injected non-deterministic source.
type Service struct {
	clock  clock.Clock
	random random.Random
	tz     *time.Location
	logger *slog.Logger
}

// New creates a new selector Service
func New(clk clock.Clock, rnd random.Random, logger *slog.Logger) (*Service, error) {
	tz, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		return nil, err
	}
	return &Service{
		clock:  clk,
		random: rnd,
		tz:     tz,
		logger: logger,
	}, nil
}

// PickDaily returns today's player. The same date and the same ordered
// pool always yield the same player, across calls and restarts. If the
// pool changes within a day the pick may change with it; that is an
// accepted property of index-based selection.
func (s *Service) PickDaily(players []model.EligiblePlayer) (model.EligiblePlayer, error) {
	if len(players) == 0 {
		return model.EligiblePlayer{}, model.ErrNoEligiblePlayers
	}

	date := s.clock.Now().In(s.tz).Format(time.DateOnly)
	seed := dateSeed(date)

	// A fresh generator per call: nothing mutates shared state, and the
	// random-game path can never perturb the daily pick
	rng := mrand.New(mrand.NewSource(seed))
	idx := rng.Intn(len(players))

	s.logger.Debug("daily player selected",
		slog.String("date", date),
		slog.Int("pool_size", len(players)),
		slog.Int("index", idx),
	)

	return players[idx], nil
}

// PickRandom returns a uniformly random player, independent of the
// daily seed; every call may differ
func (s *Service) PickRandom(players []model.EligiblePlayer) (model.EligiblePlayer, error) {
	if len(players) == 0 {
		return model.EligiblePlayer{}, model.ErrNoEligiblePlayers
	}
	return players[s.random.Intn(len(players))], nil
}

// dateSeed hashes an ISO date string (YYYY-MM-DD) into a stable
// 31-bit seed: the MD5 digest taken as a big integer, mod 2^31
func dateSeed(date string) int64 {
	sum := md5.Sum([]byte(date))

	n := new(big.Int).SetBytes(sum[:])
	n.Mod(n, big.NewInt(1<<31))
	return n.Int64()
}
