package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/statline-game/statline/internal/model"
	"github.com/statline-game/statline/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage
// interfaces. Player and season tables are reference data maintained
// by the ingestion pipeline; only game_sessions is migrated here.
type Storage struct {
	db *gorm.DB
}

// New opens a Postgres connection and ensures the game_sessions table
// exists
func New(cfg Config) (*Storage, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.GameSession{}); err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Postgres storage with an existing gorm handle
// (for testing)
func NewWithDB(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Close releases the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure Storage implements the combined interface
var _ storage.Store = (*Storage)(nil)

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	err := s.db.WithContext(ctx).First(&player, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	var player model.Player
	// Lowest id wins on duplicate names
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id").
		First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListEligiblePlayers(ctx context.Context) ([]model.EligiblePlayer, error) {
	var eligible []model.EligiblePlayer
	err := s.db.WithContext(ctx).Raw(`
		SELECT p.id, p.position
		FROM players p
		WHERE EXISTS (SELECT 1 FROM passing_seasons ps WHERE ps.player_id = p.id)
		   OR EXISTS (SELECT 1 FROM receiving_seasons rs WHERE rs.player_id = p.id)
		   OR EXISTS (SELECT 1 FROM rushing_seasons rus WHERE rus.player_id = p.id)
		ORDER BY p.id`).
		Scan(&eligible).Error
	if err != nil {
		return nil, err
	}
	return eligible, nil
}

func (s *Storage) SeasonsFor(ctx context.Context, id model.PlayerID, pos model.Position) ([]model.SeasonRecord, error) {
	db := s.db.WithContext(ctx)

	switch pos {
	case model.PositionQB:
		var rows []model.PassingSeason
		if err := db.Where("player_id = ?", id).Order("season").Find(&rows).Error; err != nil {
			return nil, err
		}
		return asRecords(rows), nil
	case model.PositionWR:
		var rows []model.ReceivingSeason
		if err := db.Where("player_id = ?", id).Order("season").Find(&rows).Error; err != nil {
			return nil, err
		}
		return asRecords(rows), nil
	case model.PositionRB:
		var rows []model.RushingSeason
		if err := db.Where("player_id = ?", id).Order("season").Find(&rows).Error; err != nil {
			return nil, err
		}
		return asRecords(rows), nil
	default:
		return nil, model.ErrUnknownPosition
	}
}

func (s *Storage) AllSeasonsFor(ctx context.Context, id model.PlayerID) ([]model.SeasonRecord, error) {
	db := s.db.WithContext(ctx)

	var passing []model.PassingSeason
	if err := db.Where("player_id = ?", id).Order("season").Find(&passing).Error; err != nil {
		return nil, err
	}
	var receiving []model.ReceivingSeason
	if err := db.Where("player_id = ?", id).Order("season").Find(&receiving).Error; err != nil {
		return nil, err
	}
	var rushing []model.RushingSeason
	if err := db.Where("player_id = ?", id).Order("season").Find(&rushing).Error; err != nil {
		return nil, err
	}

	records := make([]model.SeasonRecord, 0, len(passing)+len(receiving)+len(rushing))
	records = append(records, asRecords(passing)...)
	records = append(records, asRecords(receiving)...)
	records = append(records, asRecords(rushing)...)
	return records, nil
}

func (s *Storage) SearchNames(ctx context.Context, query string, limit int) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Raw(`
		SELECT DISTINCT name
		FROM players
		WHERE LOWER(name) LIKE LOWER(?)
		AND (
			EXISTS (SELECT 1 FROM passing_seasons ps WHERE ps.player_id = players.id)
			OR EXISTS (SELECT 1 FROM receiving_seasons rs WHERE rs.player_id = players.id)
			OR EXISTS (SELECT 1 FROM rushing_seasons rus WHERE rus.player_id = players.id)
		)
		ORDER BY name
		LIMIT ?`, "%"+query+"%", limit).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func asRecords[T model.SeasonRecord](rows []T) []model.SeasonRecord {
	records := make([]model.SeasonRecord, len(rows))
	for i, r := range rows {
		records[i] = r
	}
	return records
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *Storage) ResolveSession(ctx context.Context, id model.SessionID, now time.Time) (*model.GameSession, error) {
	// Single statement: the refresh and the read cannot be split by a
	// concurrent sweep
	var session model.GameSession
	res := s.db.WithContext(ctx).Raw(`
		UPDATE game_sessions
		SET last_accessed = ?
		WHERE session_id = ?
		RETURNING session_id, player_id, game_mode, created_at, last_accessed`,
		now, id).
		Scan(&session)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrSessionNotFound
	}
	return &session, nil
}

func (s *Storage) DeleteExpiredSessions(ctx context.Context, staleBefore, minCreatedBefore time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("last_accessed < ? AND created_at < ?", staleBefore, minCreatedBefore).
		Delete(&model.GameSession{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
