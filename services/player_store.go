package services

import (
	"context"
	"errors"
	"time"

	"maycoin-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlayerStore is the only downstream collaborator of the player and admin services.
// Every call is a single statement or a single transaction.
type PlayerStore interface {
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)
	UpsertPlayer(ctx context.Context, p *models.Player) error
	GetBlock(ctx context.Context, playerID string) (*models.BlockedPlayer, error)
	SetBlock(ctx context.Context, playerID, username, reason string) error
	ClearBlock(ctx context.Context, playerID string) error
	DeletePlayer(ctx context.Context, playerID string) error
	AdjustCoins(ctx context.Context, playerID string, delta int64) (int64, error)
	ListPlayersWithBlockStatus(ctx context.Context) ([]models.Player, error)
}

// GormPlayerStore implements PlayerStore over the players / blocked_players tables.
type GormPlayerStore struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewGormPlayerStore(db *gorm.DB) *GormPlayerStore {
	return &GormPlayerStore{DB: db, Now: time.Now}
}

// Migrate creates or updates both tables.
func (s *GormPlayerStore) Migrate() error {
	return s.DB.AutoMigrate(&models.Player{}, &models.BlockedPlayer{})
}

func (s *GormPlayerStore) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	var p models.Player
	err := s.DB.WithContext(ctx).Where("player_id = ?", playerID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, storeErr("get player", err)
	}
	return &p, nil
}

// UpsertPlayer inserts the row or overwrites every progress column in one statement.
// LastUpdated is always stamped here; whatever the caller set is ignored.
func (s *GormPlayerStore) UpsertPlayer(ctx context.Context, p *models.Player) error {
	p.LastUpdated = s.Now().UTC()
	err := s.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns(models.ProgressFields),
		}).
		Create(p).Error
	return storeErr("upsert player", err)
}

// GetBlock returns nil, nil when the player is not blocked.
func (s *GormPlayerStore) GetBlock(ctx context.Context, playerID string) (*models.BlockedPlayer, error) {
	var b models.BlockedPlayer
	err := s.DB.WithContext(ctx).Where("player_id = ?", playerID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get block", err)
	}
	return &b, nil
}

// SetBlock creates the block or replaces its reason. BlockedAt keeps the first block time.
func (s *GormPlayerStore) SetBlock(ctx context.Context, playerID, username, reason string) error {
	b := models.BlockedPlayer{
		PlayerID:  playerID,
		Username:  username,
		Reason:    reason,
		BlockedAt: s.Now().UTC(),
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"reason"}),
		}).
		Create(&b).Error
	return storeErr("set block", err)
}

func (s *GormPlayerStore) ClearBlock(ctx context.Context, playerID string) error {
	err := s.DB.WithContext(ctx).Where("player_id = ?", playerID).Delete(&models.BlockedPlayer{}).Error
	return storeErr("clear block", err)
}

// DeletePlayer removes the block row first, then the player row. Missing rows are not an error.
func (s *GormPlayerStore) DeletePlayer(ctx context.Context, playerID string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ?", playerID).Delete(&models.BlockedPlayer{}).Error; err != nil {
			return err
		}
		return tx.Where("player_id = ?", playerID).Delete(&models.Player{}).Error
	})
	return storeErr("delete player", err)
}

// AdjustCoins applies delta with a floor of zero in a single UPDATE, then reads the result
// back inside the same transaction. Only the coins column is written.
func (s *GormPlayerStore) AdjustCoins(ctx context.Context, playerID string, delta int64) (int64, error) {
	var newCoins int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Player{}).
			Where("player_id = ?", playerID).
			UpdateColumn("coins", gorm.Expr("CASE WHEN coins + ? < 0 THEN 0 ELSE coins + ? END", delta, delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPlayerNotFound
		}
		return tx.Model(&models.Player{}).
			Select("coins").
			Where("player_id = ?", playerID).
			Row().
			Scan(&newCoins)
	})
	if errors.Is(err, ErrPlayerNotFound) {
		return 0, ErrPlayerNotFound
	}
	if err != nil {
		return 0, storeErr("adjust coins", err)
	}
	return newCoins, nil
}

// ListPlayersWithBlockStatus returns every player, richest first, with Block preloaded.
func (s *GormPlayerStore) ListPlayersWithBlockStatus(ctx context.Context) ([]models.Player, error) {
	players := make([]models.Player, 0, 100)
	err := s.DB.WithContext(ctx).
		Preload("Block").
		Order("coins DESC").
		Order("player_id ASC").
		Find(&players).Error
	if err != nil {
		return nil, storeErr("list players", err)
	}
	return players, nil
}

// UnavailableStore answers every call with a StoreError. It is wired in when the
// process starts without a database connection string.
type UnavailableStore struct {
	Err error
}

func NewUnavailableStore() *UnavailableStore {
	return &UnavailableStore{Err: ErrStoreNotConfigured}
}

func (u *UnavailableStore) fail(op string) error {
	return &StoreError{Op: op, Err: u.Err}
}

func (u *UnavailableStore) GetPlayer(context.Context, string) (*models.Player, error) {
	return nil, u.fail("get player")
}

func (u *UnavailableStore) UpsertPlayer(context.Context, *models.Player) error {
	return u.fail("upsert player")
}

func (u *UnavailableStore) GetBlock(context.Context, string) (*models.BlockedPlayer, error) {
	return nil, u.fail("get block")
}

func (u *UnavailableStore) SetBlock(context.Context, string, string, string) error {
	return u.fail("set block")
}

func (u *UnavailableStore) ClearBlock(context.Context, string) error {
	return u.fail("clear block")
}

func (u *UnavailableStore) DeletePlayer(context.Context, string) error {
	return u.fail("delete player")
}

func (u *UnavailableStore) AdjustCoins(context.Context, string, int64) (int64, error) {
	return 0, u.fail("adjust coins")
}

func (u *UnavailableStore) ListPlayersWithBlockStatus(context.Context) ([]models.Player, error) {
	return nil, u.fail("list players")
}
