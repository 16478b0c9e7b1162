package services

import (
	"context"
	"log"

	"maycoin-backend/models"
)

// Progress is the client-visible slice of a player record.
type Progress struct {
	Username      string `json:"username"`
	Coins         int64  `json:"coins"`
	TotalEarned   int64  `json:"totalEarned"`
	TotalClicks   int64  `json:"totalClicks"`
	ClickPower    int64  `json:"clickPower"`
	AutoClickRate int64  `json:"autoClickRate"`
	HasPremium    bool   `json:"hasPremium"`
}

// SaveProgressInput is one progress save. Use NewSaveProgressInput for the game defaults.
type SaveProgressInput struct {
	PlayerID      string
	Username      string
	Coins         int64
	TotalEarned   int64
	TotalClicks   int64
	ClickPower    int64
	AutoClickRate int64
	HasPremium    bool
}

// NewSaveProgressInput returns an input carrying the defaults of a fresh player (click power 1).
func NewSaveProgressInput(playerID, username string) SaveProgressInput {
	return SaveProgressInput{
		PlayerID:   playerID,
		Username:   username,
		ClickPower: 1,
	}
}

type PlayerService struct {
	Store PlayerStore
}

func NewPlayerService(store PlayerStore) *PlayerService {
	return &PlayerService{Store: store}
}

// LoadProgress checks the block gate before reading the player.
func (s *PlayerService) LoadProgress(ctx context.Context, playerID string) (*Progress, error) {
	if playerID == "" {
		return nil, validationErr("playerId is required")
	}
	if err := s.ensureNotBlocked(ctx, playerID); err != nil {
		return nil, err
	}

	p, err := s.Store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &Progress{
		Username:      p.Username,
		Coins:         p.Coins,
		TotalEarned:   p.TotalEarned,
		TotalClicks:   p.TotalClicks,
		ClickPower:    p.ClickPower,
		AutoClickRate: p.AutoClickRate,
		HasPremium:    p.HasPremium,
	}, nil
}

// SaveProgress upserts the whole record. Numeric values are stored as sent.
// A blocked player gets BlockedError and nothing is written.
func (s *PlayerService) SaveProgress(ctx context.Context, in SaveProgressInput) error {
	if in.PlayerID == "" || in.Username == "" {
		return validationErr("playerId and username are required")
	}
	if err := s.ensureNotBlocked(ctx, in.PlayerID); err != nil {
		return err
	}

	return s.Store.UpsertPlayer(ctx, &models.Player{
		PlayerID:      in.PlayerID,
		Username:      in.Username,
		Coins:         in.Coins,
		TotalEarned:   in.TotalEarned,
		TotalClicks:   in.TotalClicks,
		ClickPower:    in.ClickPower,
		AutoClickRate: in.AutoClickRate,
		HasPremium:    in.HasPremium,
	})
}

func (s *PlayerService) ensureNotBlocked(ctx context.Context, playerID string) error {
	b, err := s.Store.GetBlock(ctx, playerID)
	if err != nil {
		return err
	}
	if b != nil {
		log.Printf("🚫 [PLAYER] blocked player %s denied (reason: %s)", playerID, b.Reason)
		return &BlockedError{PlayerID: playerID, Reason: b.Reason}
	}
	return nil
}
