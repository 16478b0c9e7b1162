package services

import (
	"context"
	"log"
	"time"

	"maycoin-backend/models"
)

// BlockAction is the moderation toggle carried by an admin PUT.
type BlockAction int

const (
	BlockActionUnknown BlockAction = iota
	BlockActionBlock
	BlockActionUnblock
)

func ParseBlockAction(s string) BlockAction {
	switch s {
	case "block":
		return BlockActionBlock
	case "unblock":
		return BlockActionUnblock
	default:
		return BlockActionUnknown
	}
}

// Past returns the word echoed back to the admin client.
func (a BlockAction) Past() string {
	switch a {
	case BlockActionBlock:
		return "blocked"
	case BlockActionUnblock:
		return "unblocked"
	default:
		return ""
	}
}

// PlayerSummary is one row of the admin player table.
type PlayerSummary struct {
	PlayerID      string     `json:"playerId"`
	Username      string     `json:"username"`
	Coins         int64      `json:"coins"`
	TotalEarned   int64      `json:"totalEarned"`
	TotalClicks   int64      `json:"totalClicks"`
	ClickPower    int64      `json:"clickPower"`
	AutoClickRate int64      `json:"autoClickRate"`
	HasPremium    bool       `json:"hasPremium"`
	LastUpdated   *time.Time `json:"lastUpdated"`
	IsBlocked     bool       `json:"isBlocked"`
	BlockReason   *string    `json:"blockReason"`
	BlockedAt     *time.Time `json:"blockedAt"`
}

func summarize(p models.Player) PlayerSummary {
	s := PlayerSummary{
		PlayerID:      p.PlayerID,
		Username:      p.Username,
		Coins:         p.Coins,
		TotalEarned:   p.TotalEarned,
		TotalClicks:   p.TotalClicks,
		ClickPower:    p.ClickPower,
		AutoClickRate: p.AutoClickRate,
		HasPremium:    p.HasPremium,
	}
	if !p.LastUpdated.IsZero() {
		t := p.LastUpdated
		s.LastUpdated = &t
	}
	if p.Block != nil {
		reason := p.Block.Reason
		at := p.Block.BlockedAt
		s.IsBlocked = true
		s.BlockReason = &reason
		s.BlockedAt = &at
	}
	return s
}

type AdminService struct {
	Store PlayerStore
}

func NewAdminService(store PlayerStore) *AdminService {
	return &AdminService{Store: store}
}

// ListPlayers returns every player richest first, joined with block status.
func (s *AdminService) ListPlayers(ctx context.Context) ([]PlayerSummary, error) {
	players, err := s.Store.ListPlayersWithBlockStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PlayerSummary, 0, len(players))
	for _, p := range players {
		out = append(out, summarize(p))
	}
	return out, nil
}

// AdjustCoins grants (positive) or penalises (negative) coins; the balance never drops below zero.
func (s *AdminService) AdjustCoins(ctx context.Context, playerID string, coinsChange int64) (int64, error) {
	newCoins, err := s.Store.AdjustCoins(ctx, playerID, coinsChange)
	if err != nil {
		return 0, err
	}
	log.Printf("💰 [ADMIN] coins adjusted: %s %+d → %d", playerID, coinsChange, newCoins)
	return newCoins, nil
}

// SetBlockState blocks (player must exist) or unblocks (always succeeds) a player.
// A nil reason stores DefaultBlockReason; an empty one is stored as given.
func (s *AdminService) SetBlockState(ctx context.Context, playerID string, action BlockAction, reason *string) error {
	switch action {
	case BlockActionBlock:
		p, err := s.Store.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		stored := models.DefaultBlockReason
		if reason != nil {
			stored = *reason
		}
		if err := s.Store.SetBlock(ctx, playerID, p.Username, stored); err != nil {
			return err
		}
		log.Printf("🔒 [ADMIN] blocked %s (%s): %s", playerID, p.Username, stored)
		return nil
	case BlockActionUnblock:
		if err := s.Store.ClearBlock(ctx, playerID); err != nil {
			return err
		}
		log.Printf("🔓 [ADMIN] unblocked %s", playerID)
		return nil
	default:
		return validationErr("action must be 'block' or 'unblock'")
	}
}

// DeletePlayer removes the player and any block. Deleting an unknown id succeeds.
func (s *AdminService) DeletePlayer(ctx context.Context, playerID string) error {
	if err := s.Store.DeletePlayer(ctx, playerID); err != nil {
		return err
	}
	log.Printf("🗑️ [ADMIN] deleted player %s", playerID)
	return nil
}
