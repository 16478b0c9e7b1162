package models

import (
	"time"
)

// DefaultBlockReason is stored when an admin blocks a player without giving a reason.
const DefaultBlockReason = "Нарушение правил"

// Player is one player's saved clicker progress. PlayerID comes from the game client.
type Player struct {
	PlayerID      string    `gorm:"primaryKey;column:player_id" json:"playerId"`
	Username      string    `gorm:"not null" json:"username"`
	Coins         int64     `gorm:"not null;index" json:"coins"`
	TotalEarned   int64     `gorm:"not null" json:"totalEarned"`
	TotalClicks   int64     `gorm:"not null" json:"totalClicks"`
	ClickPower    int64     `gorm:"not null" json:"clickPower"`
	AutoClickRate int64     `gorm:"not null" json:"autoClickRate"`
	HasPremium    bool      `gorm:"not null" json:"hasPremium"`
	LastUpdated   time.Time `gorm:"column:last_updated;not null" json:"lastUpdated"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"-"`

	// Block is only populated by the admin listing (Preload).
	Block *BlockedPlayer `gorm:"foreignKey:PlayerID;references:PlayerID" json:"-"`
}

func (Player) TableName() string {
	return "players"
}

// BlockedPlayer gates every progress load/save for its PlayerID while it exists.
type BlockedPlayer struct {
	PlayerID  string    `gorm:"primaryKey;column:player_id" json:"playerId"`
	Username  string    `gorm:"not null" json:"username"`
	Reason    string    `gorm:"not null" json:"reason"`
	BlockedAt time.Time `gorm:"not null" json:"blockedAt"`
}

func (BlockedPlayer) TableName() string {
	return "blocked_players"
}

// ProgressFields lists the columns overwritten by a progress upsert.
var ProgressFields = []string{
	"username",
	"coins",
	"total_earned",
	"total_clicks",
	"click_power",
	"auto_click_rate",
	"has_premium",
	"last_updated",
}
