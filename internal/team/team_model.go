package team

import (
	"gorm.io/gorm"
)

// PlayerRole classifies a squad member. Exactly one Keeper per team is
// enforced at roster creation.
type PlayerRole string

const (
	RoleBatsman    PlayerRole = "Batsman"
	RoleBowler     PlayerRole = "Bowler"
	RoleAllRounder PlayerRole = "All-rounder"
	RoleKeeper     PlayerRole = "Keeper"
)

// Squad size bounds accepted at roster creation.
const (
	MinSquadSize = 2
	MaxSquadSize = 16
)

// Team is a named roster of players. Players here are roster entries, not
// user accounts; the scorekeeper owns the account.
type Team struct {
	gorm.Model
	PublicID          string   `json:"public_id" gorm:"uniqueIndex;size:36"`
	Name              string   `json:"name" gorm:"not null"`
	CreatedByScorerID uint     `json:"created_by_scorer_id" gorm:"index"`
	CaptainID         *uint    `json:"captain_id,omitempty"`
	KeeperID          *uint    `json:"keeper_id,omitempty"`
	Players           []Player `json:"players,omitempty" gorm:"foreignKey:TeamID"`
}

// Player is one roster entry.
type Player struct {
	gorm.Model
	TeamID uint       `json:"team_id" gorm:"index;not null"`
	Name   string     `json:"name" gorm:"not null"`
	Role   PlayerRole `json:"role" gorm:"not null;default:'Batsman'"`
}

// PlayerByID looks a player up in the roster.
func (t *Team) PlayerByID(id uint) *Player {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}

// HasPlayer reports roster membership.
func (t *Team) HasPlayer(id uint) bool {
	return t.PlayerByID(id) != nil
}

// PlayerName returns the display name for a roster id, empty if unknown.
func (t *Team) PlayerName(id uint) string {
	if p := t.PlayerByID(id); p != nil {
		return p.Name
	}
	return ""
}
