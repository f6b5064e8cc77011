package scorer

import "gorm.io/gorm"

// Scorer is the account that owns teams and matches. Spectators never log
// in; only the person at the scorebook does.
type Scorer struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
}
