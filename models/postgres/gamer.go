package postgres

import (
	constants "Tankard/constants/events"
	"math/rand"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'Gamer' is the player account. It can host games, join games and keep a
 * friends list. The games/friends columns are JSONB id arrays so they can be
 * mutated with the store's array operations.
 */
type Gamer struct {
	ID           string    `gorm:"primaryKey;size:10;not null" json:"id"`
	FullName     string    `gorm:"size:100" json:"full_name"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"password_hash"`
	Icon         int       `gorm:"default:0" json:"icon"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"member_since"`

	HostedGames datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"hosted_games"`
	JoinedGames datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"joined_games"`
	FriendsList datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"friends_list"`
}

func generateShortID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = constants.IDCharset[rand.Intn(len(constants.IDCharset))]
	}
	return string(b)
}

// Ensure the generated id is truly unique before inserting. Identity lives
// in the database, not in process memory, so concurrent creations are safe.
func (g *Gamer) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID != "" {
		return nil
	}
	for {
		newID := generateShortID(constants.GamerIDLen)
		var existing Gamer
		if err := tx.Where("id = ?", newID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				g.ID = newID
				return nil
			}
			return err
		}
		// Collision, loop again for a fresh id
	}
}
