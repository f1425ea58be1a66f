package postgres

import (
	constants "Tankard/constants/events"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'Game' is a hosted play session inside a covering event. The event's
 * game type at creation time decides which of the Seats/Tables columns is
 * live; the other stays at its empty default. GameType on the game itself
 * is the descriptive label the host typed ("poker night"), not the shape.
 */
type Game struct {
	ID       string `gorm:"primaryKey;size:10;not null" json:"id"`
	HostID   string `gorm:"size:10;not null;index:idx_games_host" json:"host_id"`
	PubID    string `gorm:"size:50;not null;index:idx_games_pub" json:"pub_id"`
	EventID  string `gorm:"size:50;not null;index:idx_games_event" json:"event_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Desc     string `gorm:"size:500" json:"desc"`
	GameType string `gorm:"size:50" json:"game_type"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Expires   time.Time `json:"expires"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Denormalized venue info so game listings don't need a pub lookup
	Location string  `gorm:"size:200" json:"location"`
	Xcoord   float64 `json:"xcoord"`
	Ycoord   float64 `json:"ycoord"`

	MaxPlayers int    `gorm:"not null" json:"max_players"`
	IsPrivate  bool   `gorm:"default:false" json:"is_private"`
	AccessCode string `gorm:"size:50" json:"access_code"`

	// "Seat Based" or "Table Based", copied from the covering event
	Shape string `gorm:"size:20;not null" json:"shape"`

	Participants datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"participants"`
	// Seat number (as a JSON key) -> occupant gamer id, "" when free
	Seats datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"seats"`
	// Table name -> ordered occupant gamer ids
	Tables datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"tables"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID != "" {
		return nil
	}
	for {
		newID := generateShortID(constants.GameIDLen)
		var existing Game
		if err := tx.Where("id = ?", newID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				g.ID = newID
				return nil
			}
			return err
		}
	}
}
