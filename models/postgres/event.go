package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'Event' is a publican-defined time window with one capacity bucket per
 * hour. AvailableSlots maps "HH:00-HH:00" keys to the remaining capacity
 * for that hour: seats for Seat Based events, tables for Table Based ones.
 */
type Event struct {
	ID        string    `gorm:"primaryKey;size:50;not null" json:"id"`
	PubID     string    `gorm:"size:50;not null;index:idx_events_pub" json:"pub_id"`
	GameType  string    `gorm:"size:20;not null" json:"game_type"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	// Advisory only, never enforced structurally
	Expires   time.Time `json:"expires"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Capacity parameters for the event's variant. NumSeats is set for
	// Seat Based events, NumTables and TableCapacity for Table Based ones.
	NumSeats      int `gorm:"default:0" json:"num_seats"`
	NumTables     int `gorm:"default:0" json:"num_tables"`
	TableCapacity int `gorm:"default:0" json:"table_capacity"`

	// Per-hour capacity every slot started at, upper bound for releases
	InitialCapacity int `gorm:"not null" json:"initial_capacity"`

	AvailableSlots datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"available_slots"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
