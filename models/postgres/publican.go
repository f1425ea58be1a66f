package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'Publican' is the pub-owner account. It defines the venue (location,
 * coordinates, walk-in table counter) and owns the events created for it.
 */
type Publican struct {
	ID           string    `gorm:"primaryKey;size:50;not null" json:"id"`
	PubName      string    `gorm:"size:100;not null" json:"pub_name"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"password_hash"`
	Location     string    `gorm:"size:200" json:"location"`
	Xcoord       float64   `json:"xcoord"`
	Ycoord       float64   `json:"ycoord"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"member_since"`

	// Walk-in tables currently free, independent of event slots
	Tables int `gorm:"default:0" json:"tables"`

	Events datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"events"`
}

func (p *Publican) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
