package model

import "time"

// OrphanAsset records an object whose post-commit deletion failed. The owning
// document has already moved on, so the sweeper retries reclamation in the
// background until the store accepts the delete.
type OrphanAsset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"not null;uniqueIndex" json:"url"`
	Folder    string    `gorm:"type:varchar(50)" json:"folder"`
	Reason    string    `gorm:"type:text" json:"reason"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
