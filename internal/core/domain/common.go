package domain

import "time"

// AuditFields holds creation audit information. Records carrying it are append-only.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"` // UserID Reference (JWT subject)
}
