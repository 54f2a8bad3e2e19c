package models

import "time"

// AuditFields holds the creation audit columns shared by append-only tables.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
