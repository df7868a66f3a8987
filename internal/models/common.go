package models

import "time"

// AuditFields are the creation stamps stored on every written row.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
