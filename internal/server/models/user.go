package models

import (
	"database/sql"
	"time"
)

// User is a persisted account row. Password holds the sha256 digest, never
// the plaintext. UsedSecret references the invitation secret redeemed at
// registration; it is NULL only for rows predating the invitation flow.
type User struct {
	ID        string
	Login     string
	Password  string
	Name      string
	Surname   string
	HasFaceID bool
	IsActive  bool

	UsedSecret sql.NullString

	CreatedAt time.Time
}
