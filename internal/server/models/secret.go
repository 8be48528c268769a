package models

import (
	"database/sql"
	"time"
)

// Secret is a single-use invitation code. The token value itself is the
// primary key. UsedBy is set to the redeeming user's ID in the same
// transaction that flips IsUsed.
type Secret struct {
	Secret    string
	CreatedBy string
	UsedBy    sql.NullString
	IsUsed    bool
	CreatedAt time.Time
}
