package entities

import "time"

// Contribution tracks the cumulative amount one investor has put into one
// scholarship. The row is created on first contribution and only its amount
// grows afterwards; the creation order is the canonical investor list order.
type Contribution struct {
	ID            int64     `db:"id"`
	ScholarshipID int64     `db:"scholarship_id"`
	Investor      string    `db:"investor"`
	Amount        int64     `db:"amount"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
