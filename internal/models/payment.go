package models

import "time"

// Payment is an append-only audit record. Rows are never updated or
// deleted once inserted.
type Payment struct {
	ID             string    `db:"id"`
	StudentID      string    `db:"student_id"`
	StudentFeeID   string    `db:"student_fee_id"`
	Amount         float64   `db:"amount"`
	TransactionRef string    `db:"transaction_ref"`
	PaidAt         time.Time `db:"paid_at"`
}

// PaymentDetail extends a payment with names for receipts and history.
type PaymentDetail struct {
	Payment
	StudentName string `db:"student_name"`
	FeeName     string `db:"fee_name"`
}
