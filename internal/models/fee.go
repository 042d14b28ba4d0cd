package models

import "time"

// FeeStatus tracks how much of a ledger entry has been settled.
type FeeStatus string

const (
	FeeStatusUnpaid  FeeStatus = "Unpaid"
	FeeStatusPartial FeeStatus = "Partial"
	FeeStatusPaid    FeeStatus = "Paid"
)

// Fee is a catalog billing item. Tuition fees carry the course they bill
// for as an explicit reference.
type Fee struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Amount    float64   `db:"amount"`
	IsTuition bool      `db:"is_tuition"`
	CourseID  *string   `db:"course_id"`
	CreatedAt time.Time `db:"created_at"`
}

// StudentFee is a student-specific ledger entry for a catalog fee.
type StudentFee struct {
	ID         string    `db:"id"`
	StudentID  string    `db:"student_id"`
	FeeID      string    `db:"fee_id"`
	AmountDue  float64   `db:"amount_due"`
	AmountPaid float64   `db:"amount_paid"`
	Status     FeeStatus `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Remaining returns the unpaid balance of the entry.
func (f StudentFee) Remaining() float64 {
	return f.AmountDue - f.AmountPaid
}

// DeriveFeeStatus computes the ledger status from the paid/due pair.
// Status is always a pure function of these two fields.
func DeriveFeeStatus(amountPaid, amountDue float64) FeeStatus {
	switch {
	case amountPaid >= amountDue:
		return FeeStatusPaid
	case amountPaid > 0:
		return FeeStatusPartial
	default:
		return FeeStatusUnpaid
	}
}

// StudentFeeDetail extends a ledger entry with its fee name for listings.
type StudentFeeDetail struct {
	StudentFee
	FeeName string `db:"fee_name"`
}
