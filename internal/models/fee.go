package models

import "time"

// FeeStatus tracks payment state for one month's fee.
type FeeStatus string

const (
	FeeStatusPaid          FeeStatus = "Paid"
	FeeStatusUnpaid        FeeStatus = "Unpaid"
	FeeStatusPartiallyPaid FeeStatus = "Partially Paid"
)

// FeeRecord is one month's fee entry for a student.
type FeeRecord struct {
	ID        string     `db:"id" json:"id"`
	StudentID string     `db:"student_id" json:"studentId"`
	Month     string     `db:"month" json:"month"`
	Amount    float64    `db:"amount" json:"amount"`
	Status    FeeStatus  `db:"status" json:"status"`
	PaidDate  *time.Time `db:"paid_date" json:"paidDate,omitempty"`
}
