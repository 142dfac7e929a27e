package models

import "time"

// Complaint is a school-scoped grievance raised by a user. There is no
// workflow around it; complaints are write-once.
type Complaint struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user"`
	Complaint string    `db:"complaint" json:"complaint"`
	Date      time.Time `db:"date" json:"date"`
	SchoolID  string    `db:"school_id" json:"schoolId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
