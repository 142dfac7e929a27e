package models

import "time"

// Class is a class/grade grouping of students (sclass in the legacy API).
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"sclassName"`
	SchoolID  string    `db:"school_id" json:"schoolId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ClassDetail extends the class row with the resolved school name.
type ClassDetail struct {
	Class
	SchoolName string `db:"school_name" json:"schoolName"`
}
