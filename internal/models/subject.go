package models

import "time"

// Subject represents an academic subject taught in one class. The teacher
// back-reference holds at most one teacher at a time; assignments overwrite
// it without further enforcement.
type Subject struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"subName"`
	Sessions  int       `db:"sessions" json:"sessions"`
	ClassID   string    `db:"class_id" json:"classId"`
	SchoolID  string    `db:"school_id" json:"schoolId"`
	TeacherID *string   `db:"teacher_id" json:"teacherId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// SubjectDetail extends the subject row with resolved class and teacher
// display fields.
type SubjectDetail struct {
	Subject
	ClassName   string  `db:"class_name" json:"className"`
	TeacherName *string `db:"teacher_name" json:"teacherName,omitempty"`
}
