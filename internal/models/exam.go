package models

import "time"

// DefaultTotalMarks is used when a result submission omits the total.
const DefaultTotalMarks = 100

// ExamResult is one per-subject result for a student. Exactly one row exists
// per (student, subject); repeated submissions update marks in place.
type ExamResult struct {
	ID            string    `db:"id" json:"id"`
	StudentID     string    `db:"student_id" json:"studentId"`
	SubjectID     string    `db:"subject_id" json:"subName"`
	MarksObtained float64   `db:"marks_obtained" json:"marksObtained"`
	TotalMarks    float64   `db:"total_marks" json:"totalMarks"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// ExamResultEntry is the resolved form embedded in the student detail.
type ExamResultEntry struct {
	SubjectID     string  `db:"subject_id" json:"subjectId"`
	SubjectName   *string `db:"subject_name" json:"subName,omitempty"`
	MarksObtained float64 `db:"marks_obtained" json:"marksObtained"`
	TotalMarks    float64 `db:"total_marks" json:"totalMarks"`
}
