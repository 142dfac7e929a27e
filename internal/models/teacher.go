package models

import "time"

// TeacherStatus tracks a teacher's employment state.
type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "Active"
	TeacherStatusInactive TeacherStatus = "Inactive"
	TeacherStatusOnLeave  TeacherStatus = "On Leave"
)

// Valid returns true when the status is a supported value.
func (s TeacherStatus) Valid() bool {
	switch s {
	case TeacherStatusActive, TeacherStatusInactive, TeacherStatusOnLeave:
		return true
	default:
		return false
	}
}

// Teacher represents a teaching staff member. A teacher holds at most one
// subject assignment at a time.
type Teacher struct {
	ID            string        `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	Email         string        `db:"email" json:"email"`
	Password      string        `db:"password" json:"-"`
	Role          string        `db:"role" json:"role"`
	Gender        string        `db:"gender" json:"gender"`
	DOB           *time.Time    `db:"dob" json:"dob,omitempty"`
	Phone         string        `db:"phone" json:"phone"`
	CNIC          string        `db:"cnic" json:"cnic"`
	TeacherImage  string        `db:"teacher_image" json:"teacherImage"`
	Address       string        `db:"address" json:"address"`
	Qualification string        `db:"qualification" json:"qualification"`
	Experience    string        `db:"experience" json:"experience"`
	JoiningDate   time.Time     `db:"joining_date" json:"joiningDate"`
	Designation   string        `db:"designation" json:"designation"`
	Bio           string        `db:"bio" json:"bio"`
	Salary        float64       `db:"salary" json:"salary"`
	Status        TeacherStatus `db:"status" json:"status"`
	SchoolID      string        `db:"school_id" json:"schoolId"`
	ClassID       string        `db:"class_id" json:"classId"`
	SubjectID     *string       `db:"subject_id" json:"subjectId,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}

// TeacherDetail extends the teacher row with resolved class, subject and
// school display fields.
type TeacherDetail struct {
	Teacher
	ClassName       string  `db:"class_name" json:"className"`
	SubjectName     *string `db:"subject_name" json:"subjectName,omitempty"`
	SubjectSessions *int    `db:"subject_sessions" json:"subjectSessions,omitempty"`
	SchoolName      string  `db:"school_name" json:"schoolName"`
	SchoolLogo      string  `db:"school_logo" json:"schoolLogo"`

	Attendance []AttendanceEntry `json:"attendance,omitempty"`
}
