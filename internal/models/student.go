package models

import "time"

// StudentStatus tracks whether a student is currently enrolled.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "Active"
	StudentStatusSuspended StudentStatus = "Suspended"
	StudentStatusLeft      StudentStatus = "Left"
	StudentStatusGraduated StudentStatus = "Graduated"
)

// Valid returns true when the status is a supported value.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusSuspended, StudentStatusLeft, StudentStatusGraduated:
		return true
	default:
		return false
	}
}

// Student represents an enrolled student. The roll number may change across
// years; the admission number never does.
type Student struct {
	ID               string        `db:"id" json:"id"`
	Name             string        `db:"name" json:"name"`
	RollNum          int           `db:"roll_num" json:"rollNum"`
	Password         string        `db:"password" json:"-"`
	AdmissionNumber  string        `db:"admission_number" json:"admissionNumber"`
	AdmissionDate    time.Time     `db:"admission_date" json:"admissionDate"`
	Status           StudentStatus `db:"status" json:"status"`
	DOB              *time.Time    `db:"dob" json:"dob,omitempty"`
	Gender           string        `db:"gender" json:"gender"`
	Email            string        `db:"email" json:"email"`
	Phone            string        `db:"phone" json:"phone"`
	Address          string        `db:"address" json:"address"`
	BloodGroup       string        `db:"blood_group" json:"bloodGroup"`
	FatherName       string        `db:"father_name" json:"fatherName"`
	FatherOccupation string        `db:"father_occupation" json:"fatherOccupation"`
	MotherName       string        `db:"mother_name" json:"motherName"`
	GuardianPhone    string        `db:"guardian_phone" json:"guardianPhone"`
	StudentImage     string        `db:"student_image" json:"studentImage"`
	Role             string        `db:"role" json:"role"`
	ClassID          string        `db:"class_id" json:"classId"`
	SchoolID         string        `db:"school_id" json:"schoolId"`
	CreatedAt        time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updatedAt"`
}

// StudentDetail extends the student row with resolved class and school
// display fields.
type StudentDetail struct {
	Student
	ClassName  string `db:"class_name" json:"className"`
	SchoolName string `db:"school_name" json:"schoolName"`
	SchoolLogo string `db:"school_logo" json:"schoolLogo"`

	ExamResults []ExamResultEntry `json:"examResult,omitempty"`
	Attendance  []AttendanceEntry `json:"attendance,omitempty"`
	Fees        []FeeRecord       `json:"fees,omitempty"`
}
