package models

import "time"

// Admin is the school-owning account; one Admin represents one school.
type Admin struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Password      string    `db:"password" json:"-"`
	Role          string    `db:"role" json:"role"`
	SchoolName    string    `db:"school_name" json:"schoolName"`
	Phone         string    `db:"phone" json:"phone"`
	Address       string    `db:"address" json:"address"`
	Qualification string    `db:"qualification" json:"qualification"`
	Bio           string    `db:"bio" json:"bio"`
	JoiningDate   time.Time `db:"joining_date" json:"joiningDate"`
	SchoolBanner  string    `db:"school_banner" json:"schoolBanner"`
	SchoolLogo    string    `db:"school_logo" json:"schoolLogo"`
	ProfilePic    string    `db:"profile_pic" json:"profilePic"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// SchoolRef carries the school display fields resolved onto child records.
type SchoolRef struct {
	ID         string `db:"school_id" json:"id"`
	SchoolName string `db:"school_name" json:"schoolName"`
	SchoolLogo string `db:"school_logo" json:"schoolLogo"`
}
