package models

// StudentStatus is the admission state of a student.
type StudentStatus string

const (
	StatusPending  StudentStatus = "pending"
	StatusAdmitted StudentStatus = "admitted"
	StatusRejected StudentStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s StudentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAdmitted, StatusRejected:
		return true
	}
	return false
}

// Terms are numbered 1 to 3 within an academic year.
const (
	MinTerm = 1
	MaxTerm = 3
)
