package models

import "time"

// Student is a registered applicant of one campus.
type Student struct {
	ID              int64         `json:"id" db:"student_id"`
	AdmissionNumber string        `json:"admissionNumber" db:"admission_number"`
	FullName        string        `json:"fullName" db:"full_name"`
	Email           string        `json:"email" db:"email"`
	PhoneNumber     string        `json:"phoneNumber" db:"phone_number"`
	DateOfBirth     *time.Time    `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Location        string        `json:"location" db:"location"`
	CourseID        int64         `json:"courseId" db:"course_id"`
	Term            int           `json:"term" db:"term"`
	Campus          string        `json:"campus" db:"campus_name"`
	Status          StudentStatus `json:"status" db:"status"`
	KCSEGrade       string        `json:"kcseGrade" db:"kcse_grade"`
	AdmissionDate   time.Time     `json:"admissionDate" db:"admission_date"`
	ReportingDate   *time.Time    `json:"reportingDate,omitempty" db:"reporting_date"`
	// DocumentPath is the filename of the generated admission package, nil
	// until one has been written.
	DocumentPath *string   `json:"documentPath,omitempty" db:"pdf_path"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// StudentDetail is a student joined with the course fields shown in listings.
type StudentDetail struct {
	Student
	CourseName       string  `json:"courseName"`
	Department       string  `json:"department"`
	FeeStructureFile *string `json:"feeStructureFile,omitempty"`
}
