package dto

import "github.com/braxton0054/eavisystem/internal/app/models"

// RegisterStudentRequest represents a student registration
type RegisterStudentRequest struct {
	FullName    string `json:"fullName" binding:"required,min=2,max=150" example:"Jane Wanjiku Doe"`
	Email       string `json:"email" binding:"required,email,max=150" example:"jane@example.com"`
	PhoneNumber string `json:"phoneNumber" binding:"required,phone" example:"+254712345678"`
	DateOfBirth string `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02" example:"2006-04-12"`
	Location    string `json:"location" binding:"omitempty,max=150" example:"Nakuru"`
	CourseID    int64  `json:"courseId" binding:"required,gt=0" example:"4"`
	Term        int    `json:"term" binding:"omitempty,min=1,max=3" example:"1"`
	KCSEGrade   string `json:"kcseGrade" binding:"omitempty,kcsegrade" example:"C+"`
}

// RegistrationResponse is returned after a student is registered
type RegistrationResponse struct {
	Student          *models.Student `json:"student"`
	AdmissionNumber  string          `json:"admissionNumber" example:"EAVI/1001/2026"`
	DocumentFilename string          `json:"documentFilename,omitempty" example:"Jane_Wanjiku_Doe_EAVI_1001_2026.pdf"`
}

// UpdateStudentStatusRequest changes a student's admission status
type UpdateStudentStatusRequest struct {
	Status models.StudentStatus `json:"status" binding:"required,oneof=pending admitted rejected" example:"admitted"`
}

// StudentListResponse is one page of students
type StudentListResponse struct {
	Students   []*models.StudentDetail `json:"students"`
	Pagination PaginationInfo          `json:"pagination"`
}
