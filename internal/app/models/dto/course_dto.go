package dto

// CourseRequest creates or replaces a course
type CourseRequest struct {
	Code             string  `json:"code" binding:"required,min=2,max=20" example:"DMLT"`
	Name             string  `json:"name" binding:"required,min=3,max=150" example:"Diploma in Medical Laboratory Technology"`
	Department       string  `json:"department" binding:"required,max=100" example:"Health Sciences"`
	FeePerTerm       string  `json:"feePerTerm" binding:"required,numeric" example:"25000.00"`
	FeePerYear       string  `json:"feePerYear" binding:"required,numeric" example:"75000.00"`
	DurationYears    int     `json:"durationYears" binding:"required,min=1,max=6" example:"3"`
	MinimumGrade     string  `json:"minimumGrade" binding:"omitempty,kcsegrade" example:"C"`
	FeeStructureFile *string `json:"feeStructureFile" binding:"omitempty,max=255" example:"1760515200_Medical_Lab.pdf"`
}
