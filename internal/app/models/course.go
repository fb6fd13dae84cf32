package models

// Course is an offering of one campus. Fees are kept as the decimal text
// stored in the database and are printed verbatim.
type Course struct {
	ID               int64   `json:"id" db:"course_id"`
	Code             string  `json:"code" db:"course_code"`
	Name             string  `json:"name" db:"course_name"`
	Department       string  `json:"department" db:"department"`
	FeePerTerm       string  `json:"feePerTerm" db:"fee_per_term"`
	FeePerYear       string  `json:"feePerYear" db:"fee_per_year"`
	DurationYears    int     `json:"durationYears" db:"duration_years"`
	MinimumGrade     string  `json:"minimumGrade" db:"minimum_kcse_grade"`
	FeeStructureFile *string `json:"feeStructureFile,omitempty" db:"fee_structure_pdf_name"`
	Campus           string  `json:"campus" db:"campus_name"`
}
