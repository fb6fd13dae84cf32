package dto

// UpdateSettingsRequest carries an administrator's settings change. Dates
// are calendar dates (YYYY-MM-DD); an empty or missing date clears it.
type UpdateSettingsRequest struct {
	AdmissionNumberFormat *string `json:"admissionNumberFormat" binding:"omitempty,max=100" example:"EAVI/{seq}/{year}"`
	StartingSequence      *int64  `json:"startingSequence" binding:"omitempty,gt=0" example:"1001"`
	Term1ReportingDate    string  `json:"term1ReportingDate" binding:"omitempty,datetime=2006-01-02" example:"2027-01-11"`
	Term2ReportingDate    string  `json:"term2ReportingDate" binding:"omitempty,datetime=2006-01-02" example:"2027-05-03"`
	Term3ReportingDate    string  `json:"term3ReportingDate" binding:"omitempty,datetime=2006-01-02" example:"2027-09-06"`
}
