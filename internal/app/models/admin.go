package models

import "time"

// Admin is a back-office user of one campus.
type Admin struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Campus       string    `json:"campus" db:"campus_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// FeeDocument is an uploaded fee-structure PDF.
type FeeDocument struct {
	Filename    string    `json:"filename"`
	DisplayName string    `json:"displayName"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
