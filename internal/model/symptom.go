package model

import "github.com/google/uuid"

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// ParseSeverity maps unknown values to SeverityMild
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityModerate, SeveritySevere:
		return Severity(s)
	}
	return SeverityMild
}

type SymptomCheckSession struct {
	Base
	PatientID        *uuid.UUID `json:"patient_id" db:"patient_id"`
	SymptomsCategory string     `json:"symptoms_category" db:"symptoms_category"`
	Severity         Severity   `json:"severity" db:"severity"`
	Duration         string     `json:"duration" db:"duration"`
	ResultMessage    string     `json:"result_message" db:"result_message"`
}

type SymptomCheckRequest struct {
	SymptomsCategory string `json:"symptoms_category" validate:"required"`
	Severity         string `json:"severity"`
	Duration         string `json:"duration"`
}

type SymptomCheckResponse struct {
	ResultMessage string `json:"result_message"`
	Disclaimer    string `json:"disclaimer"`
}
