package model

import (
	"time"

	"github.com/google/uuid"
)

// Report is a free-text medical report authored by a doctor
type Report struct {
	Base
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`
	DoctorID  uuid.UUID `json:"doctor_id" db:"doctor_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	FilePath  *string   `json:"file_path" db:"file_path"`
}

type ReportDetails struct {
	Report
	PatientName   string    `db:"patient_name"`
	PatientUserID uuid.UUID `db:"patient_user_id"`
	DoctorName    string    `db:"doctor_name"`
	DoctorUserID  uuid.UUID `db:"doctor_user_id"`
}

type ReportResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	FilePath    *string   `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
}

func NewReportResponse(d *ReportDetails) ReportResponse {
	return ReportResponse{
		ID:          d.ID,
		PatientID:   d.PatientID,
		DoctorID:    d.DoctorID,
		Title:       d.Title,
		Content:     d.Content,
		FilePath:    d.FilePath,
		CreatedAt:   d.CreatedAt,
		PatientName: d.PatientName,
		DoctorName:  d.DoctorName,
	}
}

type CreateReportRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// LabResult may be entered without an authoring doctor
type LabResult struct {
	Base
	PatientID   uuid.UUID  `json:"patient_id" db:"patient_id"`
	DoctorID    *uuid.UUID `json:"doctor_id" db:"doctor_id"`
	TestName    string     `json:"test_name" db:"test_name"`
	ResultValue string     `json:"result_value" db:"result_value"`
	Unit        *string    `json:"unit" db:"unit"`
	NormalRange *string    `json:"normal_range" db:"normal_range"`
	Date        Date       `json:"date" db:"date"`
	FilePath    *string    `json:"file_path" db:"file_path"`
}

type LabResultDetails struct {
	LabResult
	PatientName   string     `db:"patient_name"`
	PatientUserID uuid.UUID  `db:"patient_user_id"`
	DoctorName    *string    `db:"doctor_name"`
	DoctorUserID  *uuid.UUID `db:"doctor_user_id"`
}

type LabResultResponse struct {
	ID          uuid.UUID  `json:"id"`
	PatientID   uuid.UUID  `json:"patient_id"`
	DoctorID    *uuid.UUID `json:"doctor_id"`
	TestName    string     `json:"test_name"`
	ResultValue string     `json:"result_value"`
	Unit        *string    `json:"unit"`
	NormalRange *string    `json:"normal_range"`
	Date        Date       `json:"date"`
	FilePath    *string    `json:"file_path"`
	CreatedAt   time.Time  `json:"created_at"`
	PatientName string     `json:"patient_name"`
	DoctorName  *string    `json:"doctor_name"`
}

func NewLabResultResponse(d *LabResultDetails) LabResultResponse {
	return LabResultResponse{
		ID:          d.ID,
		PatientID:   d.PatientID,
		DoctorID:    d.DoctorID,
		TestName:    d.TestName,
		ResultValue: d.ResultValue,
		Unit:        d.Unit,
		NormalRange: d.NormalRange,
		Date:        d.Date,
		FilePath:    d.FilePath,
		CreatedAt:   d.CreatedAt,
		PatientName: d.PatientName,
		DoctorName:  d.DoctorName,
	}
}

type CreateLabResultRequest struct {
	TestName    string  `json:"test_name" validate:"required"`
	ResultValue string  `json:"result_value" validate:"required"`
	Unit        *string `json:"unit"`
	NormalRange *string `json:"normal_range"`
	Date        Date    `json:"date"`
}
