package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusRequested AppointmentStatus = "requested"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusRequested: {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusRequested, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ConsultationType string

const (
	ConsultationVideo ConsultationType = "video"
	ConsultationChat  ConsultationType = "chat"
	ConsultationPhone ConsultationType = "phone"
)

func (t ConsultationType) Valid() bool {
	switch t {
	case ConsultationVideo, ConsultationChat, ConsultationPhone:
		return true
	}
	return false
}

type Appointment struct {
	Base
	PatientID uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID  uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	Date      Date              `json:"date" db:"date"`
	Time      Clock             `json:"time" db:"time"`
	Type      ConsultationType  `json:"type" db:"type"`
	Status    AppointmentStatus `json:"status" db:"status"`
	Notes     *string           `json:"notes" db:"notes"`
}

// AppointmentDetails is an appointment joined with both parties' display fields
type AppointmentDetails struct {
	Appointment
	PatientName          string    `db:"patient_name"`
	PatientUserID        uuid.UUID `db:"patient_user_id"`
	DoctorName           string    `db:"doctor_name"`
	DoctorUserID         uuid.UUID `db:"doctor_user_id"`
	DoctorSpecialization string    `db:"doctor_specialization"`
}

type AppointmentResponse struct {
	ID                   uuid.UUID         `json:"id"`
	PatientID            uuid.UUID         `json:"patient_id"`
	DoctorID             uuid.UUID         `json:"doctor_id"`
	Date                 Date              `json:"date"`
	Time                 Clock             `json:"time"`
	Type                 ConsultationType  `json:"type"`
	Status               AppointmentStatus `json:"status"`
	Notes                *string           `json:"notes"`
	CreatedAt            time.Time         `json:"created_at"`
	PatientName          string            `json:"patient_name"`
	DoctorName           string            `json:"doctor_name"`
	DoctorSpecialization string            `json:"doctor_specialization"`
}

func NewAppointmentResponse(d *AppointmentDetails) AppointmentResponse {
	return AppointmentResponse{
		ID:                   d.ID,
		PatientID:            d.PatientID,
		DoctorID:             d.DoctorID,
		Date:                 d.Date,
		Time:                 d.Time,
		Type:                 d.Type,
		Status:               d.Status,
		Notes:                d.Notes,
		CreatedAt:            d.CreatedAt,
		PatientName:          d.PatientName,
		DoctorName:           d.DoctorName,
		DoctorSpecialization: d.DoctorSpecialization,
	}
}

type CreateAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     Date      `json:"date"`
	Time     Clock     `json:"time" validate:"required"`
	Type     string    `json:"type" validate:"required"`
	Notes    *string   `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AppointmentFilter narrows an owner-scoped listing by date relative to Today
// AppointmentListQuery binds the query string of the appointment listing
type AppointmentListQuery struct {
	Upcoming *bool `form:"upcoming"`
}

type AppointmentFilter struct {
	Upcoming *bool
	Today    Date
}
