package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{AppointmentStatusRequested, AppointmentStatusConfirmed, true},
		{AppointmentStatusRequested, AppointmentStatusCancelled, true},
		{AppointmentStatusRequested, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusRequested, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.False(t, AppointmentStatusRequested.IsTerminal())
	assert.False(t, AppointmentStatus("pending").Valid())
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-09"`), &d))
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-09"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"09.03.2024"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-15", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, "2023-12-31", d.String())
}

func TestClock(t *testing.T) {
	c, err := ParseClock("09:30:00")
	require.NoError(t, err)
	assert.Equal(t, Clock("09:30"), c)

	_, err = ParseClock("9.30")
	assert.Error(t, err)

	var scanned Clock
	require.NoError(t, scanned.Scan([]byte("14:05:00")))
	assert.Equal(t, Clock("14:05"), scanned)
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, SeveritySevere, ParseSeverity("severe"))
	assert.Equal(t, SeverityModerate, ParseSeverity("moderate"))
	assert.Equal(t, SeverityMild, ParseSeverity("extreme"))
	assert.Equal(t, SeverityMild, ParseSeverity(""))
}

func TestNewPrescriptionResponseNeverNilMedications(t *testing.T) {
	resp := NewPrescriptionResponse(&PrescriptionDetails{})
	assert.NotNil(t, resp.Medications)
	assert.Len(t, resp.Medications, 0)
}

func TestLabResultResponseWithoutDoctor(t *testing.T) {
	resp := NewLabResultResponse(&LabResultDetails{PatientName: "Max"})
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"doctor_name":null`)
	assert.Contains(t, string(out), `"doctor_id":null`)
}
