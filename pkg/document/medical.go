package document

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "02.01.2006"

// ReportInput carries the report fields and display names needed for printing
type ReportInput struct {
	Title       string
	Content     string
	PatientName string
	DoctorName  string
	CreatedAt   time.Time
}

// LabResultInput carries the lab result fields; DoctorName is optional
type LabResultInput struct {
	TestName    string
	ResultValue string
	Unit        string
	NormalRange string
	Date        time.Time
	PatientName string
	DoctorName  string
}

func ForReport(in ReportInput) Document {
	return Document{
		Title: "Arztbericht: " + in.Title,
		Meta: []string{
			"Patient: " + in.PatientName,
			"Arzt: " + in.DoctorName,
			"Datum: " + in.CreatedAt.Format(dateLayout),
		},
		Body:      SplitLines(in.Content),
		CreatedAt: in.CreatedAt,
	}
}

func ForLabResult(in LabResultInput) Document {
	meta := []string{"Patient: " + in.PatientName}
	if in.DoctorName != "" {
		meta = append(meta, "Arzt: "+in.DoctorName)
	}
	meta = append(meta, "Datum: "+in.Date.Format(dateLayout))

	body := []string{
		"Test: " + in.TestName,
		strings.TrimSpace(fmt.Sprintf("Wert: %s %s", in.ResultValue, in.Unit)),
	}
	if in.NormalRange != "" {
		body = append(body, "Normalbereich: "+in.NormalRange)
	}

	return Document{
		Title:          "Laborergebnis: " + in.TestName,
		Meta:           meta,
		Body:           body,
		BodyFontSize:   metaFontSize,
		BodyLineHeight: metaLineHeight,
		CreatedAt:      in.Date,
	}
}

// File is a rendered document ready to be served as an attachment
type File struct {
	Name    string
	Content []byte
}

const ContentType = "application/pdf"
