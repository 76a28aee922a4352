// Package document renders fixed-layout printable documents as PDF.
//
// Layout is computed first as plain data (pages of positioned lines) and
// only then drawn, so pagination can be checked without parsing PDF output.
// Coordinates are PDF points measured from the top-left corner of a US
// Letter page.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	PageWidth  = 612.0
	PageHeight = 792.0

	MarginLeft   = 50.0
	MarginTop    = 50.0
	MarginBottom = 50.0

	// MaxLineRunes is the number of characters kept per body line
	MaxLineRunes = 90

	titleY          = 50.0
	metaStartY      = 80.0
	metaLineHeight  = 20.0
	bodyOffset      = 40.0
	titleFontSize   = 16.0
	metaFontSize    = 12.0
	defaultBodySize = 11.0
	defaultBodyStep = 15.0
)

type Style struct {
	Bold bool
	Size float64
}

// Line is a single positioned line of text
type Line struct {
	Text  string
	Y     float64
	Style Style
}

type Page struct {
	Lines []Line
}

// Document describes a title, a metadata block and free-text body lines
type Document struct {
	Title string
	Meta  []string
	Body  []string
	// BodyFontSize and BodyLineHeight default to 11pt and 15pt
	BodyFontSize   float64
	BodyLineHeight float64
	CreatedAt      time.Time
}

// Layout places every line on a page. Body lines are truncated to
// MaxLineRunes and a new page is started once the bottom margin is reached.
func (d Document) Layout() []Page {
	bodySize := d.BodyFontSize
	if bodySize <= 0 {
		bodySize = defaultBodySize
	}
	step := d.BodyLineHeight
	if step <= 0 {
		step = defaultBodyStep
	}

	first := Page{}
	first.Lines = append(first.Lines, Line{
		Text:  d.Title,
		Y:     titleY,
		Style: Style{Bold: true, Size: titleFontSize},
	})

	y := metaStartY
	for _, m := range d.Meta {
		first.Lines = append(first.Lines, Line{Text: m, Y: y, Style: Style{Size: metaFontSize}})
		y += metaLineHeight
	}
	y = y - metaLineHeight + bodyOffset

	pages := []Page{first}
	current := &pages[0]
	for _, text := range d.Body {
		if y > PageHeight-MarginBottom {
			pages = append(pages, Page{})
			current = &pages[len(pages)-1]
			y = MarginTop
		}
		current.Lines = append(current.Lines, Line{
			Text:  Truncate(text, MaxLineRunes),
			Y:     y,
			Style: Style{Size: bodySize},
		})
		y += step
	}

	return pages
}

// Render draws the document and returns the PDF bytes
func Render(d Document) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	if !d.CreatedAt.IsZero() {
		pdf.SetCreationDate(d.CreatedAt)
		pdf.SetModificationDate(d.CreatedAt)
	}
	pdf.SetTitle(d.Title, true)

	// core fonts are cp1252 encoded
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range d.Layout() {
		pdf.AddPage()
		for _, line := range page.Lines {
			style := ""
			if line.Style.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, line.Style.Size)
			pdf.Text(MarginLeft, line.Y, tr(line.Text))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}

// Truncate cuts s to at most n characters
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// SplitLines splits free text into lines, tolerating CRLF input
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}
