package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripplanner/dataset"
)

// GeneratePDFBytes renders the trip summary as a PDF and returns raw bytes.
func GeneratePDFBytes(data TripSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Trip Planner", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	dest := data.Destination
	if dest == "" {
		dest = "Destination not chosen"
	}
	pdf.CellFormat(170, 6, tr("Trip summary: "+dest), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	pdf.MultiCell(164, 4,
		"This is NOT a booking confirmation. Prices come from the reference dataset and local expenses are an estimate.",
		"", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	if data.SessionID != "" {
		row("Session", data.SessionID)
	}
	row("Generated", time.Now().UTC().Format("02 Jan 2006, 15:04 UTC"))
	row("Start", fmtDateReadable(data.StartDate))
	row("End", fmtDateReadable(data.EndDate))
	row("Duration", fmt.Sprintf("%d day(s), %d night(s)", data.Days, max(data.Days-1, 0)))
	pdf.Ln(4)

	// ── Selected Flight ───────────────────────────────────────
	sectionHeader("Selected Flight")
	if f := data.Flight; f != nil {
		row("Airline", f.Airline)
		row("Route", fmt.Sprintf("%s -> %s", f.Source, f.Destination))
		row("Departure", formatDeparture(f.DepartureTime))
		row("Duration", formatDurationMin(f.DurationMinutes))
		row("Price", fmt.Sprintf("$%.0f", f.Price))
	} else {
		row("Flight", "Not selected")
	}
	pdf.Ln(4)

	// ── Selected Hotel ────────────────────────────────────────
	sectionHeader("Selected Hotel")
	if h := data.Hotel; h != nil {
		nights := max(data.Days-1, 0)
		row("Hotel", h.Name)
		row("Rating", fmt.Sprintf("%d / 5 stars", h.Rating))
		if len(h.Amenities) > 0 {
			row("Amenities", strings.Join(h.Amenities, ", "))
		}
		row("Price", fmt.Sprintf("$%.0f/night x %d nights = $%.0f", h.Price, nights, h.Price*float64(nights)))
	} else {
		row("Hotel", "Not selected")
	}
	pdf.Ln(4)

	// ── Itinerary ─────────────────────────────────────────────
	if len(data.Itinerary) > 0 {
		sectionHeader("Itinerary")
		for _, d := range data.Itinerary {
			if len(d.Places) == 0 {
				row(d.Label, "Free day")
				continue
			}
			names := make([]string, 0, len(d.Places))
			for _, p := range d.Places {
				names = append(names, fmt.Sprintf("%s (%s, %.1f)", p.Name, p.Category, p.Rating))
			}
			row(d.Label, strings.Join(names, "; "))
		}
		pdf.Ln(4)
	}

	// ── Weather ───────────────────────────────────────────────
	if len(data.Weather) > 0 {
		sectionHeader("Weather")
		for _, w := range data.Weather {
			row(w.Date, fmt.Sprintf("%s, %s", w.Condition, w.TempRange))
		}
		pdf.Ln(4)
	}

	// ── Cost Summary ──────────────────────────────────────────
	if b := data.Budget; b != nil {
		sectionHeader("Cost Estimate")
		row("Flight", fmt.Sprintf("$%.0f", b.FlightCost))
		row("Hotel total", fmt.Sprintf("$%.0f", b.HotelCost))
		row("Local expenses", fmt.Sprintf("$%.0f", b.LocalExpenses))

		pdf.SetFillColor(212, 168, 67)
		pdf.SetTextColor(13, 24, 37)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
		pdf.CellFormat(115, 9, fmt.Sprintf("$%.0f", b.TotalCost), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	// ── Summary ───────────────────────────────────────────────
	sectionHeader("Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	pdf.MultiCell(170, 5, tr(Recommendation(data)), "", "L", false)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8, "Generated by Trip Planner - Not a booking confirmation - Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02 Jan 2006 (Mon)")
}

func formatDeparture(s string) string {
	t, err := time.Parse(dataset.TimeLayout, s)
	if err != nil {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return t.Format("02 Jan 15:04")
}

func formatDurationMin(minutes float64) string {
	m := int(minutes)
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}
