package domain

import "time"

// Roster is the input of a roster report and a sheets tab.
type Roster struct {
	// Category is the filter the roster was built with, or "custom" when it
	// spans categories.
	Category      string
	GeneratedAt   time.Time
	Registrations []Registration
}

// ArchivedReport locates an uploaded report.
type ArchivedReport struct {
	Key string
	URL string
}

// SheetTab is one written tab of a Sheets export.
type SheetTab struct {
	Title string
	Rows  int
}

// SheetsExport describes a completed spreadsheet export.
type SheetsExport struct {
	SpreadsheetID string
	Tabs          []SheetTab
}
