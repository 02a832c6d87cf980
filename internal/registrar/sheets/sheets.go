// Package sheets mirrors registration rosters into a Google spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/report"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Client writes rosters to one spreadsheet, one tab per category.
type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	loc           *time.Location
}

// New authenticates with a service account key file.
func New(ctx context.Context, credentialsFile, spreadsheetID string, loc *time.Location) (*Client, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	return NewWithOptions(ctx, spreadsheetID, loc,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
}

// NewWithOptions builds a Client from explicit API options, for tests and
// for callers that manage credentials themselves.
func NewWithOptions(ctx context.Context, spreadsheetID string, loc *time.Location, opts ...option.ClientOption) (*Client, error) {
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID, loc: loc}, nil
}

// SpreadsheetID is the spreadsheet rosters are written to.
func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

// TabTitle names the tab of a roster category, e.g. "Junior".
func TabTitle(category string) string {
	if category == "" {
		return ""
	}
	return strings.ToUpper(category[:1]) + category[1:]
}

// WriteRosters replaces the content of one tab per roster with a header row
// and the roster rows. Missing tabs are created first.
func (c *Client) WriteRosters(ctx context.Context, rosters []domain.Roster) (domain.SheetsExport, error) {
	titles := make([]string, len(rosters))
	for i, r := range rosters {
		titles[i] = TabTitle(r.Category)
	}
	if err := c.ensureTabs(ctx, titles); err != nil {
		return domain.SheetsExport{}, err
	}

	out := domain.SheetsExport{SpreadsheetID: c.spreadsheetID, Tabs: make([]domain.SheetTab, 0, len(rosters))}
	for i, r := range rosters {
		tab := titles[i]
		if _, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, quote(tab), &sheetsv4.ClearValuesRequest{}).
			Context(ctx).Do(); err != nil {
			return domain.SheetsExport{}, fmt.Errorf("clear %s: %w", tab, err)
		}

		values := make([][]interface{}, 0, len(r.Registrations)+1)
		values = append(values, row(report.RosterColumns))
		for _, reg := range r.Registrations {
			values = append(values, row(report.RosterRow(reg, c.loc)))
		}
		vr := &sheetsv4.ValueRange{Values: values}
		if _, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, quote(tab)+"!A1", vr).
			ValueInputOption("RAW").
			Context(ctx).Do(); err != nil {
			return domain.SheetsExport{}, fmt.Errorf("write %s: %w", tab, err)
		}
		out.Tabs = append(out.Tabs, domain.SheetTab{Title: tab, Rows: len(r.Registrations)})
	}
	return out, nil
}

// ensureTabs adds the titles the spreadsheet lacks in one batch update.
func (c *Client) ensureTabs(ctx context.Context, titles []string) error {
	ss, err := c.srv.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet: %w", err)
	}
	existing := make(map[string]struct{}, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			existing[s.Properties.Title] = struct{}{}
		}
	}

	var reqs []*sheetsv4.Request
	for _, t := range titles {
		if _, ok := existing[t]; ok {
			continue
		}
		existing[t] = struct{}{}
		reqs = append(reqs, &sheetsv4.Request{
			AddSheet: &sheetsv4.AddSheetRequest{Properties: &sheetsv4.SheetProperties{Title: t}},
		})
	}
	if len(reqs) == 0 {
		return nil
	}
	_, err = c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsv4.BatchUpdateSpreadsheetRequest{Requests: reqs}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("add tabs: %w", err)
	}
	return nil
}

// quote wraps a tab title for A1 notation.
func quote(tab string) string { return "'" + tab + "'" }

func row(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
