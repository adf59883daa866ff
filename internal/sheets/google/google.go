// Package google mirrors ledger records into a Google Sheets
// spreadsheet using Service Account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"finanzas/internal/core"
	ports "finanzas/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Mirrored row layout, columns A through J.
const headerRange = "A:J"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	sheetID       int64
	sheetIDKnown  bool
}

var _ ports.Mirror = (*Client)(nil)

// New builds a mirror client. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetName) == "" {
		sheetName = "Movimientos"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func rowValues(t core.Transaction) []any {
	return []any{
		t.ID,
		t.Date.Format("2006-01-02"),
		string(t.Origin),
		string(t.Type),
		t.Category,
		t.Amount.Units(),
		string(t.Status),
		t.Client,
		t.Consumer,
		t.Note,
	}
}

func (c *Client) AppendRow(ctx context.Context, t core.Transaction) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!%s", c.sheetName, headerRange)
	vr := &gsheet.ValueRange{Values: [][]any{rowValues(t)}}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Mirrored transaction to spreadsheet",
		"id", t.ID, "sheet", c.sheetName)
	return nil
}

func (c *Client) UpdateRowStatus(ctx context.Context, id string, status core.Status) error {
	row, err := c.findRow(ctx, id)
	if err != nil {
		return err
	}

	rng := fmt.Sprintf("%s!G%d", c.sheetName, row)
	vr := &gsheet.ValueRange{Values: [][]any{{string(status)}}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update status cell %s: %w", rng, err)
	}
	return nil
}

func (c *Client) RemoveRow(ctx context.Context, id string) error {
	row, err := c.findRow(ctx, id)
	if err != nil {
		return err
	}

	sheetID, err := c.resolveSheetID(ctx)
	if err != nil {
		return err
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete row %d: %w", row, err)
	}

	slog.InfoContext(ctx, "Removed mirrored row", "id", id, "row", row)
	return nil
}

// findRow returns the 1-based row whose id column matches.
func (c *Client) findRow(ctx context.Context, id string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read id column: %w", err)
	}

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if s, ok := row[0].(string); ok && s == id {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("row %s not found in sheet %s", id, c.sheetName)
}

func (c *Client) resolveSheetID(ctx context.Context) (int64, error) {
	if c.sheetIDKnown {
		return c.sheetID, nil
	}

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sheet := range ss.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == c.sheetName {
			c.sheetID = sheet.Properties.SheetId
			c.sheetIDKnown = true
			return c.sheetID, nil
		}
	}
	return 0, fmt.Errorf("sheet %s not found", c.sheetName)
}
