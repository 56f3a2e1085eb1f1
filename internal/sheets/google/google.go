package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	ports "vocespese/internal/sheets"

	"golang.org/x/sync/singleflight"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Rows and columns allocated to a freshly created per-user sheet.
const (
	newSheetRows = 1000
	newSheetCols = 6
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Collapses concurrent ensure calls for the same sheet title so a
	// burst of first requests for one user costs one metadata round trip.
	ensure singleflight.Group
}

// Ensure interface conformance
var _ ports.Store = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS; with none set, ./credentials.json
// is read.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials with the read/write spreadsheets scope.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = "credentials.json"
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	default:
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	}

	slog.InfoContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// EnsureTable creates the named sheet with the header row when absent.
// Safe to call on every request; an existing sheet is left untouched.
func (c *Client) EnsureTable(ctx context.Context, name string, header []string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	_, err, _ := c.ensure.Do(name, func() (any, error) {
		meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
			Fields("sheets.properties.title").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("get spreadsheet metadata: %w", err)
		}
		for _, sh := range meta.Sheets {
			if sh.Properties != nil && sh.Properties.Title == name {
				return nil, nil
			}
		}
		req := &gsheet.BatchUpdateSpreadsheetRequest{
			Requests: []*gsheet.Request{{
				AddSheet: &gsheet.AddSheetRequest{
					Properties: &gsheet.SheetProperties{
						Title: name,
						GridProperties: &gsheet.GridProperties{
							RowCount:    newSheetRows,
							ColumnCount: newSheetCols,
						},
					},
				},
			}},
		}
		if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return nil, fmt.Errorf("add sheet %s: %w", name, err)
		}
		if err := c.AppendRow(ctx, name, header); err != nil {
			return nil, fmt.Errorf("write header for %s: %w", name, err)
		}
		slog.InfoContext(ctx, "Created sheet", "sheet", name)
		return nil, nil
	})
	return err
}

func (c *Client) Rows(ctx context.Context, table string) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:F", table)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = toStrings(row)
	}
	return out, nil
}

func (c *Client) AppendRow(ctx context.Context, table string, row []string) error {
	rng := fmt.Sprintf("%s!A:F", table)
	vr := &gsheet.ValueRange{Values: [][]any{toAnys(row)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", table, err)
	}
	return nil
}

func (c *Client) UpdateRow(ctx context.Context, table string, index int, row []string) error {
	if index < 1 {
		return fmt.Errorf("invalid row index: %d", index)
	}
	rng := fmt.Sprintf("%s!A%d:%s%d", table, index, colLetter(len(row)), index)
	vr := &gsheet.ValueRange{Values: [][]any{toAnys(row)}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) UpdateCell(ctx context.Context, table string, index, col int, value string) error {
	if index < 1 || col < 1 {
		return fmt.Errorf("invalid cell position: row=%d col=%d", index, col)
	}
	rng := fmt.Sprintf("%s!%s%d", table, colLetter(col), index)
	vr := &gsheet.ValueRange{Values: [][]any{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) DeleteRow(ctx context.Context, table string, index int) error {
	if index < 1 {
		return fmt.Errorf("invalid row index: %d", index)
	}
	sheetID, err := c.sheetID(ctx, table)
	if err != nil {
		return err
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(index - 1),
					EndIndex:   int64(index),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d from %s: %w", index, table, err)
	}
	return nil
}

// sheetID resolves a sheet title to its numeric id, needed by
// dimension-level batch requests.
func (c *Client) sheetID(ctx context.Context, table string) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == table {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", table)
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toAnys(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// colLetter converts a 1-based column number to its A1-notation letter.
// Sheets in this system never exceed six columns.
func colLetter(col int) string {
	if col < 1 || col > 26 {
		col = 26
	}
	return string(rune('A' + col - 1))
}
