// Package sheets appends lead rows to a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Appender appends one row to a spreadsheet-like store.
type Appender interface {
	AppendRow(ctx context.Context, row []any) error
}

// AppenderFunc adapts a function to the Appender interface.
type AppenderFunc func(ctx context.Context, row []any) error

func (f AppenderFunc) AppendRow(ctx context.Context, row []any) error {
	return f(ctx, row)
}

// Client appends rows to a fixed spreadsheet range via the Sheets API.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	writeRange    string
}

// NewClient builds a Sheets client authenticated with a service account.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID, writeRange string) (*Client, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
	}, nil
}

// AppendRow appends a single row to the configured range.
func (c *Client) AppendRow(ctx context.Context, row []any) error {
	vr := &sheets.ValueRange{Values: [][]any{row}}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.writeRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row: %w", err)
	}
	return nil
}
