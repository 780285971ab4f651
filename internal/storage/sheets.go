package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// headerRange covers the eleven columns of Header on the first sheet.
const headerRange = "A1:K1"

// SheetsSink appends completed responses to a Google spreadsheet.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsSink authorizes with a service account and makes sure the header
// row matches Header. serviceAccountJSON is the key file content, raw or
// base64-encoded.
func NewSheetsSink(ctx context.Context, spreadsheetID, serviceAccountJSON string) (*SheetsSink, error) {
	creds, err := decodeServiceAccount(serviceAccountJSON)
	if err != nil {
		return nil, fmt.Errorf("decode service account: %w", err)
	}
	jwt, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}
	s := &SheetsSink{svc: svc, spreadsheetID: spreadsheetID}
	if err := s.ensureHeader(ctx); err != nil {
		return nil, fmt.Errorf("ensure header: %w", err)
	}
	log.Info().Msg("✅ Google Sheets connected")
	return s, nil
}

func decodeServiceAccount(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		return []byte(raw), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("not raw JSON and not valid base64: %w", err)
	}
	return decoded, nil
}

// ensureHeader overwrites the first row whenever it differs from Header.
// Keeping it simple beats merging someone's manual edits.
func (s *SheetsSink) ensureHeader(ctx context.Context) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(resp.Values) > 0 && headerMatches(resp.Values[0]) {
		return nil
	}
	row := make([]interface{}, 0, len(Header()))
	for _, h := range Header() {
		row = append(row, h)
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, headerRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func headerMatches(row []interface{}) bool {
	wanted := Header()
	if len(row) != len(wanted) {
		return false
	}
	for i, cell := range row {
		if v, ok := cell.(string); !ok || v != wanted[i] {
			return false
		}
	}
	return true
}

// LoadAll reads back every appended response, skipping rows that do not
// parse (manual edits, stray notes).
func (s *SheetsSink) LoadAll(ctx context.Context) ([]Response, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, "A2:K").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	var out []Response
	for _, row := range resp.Values {
		rec := make([]string, len(Header()))
		for i := range rec {
			if i < len(row) {
				if v, ok := row[i].(string); ok {
					rec[i] = v
				}
			}
		}
		if r, ok := parseRow(rec); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Append adds one response row after the last filled row.
func (s *SheetsSink) Append(ctx context.Context, r Response) error {
	row := make([]interface{}, 0, len(Header()))
	for _, cell := range r.Row() {
		row = append(row, cell)
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, headerRange, vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}
