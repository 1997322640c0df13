package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

type Config struct {
	SpreadsheetID string
	ClientEmail   string
	PrivateKey    string
	PrivateKeyID  string
}

// Store implements the four range primitives on a Google spreadsheet,
// one sheet per table. Row one of every sheet is the header; rows are
// always addressed by the key in column A, never by a remembered index,
// so concurrent appends and clears cannot shift a write onto the wrong
// row. Cleared rows are blanked in place and skipped on read.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	conf := &jwt.Config{
		Email:        cfg.ClientEmail,
		PrivateKey:   []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		PrivateKeyID: cfg.PrivateKeyID,
		Scopes:       []string{sheetsapi.SpreadsheetsScope},
		TokenURL:     google.JWTTokenURL,
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to build sheets client: %w", err)
	}

	return &Store{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

func (s *Store) ReadRange(ctx context.Context, table string) ([]ports.Row, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}

	var rows []ports.Row
	for i, raw := range resp.Values {
		if i == 0 {
			continue // header
		}
		row := toRow(raw)
		if len(row) == 0 || row[0] == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Store) AppendRow(ctx context.Context, table string, row ports.Row) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, table, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	return nil
}

func (s *Store) UpdateRange(ctx context.Context, table string, key string, row ports.Row) error {
	number, _, err := s.rowNumber(ctx, table, key)
	if err != nil {
		return err
	}

	rng := fmt.Sprintf("%s!A%d:%s%d", table, number, columnLetter(len(row)), number)
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	return nil
}

func (s *Store) ClearRange(ctx context.Context, table string, key string) error {
	number, width, err := s.rowNumber(ctx, table, key)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil
		}
		return err
	}

	rng := fmt.Sprintf("%s!A%d:%s%d", table, number, columnLetter(width), number)
	_, err = s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	return nil
}

// rowNumber resolves a key to its current 1-based sheet row and width.
// Resolution happens on every call: positions are never cached across
// requests.
func (s *Store) rowNumber(ctx context.Context, table string, key string) (int, int, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		return 0, 0, domain.StoreUnavailable(err)
	}

	for i, raw := range resp.Values {
		if i == 0 {
			continue
		}
		if len(raw) > 0 && fmt.Sprint(raw[0]) == key {
			return i + 1, len(raw), nil
		}
	}
	return 0, 0, domain.Errorf(domain.KindNotFound, "row %q not found in %s", key, table)
}

func toRow(raw []interface{}) ports.Row {
	row := make(ports.Row, len(raw))
	for i, cell := range raw {
		row[i] = fmt.Sprint(cell)
	}
	return row
}

func toCells(row ports.Row) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

func columnLetter(n int) string {
	letter := ""
	for n > 0 {
		n--
		letter = string(rune('A'+n%26)) + letter
		n /= 26
	}
	return letter
}
