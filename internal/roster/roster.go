// Package roster parses the embedded identifier lists and derives the URL and
// output file name for each record.
package roster

import (
	"bytes"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/arran4/event-barcodes/internal/domain"
)

//go:embed data/*.csv
var data embed.FS

// Columns: id, name, logo, group.
const (
	colID = iota
	colName
	colLogo
	colGroup
)

// Embedded returns the raw roster text compiled into the binary for kind.
func Embedded(kind domain.Kind) ([]byte, error) {
	path := "data/" + kind.String() + ".csv"
	b, err := data.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "roster.embedded",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return b, nil
}

// Load parses the embedded roster for kind. An empty roster is an error.
func Load(kind domain.Kind) ([]domain.Record, error) {
	b, err := Embedded(kind)
	if err != nil {
		return nil, err
	}

	records, err := Parse(bytes.NewReader(b), kind)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &domain.OpError{
			Op:   "roster.load",
			Kind: domain.KindInvalidInput,
			Path: "data/" + kind.String() + ".csv",
			Err:  domain.ErrEmptyRoster,
		}
	}
	return records, nil
}

// Parse reads comma-separated rows. Comment lines ('#', indented or not) and
// blank or whitespace-only lines are skipped, every field is trimmed, and a
// row without an identifier is rejected with its line number. Quotes inside
// unquoted fields are kept as written.
func Parse(r io.Reader, kind domain.Kind) ([]domain.Record, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var records []domain.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.OpError{
				Op:   "roster.parse",
				Kind: domain.KindInvalidInput,
				Err:  err,
			}
		}

		if skipRow(row) {
			continue
		}

		line, _ := cr.FieldPos(0)
		rec, err := recordFromRow(row, kind)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "roster.parse",
				Kind: domain.KindInvalidInput,
				Err:  fmt.Errorf("line %d: %w", line, err),
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// skipRow reports whether row is a comment or holds nothing but whitespace.
func skipRow(row []string) bool {
	if len(row) > 0 && strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
		return true
	}
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func recordFromRow(row []string, kind domain.Kind) (domain.Record, error) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	rec := domain.Record{
		ID:      field(colID),
		Name:    field(colName),
		LogoKey: field(colLogo),
		Group:   field(colGroup),
	}
	if rec.ID == "" {
		return domain.Record{}, domain.ErrInvalidRecord
	}

	switch kind {
	case domain.KindEvents:
		if u, err := uuid.Parse(rec.ID); err == nil {
			rec.ID = u.String()
		}
		if rec.Name == "" {
			rec.Name = "Event_" + rec.ShortID()
		}
	case domain.KindStudents:
		if rec.Name == "" {
			rec.Name = rec.ID
		}
	}
	return rec, nil
}

// Find returns the record with the given identifier.
func Find(records []domain.Record, id string) (domain.Record, error) {
	id = strings.TrimSpace(id)
	for _, rec := range records {
		if strings.EqualFold(rec.ID, id) {
			return rec, nil
		}
	}
	return domain.Record{}, &domain.OpError{
		Op:   "roster.find",
		Kind: domain.KindNotFound,
		Err:  fmt.Errorf("%w: %q", domain.ErrNotFound, id),
	}
}
