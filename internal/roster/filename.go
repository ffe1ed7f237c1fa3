package roster

import (
	"strings"
	"unicode"

	"github.com/arran4/event-barcodes/internal/domain"
)

// CleanFilename keeps letters, numbers, spaces, '-' and '_', trims the result
// and turns the remaining spaces into underscores.
func CleanFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

// FileName is the PNG name a record is saved under.
func FileName(kind domain.Kind, rec domain.Record) string {
	if kind == domain.KindStudents {
		return "student_" + CleanFilename(rec.ID) + ".png"
	}
	return CleanFilename(rec.Name) + "_" + rec.ShortID() + ".png"
}
