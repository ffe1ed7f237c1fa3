package domain

// Record is one row of a roster. Only ID is required.
type Record struct {
	ID      string
	Name    string
	LogoKey string
	Group   string
}

const shortIDLen = 8

// ShortID returns the first eight characters of the identifier, which is
// enough to keep event file names unique while staying readable.
func (r Record) ShortID() string {
	runes := []rune(r.ID)
	if len(runes) <= shortIDLen {
		return r.ID
	}
	return string(runes[:shortIDLen])
}

// CaptionLines returns at most two lines of text printed under the code.
// Events are labelled by name and students by their identifier; the group,
// when present, goes on the second line.
func (r Record) CaptionLines(kind Kind) []string {
	primary := r.Name
	if kind == KindStudents {
		primary = r.ID
	}

	lines := make([]string, 0, 2)
	if primary != "" {
		lines = append(lines, primary)
	}
	if r.Group != "" {
		lines = append(lines, r.Group)
	}
	return lines
}
