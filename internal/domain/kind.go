package domain

import (
	"fmt"
	"strings"
)

// Kind selects which roster a run works on.
type Kind string

const (
	KindEvents   Kind = "events"
	KindStudents Kind = "students"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindEvents, KindStudents}

// ParseKind accepts the singular and plural spelling of a kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "events", "event":
		return KindEvents, nil
	case "students", "student":
		return KindStudents, nil
	}
	return "", &OpError{
		Op:   "domain.parse_kind",
		Kind: KindInvalidInput,
		Err:  fmt.Errorf("unknown kind %q (want events or students)", s),
	}
}

func (k Kind) String() string { return string(k) }
