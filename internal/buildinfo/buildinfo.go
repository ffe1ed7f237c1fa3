package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/arran4/event-barcodes/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("event-barcodes %s (commit=%s, date=%s)", Version, Commit, Date)
}
