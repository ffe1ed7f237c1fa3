package roster

import (
	"fmt"
	"net/url"

	"github.com/arran4/event-barcodes/internal/domain"
)

// Route is where a scanned code lands in the web app.
type Route struct {
	Path  string
	Query string
}

// Routes maps each kind to its landing page.
var Routes = map[domain.Kind]Route{
	domain.KindEvents:   {Path: "scan", Query: "event"},
	domain.KindStudents: {Path: "clubdashboard", Query: "student_id"},
}

// BuildURL joins the app URL with the kind's route and puts the identifier in
// the query string. Trailing slashes on appURL are tolerated.
func BuildURL(appURL string, kind domain.Kind, id string) (string, error) {
	route, ok := Routes[kind]
	if !ok {
		return "", &domain.OpError{
			Op:   "roster.build_url",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("no route for kind %q", kind),
		}
	}

	base, err := url.Parse(appURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		if err == nil {
			err = fmt.Errorf("app url %q must be absolute", appURL)
		}
		return "", &domain.OpError{
			Op:   "roster.build_url",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	u := base.JoinPath(route.Path)
	q := url.Values{}
	q.Set(route.Query, id)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
