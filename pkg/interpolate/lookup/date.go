package lookup

import (
	"context"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Date formats the current time.
//
// The key is the format: a pattern containing '%' is a strftime pattern
// ("%Y-%m-%d"), anything else is a Go layout ("2006-01-02"). An empty key
// formats as RFC 3339.
type Date struct {
	// Now replaces time.Now when set.
	Now func() time.Time
	// Location converts the time before formatting. Nil keeps the clock's zone.
	Location *time.Location
}

// Resolve implements interpolate.Resolver.
func (d Date) Resolve(_ context.Context, format string) (string, bool, error) {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	t := now()
	if d.Location != nil {
		t = t.In(d.Location)
	}

	switch {
	case format == "":
		return t.Format(time.RFC3339), true, nil
	case strings.Contains(format, "%"):
		return strftime.Format(format, t), true, nil
	default:
		return t.Format(format), true, nil
	}
}
