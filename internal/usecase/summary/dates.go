package summary

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange builds a GitHub search date-range expression from optional
// start and end dates. Both dates present yields "start..end", start only
// ">=start", end only "<=end", neither an empty string (no restriction).
func DateRange(startDate, endDate string) (string, error) {
	if startDate != "" {
		if _, err := time.Parse(dateLayout, startDate); err != nil {
			return "", fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startDate)
		}
	}
	if endDate != "" {
		if _, err := time.Parse(dateLayout, endDate); err != nil {
			return "", fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", endDate)
		}
	}

	switch {
	case startDate != "" && endDate != "":
		if startDate > endDate {
			return "", fmt.Errorf("start date %s is after end date %s", startDate, endDate)
		}
		return startDate + ".." + endDate, nil
	case startDate != "":
		return ">=" + startDate, nil
	case endDate != "":
		return "<=" + endDate, nil
	default:
		return "", nil
	}
}

// dateBounds converts the optional start and end dates into time bounds for
// the local git log walk. The end bound is exclusive at the following
// midnight so the whole end day is included.
func dateBounds(startDate, endDate string) (since, until *time.Time) {
	if startDate != "" {
		if t, err := time.Parse(dateLayout, startDate); err == nil {
			since = &t
		}
	}
	if endDate != "" {
		if t, err := time.Parse(dateLayout, endDate); err == nil {
			u := t.AddDate(0, 0, 1)
			until = &u
		}
	}
	return since, until
}
