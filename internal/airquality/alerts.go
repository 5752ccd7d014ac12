package airquality

import (
	"sort"
	"time"
)

// Alert is one threshold notice raised by the sensor network.
type Alert struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// AlertFeed is the newest-first alert list plus its export table.
type AlertFeed struct {
	Alerts []Alert `json:"alerts"`
	Table  Table   `json:"table"`
}

// BuildAlertFeed orders alerts newest first and keeps at most limit of them
// (limit <= 0 keeps all). Alerts whose timestamp could not be parsed sort last
// with an empty date cell.
func BuildAlertFeed(alerts []Alert, limit int) AlertFeed {
	out := append([]Alert{}, alerts...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Timestamp, out[j].Timestamp
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.After(b)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	feed := AlertFeed{
		Alerts: out,
		Table:  Table{Headers: []string{"Date Time", "Alert"}, Rows: make([][]string, 0, len(out))},
	}
	for _, a := range out {
		date := ""
		if !a.Timestamp.IsZero() {
			date = a.Timestamp.Format(dateTimeLayout)
		}
		feed.Table.Rows = append(feed.Table.Rows, []string{date, a.Message})
	}
	return feed
}
