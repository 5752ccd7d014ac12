package airquality

import (
	"sort"
	"time"
)

// CalendarCell is one day of a calendar plot.
type CalendarCell struct {
	Date     time.Time `json:"date"`
	Value    *float64  `json:"value"`
	Category string    `json:"category"`
}

// MonthGroup is one month of cells. LeadingBlanks is the weekday of the 1st
// (Sunday = 0), i.e. the number of empty slots before it in a 7-column grid.
type MonthGroup struct {
	Label         string         `json:"label"`
	LeadingBlanks int            `json:"leadingBlanks"`
	Cells         []CalendarCell `json:"cells"`
}

// Calendar is the month-grouped daily view of a pollutant.
type Calendar struct {
	Pollutant Pollutant    `json:"pollutant"`
	Months    []MonthGroup `json:"months"`
	Table     Table        `json:"table"`
}

// AggregateCalendar keeps the first reading per calendar day and groups the days
// by month. Days without a usable value get NoDataCategory; values of a
// pollutant without a table get an empty category.
func AggregateCalendar(readings []Reading, key Pollutant, table CategoryTable) Calendar {
	byDay := map[string]CalendarCell{}
	for _, r := range readings {
		if !r.HasTime() {
			continue
		}
		day := dateOnly(r.Timestamp, r.Timestamp.Location())
		k := day.Format(dateLayout)
		if _, seen := byDay[k]; seen {
			continue
		}
		cell := CalendarCell{Date: day, Category: NoDataCategory}
		if v, ok := r.Value(key); ok {
			cell.Value = &v
			cell.Category = ""
			if band, ok := Classify(v, table); ok {
				cell.Category = band.Name
			}
		}
		byDay[k] = cell
	}

	cells := make([]CalendarCell, 0, len(byDay))
	for _, c := range byDay {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Date.Before(cells[j].Date) })

	cal := Calendar{
		Pollutant: key,
		Months:    []MonthGroup{},
		Table:     Table{Headers: []string{"Date", key.LabelWithUnit()}, Rows: make([][]string, 0, len(cells))},
	}
	for _, c := range cells {
		label := c.Date.Format("January 2006")
		if n := len(cal.Months); n == 0 || cal.Months[n-1].Label != label {
			first := time.Date(c.Date.Year(), c.Date.Month(), 1, 0, 0, 0, 0, c.Date.Location())
			cal.Months = append(cal.Months, MonthGroup{
				Label:         label,
				LeadingBlanks: int(first.Weekday()),
			})
		}
		m := &cal.Months[len(cal.Months)-1]
		m.Cells = append(m.Cells, c)

		value := ""
		if c.Value != nil {
			value = formatValue(*c.Value)
		}
		cal.Table.Rows = append(cal.Table.Rows, []string{c.Date.Format(dateLayout), value})
	}
	return cal
}
