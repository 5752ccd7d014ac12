package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/air-quality-aggregation/internal/airquality"
	"github.com/i474232898/air-quality-aggregation/internal/common"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// Query times without an offset are read in loc.
func RegisterRoutes(app *fiber.App, service *airquality.Service, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	v1 := app.Group("/api/v1")

	v1.Get("/stations", func(c *fiber.Ctx) error {
		catalog := service.Catalog()
		if catalog == nil {
			return c.JSON(fiber.Map{"stations": []airquality.Station{}})
		}
		return c.JSON(fiber.Map{"stations": catalog.Stations()})
	})

	v1.Get("/categories/:pollutant", func(c *fiber.Ctx) error {
		key, err := parsePollutant(c.Params("pollutant"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		table := service.Tables().For(key)
		if len(table) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no category table for "+string(key))
		}
		return c.JSON(fiber.Map{
			"pollutant": key,
			"unit":      key.Unit(),
			"bands":     table,
		})
	})

	v1.Get("/rose", func(c *fiber.Ctx) error {
		var q roseQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		key, err := parsePollutant(q.Pollutant)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		mode, err := airquality.ParseDirectionMode(q.Direction)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		window, err := q.WindowQuery.window(loc, airquality.IntervalHourly)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(service.Rose(c.UserContext(), airquality.RoseQuery{
			Station:     q.Station,
			Pollutant:   key,
			Window:      window,
			SectorCount: q.Sectors,
			Mode:        mode,
		}))
	})

	v1.Get("/roses", func(c *fiber.Ctx) error {
		var q rosesQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		stations := dedupe(common.SplitList(q.Stations))
		key, err := parsePollutant(q.Pollutant)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		mode, err := airquality.ParseDirectionMode(q.Direction)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		window, err := q.WindowQuery.window(loc, airquality.IntervalHourly)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(service.Roses(c.UserContext(), airquality.RosesQuery{
			Stations:    stations,
			Pollutant:   key,
			Window:      window,
			SectorCount: q.Sectors,
			Mode:        mode,
		}))
	})

	v1.Get("/latest", func(c *fiber.Ctx) error {
		var q latestQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		key := airquality.AQI
		if q.Pollutant != "" {
			var err error
			if key, err = parsePollutant(q.Pollutant); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		snap, err := service.Latest(c.UserContext(), key)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(snap)
	})

	v1.Get("/alerts", func(c *fiber.Ctx) error {
		var q alertsQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		var r airquality.AlertRange
		if q.Start != "" || q.End != "" {
			start, end, err := parseRange(q.Start, q.End, loc)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			r = airquality.AlertRange{Start: start, End: end}
		}

		feed, err := service.Alerts(c.UserContext(), airquality.AlertQuery{Range: r, Limit: q.Limit})
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(feed)
	})

	v1.Get("/histogram", func(c *fiber.Ctx) error {
		var q histogramQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		stations, err := parseStations(q.Stations)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		key, err := parsePollutant(q.Pollutant)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		window, err := q.WindowQuery.window(loc, airquality.IntervalHourly)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(service.Histogram(c.UserContext(), airquality.HistogramQuery{
			Stations:  stations,
			Pollutant: key,
			Window:    window,
			Bins:      q.Bins,
		}))
	})

	v1.Get("/parallel", func(c *fiber.Ctx) error {
		var q parallelQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		stations, err := parseStations(q.Stations)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		key, err := parsePollutant(q.Pollutant)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		start, end, err := parseRange(q.Start, q.End, loc)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(service.Parallel(c.UserContext(), airquality.ParallelQuery{
			Stations:  stations,
			Pollutant: key,
			Start:     start,
			End:       end,
			Hour:      q.Hour,
		}))
	})

	v1.Get("/calendar", func(c *fiber.Ctx) error {
		var q calendarQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		key, err := parsePollutant(q.Pollutant)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		start, end, err := parseRange(q.Start, q.End, loc)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(service.Calendar(c.UserContext(), airquality.CalendarQuery{
			Station:   q.Station,
			Pollutant: key,
			Start:     start,
			End:       end,
		}))
	})

	v1.Get("/series", func(c *fiber.Ctx) error {
		var q seriesQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}
		names := common.SplitList(q.Pollutants)
		if len(names) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "pollutants query parameter is required")
		}
		keys := make([]airquality.Pollutant, 0, len(names))
		for _, n := range names {
			key, err := parsePollutant(n)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			keys = append(keys, key)
		}
		window, err := q.WindowQuery.window(loc, airquality.IntervalHourly)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(service.Series(c.UserContext(), airquality.SeriesQuery{
			Station:    q.Station,
			Pollutants: keys,
			Window:     window,
		}))
	})
}

// WindowQuery holds the parameters shared by endpoints that accept a preset
// period or an explicit range.
type WindowQuery struct {
	Period   string `query:"period" validate:"omitempty,oneof=daily monthly periodic"`
	Start    string `query:"start"`
	End      string `query:"end"`
	Interval int    `query:"interval" validate:"gte=0"`
}

// window resolves the request window. An explicit start/end implies a periodic
// window; otherwise the daily preset is used.
func (w WindowQuery) window(loc *time.Location, defaultInterval int) (airquality.Window, error) {
	period := w.Period
	if period == "" {
		period = string(airquality.WindowDaily)
		if w.Start != "" || w.End != "" {
			period = string(airquality.WindowPeriodic)
		}
	}

	switch airquality.WindowKind(period) {
	case airquality.WindowDaily:
		return airquality.Daily, nil
	case airquality.WindowMonthly:
		return airquality.Monthly, nil
	}

	start, end, err := parseRange(w.Start, w.End, loc)
	if err != nil {
		return airquality.Window{}, err
	}
	interval := w.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	window := airquality.Periodic(start, end, interval)
	if err := window.Validate(); err != nil {
		return airquality.Window{}, err
	}
	return window, nil
}

type roseQuery struct {
	Station   string `query:"station" validate:"required"`
	Pollutant string `query:"pollutant" validate:"required"`
	Sectors   int    `query:"sectors" validate:"gte=0,lte=360"`
	Direction string `query:"direction" validate:"omitempty,oneof=from to"`
	WindowQuery
}

type rosesQuery struct {
	Stations  string `query:"stations"`
	Pollutant string `query:"pollutant" validate:"required"`
	Sectors   int    `query:"sectors" validate:"gte=0,lte=360"`
	Direction string `query:"direction" validate:"omitempty,oneof=from to"`
	WindowQuery
}

type latestQuery struct {
	Pollutant string `query:"pollutant"`
}

type alertsQuery struct {
	Start string `query:"start"`
	End   string `query:"end"`
	Limit int    `query:"limit" validate:"gte=0"`
}

type histogramQuery struct {
	Stations  string `query:"stations" validate:"required"`
	Pollutant string `query:"pollutant" validate:"required"`
	Bins      int    `query:"bins" validate:"gte=0,lte=200"`
	WindowQuery
}

type parallelQuery struct {
	Stations  string `query:"stations" validate:"required"`
	Pollutant string `query:"pollutant" validate:"required"`
	Hour      int    `query:"hour" validate:"gte=0,lte=23"`
	Start     string `query:"start" validate:"required"`
	End       string `query:"end" validate:"required"`
}

type calendarQuery struct {
	Station   string `query:"station" validate:"required"`
	Pollutant string `query:"pollutant" validate:"required"`
	Start     string `query:"start" validate:"required"`
	End       string `query:"end" validate:"required"`
}

type seriesQuery struct {
	Station    string `query:"station" validate:"required"`
	Pollutants string `query:"pollutants" validate:"required"`
	WindowQuery
}

// bindQuery parses and validates query parameters into dst.
func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func parsePollutant(s string) (airquality.Pollutant, error) {
	key, ok := airquality.ParsePollutant(strings.TrimSpace(s))
	if !ok {
		return "", fmt.Errorf("unknown pollutant %q", s)
	}
	return key, nil
}

// parseStations splits a comma-separated station list, dropping repeats.
func parseStations(s string) ([]string, error) {
	stations := dedupe(common.SplitList(s))
	if len(stations) == 0 {
		return nil, errors.New("stations query parameter is required")
	}
	return stations, nil
}

func dedupe(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := xs[:0]
	for _, x := range xs {
		if seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}

func parseRange(startStr, endStr string, loc *time.Location) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, errors.New("start and end query parameters are required")
	}
	start, err := parseTime(startStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseTime(endStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end must not be before start")
	}
	return start, end, nil
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime accepts RFC3339, station-local date/time layouts, or Unix seconds.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.In(loc), nil
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).In(loc), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339, YYYY-MM-DD[ HH:MM] or unix seconds")
}
