package sensorapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/i474232898/air-quality-aggregation/internal/airquality"
)

// Row field names used by the sensor API.
const (
	fieldDateTime     = "Date_Time"
	fieldDominant     = "Dominant_Pollutant"
	statusFieldPrefix = "Status_"
)

// ErrAPI wraps an error message embedded in an otherwise successful response.
var ErrAPI = errors.New("sensor api error")

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimestamp parses the API's ISO-like timestamps. Values without an
// offset are read in loc. The zero time is returned when nothing matches.
func parseTimestamp(s string, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc)
		}
	}
	return time.Time{}
}

// decodeResponse reads `{"<station>": [rows...]}` or `{"error": "..."}`.
// A payload without the station key yields no readings.
func decodeResponse(body io.Reader, station string, loc *time.Location) ([]airquality.Reading, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	payload, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	if text := errorText(payload); text != "" {
		return nil, fmt.Errorf("%w: %s", ErrAPI, text)
	}

	rowsRaw, ok := payload[station]
	if !ok {
		return []airquality.Reading{}, nil
	}

	var rows []map[string]any
	dec := json.NewDecoder(bytes.NewReader(rowsRaw))
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		// Anything other than an array is treated as no data.
		return []airquality.Reading{}, nil
	}

	out := make([]airquality.Reading, 0, len(rows))
	for _, row := range rows {
		out = append(out, decodeRow(row, loc))
	}
	return out, nil
}

// errorText returns the message of a top-level "error" member, if any.
func errorText(payload map[string]json.RawMessage) string {
	msg, ok := payload["error"]
	if !ok {
		return ""
	}
	var text string
	if err := json.Unmarshal(msg, &text); err != nil || text == "" {
		text = strings.TrimSpace(string(msg))
	}
	if text == "null" || text == "false" {
		return ""
	}
	return text
}

func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	var payload map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

// decodeSnapshot reads `{"<station>": {row} | {"error": "..."}}`. Stations
// reporting an error or no timestamp are skipped. A top-level "no data" error
// is an empty snapshot.
func decodeSnapshot(body io.Reader, loc *time.Location) ([]airquality.Reading, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	payload, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if text := errorText(payload); text != "" {
		if strings.Contains(strings.ToLower(text), "no data") {
			return []airquality.Reading{}, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrAPI, text)
	}

	out := make([]airquality.Reading, 0, len(payload))
	for station, rowRaw := range payload {
		var row map[string]any
		dec := json.NewDecoder(bytes.NewReader(rowRaw))
		dec.UseNumber()
		if err := dec.Decode(&row); err != nil {
			continue
		}
		if _, failed := row["error"]; failed {
			continue
		}
		r := decodeRow(row, loc)
		if !r.HasTime() {
			continue
		}
		r.Station = station
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Station < out[j].Station })
	return out, nil
}

type alertRow struct {
	DateTime string `json:"Date_Time"`
	Alert    string `json:"Alert"`
}

// decodeAlerts reads `[{"Date_Time": ..., "Alert": ...}]` or `{"error": "..."}`.
func decodeAlerts(body io.Reader, loc *time.Location) ([]airquality.Alert, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		payload, err := decodeObject(trimmed)
		if err != nil {
			return nil, err
		}
		if text := errorText(payload); text != "" {
			return nil, fmt.Errorf("%w: %s", ErrAPI, text)
		}
		return []airquality.Alert{}, nil
	}

	var rows []alertRow
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}
	out := make([]airquality.Alert, 0, len(rows))
	for _, row := range rows {
		out = append(out, airquality.Alert{
			Timestamp: parseTimestamp(row.DateTime, loc),
			Message:   strings.TrimSpace(row.Alert),
		})
	}
	return out, nil
}

func decodeRow(row map[string]any, loc *time.Location) airquality.Reading {
	r := airquality.Reading{
		Values: make(map[airquality.Pollutant]any),
		Status: make(map[airquality.Pollutant]string),
	}
	for k, v := range row {
		switch {
		case k == fieldDateTime:
			if s, ok := v.(string); ok {
				r.Timestamp = parseTimestamp(s, loc)
			}
		case k == fieldDominant:
			if s, ok := v.(string); ok {
				r.DominantPollutant = s
			}
		case strings.HasPrefix(k, statusFieldPrefix):
			if p, ok := airquality.ParsePollutant(strings.TrimPrefix(k, statusFieldPrefix)); ok {
				if s, ok := v.(string); ok {
					r.Status[p] = s
				}
			}
		default:
			if p, ok := airquality.ParsePollutant(k); ok {
				r.Values[p] = v
			}
		}
	}
	return r
}
