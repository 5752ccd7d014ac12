package airquality

import (
	"reflect"
	"testing"
)

func TestAggregateRoseScenario(t *testing.T) {
	ts := at(t, "2024-05-01 10:00")
	readings := []Reading{
		reading(ts, WD, 10.0, PM25, 20.0),
		reading(ts, WD, 100.0, PM25, 60.0),
		reading(ts, WD, 10.0, PM25, SentinelValue),
	}
	table := DefaultTables().For(PM25)

	rose := AggregateRose(readings, PM25, table, RoseOptions{SectorCount: 8, Mode: DirectionFrom})

	if rose.Samples != 2 {
		t.Fatalf("expected 2 samples, got %d", rose.Samples)
	}
	if rose.Sectors[0].Total != 1 || rose.Sectors[2].Total != 1 {
		t.Fatalf("unexpected sector totals: N=%d E=%d", rose.Sectors[0].Total, rose.Sectors[2].Total)
	}

	// Satisfactory is index 1, Moderate is index 2.
	assertInts(t, rose.PerSector[0], []int{0, 100, 0, 0, 0, 0, 0})
	assertInts(t, rose.PerSector[2], []int{0, 0, 100, 0, 0, 0, 0})
	for _, i := range []int{1, 3, 4, 5, 6, 7} {
		assertInts(t, rose.PerSector[i], make([]int, 7))
	}

	if rose.PerCategory[1].Percent != 50 || rose.PerCategory[2].Percent != 50 {
		t.Fatalf("expected 50/50 legend, got %+v", rose.PerCategory)
	}
	if rose.PerCategory[1].Name != "Satisfactory" || rose.PerCategory[1].Count != 1 {
		t.Fatalf("unexpected legend entry: %+v", rose.PerCategory[1])
	}

	if got := rose.Table.Rows[0]; got[0] != "N" || got[2] != "100%" {
		t.Fatalf("unexpected table row for N: %v", got)
	}
	if rose.Table.Headers[0] != "Direction" || len(rose.Table.Headers) != 8 {
		t.Fatalf("unexpected table headers: %v", rose.Table.Headers)
	}
}

func TestAggregateRoseIsIdempotent(t *testing.T) {
	ts := at(t, "2024-05-01 10:00")
	readings := []Reading{
		reading(ts, WD, 10.0, AQI, 20.0),
		reading(ts, WD, 190.0, AQI, 120.0),
		reading(ts, WD, 275.0, AQI, 420.0),
	}
	table := DefaultTables().For(AQI)

	first := AggregateRose(readings, AQI, table, RoseOptions{})
	second := AggregateRose(readings, AQI, table, RoseOptions{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results for identical input")
	}
}

func TestAggregateRoseSkipsUnusableReadings(t *testing.T) {
	ts := at(t, "2024-05-01 10:00")
	readings := []Reading{
		reading(ts, PM25, 20.0),                // no direction
		reading(ts, WD, "Invalid", PM25, 20.0), // error direction
		reading(ts, WD, 10.0),                  // no value
		reading(ts, WD, 10.0, PM25, "N/A"),     // error value
	}
	// No timestamp.
	readings = append(readings, Reading{Values: map[Pollutant]any{WD: 10.0, PM25: 20.0}})

	rose := AggregateRose(readings, PM25, DefaultTables().For(PM25), RoseOptions{})
	if rose.Samples != 0 {
		t.Fatalf("expected no samples, got %d", rose.Samples)
	}
	for i, percs := range rose.PerSector {
		assertInts(t, percs, make([]int, 7))
		if rose.Table.Rows[i][1] != "0%" {
			t.Fatalf("expected 0%% cells for empty sector, got %v", rose.Table.Rows[i])
		}
	}
}

func TestAggregateRoseToMode(t *testing.T) {
	ts := at(t, "2024-05-01 10:00")
	readings := []Reading{reading(ts, WD, 10.0, AQI, 20.0)}

	rose := AggregateRose(readings, AQI, DefaultTables().For(AQI), RoseOptions{Mode: DirectionTo})
	if rose.Sectors[4].Total != 1 {
		t.Fatalf("expected wind from N to land in the S sector, got %+v", rose.Sectors)
	}
	if rose.Mode != DirectionTo || rose.SectorCount != DefaultSectorCount {
		t.Fatalf("unexpected options echoed: %s %d", rose.Mode, rose.SectorCount)
	}
}

func TestAggregateRoseCustomCorrection(t *testing.T) {
	ts := at(t, "2024-05-01 10:00")
	readings := []Reading{
		reading(ts, WD, 10.0, AQI, 20.0),
		reading(ts, WD, 10.0, AQI, 75.0),
		reading(ts, WD, 10.0, AQI, 120.0),
	}

	rose := AggregateRose(readings, AQI, DefaultTables().For(AQI), RoseOptions{
		SectorCorrection: DistributeByRank,
		LegendCorrection: CorrectToLargest,
	})
	assertInts(t, rose.PerSector[0][:3], []int{34, 33, 33})
	if sumInts(rose.PerSector[0]) != 100 {
		t.Fatalf("sector percentages must sum to 100")
	}
}

func TestAggregateRoseEmptyTable(t *testing.T) {
	ts := at(t, "2024-05-01 10:00")
	rose := AggregateRose([]Reading{reading(ts, WD, 10.0, PM25, 20.0)}, PM25, nil, RoseOptions{})
	if rose.Samples != 0 || len(rose.Categories) != 0 {
		t.Fatalf("expected nothing classified without a table, got %+v", rose)
	}
}
