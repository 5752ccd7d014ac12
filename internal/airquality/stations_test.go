package airquality

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	stations := c.Stations()
	if len(stations) == 0 {
		t.Fatalf("expected built-in stations")
	}
	for i := 1; i < len(stations); i++ {
		if stations[i-1].City > stations[i].City {
			t.Fatalf("expected stations grouped by city, got %q before %q", stations[i-1].City, stations[i].City)
		}
	}

	st, ok := c.Lookup("UET-LHR")
	if !ok || st.City != "Lahore" {
		t.Fatalf("expected UET-LHR in Lahore, got %+v %v", st, ok)
	}
	if c.Label("unknown") != "unknown" {
		t.Fatalf("expected unknown ids to label as themselves")
	}

	var nilCatalog *Catalog
	if nilCatalog.Label("X") != "X" {
		t.Fatalf("expected nil catalog to fall back to id")
	}
}

func TestStationIDForMobileUnits(t *testing.T) {
	if got := stationID("Mobile AQMS", "Mobile 3 Parked at Civil Lines"); got != "Mobile 3" {
		t.Fatalf("unexpected mobile id: %q", got)
	}
	if got := stationID("Lahore", "Mobile 3"); got != "Mobile 3" {
		t.Fatalf("expected fixed sites to keep their label, got %q", got)
	}
	if got := stationID("Mobile AQMS", "ARID University Rawalpindi"); got != "ARID University Rawalpindi" {
		t.Fatalf("expected label without unit number to be kept, got %q", got)
	}
}
