package ndbc

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClient_Report(t *testing.T) {
	srv := fixtureServer(t)
	c := testClient(t, srv.URL)

	r, err := c.Report(context.Background(), 46042, false)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if r.StationID != 46042 {
		t.Errorf("StationID = %d, want 46042", r.StationID)
	}

	want := time.Date(2026, 1, 15, 16, 50, 0, 0, r.Timestamp.Location())
	if !r.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, want)
	}
	if zone, _ := r.Timestamp.Zone(); zone != "GMT" {
		t.Errorf("Timestamp zone = %q, want GMT", zone)
	}

	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"WaveHeight", r.WaveHeight, 7.9},
		{"DominantPeriod", r.DominantPeriod, 13},
		{"AveragePeriod", r.AveragePeriod, 9.1},
		{"WaterTemp", r.WaterTemp, 55.6},
	}
	for _, c := range checks {
		if c.got == nil {
			t.Errorf("%s = nil, want %v", c.name, c.want)
		} else if *c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, *c.got, c.want)
		}
	}

	if r.MeanDirectionDeg == nil {
		t.Error("MeanDirectionDeg = nil, want 296")
	} else if *r.MeanDirectionDeg != 296 {
		t.Errorf("MeanDirectionDeg = %d, want 296", *r.MeanDirectionDeg)
	}
}

func TestClient_Report_SparseStation(t *testing.T) {
	srv := fixtureServer(t)
	c := testClient(t, srv.URL)

	r, err := c.Report(context.Background(), 46235, false)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if r.WaveHeight == nil || *r.WaveHeight != 3.0 {
		t.Errorf("WaveHeight = %v, want 3.0", r.WaveHeight)
	}

	// Measurements the station doesn't report stay nil
	if r.DominantPeriod != nil {
		t.Errorf("DominantPeriod = %v, want nil", *r.DominantPeriod)
	}
	if r.WaterTemp != nil {
		t.Errorf("WaterTemp = %v, want nil", *r.WaterTemp)
	}
}

func TestParseReport_NoTable(t *testing.T) {
	_, err := parseReport(46042, "<html><body>nothing here</body></html>")
	if !errors.Is(err, ErrNoReport) {
		t.Errorf("parseReport = %v, want ErrNoReport", err)
	}
}

func TestParseReport_NoTimestamp(t *testing.T) {
	page := `<html><body><table>
<caption class="titleDataHeader">Conditions at 46042</caption>
</table></body></html>`
	_, err := parseReport(46042, page)
	if !errors.Is(err, ErrNoReport) {
		t.Errorf("parseReport = %v, want ErrNoReport", err)
	}
}

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"7.9 ft", ptr(7.9)},
		{"13 sec", ptr(13.0)},
		{"55.6 °F", ptr(55.6)},
		{"", nil},
		{"N/A", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseMeasurement(tt.input)
			switch {
			case got == nil && tt.want != nil:
				t.Errorf("parseMeasurement(%q) = nil, want %v", tt.input, *tt.want)
			case got != nil && tt.want == nil:
				t.Errorf("parseMeasurement(%q) = %v, want nil", tt.input, *got)
			case got != nil && tt.want != nil && *got != *tt.want:
				t.Errorf("parseMeasurement(%q) = %v, want %v", tt.input, *got, *tt.want)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
