package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/swellwatch/buoy/pkg/ndbc"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return s
}

func fptr(v float64) *float64 { return &v }

func TestFileStore_SaveAndLoadStation(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	st := &ndbc.Station{
		ID:        46042,
		Name:      "MONTEREY - 27NM WNW of Monterey, CA",
		Latitude:  "36.785N",
		Longitude: "122.396W",
	}
	if err := s.SaveStation(ctx, st); err != nil {
		t.Fatalf("SaveStation failed: %v", err)
	}

	got, err := s.Station(ctx, 46042)
	if err != nil {
		t.Fatalf("Station failed: %v", err)
	}
	if got.Name != st.Name || got.Latitude != st.Latitude {
		t.Errorf("loaded station %+v, want %+v", got, st)
	}
}

func TestFileStore_StationNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Station(context.Background(), 46042)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Station = %v, want ErrNotFound", err)
	}
}

func TestFileStore_SaveStationsAndList(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	batch := map[int]*ndbc.Station{
		46042: {ID: 46042, Name: "Monterey"},
		46012: {ID: 46012, Name: "Half Moon Bay"},
		46026: {ID: 46026, Name: "San Francisco"},
	}
	if err := s.SaveStations(ctx, batch); err != nil {
		t.Fatalf("SaveStations failed: %v", err)
	}

	stations, err := s.Stations(ctx)
	if err != nil {
		t.Fatalf("Stations failed: %v", err)
	}
	if len(stations) != 3 {
		t.Fatalf("got %d stations, want 3", len(stations))
	}
	wantOrder := []int{46012, 46026, 46042}
	for i, id := range wantOrder {
		if stations[i].ID != id {
			t.Errorf("stations[%d].ID = %d, want %d", i, stations[i].ID, id)
		}
	}
}

func TestFileStore_StationsEmpty(t *testing.T) {
	s := testStore(t)

	stations, err := s.Stations(context.Background())
	if err != nil {
		t.Fatalf("Stations failed: %v", err)
	}
	if len(stations) != 0 {
		t.Errorf("got %d stations, want 0", len(stations))
	}
}

func TestFileStore_ReportHistory(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	base := time.Date(2026, 1, 15, 16, 50, 0, 0, time.UTC)
	// Save out of order to verify sorting.
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		r := &ndbc.Report{
			StationID:  46042,
			Timestamp:  base.Add(offset),
			WaveHeight: fptr(6.6),
		}
		if err := s.SaveReport(ctx, r); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}
	}

	reports, err := s.Reports(ctx, 46042)
	if err != nil {
		t.Fatalf("Reports failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	for i := 1; i < len(reports); i++ {
		if !reports[i-1].Timestamp.Before(reports[i].Timestamp) {
			t.Errorf("reports out of order at index %d", i)
		}
	}
	if reports[0].WaveHeight == nil || *reports[0].WaveHeight != 6.6 {
		t.Errorf("WaveHeight = %v, want 6.6", reports[0].WaveHeight)
	}
}

func TestFileStore_SaveReportIdempotent(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	r := &ndbc.Report{
		StationID: 46042,
		Timestamp: time.Date(2026, 1, 15, 16, 50, 0, 0, time.UTC),
	}
	if err := s.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	r.WaveHeight = fptr(4.9)
	if err := s.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	reports, err := s.Reports(ctx, 46042)
	if err != nil {
		t.Fatalf("Reports failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].WaveHeight == nil || *reports[0].WaveHeight != 4.9 {
		t.Errorf("WaveHeight = %v, want updated value 4.9", reports[0].WaveHeight)
	}
}

func TestFileStore_ReportsEmpty(t *testing.T) {
	s := testStore(t)

	reports, err := s.Reports(context.Background(), 46042)
	if err != nil {
		t.Fatalf("Reports failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("got %d reports, want 0", len(reports))
	}
}

func TestFileStore_Path(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if s.Path() != dir {
		t.Errorf("Path = %q, want %q", s.Path(), dir)
	}
}
