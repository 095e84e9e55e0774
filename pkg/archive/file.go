package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/swellwatch/buoy/pkg/ndbc"
)

// FileStore persists stations and reports as JSON files on disk.
//
// Layout under the base directory:
//
//	stations/<id>.json
//	reports/<id>/<unix-ts>.json
//
// FileStore is safe for concurrent use.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based archive rooted at baseDir.
// If baseDir is empty, defaults to ~/.config/buoy/archive.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "buoy", "archive")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	return &FileStore{baseDir: baseDir}, nil
}

// stationPath returns the file path for a station's metadata.
func (s *FileStore) stationPath(id int) string {
	return filepath.Join(s.baseDir, "stations", strconv.Itoa(id)+".json")
}

// reportPath returns the file path for one observation.
func (s *FileStore) reportPath(r *ndbc.Report) string {
	ts := strconv.FormatInt(r.Timestamp.Unix(), 10)
	return filepath.Join(s.baseDir, "reports", strconv.Itoa(r.StationID), ts+".json")
}

// SaveStation stores station metadata, replacing any previous version.
func (s *FileStore) SaveStation(ctx context.Context, st *ndbc.Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(s.stationPath(st.ID), st)
}

// SaveStations stores a batch of station metadata.
func (s *FileStore) SaveStations(ctx context.Context, stations map[int]*ndbc.Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range stations {
		if err := s.writeJSON(s.stationPath(st.ID), st); err != nil {
			return err
		}
	}
	return nil
}

// Station retrieves archived metadata for one station.
func (s *FileStore) Station(ctx context.Context, id int) (*ndbc.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.stationPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("station %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read station file: %w", err)
	}

	var st ndbc.Station
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse station file: %w", err)
	}
	return &st, nil
}

// Stations retrieves all archived station metadata, ordered by id.
func (s *FileStore) Stations(ctx context.Context) ([]*ndbc.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.baseDir, "stations")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read archive directory: %w", err)
	}

	var stations []*ndbc.Station
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var st ndbc.Station
		if err := json.Unmarshal(data, &st); err != nil {
			continue
		}
		stations = append(stations, &st)
	}

	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })
	return stations, nil
}

// SaveReport appends an observation to the station's history.
func (s *FileStore) SaveReport(ctx context.Context, r *ndbc.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(s.reportPath(r), r)
}

// Reports retrieves the archived observation history for one station,
// ordered by timestamp ascending.
func (s *FileStore) Reports(ctx context.Context, stationID int) ([]*ndbc.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.baseDir, "reports", strconv.Itoa(stationID))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read report directory: %w", err)
	}

	var reports []*ndbc.Report
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var r ndbc.Report
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		reports = append(reports, &r)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp.Before(reports[j].Timestamp)
	})
	return reports, nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

// Path returns the base directory used by this store.
func (s *FileStore) Path() string {
	return s.baseDir
}

// writeJSON marshals v and writes it to path, creating parent directories.
// Callers must hold the write lock.
func (s *FileStore) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal archive entry: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write archive entry: %w", err)
	}
	return nil
}

// Verify interface compliance.
var _ Store = (*FileStore)(nil)
