// Package archive persists collected stations and observations.
//
// This package defines the Store interface with implementations for
// different backends:
//   - file: JSON files under a base directory, for CLI usage
//   - mongo: MongoDB collections, for long-running deployments
//
// Stations are keyed by id and overwritten on every save; reports
// accumulate, keyed by station id and observation timestamp, forming a
// local history of what each buoy has measured.
package archive

import (
	"context"
	"errors"

	"github.com/swellwatch/buoy/pkg/ndbc"
)

// ErrNotFound is returned when a requested station has never been archived.
var ErrNotFound = errors.New("not archived")

// Store is the interface for archive storage backends.
type Store interface {
	// SaveStation stores station metadata, replacing any previous version.
	SaveStation(ctx context.Context, st *ndbc.Station) error

	// SaveStations stores a batch of station metadata.
	SaveStations(ctx context.Context, stations map[int]*ndbc.Station) error

	// Station retrieves archived metadata for one station.
	// Returns ErrNotFound if the station has never been saved.
	Station(ctx context.Context, id int) (*ndbc.Station, error)

	// Stations retrieves all archived station metadata.
	Stations(ctx context.Context) ([]*ndbc.Station, error)

	// SaveReport appends an observation to the station's history.
	// Saving the same station/timestamp pair twice overwrites the entry.
	SaveReport(ctx context.Context, r *ndbc.Report) error

	// Reports retrieves the archived observation history for one station,
	// ordered by timestamp ascending. An empty history is not an error.
	Reports(ctx context.Context, stationID int) ([]*ndbc.Report, error)

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
