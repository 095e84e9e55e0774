// Package ndbc provides a client for the NOAA National Data Buoy Center
// (NDBC) website at https://www.ndbc.noaa.gov.
//
// NDBC has no JSON API for the station pages this package consumes, so the
// client scrapes the HTML station directory, station pages, and radial
// search results. All responses are cached through a [cache.Cache] backend
// and transient failures are retried with exponential backoff.
//
// # Operations
//
//   - [Client.StationIDs]: all station ids listed in the station directory
//   - [Client.Station]: metadata for one station (name, feed URL, position)
//   - [Client.Report]: the latest observation table for one station
//   - [Client.Search]: station ids within a radius of a coordinate
//
// All methods are safe for concurrent use.
package ndbc
