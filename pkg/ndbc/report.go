package ndbc

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var (
	// reportTimeRE matches the observation timestamp in the table caption,
	// e.g. "1650 GMT on 01/15/2026:".
	reportTimeRE = regexp.MustCompile(`(\d{4} GMT .+):$`)

	// directionRE matches the numeric bearing in a wave direction cell,
	// e.g. "SSW ( 210 deg true )".
	directionRE = regexp.MustCompile(`(\d+) deg`)
)

// reportTimeLayout parses timestamps like "1650 GMT on 01/15/2026".
const reportTimeLayout = "1504 MST on 01/02/2006"

// Report holds the latest observation scraped from a station page.
//
// Measurements that the station doesn't report are nil: not every buoy
// carries a full sensor suite, and the site simply omits those table rows.
// Units follow the site's English display: feet, seconds, degrees true,
// degrees Fahrenheit.
type Report struct {
	StationID        int        `json:"station_id"`
	Timestamp        time.Time  `json:"timestamp"`
	WaveHeight       *float64   `json:"wave_height,omitempty"`
	DominantPeriod   *float64   `json:"wave_dominant_period,omitempty"`
	AveragePeriod    *float64   `json:"wave_average_period,omitempty"`
	MeanDirectionDeg *int       `json:"wave_mean_degrees,omitempty"`
	WaterTemp        *float64   `json:"water_temperature,omitempty"`
}

// Report retrieves the latest observation for a single station.
//
// The observation table on the station page has a caption carrying the
// measurement timestamp in GMT; each table row pairs a labeled measurement
// with its value. Rows the station doesn't report are left nil.
//
// Returns:
//   - [ErrNotFound] if the station page doesn't exist
//   - [ErrNoReport] if the page has no observation table or timestamp
func (c *Client) Report(ctx context.Context, id int, refresh bool) (*Report, error) {
	page, err := c.stationPage(ctx, id, refresh)
	if err != nil {
		return nil, err
	}
	return parseReport(id, page)
}

func parseReport(id int, page string) (*Report, error) {
	doc, err := parsePage(page)
	if err != nil {
		return nil, err
	}

	caption := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "caption") && hasClass(n, "titleDataHeader")
	})
	if caption == nil {
		return nil, fmt.Errorf("%w: station %d has no observation table", ErrNoReport, id)
	}

	m := reportTimeRE.FindStringSubmatch(nodeText(caption))
	if m == nil {
		return nil, fmt.Errorf("%w: station %d observation table has no timestamp", ErrNoReport, id)
	}
	ts, err := time.Parse(reportTimeLayout, m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: station %d: bad timestamp %q", ErrNoReport, id, m[1])
	}

	report := &Report{StationID: id, Timestamp: ts}

	// The observation table is the caption's parent.
	table := caption.Parent
	if table == nil {
		return report, nil
	}

	for _, row := range findAll(table, func(n *html.Node) bool { return isElem(n, "tr") }) {
		cells := findAll(row, func(n *html.Node) bool { return isElem(n, "td") })
		if len(cells) < 3 {
			continue
		}

		key := nodeText(cells[1])
		value := nodeText(cells[2])

		switch {
		case strings.HasPrefix(key, "Wave Height"):
			report.WaveHeight = parseMeasurement(value)
		case strings.HasPrefix(key, "Dominant Wave Period"):
			report.DominantPeriod = parseMeasurement(value)
		case strings.HasPrefix(key, "Average Period"):
			report.AveragePeriod = parseMeasurement(value)
		case strings.HasPrefix(key, "Mean Wave Direction"):
			if m := directionRE.FindStringSubmatch(value); m != nil {
				if deg, err := strconv.Atoi(m[1]); err == nil {
					report.MeanDirectionDeg = &deg
				}
			}
		case strings.HasPrefix(key, "Water Temperature"):
			report.WaterTemp = parseMeasurement(value)
		}
	}

	return report, nil
}

// parseMeasurement extracts the leading numeric value from a measurement
// cell like "2.3 ft" or "12 sec". Returns nil if the cell has no number.
func parseMeasurement(value string) *float64 {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil
	}
	return &f
}
