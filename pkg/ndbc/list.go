package ndbc

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/net/html"
)

// stationHrefRE matches station page links in directory and search results,
// capturing the numeric station id.
var stationHrefRE = regexp.MustCompile(`station_page\.php\?station=(\d+)$`)

// DefaultSearchDistance is the radial search radius in nautical miles when
// the caller doesn't specify one.
const DefaultSearchDistance = 250

// StationIDs retrieves every numeric station id listed in the NDBC station
// directory, sorted ascending. Stations with non-numeric ids (some coastal
// C-MAN stations) are skipped.
func (c *Client) StationIDs(ctx context.Context, refresh bool) ([]int, error) {
	page, err := c.page(ctx, "to_station.shtml", nil, refresh)
	if err != nil {
		return nil, err
	}
	return parseStationIDs(page)
}

// Search finds stations within distance nautical miles of a coordinate.
// Latitude and longitude use the site's notation, e.g. "32.868N" and
// "117.267W". A distance of 0 uses [DefaultSearchDistance].
func (c *Client) Search(ctx context.Context, latitude, longitude string, distance int, refresh bool) ([]int, error) {
	if distance <= 0 {
		distance = DefaultSearchDistance
	}

	q := url.Values{}
	q.Set("lat1", latitude)
	q.Set("lon1", longitude)
	q.Set("dist", fmt.Sprint(distance))
	q.Set("uom", "E")

	page, err := c.page(ctx, "radial_search.php", q, refresh)
	if err != nil {
		return nil, err
	}
	return parseStationIDs(page)
}

// parseStationIDs collects the unique numeric station ids referenced by
// station page links anywhere in the document.
func parseStationIDs(page string) ([]int, error) {
	doc, err := parsePage(page)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var ids []int
	for _, a := range findAll(doc, func(n *html.Node) bool { return isElem(n, "a") }) {
		m := stationHrefRE.FindStringSubmatch(attr(a, "href"))
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids, nil
}
