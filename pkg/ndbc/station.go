package ndbc

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/net/html"
)

// coordsRE matches the position line in the station metadata block,
// e.g. "36.785 N 122.398 W".
var coordsRE = regexp.MustCompile(`([\d.]+ [NS]) ([\d.]+ [EW])`)

// Station holds the metadata scraped from an NDBC station page.
//
// Latitude and Longitude keep the site's "degrees hemisphere" notation
// (e.g. "36.785 N") rather than signed decimals, matching how the position
// is published.
type Station struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	RSS       string `json:"rss"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Station retrieves metadata for a single station.
//
// The station page is located via /station_page.php?station=<id>. The page
// carries a link to the station's latest-observations RSS feed; the text of
// the element containing that link is the station's display name, and the
// stn_metadata block holds the position.
//
// Returns:
//   - [ErrNotFound] if the station page doesn't exist
//   - [ErrNoStation] if the page exists but lacks the feed link or position
func (c *Client) Station(ctx context.Context, id int, refresh bool) (*Station, error) {
	page, err := c.stationPage(ctx, id, refresh)
	if err != nil {
		return nil, err
	}
	return parseStation(id, page, c.baseURL)
}

func parseStation(id int, page, baseURL string) (*Station, error) {
	doc, err := parsePage(page)
	if err != nil {
		return nil, err
	}

	feedHref := fmt.Sprintf("/data/latest_obs/%d.rss", id)
	anchor := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "a") && attr(n, "href") == feedHref
	})
	if anchor == nil {
		return nil, fmt.Errorf("%w: station %d has no observation feed link", ErrNoStation, id)
	}

	name := ""
	if anchor.Parent != nil {
		name = nodeText(anchor.Parent)
	}

	meta := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "div") && attr(n, "id") == "stn_metadata"
	})
	if meta == nil {
		return nil, fmt.Errorf("%w: station %d has no metadata block", ErrNoStation, id)
	}

	m := coordsRE.FindStringSubmatch(nodeText(meta))
	if m == nil {
		return nil, fmt.Errorf("%w: station %d has no position", ErrNoStation, id)
	}

	return &Station{
		ID:        id,
		Name:      name,
		RSS:       baseURL + feedHref,
		Latitude:  m[1],
		Longitude: m[2],
	}, nil
}
