package ndbc

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swellwatch/buoy/pkg/cache"
)

// stationPageHTML mimics the structure of an NDBC station page: the
// latest-observations feed link, the metadata block, and the observation
// table with its captioned timestamp.
const stationPageHTML = `<html><body>
<h1>Station 46042</h1>
<p><a href="/data/latest_obs/46042.rss">Station 46042 - MONTEREY - 27NM WNW of Monterey, CA</a></p>
<div id="stn_metadata">
<p>Owned and maintained by National Data Buoy Center<br>
3-meter discus buoy<br>
36.785 N 122.398 W (36&#176;47'5" N 122&#176;23'54" W)</p>
</div>
<table>
<caption class="titleDataHeader">Conditions at 46042 as of (8:50 am PST) 1650 GMT on 01/15/2026:</caption>
<tr><td></td><td>Wave Height (WVHT):</td><td>7.9 ft</td></tr>
<tr><td></td><td>Dominant Wave Period (DPD):</td><td>13 sec</td></tr>
<tr><td></td><td>Average Period (APD):</td><td>9.1 sec</td></tr>
<tr><td></td><td>Mean Wave Direction (MWD):</td><td>WNW ( 296 deg true )</td></tr>
<tr><td></td><td>Water Temperature (WTMP):</td><td>55.6 &#176;F</td></tr>
<tr><td></td><td>Not a measurement</td></tr>
</table>
</body></html>`

// sparseStationPageHTML has a timestamp but only a subset of measurements.
const sparseStationPageHTML = `<html><body>
<table>
<caption class="titleDataHeader">Conditions at 46235 as of (2:00 pm PST) 2200 GMT on 03/02/2026:</caption>
<tr><td></td><td>Wave Height (WVHT):</td><td>3.0 ft</td></tr>
</table>
</body></html>`

// directoryHTML mimics the station directory with a mix of numeric and
// non-numeric station links, plus a duplicate.
const directoryHTML = `<html><body>
<a href="/station_page.php?station=46042">46042</a>
<a href="/station_page.php?station=46026">46026</a>
<a href="/station_page.php?station=ljpc1">LJPC1</a>
<a href="/station_page.php?station=46042">46042 again</a>
<a href="/to_station.shtml">directory</a>
<a href="/station_page.php?station=46012">46012</a>
</body></html>`

// fixtureServer serves station fixtures the way the NDBC site lays them out.
func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/to_station.shtml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, directoryHTML)
	})
	mux.HandleFunc("/radial_search.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat1") == "" || r.URL.Query().Get("lon1") == "" {
			http.Error(w, "missing coordinates", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, directoryHTML)
	})
	mux.HandleFunc("/station_page.php", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("station") {
		case "46042":
			fmt.Fprint(w, stationPageHTML)
		case "46235":
			fmt.Fprint(w, sparseStationPageHTML)
		default:
			http.NotFound(w, r)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(cache.NewNullCache(), WithBaseURL(baseURL))
}
