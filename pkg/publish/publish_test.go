package publish

import (
	"encoding/json"
	"testing"

	"github.com/swellwatch/buoy/pkg/ndbc"
)

func TestConfig_WithDefaults(t *testing.T) {
	c := Config{}.WithDefaults()
	if c.Bucket != DefaultBucket {
		t.Errorf("Bucket = %q, want %q", c.Bucket, DefaultBucket)
	}
	if c.Region != DefaultRegion {
		t.Errorf("Region = %q, want %q", c.Region, DefaultRegion)
	}
	if c.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", c.Endpoint, DefaultEndpoint)
	}

	c = Config{Bucket: "buoy-prod", Region: "us-east-1"}.WithDefaults()
	if c.Bucket != "buoy-prod" || c.Region != "us-east-1" {
		t.Errorf("explicit values should survive defaults: %+v", c)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY", "AKIATEST")
	t.Setenv("AWS_SECRET_KEY", "secret")

	c := ConfigFromEnv()
	if c.AccessKey != "AKIATEST" || c.SecretKey != "secret" {
		t.Errorf("credentials not read from environment: %+v", c)
	}
	if c.Bucket != DefaultBucket {
		t.Errorf("Bucket = %q, want %q", c.Bucket, DefaultBucket)
	}
}

func TestNewPublisher_RequiresCredentials(t *testing.T) {
	_, err := NewPublisher(Config{})
	if err == nil {
		t.Fatal("NewPublisher should fail without credentials")
	}
}

func TestNewPublisher_RunID(t *testing.T) {
	p1, err := NewPublisher(Config{AccessKey: "a", SecretKey: "b"})
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	p2, err := NewPublisher(Config{AccessKey: "a", SecretKey: "b"})
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	if p1.RunID() == "" {
		t.Error("RunID should not be empty")
	}
	if p1.RunID() == p2.RunID() {
		t.Error("publishers should get distinct run ids")
	}
}

func TestObjectKeys(t *testing.T) {
	if got := stationsKey(); got != "stations.json" {
		t.Errorf("stationsKey = %q, want stations.json", got)
	}
	if got := reportKey(46042); got != "report/46042.json" {
		t.Errorf("reportKey = %q, want report/46042.json", got)
	}
}

func TestEncodeStations(t *testing.T) {
	stations := map[int]*ndbc.Station{
		46042: {ID: 46042, Name: "Monterey"},
		46012: {ID: 46012, Name: "Half Moon Bay"},
	}

	data, err := encodeStations(stations)
	if err != nil {
		t.Fatalf("encodeStations failed: %v", err)
	}

	var decoded []ndbc.Station
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d stations, want 2", len(decoded))
	}
	if decoded[0].ID != 46012 || decoded[1].ID != 46042 {
		t.Errorf("stations not ordered by id: %v, %v", decoded[0].ID, decoded[1].ID)
	}
}
