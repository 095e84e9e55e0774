// Package publish uploads collected observations to S3-compatible storage.
//
// Each collection run is published under a stable key layout so consumers
// always read the latest data:
//
//	stations.json      — the full station directory with metadata
//	report/<id>.json   — the latest observation for one station
//
// Every upload carries a run id in its object metadata so a partial
// publish can be distinguished from a complete one.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/swellwatch/buoy/pkg/ndbc"
)

const (
	// DefaultBucket is the bucket observations are published to.
	DefaultBucket = "buoy-dev"

	// DefaultRegion is the AWS region for the default bucket.
	DefaultRegion = "us-west-2"

	// DefaultEndpoint is the S3 endpoint host.
	DefaultEndpoint = "s3.amazonaws.com"

	// defaultUploadWorkers bounds concurrent report uploads.
	defaultUploadWorkers = 10
)

// Config holds S3 connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string

	// Insecure disables TLS, for local S3-compatible servers in tests.
	Insecure bool
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	return c
}

// ConfigFromEnv builds a Config from AWS_ACCESS_KEY and AWS_SECRET_KEY.
func ConfigFromEnv() Config {
	return Config{
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
	}.WithDefaults()
}

// Publisher uploads station data to an S3-compatible bucket.
type Publisher struct {
	client *minio.Client
	cfg    Config
	runID  string

	bucketOnce sync.Once
	bucketErr  error
}

// NewPublisher creates a Publisher for the given configuration.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg = cfg.WithDefaults()
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing S3 credentials (set AWS_ACCESS_KEY and AWS_SECRET_KEY)")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: !cfg.Insecure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &Publisher{
		client: client,
		cfg:    cfg,
		runID:  uuid.NewString(),
	}, nil
}

// RunID identifies this publisher's uploads in object metadata.
func (p *Publisher) RunID() string {
	return p.runID
}

// ensureBucket creates the bucket if it does not exist. The check runs
// once per Publisher.
func (p *Publisher) ensureBucket(ctx context.Context) error {
	p.bucketOnce.Do(func() {
		exists, err := p.client.BucketExists(ctx, p.cfg.Bucket)
		if err != nil {
			p.bucketErr = fmt.Errorf("failed to check bucket %q: %w", p.cfg.Bucket, err)
			return
		}
		if exists {
			return
		}
		err = p.client.MakeBucket(ctx, p.cfg.Bucket, minio.MakeBucketOptions{Region: p.cfg.Region})
		if err != nil {
			p.bucketErr = fmt.Errorf("failed to create bucket %q: %w", p.cfg.Bucket, err)
		}
	})
	return p.bucketErr
}

// PublishStations uploads the station directory as stations.json.
func (p *Publisher) PublishStations(ctx context.Context, stations map[int]*ndbc.Station) error {
	data, err := encodeStations(stations)
	if err != nil {
		return err
	}
	return p.put(ctx, stationsKey(), data)
}

// PublishReport uploads the latest observation for one station.
func (p *Publisher) PublishReport(ctx context.Context, r *ndbc.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return p.put(ctx, reportKey(r.StationID), data)
}

// PublishReports uploads a batch of observations concurrently.
func (p *Publisher) PublishReports(ctx context.Context, reports map[int]*ndbc.Report) error {
	if err := p.ensureBucket(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultUploadWorkers)
	for _, r := range reports {
		g.Go(func() error {
			return p.PublishReport(ctx, r)
		})
	}
	return g.Wait()
}

// put uploads a JSON payload to the bucket.
func (p *Publisher) put(ctx context.Context, key string, data []byte) error {
	if err := p.ensureBucket(ctx); err != nil {
		return err
	}

	_, err := p.client.PutObject(ctx, p.cfg.Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType:  "application/json",
			UserMetadata: map[string]string{"Run-Id": p.runID},
		})
	if err != nil {
		return fmt.Errorf("failed to upload %q: %w", key, err)
	}
	return nil
}

// stationsKey returns the object key for the station directory.
func stationsKey() string {
	return "stations.json"
}

// reportKey returns the object key for one station's latest observation.
func reportKey(stationID int) string {
	return "report/" + strconv.Itoa(stationID) + ".json"
}

// encodeStations marshals the station map as a JSON array ordered by id.
func encodeStations(stations map[int]*ndbc.Station) ([]byte, error) {
	list := make([]*ndbc.Station, 0, len(stations))
	for _, st := range stations {
		list = append(list, st)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stations: %w", err)
	}
	return data, nil
}
