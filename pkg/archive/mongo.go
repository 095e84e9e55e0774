package archive

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swellwatch/buoy/pkg/ndbc"
)

// MongoStore persists stations and reports in MongoDB.
//
// Stations live in the "stations" collection, keyed by station id, and
// are replaced on every save. Reports live in the "reports" collection,
// keyed by station id and observation timestamp, so re-saving the same
// observation is idempotent.
type MongoStore struct {
	client   *mongo.Client
	stations *mongo.Collection
	reports  *mongo.Collection
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	// URI is the MongoDB connection string (e.g. "mongodb://localhost:27017").
	URI string

	// Database is the database name. Defaults to "buoy".
	Database string
}

// stationDoc wraps station metadata for storage.
type stationDoc struct {
	ID      int           `bson:"_id"`
	Station *ndbc.Station `bson:"station"`
}

// reportDoc wraps one observation for storage. The _id combines station
// id and timestamp so duplicate saves replace rather than accumulate.
type reportDoc struct {
	ID        string       `bson:"_id"`
	StationID int          `bson:"station_id"`
	Timestamp int64        `bson:"timestamp"`
	Report    *ndbc.Report `bson:"report"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "buoy"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &MongoStore{
		client:   client,
		stations: db.Collection("stations"),
		reports:  db.Collection("reports"),
	}

	// Reports are queried per station, ordered by time.
	_, err = s.reports.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "station_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create report index: %w", err)
	}

	return s, nil
}

// SaveStation stores station metadata, replacing any previous version.
func (s *MongoStore) SaveStation(ctx context.Context, st *ndbc.Station) error {
	doc := stationDoc{ID: st.ID, Station: st}
	_, err := s.stations.ReplaceOne(ctx,
		bson.M{"_id": st.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save station %d: %w", st.ID, err)
	}
	return nil
}

// SaveStations stores a batch of station metadata.
func (s *MongoStore) SaveStations(ctx context.Context, stations map[int]*ndbc.Station) error {
	for _, st := range stations {
		if err := s.SaveStation(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Station retrieves archived metadata for one station.
func (s *MongoStore) Station(ctx context.Context, id int) (*ndbc.Station, error) {
	var doc stationDoc
	err := s.stations.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("station %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load station %d: %w", id, err)
	}
	return doc.Station, nil
}

// Stations retrieves all archived station metadata, ordered by id.
func (s *MongoStore) Stations(ctx context.Context) ([]*ndbc.Station, error) {
	cur, err := s.stations.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	defer cur.Close(ctx)

	var stations []*ndbc.Station
	for cur.Next(ctx) {
		var doc stationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode station: %w", err)
		}
		stations = append(stations, doc.Station)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	return stations, nil
}

// SaveReport appends an observation to the station's history.
func (s *MongoStore) SaveReport(ctx context.Context, r *ndbc.Report) error {
	ts := r.Timestamp.Unix()
	doc := reportDoc{
		ID:        strconv.Itoa(r.StationID) + "-" + strconv.FormatInt(ts, 10),
		StationID: r.StationID,
		Timestamp: ts,
		Report:    r,
	}
	_, err := s.reports.ReplaceOne(ctx,
		bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save report for station %d: %w", r.StationID, err)
	}
	return nil
}

// Reports retrieves the archived observation history for one station,
// ordered by timestamp ascending.
func (s *MongoStore) Reports(ctx context.Context, stationID int) ([]*ndbc.Report, error) {
	cur, err := s.reports.Find(ctx, bson.M{"station_id": stationID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports for station %d: %w", stationID, err)
	}
	defer cur.Close(ctx)

	var reports []*ndbc.Report
	for cur.Next(ctx) {
		var doc reportDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}
		reports = append(reports, doc.Report)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reports for station %d: %w", stationID, err)
	}
	return reports, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Verify interface compliance.
var _ Store = (*MongoStore)(nil)
