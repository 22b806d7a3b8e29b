package repository

import (
	"context"
	"log/slog"
	"time"

	"bimillog/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrorReportRepo handles MongoDB operations for client error reports
type ErrorReportRepo interface {
	EnsureIndexes(ctx context.Context)
	Save(ctx context.Context, report *model.ErrorReport) error
	Get(ctx context.Context, id string) (*model.ErrorReport, error)
	ListRecent(ctx context.Context, level model.ErrorLevel, limit int) ([]*model.ErrorReport, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type errorReportRepo struct {
	reports   *mongo.Collection
	retention time.Duration
	log       *slog.Logger
}

// NewErrorReportRepo creates a repository over the error_reports collection.
// Reports older than retention are expired by a TTL index.
func NewErrorReportRepo(db *mongo.Database, retention time.Duration, logger *slog.Logger) ErrorReportRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &errorReportRepo{
		reports:   db.Collection("error_reports"),
		retention: retention,
		log:       logger.With("component", "error_report_repo"),
	}
}

func (r *errorReportRepo) EnsureIndexes(ctx context.Context) {
	r.createIndex(ctx, bson.D{{Key: "sessionId", Value: 1}}, options.Index())
	r.createIndex(ctx, bson.D{{Key: "level", Value: 1}, {Key: "receivedAt", Value: -1}}, options.Index())
	if r.retention > 0 {
		r.createIndex(ctx, bson.D{{Key: "receivedAt", Value: 1}},
			options.Index().SetExpireAfterSeconds(int32(r.retention.Seconds())))
	}
	r.log.Info("error report indexes ensured")
}

func (r *errorReportRepo) createIndex(ctx context.Context, keys bson.D, opts *options.IndexOptions) {
	_, err := r.reports.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	if err != nil {
		r.log.Warn("failed to create index", "collection", r.reports.Name(), "error", err)
	}
}

func (r *errorReportRepo) Save(ctx context.Context, report *model.ErrorReport) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.reports.ReplaceOne(ctx, bson.M{"_id": report.ID}, report, opts)
	return err
}

func (r *errorReportRepo) Get(ctx context.Context, id string) (*model.ErrorReport, error) {
	var report model.ErrorReport
	err := r.reports.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListRecent returns the newest reports first. An empty level matches all.
func (r *errorReportRepo) ListRecent(ctx context.Context, level model.ErrorLevel, limit int) ([]*model.ErrorReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "receivedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	filter := bson.M{}
	if level != "" {
		filter["level"] = level
	}
	cursor, err := r.reports.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []*model.ErrorReport{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *errorReportRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return r.reports.CountDocuments(ctx, bson.M{"receivedAt": bson.M{"$gte": since}})
}
