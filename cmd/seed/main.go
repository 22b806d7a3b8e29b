// Command seed fills a local MongoDB with sample client error reports so the
// admin error views have something to show during development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	"bimillog/internal/config"
	"bimillog/internal/model"
	"bimillog/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	count := flag.Int("n", 20, "number of reports to insert")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewErrorReportRepo(client.Database(cfg.MongoDB), 30*24*time.Hour, slog.Default())
	repo.EnsureIndexes(ctx)

	now := time.Now()
	for _, report := range sampleReports(*count, now) {
		if err := repo.Save(ctx, report); err != nil {
			log.Fatalf("Failed to insert report: %v", err)
		}
	}

	fmt.Printf("Inserted %d error reports into %s\n", *count, cfg.MongoDB)
}

var samples = []struct {
	level   model.ErrorLevel
	message string
	url     string
}{
	{model.ErrorLevelError, "TypeError: Cannot read properties of undefined (reading 'x')", "/rolling-paper/alice"},
	{model.ErrorLevelError, "ChunkLoadError: Loading chunk 42 failed", "/board"},
	{model.ErrorLevelWarning, "ResizeObserver loop limit exceeded", "/rolling-paper"},
	{model.ErrorLevelInfo, "Kakao SDK initialised twice", "/login"},
}

// sampleReports spreads n reports over the last two days.
func sampleReports(n int, now time.Time) []*model.ErrorReport {
	out := make([]*model.ErrorReport, 0, n)
	for i := 0; i < n; i++ {
		s := samples[i%len(samples)]
		at := now.Add(-time.Duration(i) * 48 * time.Hour / time.Duration(max(n, 1)))
		out = append(out, &model.ErrorReport{
			ID:         uuid.NewString(),
			SessionID:  fmt.Sprintf("seed-%d", i%3),
			Message:    s.message,
			URL:        s.url,
			UserAgent:  "Mozilla/5.0 (seed)",
			Level:      s.level,
			OccurredAt: at,
			ReceivedAt: at,
		})
	}
	return out
}
