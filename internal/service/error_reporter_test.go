package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"bimillog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeErrorRepo struct {
	saved []*model.ErrorReport
	err   error
}

func (r *fakeErrorRepo) EnsureIndexes(context.Context) {}

func (r *fakeErrorRepo) Save(_ context.Context, report *model.ErrorReport) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, report)
	return nil
}

func (r *fakeErrorRepo) Get(_ context.Context, id string) (*model.ErrorReport, error) {
	for _, rep := range r.saved {
		if rep.ID == id {
			return rep, nil
		}
	}
	return nil, nil
}

func (r *fakeErrorRepo) ListRecent(_ context.Context, level model.ErrorLevel, limit int) ([]*model.ErrorReport, error) {
	var out []*model.ErrorReport
	for i := len(r.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if level == "" || r.saved[i].Level == level {
			out = append(out, r.saved[i])
		}
	}
	return out, nil
}

func (r *fakeErrorRepo) CountSince(context.Context, time.Time) (int64, error) {
	return int64(len(r.saved)), nil
}

func TestErrorReporterPersists(t *testing.T) {
	repo := &fakeErrorRepo{}
	r := NewErrorReporter(repo, nil)

	id := r.Report(context.Background(), "sid-1", model.ErrorReport{Message: "  boom  ", Level: "fatal"})
	require.NotEmpty(t, id)
	require.Len(t, repo.saved, 1)

	saved := repo.saved[0]
	assert.Equal(t, id, saved.ID)
	assert.Equal(t, "sid-1", saved.SessionID)
	assert.Equal(t, "boom", saved.Message)
	assert.Equal(t, model.ErrorLevelError, saved.Level)
	assert.False(t, saved.ReceivedAt.IsZero())
	assert.Equal(t, saved.ReceivedAt, saved.OccurredAt)
}

func TestErrorReporterSwallowsPersistenceFailures(t *testing.T) {
	r := NewErrorReporter(&fakeErrorRepo{err: errors.New("mongo down")}, nil)
	assert.NotEmpty(t, r.Report(context.Background(), "sid-1", model.ErrorReport{Message: "x"}))

	assert.NotEmpty(t, NewErrorReporter(nil, nil).Report(context.Background(), "", model.ErrorReport{}))
}

func TestErrorReporterOutlivesCancelledRequest(t *testing.T) {
	repo := &fakeErrorRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewErrorReporter(repo, nil).Report(ctx, "sid-1", model.ErrorReport{Message: "late"})
	assert.Len(t, repo.saved, 1)
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	s := strings.Repeat("한", 10)
	got := truncate(s, 7)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("한", 2), got)
	assert.Equal(t, "abc", truncate("abc", 10))
}
