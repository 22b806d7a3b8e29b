package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"bimillog/internal/model"
	"bimillog/internal/toast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReportValidatesBeforeSending(t *testing.T) {
	f := newFixture(t)
	svc := NewMemberService(f.deps, f.sessions)
	ctx := context.Background()

	err := svc.SubmitReport(ctx, "sid-1", model.ReportRequest{ReportType: "SPAM", Content: "long enough content"})
	var ve model.ValidationError
	require.ErrorAs(t, err, &ve)

	err = svc.SubmitReport(ctx, "sid-1", model.ReportRequest{ReportType: "POST", Content: "long enough content"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "targetId", ve.Field)

	assert.Equal(t, 0, f.backend.count("POST", "/api/member/report"))
}

func TestSubmitReportSendsWireShape(t *testing.T) {
	f := newFixture(t)
	var body map[string]interface{}
	f.backend.handle("POST", "/api/member/report", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
	})

	target := int64(12)
	err := NewMemberService(f.deps, f.sessions).SubmitReport(context.Background(), "sid-1", model.ReportRequest{
		ReportType: "COMMENT", TargetID: &target, Content: "this comment is abusive",
	})
	require.NoError(t, err)
	assert.Equal(t, "COMMENT", body["reportType"])
	assert.Equal(t, float64(12), body["targetId"])
}

func TestUpdateMemberNameRefreshesSnapshot(t *testing.T) {
	f := newFixture(t)
	f.backend.handle("PATCH", "/api/member/username", func(w http.ResponseWriter, r *http.Request) {})
	f.signIn(t, "sid-1", &model.Member{MemberID: 1, MemberName: "alice"})

	require.NoError(t, NewMemberService(f.deps, f.sessions).UpdateMemberName(context.Background(), "sid-1", model.UpdateNameRequest{MemberName: "alice2"}))

	m, err := f.sessions.Manager("sid-1").Member(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice2", m.MemberName)
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminService(f.deps, f.sessions, &fakeErrorRepo{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.RequireAdmin(ctx, "nobody"), ErrNotSignedIn)

	f.signIn(t, "user", &model.Member{MemberID: 1, Role: model.RoleUser})
	assert.ErrorIs(t, svc.RequireAdmin(ctx, "user"), ErrNotAdmin)

	f.signIn(t, "admin", &model.Member{MemberID: 2, Role: model.RoleAdmin})
	assert.NoError(t, svc.RequireAdmin(ctx, "admin"))
}

func TestAdminReportsRejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	_, err := NewAdminService(f.deps, f.sessions, nil).Reports(context.Background(), model.PageRequest{}, "NOPE")
	var ve model.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestRecentErrorsWithoutRepo(t *testing.T) {
	f := newFixture(t)
	got, err := NewAdminService(f.deps, f.sessions, nil).RecentErrors(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

type recordingBroadcaster struct {
	mu           sync.Mutex
	disconnected []string
}

func (b *recordingBroadcaster) BroadcastToSession(string, string, interface{}) {}

func (b *recordingBroadcaster) DisconnectSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnected = append(b.disconnected, sessionID)
}

func TestWithdrawForgetsSessionAndClosesSockets(t *testing.T) {
	f := newFixture(t)
	f.backend.handle("DELETE", "/api/member/withdraw", func(w http.ResponseWriter, r *http.Request) {})
	f.signIn(t, "sid-1", &model.Member{MemberID: 1, MemberName: "alice", Role: model.RoleUser})

	b := &recordingBroadcaster{}
	svc := NewMemberService(f.deps, f.sessions)
	svc.SetBroadcaster(b)

	require.NoError(t, svc.Withdraw(context.Background(), "sid-1"))

	m, err := f.sessions.Manager("sid-1").Member(context.Background())
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, []string{"sid-1"}, b.disconnected)
	assert.Empty(t, f.toasts.List("sid-1"))
	assert.Equal(t, 0, f.toasts.Sessions())
}

func TestAdminErrorReportLookup(t *testing.T) {
	f := newFixture(t)
	repo := &fakeErrorRepo{}
	id := NewErrorReporter(repo, nil).Report(context.Background(), "sid-1", model.ErrorReport{Message: "boom"})
	svc := NewAdminService(f.deps, f.sessions, repo)

	got, err := svc.ErrorReport(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "boom", got.Message)

	_, err = svc.ErrorReport(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminOverview(t *testing.T) {
	f := newFixture(t)
	repo := &fakeErrorRepo{}
	NewErrorReporter(repo, nil).Report(context.Background(), "sid-1", model.ErrorReport{Message: "boom"})
	f.toasts.Push("sid-1", toast.Info, "hello")

	o := NewAdminService(f.deps, f.sessions, repo).Overview(context.Background())
	assert.Equal(t, int64(1), o.ErrorsLastDay)
	assert.Equal(t, 1, o.ToastSessions)
}
