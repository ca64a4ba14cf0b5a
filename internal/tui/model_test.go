package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/sleepdoctor/sleepdoc/internal/bridge"
	"github.com/sleepdoctor/sleepdoc/internal/health"
)

type fakeChannel struct {
	replies map[string]bridge.Reply
	calls   []string
}

func (f *fakeChannel) Invoke(_ context.Context, call bridge.Call, result bridge.Result) {
	f.calls = append(f.calls, call.Method)
	reply, ok := f.replies[call.Method]
	switch {
	case !ok:
		result.NotImplemented()
	case reply.Outcome == bridge.OutcomeError:
		result.Error(reply.Code, reply.Message, reply.Details)
	default:
		result.Success(reply.Value)
	}
}

type fakePermissions struct {
	granted bool
}

func (f fakePermissions) HasPermissions(context.Context, []string) (bool, error) {
	return f.granted, nil
}

func newTestModel(ch *fakeChannel) Model {
	return New(Deps{
		Ctx:         context.Background(),
		Logger:      discardLogger(),
		Channel:     ch,
		Permissions: fakePermissions{granted: true},
	})
}

func TestFetchCommandsDecodeBridgePayloads(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{replies: map[string]bridge.Reply{
		bridge.MethodGetSleepData: {Outcome: bridge.OutcomeSuccess, Value: []map[string]any{
			{"type": "Deep sleep", "startTime": int64(1000), "endTime": int64(2000)},
		}},
		// decoded from JSON, numbers arrive as float64
		bridge.MethodGetBodyData: {Outcome: bridge.OutcomeSuccess, Value: []any{
			map[string]any{"type": "weight", "value": "70.0", "timestamp": float64(1700000000)},
		}},
	}}
	m := newTestModel(ch)

	sleepMsg, ok := fetchSleepCmd(m.deps)().(SleepDataMsg)
	if !ok || sleepMsg.Err != nil {
		t.Fatalf("fetchSleepCmd() = %+v", sleepMsg)
	}
	if diff := cmp.Diff([]health.SleepSegment{{Type: "Deep sleep", StartTime: 1000, EndTime: 2000}}, sleepMsg.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}

	bodyMsg, ok := fetchBodyCmd(m.deps)().(BodyDataMsg)
	if !ok || bodyMsg.Err != nil {
		t.Fatalf("fetchBodyCmd() = %+v", bodyMsg)
	}
	if diff := cmp.Diff([]health.Measurement{{Type: "weight", Value: "70.0", Timestamp: 1700000000}}, bodyMsg.Measurements); diff != "" {
		t.Errorf("measurements mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchCommandsSurfaceBridgeErrors(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{replies: map[string]bridge.Reply{
		bridge.MethodGetSleepData: {Outcome: bridge.OutcomeError, Code: bridge.CodePermissionDenied, Message: bridge.MessagePermissionDenied},
	}}
	m := newTestModel(ch)

	msg := fetchSleepCmd(m.deps)().(SleepDataMsg)
	if msg.Err == nil || !strings.Contains(msg.Err.Error(), "PERMISSION_DENIED") {
		t.Errorf("fetchSleepCmd() error = %v, want PERMISSION_DENIED", msg.Err)
	}

	body := fetchBodyCmd(m.deps)().(BodyDataMsg)
	if !errors.Is(body.Err, errNotImplemented) {
		t.Errorf("fetchBodyCmd() error = %v, want errNotImplemented", body.Err)
	}
}

func TestUpdateSequencesReads(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{replies: map[string]bridge.Reply{
		bridge.MethodGetBodyData: {Outcome: bridge.OutcomeSuccess, Value: []map[string]any{}},
	}}
	m := newTestModel(ch)
	m.dashboard.Loading = true

	_, cmd := m.Update(SleepDataMsg{Segments: []health.SleepSegment{{Type: "REM sleep", StartTime: 0, EndTime: 60_000}}})
	if cmd == nil {
		t.Fatal("Update(SleepDataMsg) returned no command, want the body read")
	}
	if _, ok := cmd().(BodyDataMsg); !ok {
		t.Error("command after SleepDataMsg does not read body data")
	}

	m.Update(BodyDataMsg{Measurements: []health.Measurement{{Type: "height", Value: "1.75", Timestamp: 1}}})
	if m.dashboard.Loading {
		t.Error("still loading after body data arrived")
	}

	m.Update(SplashTickMsg{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.DashboardView()
	for _, want := range []string{"Last night", "REM", "1.75 m"} {
		if !strings.Contains(view, want) {
			t.Errorf("DashboardView() missing %q", want)
		}
	}
}

func TestRecent(t *testing.T) {
	t.Parallel()

	ms := []health.Measurement{
		{Type: "weight", Value: "71.0", Timestamp: 3},
		{Type: "height", Value: "1.75", Timestamp: 2},
		{Type: "weight", Value: "70.0", Timestamp: 1},
		{Type: "weight", Value: "72.0", Timestamp: 5},
	}

	got := recent(ms, "weight", 2)
	want := []health.Measurement{
		{Type: "weight", Value: "71.0", Timestamp: 3},
		{Type: "weight", Value: "72.0", Timestamp: 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("recent() mismatch (-want +got):\n%s", diff)
	}

	latest := latestByType(ms)
	if latest["weight"].Value != "72.0" || latest["height"].Value != "1.75" {
		t.Errorf("latestByType() = %+v", latest)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
