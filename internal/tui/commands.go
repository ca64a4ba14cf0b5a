package tui

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/sleepdoctor/sleepdoc/internal/bridge"
	"github.com/sleepdoctor/sleepdoc/internal/health"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

var errNotImplemented = errors.New("method not implemented")

func checkPermissionsCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		granted, err := deps.Permissions.HasPermissions(deps.Ctx, deps.Scopes)
		return PermissionStatusMsg{Granted: granted, Err: err}
	}
}

func fetchSleepCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		records, err := invoke(deps, bridge.MethodGetSleepData)
		if err != nil {
			return SleepDataMsg{Err: err}
		}
		segments := make([]health.SleepSegment, 0, len(records))
		for _, r := range records {
			segments = append(segments, health.SleepSegment{
				Type:      stringField(r, "type"),
				StartTime: intField(r, "startTime"),
				EndTime:   intField(r, "endTime"),
			})
		}
		return SleepDataMsg{Segments: segments}
	}
}

func fetchBodyCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		records, err := invoke(deps, bridge.MethodGetBodyData)
		if err != nil {
			return BodyDataMsg{Err: err}
		}
		measurements := make([]health.Measurement, 0, len(records))
		for _, r := range records {
			measurements = append(measurements, health.Measurement{
				Type:      stringField(r, "type"),
				Value:     stringField(r, "value"),
				Timestamp: intField(r, "timestamp"),
			})
		}
		return BodyDataMsg{Measurements: measurements}
	}
}

func invoke(deps Deps, method string) ([]map[string]any, error) {
	result := &bridge.Recorder{}
	deps.Channel.Invoke(deps.Ctx, bridge.Call{Method: method}, result)

	reply, _ := result.Reply()
	switch reply.Outcome {
	case bridge.OutcomeError:
		err := fmt.Errorf("%s: %s", reply.Code, reply.Message)
		deps.Logger.WarnContext(deps.Ctx, "bridge call failed", xslog.Method(method), xslog.Code(reply.Code))
		return nil, err
	case bridge.OutcomeNotImplemented:
		return nil, fmt.Errorf("%s: %w", method, errNotImplemented)
	}

	return records(reply.Value)
}

// records accepts both in-process payloads and payloads decoded from JSON.
func records(value any) ([]map[string]any, error) {
	switch v := value.(type) {
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("unexpected record %T", item)
			}
			out = append(out, m)
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected payload %T", value)
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
