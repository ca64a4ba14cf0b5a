package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/sleepdoctor/sleepdoc/internal/version"
	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func RequestIP(r *http.Request) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

// Channel is the bridge channel a call arrived on.
func Channel(name string) slog.Attr {
	const channelKey = "channel"
	return slog.String(channelKey, name)
}

// Method is the bridge method name of a call.
func Method(name string) slog.Attr {
	const methodKey = "bridge_method"
	return slog.String(methodKey, name)
}

func CallID(id string) slog.Attr {
	const callIDKey = "call_id"
	return slog.String(callIDKey, id)
}

// Code is a bridge error code such as PERMISSION_DENIED.
func Code(code string) slog.Attr {
	const codeKey = "code"
	return slog.String(codeKey, code)
}

func DataType(name string) slog.Attr {
	const dataTypeKey = "data_type"
	return slog.String(dataTypeKey, name)
}

func DataSource(id string) slog.Attr {
	const dataSourceKey = "data_source"
	return slog.String(dataSourceKey, id)
}

func Label(label string) slog.Attr {
	const labelKey = "label"
	return slog.String(labelKey, label)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Start(t time.Time) slog.Attr {
	const startKey = "start"
	return slog.Time(startKey, t)
}

func End(t time.Time) slog.Attr {
	const endKey = "end"
	return slog.Time(endKey, t)
}

func Scopes(scopes []string) slog.Attr {
	const scopesKey = "scopes"
	return slog.Any(scopesKey, scopes)
}

func RunID(id string) slog.Attr {
	const runIDKey = "run_id"
	return slog.String(runIDKey, id)
}
