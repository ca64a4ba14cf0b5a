package fitness

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/oauth2"
)

const basePath = "/fitness/v1/users/"

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token", TokenType: "Bearer"})
	opts = append([]Option{WithEndpoint(srv.URL + basePath)}, opts...)

	c, err := New(t.Context(), ts, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	var gotAuth, gotBody string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != basePath+"me/dataset:aggregate" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		writeBody(w, http.StatusOK, `{
			"bucket": [{
				"startTimeMillis": "1000",
				"endTimeMillis": "86401000",
				"dataset": [{
					"dataSourceId": "derived:steps",
					"point": [
						{"dataTypeName": "com.google.step_count.delta", "startTimeNanos": "1000000000", "endTimeNanos": "2000000000", "value": [{"intVal": 1200}]},
						{"dataTypeName": "com.google.step_count.delta", "startTimeNanos": "3000000000", "endTimeNanos": "4000000000", "value": [{"intVal": 34}]}
					]
				}]
			}]
		}`)
	})

	c := newTestClient(t, handler)

	end := time.UnixMilli(86_401_000)
	buckets, err := c.Aggregate(t.Context(), AggregateRequest{
		DataType: DataTypeStepCount,
		Bucket:   24 * time.Hour,
		Start:    end.Add(-24 * time.Hour),
		End:      end,
	})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	for _, want := range []string{`"dataTypeName":"com.google.step_count.delta"`, `"durationMillis":"86400000"`} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("request body %s missing %s", gotBody, want)
		}
	}

	if len(buckets) != 1 || len(buckets[0].Datasets) != 1 {
		t.Fatalf("Aggregate() = %+v, want one bucket with one dataset", buckets)
	}

	var got []int64
	for _, p := range buckets[0].Datasets[0].Points {
		v, ok := p.Value(FieldSteps)
		if !ok {
			t.Fatalf("point %+v has no steps field", p)
		}
		got = append(got, v.Int)
	}
	if diff := cmp.Diff([]int64{1200, 34}, got); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFollowsPageTokens(t *testing.T) {
	t.Parallel()

	var pages atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == basePath+"me/dataSources":
			if got := r.URL.Query().Get("dataTypeName"); got != DataTypeHeight {
				t.Errorf("dataTypeName = %q, want %q", got, DataTypeHeight)
			}
			writeBody(w, http.StatusOK, `{"dataSource": [{
				"dataStreamId": "height-source",
				"dataType": {"name": "com.google.height", "field": [{"name": "height", "format": "floatPoint"}]}
			}]}`)
		case strings.HasPrefix(r.URL.Path, basePath+"me/dataSources/height-source/datasets/"):
			pages.Add(1)
			if r.URL.Query().Get("pageToken") == "" {
				writeBody(w, http.StatusOK, `{
					"dataSourceId": "height-source",
					"nextPageToken": "page-2",
					"point": [{"startTimeNanos": "5000000000", "endTimeNanos": "5000000000", "value": [{"fpVal": 1.75}]}]
				}`)
				return
			}
			writeBody(w, http.StatusOK, `{
				"dataSourceId": "height-source",
				"point": [{"startTimeNanos": "6000000000", "endTimeNanos": "6000000000", "value": [{"fpVal": 1.8}]}]
			}`)
		default:
			http.NotFound(w, r)
		}
	})

	c := newTestClient(t, handler, WithPageSize(1))

	datasets, err := c.Read(t.Context(), ReadRequest{
		DataType: DataTypeHeight,
		Start:    time.Unix(0, 0),
		End:      time.Unix(10, 0),
	})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got := pages.Load(); got != 2 {
		t.Errorf("dataset pages fetched = %d, want 2", got)
	}

	if len(datasets) != 1 {
		t.Fatalf("Read() returned %d datasets, want 1", len(datasets))
	}

	ds := datasets[0]
	if ds.DataType != DataTypeHeight {
		t.Errorf("DataType = %q, want %q", ds.DataType, DataTypeHeight)
	}

	var got []string
	for _, p := range ds.Points {
		got = append(got, p.Values[0].String()+"@"+p.Start.UTC().Format(time.RFC3339))
	}
	want := []string{"1.75@1970-01-01T00:00:05Z", "1.8@1970-01-01T00:00:06Z"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestReadReturnsVendorMessage(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusForbidden, `{"error": {"code": 403, "message": "Request had insufficient authentication scopes."}}`)
	})

	c := newTestClient(t, handler)

	_, err := c.Read(t.Context(), ReadRequest{DataType: DataTypeSleepSegment, End: time.Now()})
	if err == nil {
		t.Fatal("Read() error = nil, want error")
	}

	if got, want := Message(err), "Request had insufficient authentication scopes."; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
	if got := StatusCode(err); got != http.StatusForbidden {
		t.Errorf("StatusCode() = %d, want %d", got, http.StatusForbidden)
	}
}

func TestReadSourceSelection(t *testing.T) {
	t.Parallel()

	const (
		trackerSource = "raw:com.google.sleep.segment:com.example.tracker:"
		watchSource   = "raw:com.google.sleep.segment:com.example.watch:"
		mergedSource  = "derived:com.google.sleep.segment:com.google.android.gms:merged"
	)

	tests := []struct {
		name        string
		sources     []string
		wantSources []string
	}{
		{
			name:        "merged stream only",
			sources:     []string{trackerSource, mergedSource, watchSource},
			wantSources: []string{mergedSource},
		},
		{
			name:        "every raw source without a merged stream",
			sources:     []string{trackerSource, watchSource},
			wantSources: []string{trackerSource, watchSource},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				mu   sync.Mutex
				read []string
			)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == basePath+"me/dataSources" {
					var list []string
					for _, id := range tt.sources {
						list = append(list, `{"dataStreamId": "`+id+`", "dataType": {"name": "com.google.sleep.segment", "field": [{"name": "sleep_segment_type", "format": "integer"}]}}`)
					}
					writeBody(w, http.StatusOK, `{"dataSource": [`+strings.Join(list, ",")+`]}`)
					return
				}

				rest, ok := strings.CutPrefix(r.URL.Path, basePath+"me/dataSources/")
				if !ok {
					http.NotFound(w, r)
					return
				}
				id, _, _ := strings.Cut(rest, "/datasets/")
				mu.Lock()
				read = append(read, id)
				mu.Unlock()

				// every source holds the same physical segment
				writeBody(w, http.StatusOK, `{
					"dataSourceId": "`+id+`",
					"point": [{"dataTypeName": "com.google.sleep.segment", "startTimeNanos": "1000000000", "endTimeNanos": "2000000000", "value": [{"intVal": 5}]}]
				}`)
			})

			c := newTestClient(t, handler)

			datasets, err := c.Read(t.Context(), ReadRequest{
				DataType: DataTypeSleepSegment,
				Start:    time.Unix(0, 0),
				End:      time.Unix(10, 0),
			})
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}

			var gotSources []string
			points := 0
			for _, ds := range datasets {
				gotSources = append(gotSources, ds.DataSourceID)
				points += len(ds.Points)
			}
			if diff := cmp.Diff(tt.wantSources, gotSources); diff != "" {
				t.Errorf("dataset sources mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantSources, read); diff != "" {
				t.Errorf("sources read mismatch (-want +got):\n%s", diff)
			}
			if points != len(tt.wantSources) {
				t.Errorf("points = %d, want %d", points, len(tt.wantSources))
			}
		})
	}
}
