package evescout

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"response-mapper/internal/logging"
	"response-mapper/internal/mapping"
	"response-mapper/internal/node"
)

const signaturesJSON = `[
  {
    "id": "1234",
    "created_at": "2023-12-31T00:00:00Z",
    "created_by_id": 99,
    "created_by_name": "Pilot",
    "updated_at": "2024-01-01T00:00:00Z",
    "updated_by_id": 98,
    "completed": true,
    "wh_exits_outward": true,
    "wh_type": "Q063",
    "max_ship_size": "medium",
    "expires_at": "2024-01-02T00:00:00Z",
    "remaining_hours": 3,
    "signature_type": "wormhole",
    "out_system_id": 31000005,
    "out_system_name": "Thera",
    "out_signature": "ABC-123",
    "in_system_id": 30000142,
    "in_system_class": "hs",
    "in_system_name": "Jita",
    "in_region_id": 10000002,
    "in_region_name": "The Forge",
    "in_signature": "XYZ-789"
  },
  {
    "id": "1235",
    "wh_exits_outward": false,
    "wh_type": "K162",
    "remaining_hours": 12,
    "in_system_name": "Amarr",
    "in_region_id": 10000043,
    "in_region_name": "Domain"
  },
  {"no_id": true},
  "garbage"
]`

func decode(t *testing.T, s string) any {
	t.Helper()

	v, err := node.DecodeJSON([]byte(s))
	require.NoError(t, err)

	return v
}

func toGo(t *testing.T, s string) any {
	t.Helper()
	return node.ToGo(decode(t, s))
}

func TestConnectionTable(t *testing.T) {
	assert.Equal(t, ConnectionTableName, ConnectionTable.Name())
	assert.True(t, ConnectionTable.PruneUnmapped())
	assert.Empty(t, ConnectionTable.Warnings())

	name, _ := ConnectionTable.Targets("in_system_name")
	assert.Equal(t, "rename(name)", name[0].String())
	assert.Equal(t, "nest(target.name)", name[1].String())

	_, err := Tables().Lookup("connection")
	assert.NoError(t, err)
}

func TestBuilder_Build(t *testing.T) {
	var buf bytes.Buffer

	b := Builder{Log: logging.New(logging.LevelWarn, &buf, logging.WithoutTimestamp())}

	got, err := b.Build(decode(t, signaturesJSON))
	require.NoError(t, err)

	want := toGo(t, `{"connections": {
	  "1234": {
	    "id": "1234",
	    "type": "wormhole",
	    "name": "Jita",
	    "target": {"name": "Jita", "id": 30000142, "region": {"id": 10000002, "name": "The Forge"}},
	    "state": {"name": true, "updated": "2024-01-01T00:00:00Z"},
	    "updated": "2024-01-01T00:00:00Z",
	    "wormhole": {"estimatedEol": "2024-01-02T00:00:00Z"},
	    "created": "2023-12-31T00:00:00Z",
	    "character": {"id": 99, "name": "Pilot"},
	    "source": {"id": 31000005, "name": "Thera"},
	    "sourceSignature": {"name": "ABC-123", "type": "Q063"},
	    "targetSignature": {"name": "XYZ-789"},
	    "eol": "critical"
	  },
	  "1235": {
	    "id": "1235",
	    "name": "Amarr",
	    "target": {"name": "Amarr", "region": {"id": 10000043, "name": "Domain"}},
	    "eol": "fresh",
	    "targetSignature": {"type": "K162"}
	  }
	}}`)

	// Region IDs are built as int64, decoded JSON numbers as json.Number.
	gotGo := node.ToGo(got)
	if diff := cmp.Diff(numbers(want), numbers(gotGo)); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}

	conns, _ := got.Get("connections")
	assert.Equal(t, []string{"1234", "1235"}, conns.(*node.Record).Keys())

	logs := buf.String()
	assert.Contains(t, logs, "skipping signature 2: missing id")
	assert.Contains(t, logs, "skipping signature 3: String is not a record")
}

// numbers converts every integral number to int64 so decoded and built
// values compare equal.
func numbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = numbers(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = numbers(e)
		}
		return out
	default:
		if i, ok := node.Int(v); ok && node.KindOf(v) == node.KindNumber {
			return i
		}
		return v
	}
}

func TestBuilder_ErrorPayload(t *testing.T) {
	got, err := Builder{}.Build(decode(t, `{"error": "rate limited", "junk": 1}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "rate limited"}, node.ToGo(got))

	_, err = Builder{}.Build(decode(t, `{"connections": []}`))
	assert.EqualError(t, err, "unexpected signatures payload: Record")
}

func TestBuilder_EmptyList(t *testing.T) {
	got, err := Builder{}.Build([]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"connections": map[string]any{}}, node.ToGo(got))
}

func TestBuilder_EOLWithoutRemainingHours(t *testing.T) {
	got, err := Builder{}.Build(decode(t, `[
		{"id": 1},
		{"id": 2, "remaining_hours": null},
		{"id": 3, "remaining_hours": "soon"},
		{"id": 4, "remaining_hours": "16"}
	]`))
	require.NoError(t, err)

	conns, _ := got.Get("connections")

	for id, want := range map[string]string{"1": "critical", "2": "critical", "3": "critical", "4": "fresh"} {
		conn, ok := conns.(*node.Record).Get(id)
		require.True(t, ok, id)

		eol, _ := conn.(*node.Record).Get("eol")
		assert.Equal(t, want, eol, id)
	}
}

func TestBuilder_CustomTable(t *testing.T) {
	table := mapping.MustTable("connection", []mapping.Entry{
		mapping.Field("in_system_name", mapping.Rename("system")),
	})

	got, err := Builder{Table: table}.Build(decode(t, `[{"id": 7, "in_system_name": "Jita", "remaining_hours": 20}]`))
	require.NoError(t, err)

	conns, _ := got.Get("connections")
	conn, _ := conns.(*node.Record).Get("7")
	assert.Equal(t, []string{"system", "eol", "targetSignature", "target"}, conn.(*node.Record).Keys())
}

func TestSetPath(t *testing.T) {
	rec := node.RecordOf("target", "scalar")
	setPath(rec, 1, "target", "region", "id")
	setPath(rec, "x", "top")
	assert.Equal(t, map[string]any{
		"target": map[string]any{"region": map[string]any{"id": 1}},
		"top":    "x",
	}, node.ToGo(rec))
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithBackoff(time.Millisecond)}, opts...)

	c, err := New(srv.URL+"/v2/public/", opts...)
	require.NoError(t, err)

	return c
}

func TestClient_TheraConnections(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/public/signatures", r.URL.Path)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(signaturesJSON))
	}, WithUserAgent("test-agent"))

	got, err := c.TheraConnections(context.Background())
	require.NoError(t, err)

	conns, ok := got.Get("connections")
	require.True(t, ok)
	assert.Equal(t, 2, conns.(*node.Record).Len())
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32

	var buf bytes.Buffer

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}

		_, _ = w.Write([]byte(`[]`))
	}, WithLogger(logging.New(logging.LevelWarn, &buf, logging.WithoutTimestamp())))

	body, err := c.Signatures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{}, body)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 2, strings.Count(buf.String(), "[WARN] retrying GET"))
}

func TestClient_GivesUp(t *testing.T) {
	var calls atomic.Int32

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}, WithRetries(1))

	_, err := c.Signatures(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Contains(t, err.Error(), "giving up after 2 attempts")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "down", se.Body)
	assert.True(t, IsTransient(err))
}

func TestClient_ClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		want    any
	}{
		{
			name:   "error payload",
			status: http.StatusBadRequest,
			body:   `{"error": "bad request"}`,
			want:   map[string]any{"error": "bad request"},
		},
		{
			name:    "plain not found",
			status:  http.StatusNotFound,
			body:    "nope",
			wantErr: "unexpected status 404 Not Found: nope",
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    "[1,",
			wantErr: "failed to decode JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32

			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := c.TheraConnections(context.Background())
			assert.Equal(t, int32(1), calls.Load())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.False(t, IsTransient(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, node.ToGo(got))
		})
	}
}

func TestClient_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		cancel()
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}, WithBackoff(time.Hour))

	_, err := c.Signatures(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
	assert.Equal(t, DefaultRetries, c.retries)

	c, err = New("https://example.com/api/", WithTimeout(time.Second), WithRetries(0))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api", c.baseURL)
	assert.Equal(t, time.Second, c.http.Timeout)
	assert.Equal(t, 0, c.retries)

	hc := &http.Client{}
	c, err = New("http://localhost", WithHTTPClient(hc), WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Same(t, hc, c.http)

	for _, bad := range []string{"ftp://example.com", "example.com", "http://", "://x"} {
		_, err := New(bad)
		assert.Error(t, err, bad)
	}
}
