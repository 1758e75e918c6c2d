package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signatureJSON = `{
  "id": 1,
  "signature_type": "K162",
  "in_system_name": "J100000",
  "completed": "true",
  "updated_at": "2024-01-01T00:00:00Z",
  "out_system_id": 31000005,
  "out_system_name": "Thera",
  "out_signature": "ABC-123",
  "in_system_id": 30000142,
  "in_signature": "XYZ-789",
  "expires_at": "2024-01-02T00:00:00Z",
  "created_at": "2023-12-31T00:00:00Z",
  "created_by_id": 99,
  "created_by_name": "Pilot",
  "junk": "drop me"
}`

func noEnv(string) string { return "" }

func runCLI(t *testing.T, stdin string, getenv func(string) string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, getenv)

	return stdout.String(), stderr.String(), err
}

func TestRun_Usage(t *testing.T) {
	_, stderr, err := runCLI(t, "", noEnv)
	require.EqualError(t, err, "missing command")
	assert.Contains(t, stderr, "Usage:")

	stdout, _, err := runCLI(t, "", noEnv, "help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "transform")

	_, _, err = runCLI(t, "", noEnv, "frobnicate")
	assert.EqualError(t, err, "unknown command: frobnicate")
}

func TestTransform_Stdin(t *testing.T) {
	stdout, _, err := runCLI(t, signatureJSON, noEnv, "transform", "-table", "connection", "-compact")
	require.NoError(t, err)

	assert.Equal(t, `{"id":1,"type":"K162","name":"J100000",`+
		`"target":{"name":"J100000","id":30000142},`+
		`"state":{"name":"true","updated":"2024-01-01T00:00:00Z"},`+
		`"updated":"2024-01-01T00:00:00Z",`+
		`"source":{"id":31000005,"name":"Thera"},`+
		`"sourceSignature":{"name":"ABC-123"},`+
		`"targetSignature":{"name":"XYZ-789"},`+
		`"wormhole":{"estimatedEol":"2024-01-02T00:00:00Z"},`+
		`"created":"2023-12-31T00:00:00Z",`+
		`"character":{"id":99,"name":"Pilot"}}`+"\n", stdout)
}

func TestTransform_YAMLFileWithTablesDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sig.yaml")
	require.NoError(t, os.WriteFile(input, []byte(`
- id: "7"
  wh_type: Q063
  remaining_hours: 2
  expires_at: 2024-01-02 00:00:00
  in_region_id: 10000002
  junk: 1
`), 0o644))

	stdout, _, err := runCLI(t, "", noEnv, "transform", "-table", "signature", "-tables", "../../tables", "-pretty", input)
	require.NoError(t, err)

	assert.JSONEq(t, `[{
		"id": 7,
		"wormhole": {"type": "Q063"},
		"remaining_hours": "critical",
		"expires_at": "2024-01-02T00:00:00Z",
		"region": {"id": 10000002}
	}]`, stdout)
	assert.Contains(t, stdout, "\n  {")
}

func TestTransform_YAMLOutput(t *testing.T) {
	stdout, _, err := runCLI(t, `{"id":1,"signature_type":"K162","junk":true}`, noEnv, "transform", "-table", "connection", "-output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "id: 1\ntype: K162\n", stdout)

	_, _, err = runCLI(t, `{}`, noEnv, "transform", "-table", "connection", "-output", "xml")
	assert.EqualError(t, err, `transform: unknown output format "xml"`)
}

func TestTransform_Errors(t *testing.T) {
	_, _, err := runCLI(t, "{}", noEnv, "transform")
	assert.EqualError(t, err, "transform: -table is required")

	_, _, err = runCLI(t, "{}", noEnv, "transform", "-table", "conection")
	assert.EqualError(t, err, `no mapping table for "conection" (did you mean connection?)`)

	_, _, err = runCLI(t, "{", noEnv, "transform", "-table", "connection")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode JSON")

	_, _, err = runCLI(t, "{}", noEnv, "transform", "-table", "connection", "-nope")
	assert.Error(t, err)

	_, _, err = runCLI(t, "{}", func(k string) string {
		if k == "RESPONSE_MAPPER_LOG_LEVEL" {
			return "loud"
		}
		return ""
	}, "transform", "-table", "connection")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestCheck(t *testing.T) {
	stdout, _, err := runCLI(t, "", noEnv, "check", "../../tables")
	require.NoError(t, err)
	assert.Contains(t, stdout, "signature.yaml: ok (1 tables)")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
tables:
  - name: broken
    map:
      created_at: !format timestmap
      in_region_id: {target: {region: id}}
`), 0o644))

	stdout, _, err = runCLI(t, "", noEnv, "check", bad)
	require.EqualError(t, err, "check: 1 of 1 files failed")
	assert.Contains(t, stdout, "[unknown_formatter]")
	assert.Contains(t, stdout, "did you mean timestamp?")
	assert.Contains(t, stdout, "[nest_too_deep]")

	_, _, err = runCLI(t, "", noEnv, "check")
	assert.EqualError(t, err, "check: no table files given")
}

func TestThera_Input(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "signatures.json")
	require.NoError(t, os.WriteFile(input, []byte("["+signatureJSON+"]"), 0o644))

	stdout, _, err := runCLI(t, "", noEnv, "thera", "-input", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, `{"connections":{"1":{"id":1,"type":"K162"`)
	assert.Contains(t, stdout, `"eol":"unknown"`)
	assert.Contains(t, stdout, `"region":{"id":0,"name":""}`)
}

func TestThera_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/public/signatures", r.URL.Path)
		_, _ = w.Write([]byte(`{"error": "maintenance"}`))
	}))
	defer srv.Close()

	getenv := func(k string) string {
		if k == "EVESCOUT_BASE_URL" {
			return srv.URL + "/v2/public"
		}
		return ""
	}

	stdout, _, err := runCLI(t, "", getenv, "thera")
	require.NoError(t, err)
	assert.Equal(t, `{"error":"maintenance"}`+"\n", stdout)
}
