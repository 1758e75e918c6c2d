package formatters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"response-mapper/internal/mapper"
	"response-mapper/internal/mapping"
	"response-mapper/internal/node"
)

func TestDefault(t *testing.T) {
	reg := Default()
	assert.Equal(t, []string{
		NameBool, NameCamelCaseKeys, NameDate, NameEOL, NameInt, NameString, NameTimestamp, NameUnix,
	}, reg.Names())

	// Registering twice collides with the existing names.
	assert.Error(t, Register(reg))
}

func TestEOL(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{0, EOLCritical},
		{4, EOLCritical},
		{json.Number("5"), EOLFresh},
		{"16", EOLFresh},
		{-1, EOLCritical},
		{4.5, EOLUnknown},
		{"soon", EOLUnknown},
		{nil, EOLUnknown},
	}

	for _, tt := range tests {
		got, err := EOL(tt.value, "remaining_hours", nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "value %v", tt.value)
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"rfc3339", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z"},
		{"offset", "2024-01-01T02:30:00+02:00", "2024-01-01T00:30:00Z"},
		{"space separated", "2024-01-02 03:04:05", "2024-01-02T03:04:05Z"},
		{"garbage", "not a date", "not a date"},
		{"empty", "", ""},
		{"record", node.RecordOf("a", 1), node.RecordOf("a", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Timestamp(tt.value, "expires_at", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrftimeAndUnix(t *testing.T) {
	got, err := Strftime("%d/%m/%Y %H:%M")("2024-03-05T07:08:00Z", "k", nil)
	require.NoError(t, err)
	assert.Equal(t, "05/03/2024 07:08", got)

	got, err = Unix("2024-01-01T00:00:00Z", "k", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1704067200), got)

	got, err = Unix(true, "k", nil)
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestScalarFormatters(t *testing.T) {
	i, _ := Int(json.Number("31000005"), "", nil)
	assert.Equal(t, int64(31000005), i)

	i, _ = Int("Thera", "", nil)
	assert.Equal(t, "Thera", i)

	b, _ := Bool("true", "", nil)
	assert.Equal(t, true, b)

	b, _ = Bool(json.Number("0"), "", nil)
	assert.Equal(t, false, b)

	b, _ = Bool("yes please", "", nil)
	assert.Equal(t, "yes please", b)

	s, _ := String(json.Number("99"), "", nil)
	assert.Equal(t, "99", s)

	s, _ = String(false, "", nil)
	assert.Equal(t, "false", s)

	list := []any{1}
	s, _ = String(list, "", nil)
	assert.Equal(t, list, s)
}

func TestCamelCase(t *testing.T) {
	tests := map[string]string{
		"in_system_name":   "inSystemName",
		"wh-exits-outward": "whExitsOutward",
		"sourceSignature":  "sourceSignature",
		"Estimated_EOL":    "estimatedEol",
		"id":               "id",
		"":                 "",
		"__":               "__",
	}

	for in, want := range tests {
		assert.Equal(t, want, CamelCase(in), in)
	}
}

func TestCamelCaseKeys(t *testing.T) {
	in := node.RecordOf("in_region_id", 1, "in_region_name", "Genesis", "nested", node.RecordOf("a_b", 1))

	got, err := CamelCaseKeys(in, "region", nil)
	require.NoError(t, err)

	rec := got.(*node.Record)
	assert.Equal(t, []string{"inRegionId", "inRegionName", "nested"}, rec.Keys())

	nested, _ := rec.Get("nested")
	assert.Equal(t, []string{"a_b"}, nested.(*node.Record).Keys())

	// Input untouched.
	assert.Equal(t, []string{"in_region_id", "in_region_name", "nested"}, in.Keys())

	same, _ := CamelCaseKeys("scalar", "k", nil)
	assert.Equal(t, "scalar", same)
}

func TestFormattersInTableFile(t *testing.T) {
	tf, err := mapping.Parse([]byte(`
tables:
  - name: signature
    map:
      remaining_hours: !format eol
      expires_at: [!format timestamp]
      in_system_id: !format int
      region: !format camelCaseKeys
`))
	require.NoError(t, err)

	catalog, err := mapping.Build(tf, Default())
	require.NoError(t, err)

	table, err := catalog.Lookup("signature")
	require.NoError(t, err)

	in, err := node.DecodeJSON([]byte(`{
		"remaining_hours": 3,
		"expires_at": "2024-01-02 00:00:00",
		"in_system_id": "30000142",
		"region": {"region_id": 1},
		"junk": 1
	}`))
	require.NoError(t, err)

	out, err := mapper.Transform(in, table)
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"remaining_hours":"critical","expires_at":"2024-01-02T00:00:00Z","in_system_id":30000142,"region":{"regionId":1}}`,
		string(data))
}
