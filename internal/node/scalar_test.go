package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int64
		wantOK bool
	}{
		{"int", 4, 4, true},
		{"int64", int64(30000142), 30000142, true},
		{"json int", json.Number("31000005"), 31000005, true},
		{"json integral float", json.Number("4.0"), 4, true},
		{"json fraction", json.Number("4.5"), 0, false},
		{"float", float64(16), 16, true},
		{"string", " 12 ", 12, true},
		{"bad string", "twelve", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBool(t *testing.T) {
	b, ok := Bool(true)
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = Bool("false")
	assert.True(t, ok)
	assert.False(t, b)

	b, ok = Bool(json.Number("1"))
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = Bool("maybe")
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	s, ok := String(json.Number("30000142"))
	assert.True(t, ok)
	assert.Equal(t, "30000142", s)

	s, ok = String(42)
	assert.True(t, ok)
	assert.Equal(t, "42", s)

	s, ok = String(1.5)
	assert.True(t, ok)
	assert.Equal(t, "1.5", s)

	s, ok = String(false)
	assert.True(t, ok)
	assert.Equal(t, "false", s)

	_, ok = String(NewRecord())
	assert.False(t, ok)
}
