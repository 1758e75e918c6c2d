package evescout

import (
	"fmt"
	"strconv"

	"response-mapper/internal/formatters"
	"response-mapper/internal/logging"
	"response-mapper/internal/mapper"
	"response-mapper/internal/mapping"
	"response-mapper/internal/node"
)

// Builder turns a decoded signatures payload into the connections response:
//
//	{"connections": {"<id>": {...connection...}}}
//
// or, when upstream answered with an error payload, {"error": ...}.
// The zero value uses ConnectionTable and a silent engine.
type Builder struct {
	Engine *mapper.Engine
	Table  *mapping.Table
	Log    logging.Logger
}

func (b Builder) defaults() Builder {
	if b.Engine == nil {
		b.Engine = mapper.New()
	}

	if b.Table == nil {
		b.Table = ConnectionTable
	}

	if b.Log == nil {
		b.Log = logging.Nop()
	}

	return b
}

// ErrorMessage returns the error of an upstream error payload.
func ErrorMessage(body any) (any, bool) {
	rec, ok := body.(*node.Record)
	if !ok {
		return nil, false
	}

	return rec.Get("error")
}

// Build builds the connections response from body.
func (b Builder) Build(body any) (*node.Record, error) {
	b = b.defaults()

	if msg, ok := ErrorMessage(body); ok {
		return node.RecordOf("error", node.Clone(msg)), nil
	}

	signatures, ok := body.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected signatures payload: %s", node.KindOf(body))
	}

	connections := node.NewRecord()

	for i, item := range signatures {
		data, ok := item.(*node.Record)
		if !ok {
			b.Log.Warnf("skipping signature %d: %s is not a record", i, node.KindOf(item))
			continue
		}

		id, ok := connectionID(data)
		if !ok {
			b.Log.Warnf("skipping signature %d: missing id", i)
			continue
		}

		conn, err := b.connection(data)
		if err != nil {
			return nil, fmt.Errorf("signature %s: %w", id, err)
		}

		connections.Set(id, conn)
	}

	b.Log.Debugf("built %d connections from %d signatures", connections.Len(), len(signatures))

	return node.RecordOf("connections", connections), nil
}

// connection maps one signature and adds the fields the table cannot
// express.
func (b Builder) connection(data *node.Record) (*node.Record, error) {
	mapped, err := b.Engine.Transform(data, b.Table)
	if err != nil {
		return nil, err
	}

	conn, ok := mapped.(*node.Record)
	if !ok {
		conn = node.NewRecord()
	}

	// A missing or non-numeric remaining_hours counts as zero hours left.
	hours, _ := data.Get("remaining_hours")
	remaining, _ := node.Int(hours)
	conn.Set("eol", formatters.EOLStatus(remaining))

	outward, _ := data.Get("wh_exits_outward")
	side := "targetSignature"
	if out, _ := node.Bool(outward); out {
		side = "sourceSignature"
	}

	whType, _ := data.Get("wh_type")
	setPath(conn, stringOrEmpty(whType), side, "type")

	regionID, _ := data.Get("in_region_id")
	regionName, _ := data.Get("in_region_name")

	id, _ := node.Int(regionID)
	setPath(conn, id, "target", "region", "id")
	setPath(conn, stringOrEmpty(regionName), "target", "region", "name")

	return conn, nil
}

func connectionID(data *node.Record) (string, bool) {
	v, ok := data.Get("id")
	if !ok {
		return "", false
	}

	if i, ok := node.Int(v); ok {
		return strconv.FormatInt(i, 10), true
	}

	s, ok := node.String(v)

	return s, ok && s != ""
}

func stringOrEmpty(v any) string {
	s, _ := node.String(v)
	return s
}

// setPath writes value at keys, creating or replacing intermediate records.
func setPath(rec *node.Record, value any, keys ...string) {
	last := len(keys) - 1

	for _, k := range keys[:last] {
		next, ok := rec.Get(k)

		child, isRecord := next.(*node.Record)
		if !ok || !isRecord || child == nil {
			child = node.NewRecord()
			rec.Set(k, child)
		}

		rec = child
	}

	rec.Set(keys[last], value)
}
