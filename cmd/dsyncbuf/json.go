package main

import (
	"encoding/hex"
	"math"
	"strconv"
	"time"

	"github.com/openchange/syncbuffer"
	"github.com/openchange/syncbuffer/logscan"
)

type jsonTransfer struct {
	Source   string     `json:"source"`
	Line     int        `json:"line"`
	Bytes    int        `json:"bytes"`
	Complete bool       `json:"complete"`
	Nodes    []jsonNode `json:"nodes"`
}

type jsonNode struct {
	Offset int    `json:"offset"`
	Size   int    `json:"size"`
	Tag    string `json:"tag"`
	Name   string `json:"name,omitempty"`
	Kind   string `json:"kind"`
	Type   string `json:"type,omitempty"`
	Value  any    `json:"value,omitempty"`
}

type jsonRange struct {
	Low  uint64 `json:"low"`
	High uint64 `json:"high"`
}

type jsonReplica struct {
	Replica string      `json:"replica"`
	Ranges  []jsonRange `json:"ranges"`
}

type jsonNamed struct {
	GUID  string  `json:"guid"`
	ID    *uint32 `json:"dispid,omitempty"`
	Name  string  `json:"name,omitempty"`
	Value any     `json:"value"`
}

func newJSONTransfer(source string, t *logscan.Transfer, s syncbuffer.Stream, names syncbuffer.TagNames) jsonTransfer {
	jt := jsonTransfer{
		Source:   source,
		Line:     t.Line,
		Bytes:    len(t.Data),
		Complete: t.Complete,
		Nodes:    make([]jsonNode, 0, len(s)),
	}
	for _, n := range s {
		jn := jsonNode{
			Offset: n.Offset,
			Size:   n.Size,
			Tag:    n.Tag.String(),
			Kind:   n.Kind.String(),
			Value:  jsonValue(n.Value),
		}
		jn.Name, _ = names.Name(n.Tag)
		if n.Kind == syncbuffer.KindProperty {
			pt := n.Tag.Type()
			if n.Tag.IsMulti() {
				pt |= syncbuffer.MvFlag
			}
			jn.Type = pt.String()
		}
		jt.Nodes = append(jt.Nodes, jn)
	}
	return jt
}

// jsonValue maps a decoded value to something encoding/json renders
// readably.
func jsonValue(v syncbuffer.Value) any {
	switch v := v.(type) {
	case nil:
		return nil
	case syncbuffer.Float:
		return jsonFloat(float64(v), 32)
	case syncbuffer.Double:
		return jsonFloat(float64(v), 64)
	case syncbuffer.AppTime:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return jsonFloat(float64(v), 64)
		}
		return v.Time().Format(time.RFC3339Nano)
	case syncbuffer.Currency:
		return strconv.FormatFloat(float64(v)/10000, 'f', 4, 64)
	case syncbuffer.Binary:
		return hex.EncodeToString(v)
	case syncbuffer.String8:
		return v.Value
	case syncbuffer.Unicode:
		return v.Value
	case syncbuffer.SysTime:
		if v.IsZero() {
			return nil
		}
		return v.Time().Format(time.RFC3339Nano)
	case syncbuffer.GUID:
		return v.String()
	case syncbuffer.SizedXID:
		if v.Length == 0 {
			return nil
		}
		return v.XID.String()
	case syncbuffer.PredecessorChangeList:
		xids := make([]string, len(v))
		for i, x := range v {
			xids[i] = x.String()
		}
		return xids
	case syncbuffer.IDSet:
		set := make([]jsonReplica, len(v))
		for i, e := range v {
			set[i] = jsonReplica{Replica: e.Replica.String(), Ranges: make([]jsonRange, len(e.Ranges))}
			for j, r := range e.Ranges {
				set[i].Ranges[j] = jsonRange{Low: r.Low, High: r.High}
			}
		}
		return set
	case syncbuffer.Multi:
		vals := make([]any, len(v.Values))
		for i, e := range v.Values {
			vals[i] = jsonValue(e)
		}
		return vals
	case syncbuffer.NamedProperty:
		jn := jsonNamed{GUID: v.GUID.String(), Value: jsonValue(v.Value)}
		if v.Kind == syncbuffer.NamedID {
			id := v.ID
			jn.ID = &id
		} else {
			jn.Name = v.Name
		}
		return jn
	}
	return v
}

// jsonFloat keeps NaN and infinities, which JSON numbers cannot hold, as
// strings.
func jsonFloat(f float64, bits int) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return f
}
