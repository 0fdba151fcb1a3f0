// Package codec encodes and decodes field views. Encoding walks the view in
// declaration order, so output member order always matches the struct; decoding
// writes each input member through the view's Set, surfacing unknown members
// and incompatible values as structmap Issues.
package codec

import (
	"bytes"
	"reflect"

	j "github.com/goccy/go-json"

	structmap "github.com/reoring/structmap"
)

// EncodeJSON renders the view as a JSON object with members in declaration
// order. Values are encoded with go-json.
func EncodeJSON[P any, V any](m *structmap.Map[P, V]) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, key := range m.Keys() {
		v, err := m.At(i)
		if err != nil {
			return nil, err
		}
		kb, err := j.Marshal(key)
		if err != nil {
			return nil, wrapEncode(key, err)
		}
		vb, err := j.Marshal(v)
		if err != nil {
			return nil, wrapEncode(key, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeJSON parses a JSON object and writes each member through the view.
// Unknown members fail with no_such_key (strict posture); values that do not
// fit the target field fail with type_mismatch. All issues are collected and
// returned together; members that did fit are written regardless.
func DecodeJSON[P any](m *structmap.Map[P, any], data []byte) error {
	var raw map[string]j.RawMessage
	if err := j.Unmarshal(data, &raw); err != nil {
		return structmap.Issues{structmap.Issue{
			Path:    "/",
			Code:    structmap.CodeParseError,
			Message: err.Error(),
			Cause:   err,
		}}
	}
	var iss structmap.Issues
	// Walk the layout first so write order is deterministic.
	for i, key := range m.Keys() {
		rv, ok := raw[key]
		if !ok {
			continue
		}
		delete(raw, key)
		e, _ := m.Layout().Entry(i)
		nv := reflect.New(e.Type)
		if err := j.Unmarshal(rv, nv.Interface()); err != nil {
			iss = structmap.AppendIssues(iss, structmap.Issue{
				Path:    "/" + key,
				Code:    structmap.CodeParseError,
				Message: err.Error(),
				Cause:   err,
			})
			continue
		}
		if err := m.Set(key, nv.Elem().Interface()); err != nil {
			iss = appendErr(iss, err)
		}
	}
	for key := range raw {
		iss = appendErr(iss, unknownMember(m, key))
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// unknownMember reports an input member with no field slot by routing it
// through the view's own lookup, so the issue shape matches Get/Set.
func unknownMember[P any](m *structmap.Map[P, any], key string) error {
	_, err := m.Get(key)
	return err
}

func appendErr(iss structmap.Issues, err error) structmap.Issues {
	if more, ok := structmap.AsIssues(err); ok {
		return structmap.AppendIssues(iss, more...)
	}
	return structmap.AppendIssues(iss, structmap.Issue{Path: "/", Code: structmap.CodeParseError, Message: err.Error(), Cause: err})
}

func wrapEncode(key string, err error) error {
	return structmap.Issues{structmap.Issue{
		Path:    "/" + key,
		Code:    structmap.CodeParseError,
		Message: err.Error(),
		Cause:   err,
	}}
}
