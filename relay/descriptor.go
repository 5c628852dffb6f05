package relay

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

//Param is a single query parameter. Value holds the raw json value as sent by the caller.
type Param struct {
	Key   string
	Value json.RawMessage
}

//Header is a caller supplied header applied on top of the computed ones
type Header struct {
	Name  string
	Value string
}

//Descriptor describes a single call to relay to the upstream API.
//QueryParams and APIHeaders keep the order in which the caller sent them.
type Descriptor struct {
	APIPath     string
	QueryParams []Param
	PostData    json.RawMessage
	Method      string
	APIHeaders  []Header
}

//ParseDescriptor decodes and validates the json body of an inbound relay request.
//An empty body is treated as an empty object.
func ParseDescriptor(body []byte) (Descriptor, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return Descriptor{}, &ValidationError{Message: "request body must be a JSON object"}
	}

	if isAbsent(fields["apiPath"]) || string(fields["apiPath"]) == `""` {
		return Descriptor{}, ErrAPIPathRequired
	}

	if err := validateSchema(body); err != nil {
		return Descriptor{}, err
	}

	d := Descriptor{Method: http.MethodGet}
	if err := json.Unmarshal(fields["apiPath"], &d.APIPath); err != nil {
		return Descriptor{}, errors.Wrap(err, "decode apiPath")
	}
	if raw := fields["method"]; !isAbsent(raw) {
		if err := json.Unmarshal(raw, &d.Method); err != nil {
			return Descriptor{}, errors.Wrap(err, "decode method")
		}
	}
	if raw := fields["postData"]; !isAbsent(raw) {
		d.PostData = raw
	}

	if raw := fields["queryParams"]; !isAbsent(raw) {
		members, err := decodeObject(raw)
		if err != nil {
			return Descriptor{}, errors.Wrap(err, "decode queryParams")
		}
		for _, m := range members {
			d.QueryParams = append(d.QueryParams, Param{Key: m.key, Value: m.value})
		}
	}

	if raw := fields["apiHeaders"]; !isAbsent(raw) {
		members, err := decodeObject(raw)
		if err != nil {
			return Descriptor{}, errors.Wrap(err, "decode apiHeaders")
		}
		for _, m := range members {
			var value string
			if err := json.Unmarshal(m.value, &value); err != nil {
				return Descriptor{}, errors.Wrapf(err, "decode apiHeaders.%s", m.key)
			}
			d.APIHeaders = append(d.APIHeaders, Header{Name: m.key, Value: value})
		}
	}

	return d, nil
}

type member struct {
	key   string
	value json.RawMessage
}

//decodeObject decodes a json object keeping the order of its members.
//A repeated key keeps its first position and its last value.
func decodeObject(raw json.RawMessage) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected a JSON object")
	}

	var members []member
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("expected an object key")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if i, seen := index[key]; seen {
			members[i].value = value
			continue
		}
		index[key] = len(members)
		members = append(members, member{key: key, value: value})
	}
	return members, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

//hasKeys reports whether a postData value has at least one key: a non empty object,
//array or string.
func hasKeys(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if isAbsent(raw) {
		return false
	}
	switch raw[0] {
	case '{':
		var obj map[string]json.RawMessage
		return json.Unmarshal(raw, &obj) == nil && len(obj) > 0
	case '[':
		var arr []json.RawMessage
		return json.Unmarshal(raw, &arr) == nil && len(arr) > 0
	case '"':
		var s string
		return json.Unmarshal(raw, &s) == nil && s != ""
	}
	return false
}
