package relay

import (
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
)

//EncodeQuery serializes params as a form encoded query string, in order.
//Params whose value is null are skipped.
func EncodeQuery(params []Param) string {
	var buf strings.Builder
	for _, p := range params {
		value, ok := queryValue(p.Value)
		if !ok {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(p.Key))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(value))
	}
	return buf.String()
}

func queryValue(raw json.RawMessage) (string, bool) {
	if isAbsent(bytes.TrimSpace(raw)) {
		return "", false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil || v == nil {
		return "", false
	}
	return stringify(v), true
}

//stringify renders a json value the way a browser URLSearchParams does:
//arrays are joined with commas and objects become "[object Object]".
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return formatNumber(f)
	case []interface{}:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// 1e-07 -> 1e-7, 1e+21 stays as is
	s := strconv.FormatFloat(f, 'g', -1, 64)
	parts := strings.SplitN(s, "e", 2)
	if len(parts) != 2 {
		return s
	}
	sign, exp := parts[1][:1], strings.TrimLeft(parts[1][1:], "0")
	return parts[0] + "e" + sign + exp
}
