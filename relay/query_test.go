package relay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func params(kv ...string) []Param {
	var ps []Param
	for i := 0; i+1 < len(kv); i += 2 {
		ps = append(ps, Param{Key: kv[i], Value: json.RawMessage(kv[i+1])})
	}
	return ps
}

func TestEncodeQuery(t *testing.T) {
	cases := []struct {
		title  string
		params []Param
		want   string
	}{
		{"strings in order", params("workspace", `"1"`, "assignee", `"me"`), "workspace=1&assignee=me"},
		{"null skipped", params("a", `null`, "b", `"x"`), "b=x"},
		{"percent encoding", params("opt_fields", `"name,notes"`, "text", `"a b&c"`), "opt_fields=name%2Cnotes&text=a+b%26c"},
		{"booleans", params("completed", `false`), "completed=false"},
		{"numbers", params("limit", `10`, "ratio", `1.50`, "big", `1e21`, "small", `0.0000001`), "limit=10&ratio=1.5&big=1e%2B21&small=1e-7"},
		{"arrays joined", params("ids", `[1,"two",null,[3,4]]`), "ids=1%2Ctwo%2C%2C3%2C4"},
		{"objects", params("filter", `{"a":1}`), "filter=%5Bobject+Object%5D"},
		{"encoded keys", params("a b", `"1"`), "a+b=1"},
		{"all null", params("a", `null`), ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.title, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, EncodeQuery(tc.params))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "-3", formatNumber(-3))
	assert.Equal(t, "123456789", formatNumber(123456789))
	assert.Equal(t, "1e+21", formatNumber(1e21))
	assert.Equal(t, "1.5e-7", formatNumber(1.5e-7))
}
