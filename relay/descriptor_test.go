package relay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptorDefaults(t *testing.T) {
	d, err := ParseDescriptor([]byte(`{"apiPath":"/tasks/123"}`))
	require.NoError(t, err)

	assert.Equal(t, "/tasks/123", d.APIPath)
	assert.Equal(t, "GET", d.Method)
	assert.Empty(t, d.QueryParams)
	assert.Empty(t, d.APIHeaders)
	assert.Nil(t, d.PostData)
}

func TestParseDescriptorKeepsOrder(t *testing.T) {
	body := `{
		"apiPath": "/tasks",
		"method": "POST",
		"queryParams": {"workspace": "1", "opt_fields": "name,notes", "limit": 5, "offset": null},
		"apiHeaders": {"Asana-Enable": "a", "accept": "text/plain"},
		"postData": {"data": {"name": "New Task"}}
	}`
	d, err := ParseDescriptor([]byte(body))
	require.NoError(t, err)

	keys := make([]string, len(d.QueryParams))
	for i, p := range d.QueryParams {
		keys[i] = p.Key
	}
	assert.Equal(t, []string{"workspace", "opt_fields", "limit", "offset"}, keys)
	assert.Equal(t, []Header{{Name: "Asana-Enable", Value: "a"}, {Name: "accept", Value: "text/plain"}}, d.APIHeaders)
	assert.JSONEq(t, `{"data":{"name":"New Task"}}`, string(d.PostData))
	assert.Equal(t, "POST", d.Method)
}

func TestParseDescriptorValidation(t *testing.T) {
	cases := []struct {
		title   string
		body    string
		message string
	}{
		{"empty body", ``, "apiPath is required"},
		{"empty object", `{}`, "apiPath is required"},
		{"empty apiPath", `{"apiPath":""}`, "apiPath is required"},
		{"null apiPath", `{"apiPath":null,"method":"POST"}`, "apiPath is required"},
		{"missing apiPath with bad method", `{"method":"FETCH"}`, "apiPath is required"},
		{"not json", `apiPath=/tasks`, "request body must be a JSON object"},
		{"array body", `[{"apiPath":"/tasks"}]`, "request body must be a JSON object"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.title, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDescriptor([]byte(tc.body))
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.message, validationErr.Message)
			assert.Equal(t, OutcomeValidationError, OutcomeOf(err))
		})
	}
}

func TestParseDescriptorRejectsMalformedTypes(t *testing.T) {
	cases := []struct {
		title string
		body  string
	}{
		{"numeric apiPath", `{"apiPath":42}`},
		{"unknown method", `{"apiPath":"/tasks","method":"FETCH"}`},
		{"numeric method", `{"apiPath":"/tasks","method":1}`},
		{"array queryParams", `{"apiPath":"/tasks","queryParams":["a"]}`},
		{"numeric header value", `{"apiPath":"/tasks","apiHeaders":{"x-count":1}}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.title, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDescriptor([]byte(tc.body))
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Message)
		})
	}
}

func TestParseDescriptorAcceptsLowercaseMethod(t *testing.T) {
	d, err := ParseDescriptor([]byte(`{"apiPath":"/tasks","method":"patch"}`))
	require.NoError(t, err)
	assert.Equal(t, "patch", d.Method)
}

func TestDecodeObjectRepeatedKey(t *testing.T) {
	members, err := decodeObject(json.RawMessage(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].key)
	assert.Equal(t, "3", string(members[0].value))
	assert.Equal(t, "b", members[1].key)
}

func TestHasKeys(t *testing.T) {
	cases := map[string]bool{
		``:              false,
		`null`:          false,
		`{}`:            false,
		`[]`:            false,
		`""`:            false,
		`42`:            false,
		`true`:          false,
		`{"name":"x"}`:  true,
		`[1]`:           true,
		`"abc"`:         true,
		` { "a" : 1 } `: true,
	}
	for raw, want := range cases {
		assert.Equal(t, want, hasKeys(json.RawMessage(raw)), raw)
	}
}
