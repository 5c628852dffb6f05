package relay

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// nolint: lll
const descriptorSchemaJSON = `{
	"type": "object",
	"properties": {
		"apiPath": {"type": "string"},
		"method": {
			"type": ["string", "null"],
			"pattern": "^(?i:GET|HEAD|POST|PUT|PATCH|DELETE|OPTIONS)$"
		},
		"queryParams": {"type": ["object", "null"]},
		"apiHeaders": {
			"type": ["object", "null"],
			"additionalProperties": {"type": "string"}
		}
	}
}`

var descriptorSchema = mustCompileSchema(descriptorSchemaJSON)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(err)
	}
	return s
}

//validateSchema checks the field types of a descriptor body
func validateSchema(body []byte) error {
	result, err := descriptorSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ValidationError{Message: "request body must be a JSON object"}
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, len(result.Errors()))
	for i, verr := range result.Errors() {
		msgs[i] = verr.String()
	}
	return &ValidationError{Message: strings.Join(msgs, "; ")}
}
