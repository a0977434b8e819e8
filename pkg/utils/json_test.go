package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyJson(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    2\n  ]\n}", PrettyJson(map[string]any{"b": []int{2}, "a": 1}))
	assert.Equal(t, "{\n  \"x\": true\n}", PrettyJson([]byte(`{"x":true}`)))
	assert.Equal(t, "not json", PrettyJson([]byte("not json")))
	assert.Equal(t,
		"[\n  {\n    \"customer\": \"Acme\",\n    \"months\": [\n      \"25.11\",\n      \"25.12\"\n    ]\n  }\n]",
		PrettyJson([]byte(`[{"customer":"Acme","months":["25.11","25.12"]}]`)))
}

func TestGenerateID(t *testing.T) {
	a, err := GenerateID()
	assert.NoError(t, err)
	b, err := GenerateID()
	assert.NoError(t, err)

	assert.Len(t, a, 10)
	assert.NotEqual(t, a, b)
}
