package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("plugin.json"))
	assert.Equal(t, FormatYAML, DetectFormat("plugin.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("plugin.yml"))
	assert.Equal(t, FormatTOML, DetectFormat("plugin.toml"))
	assert.Equal(t, FormatJSON, DetectFormat("plugin"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestBytes_AllFormatsNormalizeToSameTree(t *testing.T) {
	jsonDoc := []byte(`{"name":"claudash","tags":["git","status"],"enabled":true}`)
	yamlDoc := []byte("name: claudash\ntags:\n  - git\n  - status\nenabled: true\n")
	tomlDoc := []byte("name = \"claudash\"\ntags = [\"git\", \"status\"]\nenabled = true\n")

	jv, err := Bytes(jsonDoc, FormatJSON)
	require.NoError(t, err)
	yv, err := Bytes(yamlDoc, FormatYAML)
	require.NoError(t, err)
	tv, err := Bytes(tomlDoc, FormatTOML)
	require.NoError(t, err)

	for _, v := range []any{jv, yv, tv} {
		m, ok := v.(map[string]any)
		require.True(t, ok, "expected object, got %T", v)
		assert.Equal(t, "claudash", m["name"])
		assert.Equal(t, true, m["enabled"])
		tags, ok := m["tags"].([]any)
		require.True(t, ok, "expected []any tags, got %T", m["tags"])
		assert.Equal(t, []any{"git", "status"}, tags)
	}
}

func TestBytes_MalformedInput(t *testing.T) {
	_, err := Bytes([]byte("{oops"), FormatJSON)
	assert.Error(t, err)
	_, err = Bytes([]byte("\t- broken\n  x"), FormatYAML)
	assert.Error(t, err)
	_, err = Bytes([]byte("= nope"), FormatTOML)
	assert.Error(t, err)
}

func TestNormalize_NonStringKeys(t *testing.T) {
	v := normalize(map[any]any{1: "one", "two": []any{map[any]any{true: "t"}}})
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "one", m["1"])
	inner := m["two"].([]any)[0].(map[string]any)
	assert.Equal(t, "t", inner["true"])
}
