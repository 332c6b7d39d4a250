package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "alert", false},
		{"hyphen", "datetime-range", false},
		{"namespaced", "charts:bar", false},
		{"empty", "", true},
		{"leading digit", "1card", true},
		{"space", "my card", true},
		{"too long", strings.Repeat("a", MaxIdentifierLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJSONSizeValidator(t *testing.T) {
	v := NewJSONSizeValidator(16)

	assert.NoError(t, v.ValidateSize([]byte(`{"a":1}`)))
	assert.NoError(t, v.ValidateSize([]byte(strings.Repeat("x", 16))))
	assert.Error(t, v.ValidateSize([]byte(strings.Repeat("x", 17))))
}

func TestValidateJSONDepth(t *testing.T) {
	nested := map[string]any{"a": map[string]any{"b": []any{1}}}

	assert.NoError(t, ValidateJSONDepth(nested, 3))
	assert.Error(t, ValidateJSONDepth(nested, 2))
	assert.Equal(t, 2*MaxSpecDepth+JSONDepthSlack, MaxJSONDepthFor(MaxSpecDepth))
}

func TestValidatePrompt(t *testing.T) {
	assert.NoError(t, ValidatePrompt("build me a dashboard"))
	assert.Error(t, ValidatePrompt(""))
	assert.Error(t, ValidatePrompt("a          "))
}

func TestValidateCategoryAndTags(t *testing.T) {
	assert.NoError(t, ValidateCategory("layout", true))
	assert.Error(t, ValidateCategory("Layout", true))
	assert.Error(t, ValidateTags(make([]string, MaxTagCount+1)))
}

func TestHasherDeterministic(t *testing.T) {
	h := DefaultHasher()

	a, err := h.HashJSON(map[string]any{"x": 1, "y": []any{"a", "b"}})
	require.NoError(t, err)
	b, err := h.HashJSON(map[string]any{"y": []any{"a", "b"}, "x": 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	tag, err := h.ETag(map[string]any{"x": 1})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tag, `"`))
	assert.Len(t, tag, 18)
}
