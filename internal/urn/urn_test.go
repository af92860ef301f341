package urn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	u := Parse("package/module/ItemD")
	assert.Equal(t, "package/module/ItemD", u.Value)
	assert.Equal(t, "ItemD", u.Name)
	assert.Equal(t, "Item D", u.Label)
	assert.Equal(t, "../../..", u.PathToBase)
}

func TestParseSingleSegment(t *testing.T) {
	u := Parse("package")
	assert.Equal(t, "package", u.Name)
	assert.Equal(t, "..", u.PathToBase)
	assert.Equal(t, u, u.Parent())
}

func TestParent(t *testing.T) {
	assert.Equal(t, "a/b", Parse("a/b/c").Parent().Value)
	assert.Equal(t, "a", Parse("a/b").Parent().Value)
	assert.Equal(t, "a/b/c", Parse("a/b").Child("c").Value)
}

func TestIsIncludedIn(t *testing.T) {
	u := Parse("pkg/mod/item")
	tests := []struct {
		name     string
		filter   []string
		expected bool
	}{
		{"empty filter", nil, true},
		{"exact", []string{"pkg/mod/item"}, true},
		{"ancestor selects descendant", []string{"pkg"}, true},
		{"descendant selects ancestor", []string{"pkg/mod/item/element"}, true},
		{"sibling", []string{"pkg/other"}, false},
		{"partial segment is not a prefix", []string{"pkg/mo"}, false},
		{"any match", []string{"other", "pkg/mod"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, u.IsIncludedIn(ParseAll(tt.filter)))
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Parse("c4model/Element/Person").Validate())
	for _, bad := range []string{"", "a//b", "/a", "a/", "a/../b", `a\b`} {
		assert.Error(t, Parse(bad).Validate(), bad)
	}
}

func TestYAMLRoundTripAsScalar(t *testing.T) {
	var doc struct {
		URN URN `yaml:"urn"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("urn: eip/MessageConstruction/CommandMessage\n"), &doc))
	assert.Equal(t, "Command Message", doc.URN.Label)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "urn: eip/MessageConstruction/CommandMessage\n", string(out))
}

func TestCaseHelpers(t *testing.T) {
	assert.Equal(t, []string{"AWS", "Lambda", "Function"}, Words("AWSLambdaFunction"))
	assert.Equal(t, "Aws Lambda Function", TitleCase("AWSLambdaFunction"))
	assert.Equal(t, "Item D", TitleCase("item_d"))
	assert.Equal(t, "PersonCard", UpperCamelCase("person card"))
	assert.Equal(t, "basic_example", SnakeCase("Basic Example"))
}
