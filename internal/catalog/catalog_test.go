package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "ielts-v1", c.Version)
	assert.Equal(t, []string{
		"Task Response",
		"Coherence and Cohesion",
		"Lexical Resource",
		"Grammatical Range and Accuracy",
	}, c.Names())
	for _, tr := range c.Traits {
		assert.NotEmpty(t, tr.Description, tr.Name)
		assert.Contains(t, tr.Rubric, "9-10:", tr.Name)
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{name: "no traits", yaml: "version: x\ntraits: []\n", want: ErrEmptyCatalog},
		{name: "blank name", yaml: "traits:\n  - name: '  '\n    rubric: r\n", want: ErrBlankTraitName},
		{
			name: "duplicate",
			yaml: "traits:\n  - name: Grammar\n    rubric: a\n  - name: ' Grammar '\n    rubric: b\n",
			want: ErrDuplicateTrait,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("traits: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "version: custom-1\ntraits:\n  - name: Clarity\n    description: How clear the essay is.\n    rubric: |\n      0-10: clear\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-1", c.Version)
	require.Len(t, c.Traits, 1)
	assert.Equal(t, "Clarity", c.Traits[0].Name)
	assert.Equal(t, "0-10: clear", c.Traits[0].Rubric)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
