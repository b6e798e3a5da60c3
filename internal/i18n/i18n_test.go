package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("should create translations with a valid language", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[issue.imported]
		other = "{{.URL}} importado correctamente"
		`)

		trans, err := NewTranslations("es", tmpDir)

		require.NoError(t, err)
		require.NotNil(t, trans)
		assert.Equal(t, "http://x/42 importado correctamente",
			trans.GetMessage("issue.imported", 0, map[string]interface{}{"URL": "http://x/42"}))
	})

	t.Run("should fail with an empty language", func(t *testing.T) {
		trans, err := NewTranslations("", t.TempDir())

		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("should fall back to the embedded defaults", func(t *testing.T) {
		trans, err := NewTranslations("en", t.TempDir())

		require.NoError(t, err)
		assert.Equal(t, "Importing comments...", trans.GetMessage("comments.importing", 0, nil))
		assert.Equal(t, "Something went wrong. Response: 422. See developer.github.com/v3/ for troubleshooting.",
			trans.GetMessage("issue.create_failed", 0, map[string]interface{}{"Code": 422}))
	})
}

func TestSetLanguage(t *testing.T) {
	t.Run("should change to a loaded language", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[comments.importing]
		other = "Importando comentarios..."
		`)

		trans, err := NewTranslations("en", tmpDir)
		require.NoError(t, err)

		require.NoError(t, trans.SetLanguage("es"))
		assert.Equal(t, "Importando comentarios...", trans.GetMessage("comments.importing", 0, nil))
	})

	t.Run("should change to the embedded Spanish without locale files", func(t *testing.T) {
		trans, err := NewTranslations("en", t.TempDir())
		require.NoError(t, err)

		require.NoError(t, trans.SetLanguage("es"))
		assert.Equal(t, "Importando comentarios...", trans.GetMessage("comments.importing", 0, nil))
		assert.Equal(t, "http://x/42 importado correctamente",
			trans.GetMessage("issue.imported", 0, map[string]interface{}{"URL": "http://x/42"}))
	})

	t.Run("should reject an unknown language", func(t *testing.T) {
		trans, err := NewTranslations("en", t.TempDir())
		require.NoError(t, err)

		assert.Error(t, trans.SetLanguage("fr"))
	})
}

func TestGetMessage(t *testing.T) {
	t.Run("should report missing message IDs", func(t *testing.T) {
		trans, err := NewTranslations("en", t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "Translation missing: does.not.exist", trans.GetMessage("does.not.exist", 0, nil))
	})
}

func createTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
