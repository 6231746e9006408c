package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaphero/digest-cli/internal/core/ports/driven"
)

func TestPromptStore_LoadDefault(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptDraftSection)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Section heading: %s")

	prompt, err = store.Load(driven.PromptSummarise)
	require.NoError(t, err)
	assert.Contains(t, prompt, "%d characters")
}

func TestPromptStore_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// First load triggers lazy initialisation.
	_, err = store.Load(driven.PromptSummarise)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "draft_section.txt"))
	assert.FileExists(t, filepath.Join(dir, "summarise.txt"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
}

func TestPromptStore_UserOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "Write a dry executive summary in %d chars:\n%s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "summarise.txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptSummarise)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent")
	assert.Error(t, err)
}

func TestPromptStore_Reload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptSummarise)
	require.NoError(t, err)

	custom := "Shorter. %d chars. %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "summarise.txt"), []byte(custom), 0600))

	// Cached value survives until Reload.
	cached, err := store.Load(driven.PromptSummarise)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptSummarise)
	require.NoError(t, err)
	assert.Equal(t, custom, fresh)
}
