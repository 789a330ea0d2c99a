package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

func TestIndexCmd_ReportsAddedFiles(t *testing.T) {
	env := setupTestServices(t)
	path := env.write(t, "a.txt", "one\ftwo")

	out, err := execute(t, "index", env.dir)

	require.NoError(t, err)
	assert.Contains(t, out, "added   "+path)
	assert.Contains(t, out, "1 files added (2 pages), 0 skipped")
}

func TestIndexCmd_SecondRunAddsNothing(t *testing.T) {
	env := setupTestServices(t)
	env.write(t, "a.txt", "one")

	_, err := execute(t, "index", env.dir)
	require.NoError(t, err)

	out, err := execute(t, "index", "-o", "json", env.dir)
	require.NoError(t, err)

	var report domain.RefreshReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Empty(t, report.Added)
	assert.Equal(t, 2, env.stores[env.dir].Persists())
}

func TestIndexCmd_TooManyArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "index", "a", "b")

	assert.Error(t, err)
}
