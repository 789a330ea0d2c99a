package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_RunsWatchFunc(t *testing.T) {
	env := setupTestServices(t)
	env.write(t, "a.txt", "one")

	out, err := execute(t, "watch", env.dir)

	require.NoError(t, err)
	assert.Equal(t, []string{env.dir}, env.watched)
	assert.Contains(t, out, "1 files added")
}

func TestWatchCmd_Unavailable(t *testing.T) {
	env := setupTestServices(t)
	deps.Watch = nil

	_, err := execute(t, "watch", env.dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}
