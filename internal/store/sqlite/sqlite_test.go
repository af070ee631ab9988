package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/retireright/internal/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestStore_InMemory(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	storetest.Run(t, s)
}

func TestStore_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := New(path)
	require.NoError(t, err)
	run := storetest.SampleRun("persisted")
	require.NoError(t, s.SaveRun(t.Context(), run))
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	got, err := reopened.GetRun(t.Context(), run.ID)
	require.NoError(t, err)
	require.Equal(t, "persisted", got.Name)
}
