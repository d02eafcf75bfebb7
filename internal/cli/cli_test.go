package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSeedCommands(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(t.TempDir(), "toko.db"))

	_, err := execute(t, "migrate")
	require.NoError(t, err)

	out, err := execute(t, "seed", "sample")
	require.NoError(t, err)
	assert.Contains(t, out, "Created test user: testuser/testpass123")
	assert.Contains(t, out, "Created 8 categories and 40 products. The user now owns 40 products.")

	// Two product names appear in both sets and are reused.
	out, err = execute(t, "seed", "user-products", "--username", "testuser")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 0 categories and 38 products. The user now owns 78 products.")

	_, err = execute(t, "seed", "user-products", "--username", "nobody")
	assert.ErrorContains(t, err, "user not found")
}

func TestCreateAdmin(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(t.TempDir(), "toko.db"))

	out, err := execute(t, "create-admin", "--email", "root@example.com", "--password", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, "Created admin root@example.com")

	_, err = execute(t, "create-admin", "--email", "root@example.com", "--password", "password123")
	assert.Error(t, err)
}

func TestInvalidConfiguration(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "unsupported DATABASE_DRIVER")
}
