package cli_test

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"tienda/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFlags points a command at a fresh sqlite file and skips any .env file.
func storeFlags(t *testing.T) []string {
	t.Helper()
	return []string{"--env-file", "", "--db-driver", "sqlite", "--dsn", filepath.Join(t.TempDir(), "tienda.db")}
}

func run(t *testing.T, store []string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, store...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, err := run(t, storeFlags(t), "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "loaded 16 sample products")
	assert.Contains(t, out, "Vintage Dutch bicycle")
	assert.Contains(t, out, "rejected: price cannot be negative (got -50.00)")
	assert.Contains(t, out, "rejected: stock cannot be negative (got -5)")
	assert.Contains(t, out, `rejected: product name cannot be empty (got "")`)
	assert.Contains(t, out, "rejected: operation would result in negative stock (current: 2, change: -7)")
	assert.Contains(t, out, "1x Oak dining table")
	assert.Contains(t, out, "2x Jazz vinyl records")
	assert.Contains(t, out, "found Pine writing desk")
	assert.Contains(t, out, "found Spanish classical guitar")
	assert.Contains(t, out, "Inventory walk-through complete")
	assert.NotContains(t, out, "the invalid value was accepted")
}

func TestDemoCommand_MemoryStore(t *testing.T) {
	out, err := run(t, []string{"--env-file", "", "--db-driver", "memory"}, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "connected to the memory store")
	assert.Contains(t, out, "Inventory walk-through complete")
}

func TestSeedCommand(t *testing.T) {
	store := storeFlags(t)

	out, err := run(t, store, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 16 products")

	out, err = run(t, store, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")
}

func TestProductsCommands(t *testing.T) {
	store := storeFlags(t)

	out, err := run(t, store, "products", "add",
		"--name", "Record player", "--price", "80", "--stock", "1",
		"--category", "Music", "--description", "Portable case model")
	require.NoError(t, err)
	assert.Contains(t, out, `name="Record player"`)

	out, err = run(t, store, "products", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Record player")
	assert.Contains(t, out, "80.00 €")

	out, err = run(t, store, "products", "list", "--category", "Books")
	require.NoError(t, err)
	assert.Contains(t, out, "no products")

	out, err = run(t, store, "products", "update", "1", "--price", "65")
	require.NoError(t, err)
	assert.Contains(t, out, "price=65.00")

	out, err = run(t, store, "products", "stock", "1", "--delta", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "stock updated: 4")

	out, err = run(t, store, "products", "stock", "1", "--set", "2", "--reason", "count")
	require.NoError(t, err)
	assert.Contains(t, out, "stock updated: 2")

	out, err = run(t, store, "products", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Portable case model")

	out, err = run(t, store, "products", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted product 1")

	_, err = run(t, store, "products", "show", "1")
	assert.Error(t, err)
}

func TestProductsCommands_Rejections(t *testing.T) {
	store := storeFlags(t)

	_, err := run(t, store, "products", "add",
		"--name", "Lamp", "--price", "-1", "--stock", "1",
		"--category", "Decor", "--description", "Brass")
	require.Error(t, err)
	assert.Equal(t, "price cannot be negative (got -1.00)", err.Error())

	_, err = run(t, store, "seed")
	require.NoError(t, err)

	_, err = run(t, store, "products", "stock", "1", "--delta", "-10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation would result in negative stock")

	_, err = run(t, store, "products", "stock", "1")
	assert.Error(t, err, "--delta or --set is required")

	_, err = run(t, store, "products", "stock", "1", "--delta", "1", "--set", "3")
	assert.Error(t, err, "--delta and --set are exclusive")

	_, err = run(t, store, "products", "stock", "1", "--set", "-1")
	require.Error(t, err)
	assert.Equal(t, "stock cannot be negative (got -1)", err.Error())

	_, err = run(t, store, "products", "show", "abc")
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	store := storeFlags(t)
	_, err := run(t, store, "seed")
	require.NoError(t, err)

	out, err := run(t, store, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Low stock (< 3 units)")
	assert.Contains(t, out, "Vintage armchair - only 1 units")
	assert.NotContains(t, out, "Pine writing desk - only")
	assert.Contains(t, out, "Inventory summary")
	assert.Contains(t, out, "16 products")

	out, err = run(t, store, "report", "--threshold", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Pine writing desk - only 3 units")
}

func TestEventsCommand_RequiresBroker(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	_, err := run(t, []string{"--env-file", "", "--db-driver", "memory"}, "events")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RABBITMQ_URL")
}

func TestUnknownDriver(t *testing.T) {
	_, err := run(t, []string{"--env-file", "", "--db-driver", "mysql"}, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DBDriver")
}
