package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/go-faster/sdk/zctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/pizzeria/internal/pkg/errs"
)

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PIZZERIA_SNAPSHOT_DIR", dir)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(nil)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(zctx.Base(context.Background(), zaptest.NewLogger(t)))
	return out.String(), err
}

func TestCLI_OrderFlow(t *testing.T) {
	dir := setupCLI(t)

	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Margherita (Medium) - Price: 45 RON.")
	assert.Contains(t, out, "Added Diavola (Large) - Price: 74 RON.")

	_, err = run(t, "seed")
	require.NoError(t, err, "seeding twice skips existing items")

	_, err = run(t, "register", "Ion", "+40711223344")
	require.NoError(t, err)

	out, err = run(t, "order", "--phone", "+40711223344", "--delivery", "Margherita")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 55 RON")

	out, err = run(t, "history", "--phone", "+40711223344")
	require.NoError(t, err)
	assert.Contains(t, out, "Margherita (Medium) - Price: 45 RON")

	out, err = run(t, "report", "popular")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Margherita - 1")

	out, err = run(t, "report", "revenue")
	require.NoError(t, err)
	assert.Contains(t, out, "55 RON (1 orders)")

	_, err = run(t, "export", "orders.txt")
	require.NoError(t, err)
	report, err := os.ReadFile(filepath.Join(dir, "orders.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "Customer: Ion +40711223344")

	_, err = os.Stat(filepath.Join(dir, "pizzeria.json"))
	require.NoError(t, err)
}

func TestCLI_AdminCommands(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "item", "add", "Plain", "small")
	require.NoError(t, err)

	_, err = run(t, "component", "add", "Plain", "Mozzarella", "10")
	require.NoError(t, err)

	_, err = run(t, "component", "price", "Mozzarella", "12.5")
	require.NoError(t, err)

	_, err = run(t, "item", "size", "Plain", "Large")
	require.NoError(t, err)

	out, err := run(t, "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Plain (Large) - Price: 52.5 RON")

	_, err = run(t, "component", "replace", "Plain", "Sos=5", "Busuioc=1")
	require.NoError(t, err)

	out, err = run(t, "components")
	require.NoError(t, err)
	assert.Contains(t, out, "Plain: Busuioc - 1 RON")

	_, err = run(t, "component", "remove", "Plain", "Sos")
	require.NoError(t, err)

	_, err = run(t, "item", "remove", "Plain")
	require.NoError(t, err)

	_, err = run(t, "item", "remove", "Plain")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCLI_Errors(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "--admin-phone", "+40700000000", "item", "add", "Plain", "Small")
	require.ErrorIs(t, err, errs.ErrAccessDenied)
	assert.Contains(t, out, "Access denied")

	_, err = run(t, "register", "Ion", "0711223344")
	require.ErrorIs(t, err, errs.ErrInvalidPhone)

	_, err = run(t, "order", "--phone", "+40799999999", "Margherita")
	require.Error(t, err)

	_, err = run(t, "item", "add", "Plain", "Huge")
	require.Error(t, err)

	_, err = run(t, "component", "replace", "Plain", "Sos")
	require.Error(t, err)
}
