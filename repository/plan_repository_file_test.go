package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-payoff/domain"
)

func TestFilePlanRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := NewFilePlanRepository(dir, "")
	require.NoError(t, err)

	saved, err := repo.Save(ctx, testPlan("household"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "household.yaml"))

	got, err := repo.Get(ctx, "household")
	require.NoError(t, err)
	assert.Equal(t, saved.Name, got.Name)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Debts, 1)
	assert.Equal(t, "1234.56", got.Debts[0].Balance.String())
	assert.Equal(t, "18.99", got.Debts[0].APR.String())
	assert.True(t, got.Debts[0].Include)
	assert.Equal(t, domain.StrategyAvalanche, got.Settings.Strategy)

	_, err = repo.Save(ctx, testPlan(""))
	require.NoError(t, err)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, "household"))
	assert.ErrorIs(t, repo.Delete(ctx, "household"), domain.ErrPlanNotFound)
	_, err = repo.Get(ctx, "household")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestFilePlanRepositoryRejectsUnsafeIDs(t *testing.T) {
	repo, err := NewFilePlanRepository(t.TempDir(), "")
	require.NoError(t, err)

	for _, id := range []string{"..", "../escape", `a\b`, "."} {
		_, err := repo.Get(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, id)
	}
}

func TestPlanFileDefaultsInclude(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: hand written
debts:
  - id: a
    name: Visa
    balance: "500.00"
    apr: "19.9"
    min_payment: 25
  - id: b
    name: Old
    balance: 100
    apr: 0
    min_payment: 10
    include: false
settings:
  strategy: snowball
  extra_monthly: "75"
`), 0o600))

	plan, err := ReadPlanFile(path, "")
	require.NoError(t, err)
	require.Len(t, plan.Debts, 2)
	assert.True(t, plan.Debts[0].Include)
	assert.False(t, plan.Debts[1].Include)
	assert.Equal(t, "25", plan.Debts[0].MinPayment.String())
	assert.Equal(t, "75", plan.Settings.ExtraMonthly.String())
}

// One encrypted round trip; scrypt makes every extra case slow.
func TestPlanFileEncryption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, WritePlanFile(path, testPlan("secret"), ""))

	assert.ErrorIs(t, EncryptPlanFile(path, ""), domain.ErrInvalidInput)
	require.NoError(t, EncryptPlanFile(path, "correct horse"))

	encrypted, err := IsEncryptedFile(path)
	require.NoError(t, err)
	assert.True(t, encrypted)
	assert.Error(t, EncryptPlanFile(path, "correct horse"), "already encrypted")

	_, err = ReadPlanFile(path, "")
	assert.ErrorIs(t, err, domain.ErrStoreLocked)

	_, err = ReadPlanFile(path, "wrong")
	assert.ErrorContains(t, err, "incorrect passphrase")

	plan, err := ReadPlanFile(path, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "secret", plan.ID)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestReadPlanFileMissing(t *testing.T) {
	_, err := ReadPlanFile(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}
