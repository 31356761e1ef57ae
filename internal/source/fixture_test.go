package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/adboard/internal/campaign"
	"github.com/leapstack-labs/adboard/internal/testutil"
)

const testFixture = `
accounts:
  - id: acc-1
    name: Main store
    status: active
    spend: 100
    sales: 400
campaigns:
  - id: cmp-1
    parent_id: acc-1
    name: Spring sale
    status: active
    spend: 60
    sales: 300
    daily_budget: 20
    updated_at: 2024-03-01T10:00:00Z
  - id: cmp-2
    parent_id: acc-1
    name: Retargeting
    status: paused
    spend: 40
    sales: 100
  - id: cmp-3
    parent_id: acc-2
    name: Other account
adsets: []
ads: []
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFixture_List(t *testing.T) {
	path := writeFixture(t, testFixture)
	f, err := LoadFixture(path, testutil.NewTestLogger(t))
	require.NoError(t, err)

	ctx := context.Background()

	accounts, err := f.List(ctx, campaign.LevelAccounts, "ignored")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, campaign.LevelAccounts, accounts[0].Level)

	campaigns, err := f.List(ctx, campaign.LevelCampaigns, "acc-1")
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "cmp-1", campaigns[0].ID)
	require.NotNil(t, campaigns[0].DailyBudget)
	assert.Equal(t, 20.0, *campaigns[0].DailyBudget)
	assert.False(t, campaigns[0].UpdatedAt.IsZero())
	assert.Nil(t, campaigns[1].DailyBudget)

	all, err := f.List(ctx, campaign.LevelCampaigns, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ads, err := f.List(ctx, campaign.LevelAds, "x")
	require.NoError(t, err)
	assert.Empty(t, ads)
}

func TestFixture_UnknownLevel(t *testing.T) {
	f, err := LoadFixture(writeFixture(t, testFixture), nil)
	require.NoError(t, err)

	_, err = f.List(context.Background(), campaign.Level("keywords"), "")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestFixture_Reload(t *testing.T) {
	path := writeFixture(t, testFixture)
	f, err := LoadFixture(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("accounts:\n  - id: acc-9\n    name: New\n"), 0600))
	require.NoError(t, f.Reload())

	accounts, err := f.List(context.Background(), campaign.LevelAccounts, "")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc-9", accounts[0].ID)

	// A broken file keeps the last good data.
	require.NoError(t, os.WriteFile(path, []byte("accounts: [ {"), 0600))
	assert.Error(t, f.Reload())
	accounts, err = f.List(context.Background(), campaign.LevelAccounts, "")
	require.NoError(t, err)
	assert.Equal(t, "acc-9", accounts[0].ID)
}

func TestLoadFixture_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing id", "accounts:\n  - name: x\n"},
		{"duplicate id", "ads:\n  - id: a\n  - id: a\n"},
		{"invalid yaml", "accounts: {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixture(writeFixture(t, tt.content), nil)
			assert.Error(t, err)
		})
	}

	_, err := LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	src, err := Open(ctx, Config{Type: TypeFixture, Fixture: writeFixture(t, testFixture)}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Fixture{}, src)
	assert.NoError(t, src.Close())

	_, err = Open(ctx, Config{Type: TypeFixture}, nil)
	assert.Error(t, err)

	_, err = Open(ctx, Config{Type: "mysql"}, nil)
	assert.Error(t, err)
}
