package prefs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/adboard/internal/campaign"
	"github.com/leapstack-labs/adboard/internal/testutil"
	"github.com/leapstack-labs/adboard/pkg/sortable"
)

// countingKV records writes so tests can check save-on-change.
type countingKV struct {
	MemoryKV
	sets    int
	deletes int
	failSet bool
}

func (c *countingKV) Set(ctx context.Context, profile, key, value string) error {
	if c.failSet {
		return errors.New("disk full")
	}
	c.sets++
	return c.MemoryKV.Set(ctx, profile, key, value)
}

func (c *countingKV) Delete(ctx context.Context, profile, key string) error {
	c.deletes++
	return c.MemoryKV.Delete(ctx, profile, key)
}

func TestPreferences_Defaults(t *testing.T) {
	p, err := Load(context.Background(), &MemoryKV{}, "p", nil)
	require.NoError(t, err)

	assert.False(t, p.EditMode())
	assert.True(t, p.Filter().IsZero())
	assert.Nil(t, p.Sort(campaign.LevelCampaigns))
	assert.Equal(t, "p", p.Profile())
}

func TestPreferences_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kinds := map[string]func(t *testing.T) KV{
		"memory": func(*testing.T) KV { return &MemoryKV{} },
		"sqlite": func(t *testing.T) KV { return setupTestStore(t) },
	}

	for name, newKV := range kinds {
		t.Run(name, func(t *testing.T) {
			kv := newKV(t)
			p, err := Load(ctx, kv, "browser-1", testutil.NewTestLogger(t))
			require.NoError(t, err)

			require.NoError(t, p.SetEditMode(ctx, true))
			require.NoError(t, p.SetFilter(ctx, campaign.Filter{Status: "active"}))
			require.NoError(t, p.SetSort(ctx, campaign.LevelAds, &sortable.Config{Column: "spend", Direction: sortable.Descending}))

			reloaded, err := Load(ctx, kv, "browser-1", nil)
			require.NoError(t, err)
			assert.True(t, reloaded.EditMode())
			assert.Equal(t, campaign.Filter{Status: "active"}, reloaded.Filter())
			assert.Equal(t, &sortable.Config{Column: "spend", Direction: sortable.Descending}, reloaded.Sort(campaign.LevelAds))

			other, err := Load(ctx, kv, "browser-2", nil)
			require.NoError(t, err)
			assert.False(t, other.EditMode(), "profiles are isolated")
		})
	}
}

func TestPreferences_SaveOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	kv := &countingKV{}
	p, err := Load(ctx, kv, "p", nil)
	require.NoError(t, err)

	require.NoError(t, p.SetEditMode(ctx, false))
	assert.Equal(t, 0, kv.sets, "unchanged value is not written")

	require.NoError(t, p.SetEditMode(ctx, true))
	require.NoError(t, p.SetEditMode(ctx, true))
	assert.Equal(t, 1, kv.sets)

	cfg := &sortable.Config{Column: "name", Direction: sortable.Ascending}
	require.NoError(t, p.SetSort(ctx, campaign.LevelCampaigns, cfg))
	require.NoError(t, p.SetSort(ctx, campaign.LevelCampaigns, cfg.Clone()))
	assert.Equal(t, 2, kv.sets)

	require.NoError(t, p.SetSort(ctx, campaign.LevelCampaigns, nil))
	assert.Equal(t, 1, kv.deletes)
	assert.Nil(t, p.Sort(campaign.LevelCampaigns))
}

func TestPreferences_ToggleEditMode(t *testing.T) {
	ctx := context.Background()
	p, err := Load(ctx, &MemoryKV{}, "p", nil)
	require.NoError(t, err)

	on, err := p.ToggleEditMode(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = p.ToggleEditMode(ctx)
	require.NoError(t, err)
	assert.False(t, on)
}

func TestPreferences_FailedSaveKeepsState(t *testing.T) {
	ctx := context.Background()
	kv := &countingKV{failSet: true}
	p, err := Load(ctx, kv, "p", nil)
	require.NoError(t, err)

	_, err = p.ToggleEditMode(ctx)
	assert.Error(t, err)
	assert.False(t, p.EditMode())

	err = p.SetSort(ctx, campaign.LevelAds, &sortable.Config{Column: "x", Direction: sortable.Ascending})
	assert.Error(t, err)
	assert.Nil(t, p.Sort(campaign.LevelAds))
}

func TestPreferences_CorruptValuesAreIgnored(t *testing.T) {
	ctx := context.Background()
	kv := &MemoryKV{}
	require.NoError(t, kv.Set(ctx, "p", keyEditMode, "not-json"))
	require.NoError(t, kv.Set(ctx, "p", keyFilter, `{"status":"paused"}`))
	require.NoError(t, kv.Set(ctx, "p", "sort.keywords", `{"column":"x","direction":"asc"}`))
	require.NoError(t, kv.Set(ctx, "p", "sort.ads", `{"column":"clicks","direction":"none"}`))
	require.NoError(t, kv.Set(ctx, "p", "sort.adsets", `{"column":"clicks","direction":"desc"}`))

	p, err := Load(ctx, kv, "p", testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.False(t, p.EditMode())
	assert.Equal(t, "paused", p.Filter().Status)
	assert.Nil(t, p.Sort(campaign.LevelAds), "inactive sorts are dropped")
	assert.Equal(t, sortable.Descending, p.Sort(campaign.LevelAdSets).Direction)
}

func TestPreferences_Reset(t *testing.T) {
	ctx := context.Background()
	kv := &MemoryKV{}
	p, err := Load(ctx, kv, "p", nil)
	require.NoError(t, err)

	require.NoError(t, p.SetEditMode(ctx, true))
	require.NoError(t, p.SetFilter(ctx, campaign.Filter{Search: "brand"}))
	require.NoError(t, p.SetSort(ctx, campaign.LevelAds, &sortable.Config{Column: "spend", Direction: sortable.Ascending}))

	require.NoError(t, p.Reset(ctx))

	stored, err := kv.List(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, stored)

	snap := p.Snapshot()
	assert.False(t, snap.EditMode)
	assert.True(t, snap.Filter.IsZero())
	assert.Empty(t, snap.Sorts)
}

func TestPreferences_ClearingFilterDeletesKey(t *testing.T) {
	ctx := context.Background()
	kv := &MemoryKV{}
	p, err := Load(ctx, kv, "p", nil)
	require.NoError(t, err)

	require.NoError(t, p.SetFilter(ctx, campaign.Filter{Status: "active"}))
	require.NoError(t, p.SetFilter(ctx, campaign.Filter{}))

	_, ok, err := kv.Get(ctx, "p", keyFilter)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreferences_AdvanceSort(t *testing.T) {
	ctx := context.Background()
	kv := &MemoryKV{}
	p, err := Load(ctx, kv, "p", nil)
	require.NoError(t, err)

	want := []*sortable.Config{
		{Column: "spend", Direction: sortable.Ascending},
		{Column: "spend", Direction: sortable.Descending},
		nil,
	}
	for i, w := range want {
		got, err := p.AdvanceSort(ctx, campaign.LevelCampaigns, "spend")
		require.NoError(t, err)
		assert.Equal(t, w, got, "click %d", i+1)
		assert.Equal(t, w, p.Sort(campaign.LevelCampaigns))
	}

	stored, err := kv.List(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, stored, "cleared sort removes the key")
}

func TestPreferences_AdvanceSortConcurrentClicks(t *testing.T) {
	ctx := context.Background()
	p, err := Load(ctx, &MemoryKV{}, "p", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.AdvanceSort(ctx, campaign.LevelAds, "name")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Nil(t, p.Sort(campaign.LevelAds), "three clicks close the cycle")
}
