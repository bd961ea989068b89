package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shirel25/NutriSnap-HAI/internal/profile"
	"github.com/Shirel25/NutriSnap-HAI/store"
)

func newTestDB(t *testing.T) store.Driver {
	t.Helper()
	p := &profile.Profile{
		Mode:      "demo",
		LogDriver: "sqlite",
		DSN:       filepath.Join(t.TempDir(), "nutrisnap_test.db"),
	}
	d, err := NewDB(p)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, d.Migrate(context.Background()))
	return d
}

func TestCreateAndListInteractions(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	first := &store.Interaction{
		Timestamp:          "2026-03-14 10:00:00",
		SessionID:          "s1",
		TrialID:            1,
		Condition:          "human_only",
		AICategory:         store.Sentinel,
		AIText:             store.Sentinel,
		AICalories:         store.Sentinel,
		AIUncertainty:      store.Sentinel,
		HumanAction:        "manual_entry",
		ManualInput:        "soupe",
		FinalEntry:         "soupe",
		HumanIntervention:  1,
		ExplanationVariant: store.Sentinel,
		Correct:            store.Sentinel,
		DecisionTimeMs:     "2100",
	}
	require.NoError(t, d.CreateInteraction(ctx, first))

	second := *first
	second.TrialID = 2
	second.SessionID = "s2"
	require.NoError(t, d.CreateInteraction(ctx, &second))

	t.Run("MigrateIsIdempotent", func(t *testing.T) {
		require.NoError(t, d.Migrate(ctx))
		records, err := d.ListInteractions(ctx, &store.FindInteraction{})
		require.NoError(t, err)
		assert.Len(t, records, 2, "re-migration keeps existing rows")
	})

	t.Run("AppendOrderPreserved", func(t *testing.T) {
		records, err := d.ListInteractions(ctx, &store.FindInteraction{})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, *first, *records[0])
		assert.Equal(t, second, *records[1])
	})

	t.Run("FilterBySession", func(t *testing.T) {
		sessionID := "s2"
		records, err := d.ListInteractions(ctx, &store.FindInteraction{SessionID: &sessionID})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 2, records[0].TrialID)
	})

	t.Run("Limit", func(t *testing.T) {
		limit := 1
		records, err := d.ListInteractions(ctx, &store.FindInteraction{Limit: &limit})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}
