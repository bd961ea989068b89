package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shirel25/NutriSnap-HAI/store"
)

func testInteraction(sessionID string, trialID int) *store.Interaction {
	return &store.Interaction{
		Timestamp:          "2026-03-14 10:00:00",
		SessionID:          sessionID,
		TrialID:            trialID,
		Condition:          "ai_assisted",
		AICategory:         "Pizza",
		AIText:             "Pizza margherita",
		AICalories:         "900",
		AIUncertainty:      "low",
		HumanAction:        "accept",
		ManualInput:        store.Sentinel,
		FinalEntry:         "Pizza margherita",
		HumanIntervention:  0,
		ExplanationVariant: "Pate, tomate, mozzarella",
		Correct:            "Y",
		DecisionTimeMs:     "1200",
	}
}

func TestHeaderWrittenExactlyOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "logs.csv")
	d := NewDB(path)
	require.NoError(t, d.Migrate(ctx))

	require.NoError(t, d.CreateInteraction(ctx, testInteraction("s1", 1)))
	require.NoError(t, d.CreateInteraction(ctx, testInteraction("s1", 2)))
	require.NoError(t, d.CreateInteraction(ctx, testInteraction("s2", 1)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 4, "one header plus three rows")
	assert.Equal(t, strings.Join(store.InteractionColumns, ","), lines[0])
	assert.Equal(t, 1, strings.Count(string(raw), "timestamp,session_id"), "header never rewritten")
}

func TestHeaderSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "logs.csv")

	require.NoError(t, NewDB(path).CreateInteraction(ctx, testInteraction("s1", 1)))
	// A later process appending to the same sink must not repeat the header.
	require.NoError(t, NewDB(path).CreateInteraction(ctx, testInteraction("s1", 2)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "timestamp,session_id"))
}

func TestListInteractions(t *testing.T) {
	ctx := context.Background()
	d := NewDB(filepath.Join(t.TempDir(), "logs.csv"))

	t.Run("EmptySink", func(t *testing.T) {
		records, err := d.ListInteractions(ctx, &store.FindInteraction{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	require.NoError(t, d.CreateInteraction(ctx, testInteraction("s1", 1)))
	require.NoError(t, d.CreateInteraction(ctx, testInteraction("s2", 1)))
	require.NoError(t, d.CreateInteraction(ctx, testInteraction("s1", 2)))

	t.Run("All", func(t *testing.T) {
		records, err := d.ListInteractions(ctx, &store.FindInteraction{})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, *testInteraction("s1", 1), *records[0], "rows round-trip unchanged")
	})

	t.Run("BySession", func(t *testing.T) {
		sessionID := "s1"
		records, err := d.ListInteractions(ctx, &store.FindInteraction{SessionID: &sessionID})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 1, records[0].TrialID)
		assert.Equal(t, 2, records[1].TrialID)
	})

	t.Run("Limit", func(t *testing.T) {
		limit := 1
		records, err := d.ListInteractions(ctx, &store.FindInteraction{Limit: &limit})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestQuotedFieldsSurvive(t *testing.T) {
	ctx := context.Background()
	d := NewDB(filepath.Join(t.TempDir(), "logs.csv"))

	in := testInteraction("s1", 1)
	in.ManualInput = `salade "maison", riz, 2 oeufs`
	in.FinalEntry = in.ManualInput
	require.NoError(t, d.CreateInteraction(ctx, in))

	records, err := d.ListInteractions(ctx, &store.FindInteraction{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, in.ManualInput, records[0].ManualInput)
}
