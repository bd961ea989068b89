package trial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/Shirel25/NutriSnap-HAI/server/internal/errors"
)

func TestConditionLock(t *testing.T) {
	t.Run("SelectThenConfirm", func(t *testing.T) {
		lock := &ConditionLock{}
		require.NoError(t, lock.Select(ConditionAIAssisted))
		assert.False(t, lock.Confirmed())
		require.NoError(t, lock.Confirm())
		assert.True(t, lock.Confirmed())
		assert.Equal(t, ConditionAIAssisted, lock.Value())
	})

	t.Run("ReselectBeforeConfirm", func(t *testing.T) {
		lock := &ConditionLock{}
		require.NoError(t, lock.Select(ConditionAIAssisted))
		require.NoError(t, lock.Select(ConditionHumanOnly))
		require.NoError(t, lock.Confirm())
		assert.Equal(t, ConditionHumanOnly, lock.Value())
	})

	t.Run("ImmutableOnceConfirmed", func(t *testing.T) {
		lock := &ConditionLock{}
		require.NoError(t, lock.Select(ConditionHumanOnly))
		require.NoError(t, lock.Confirm())

		err := lock.Select(ConditionAIAssisted)
		assert.True(t, errs.IsCode(err, errs.ErrCodeAlreadyConfirmed))
		assert.Equal(t, ConditionHumanOnly, lock.Value(), "stored condition unchanged")

		err = lock.Confirm()
		assert.True(t, errs.IsCode(err, errs.ErrCodeAlreadyConfirmed))
	})

	t.Run("ConfirmWithoutSelection", func(t *testing.T) {
		lock := &ConditionLock{}
		err := lock.Confirm()
		assert.True(t, errs.IsCode(err, errs.ErrCodeNoConditionSelected))
		assert.False(t, lock.Confirmed())
	})

	t.Run("UnknownCondition", func(t *testing.T) {
		lock := &ConditionLock{}
		err := lock.Select(Condition("placebo"))
		assert.True(t, errs.IsCode(err, errs.ErrCodeInvalidEvent))
	})
}
