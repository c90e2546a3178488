package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/timeutil"
)

func TestParseDateRangeInclusiveISTDays(t *testing.T) {
	dr, err := ParseDateRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.NotNil(t, dr.From)
	require.NotNil(t, dr.To)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, timeutil.IST), *dr.From)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999999999, timeutil.IST), *dr.To)
}

func TestParseDateRangeOpenBounds(t *testing.T) {
	dr, err := ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, dr.From)
	assert.Nil(t, dr.To)
	assert.Equal(t, "open:open", dr.cacheKey())

	dr, err = ParseDateRange("2025-03-01", "")
	require.NoError(t, err)
	require.NotNil(t, dr.From)
	assert.Nil(t, dr.To)
	assert.Equal(t, "2025-03-01:open", dr.cacheKey())
}

func TestParseDateRangeRejectsGarbage(t *testing.T) {
	_, err := ParseDateRange("03/01/2025", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = ParseDateRange("", "yesterday")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestParseDateRangeSingleDayCoversWholeDay(t *testing.T) {
	dr, err := ParseDateRange("2025-06-15", "2025-06-15")
	require.NoError(t, err)

	middayIST := time.Date(2025, 6, 15, 13, 30, 0, 0, timeutil.IST)
	assert.True(t, !middayIST.Before(*dr.From) && !middayIST.After(*dr.To))
}
