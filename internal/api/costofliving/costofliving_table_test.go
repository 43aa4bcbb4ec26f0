package costofliving

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

func twoCityTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable([]types.LocationProfile{
		{ID: "A", CostIndex: 150, Housing: 2000, Food: 500, Transport: 100},
		{ID: "B", CostIndex: 100, Housing: 1500, Food: 400, Transport: 90},
	})
	require.NoError(t, err)
	return table
}

func TestNewTable(t *testing.T) {
	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := NewTable([]types.LocationProfile{
			{ID: "A", CostIndex: 100, Housing: 1, Food: 1, Transport: 1},
			{ID: "A", CostIndex: 120, Housing: 1, Food: 1, Transport: 1},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, api.ErrValidationFailed)
	})

	t.Run("rejects non-positive index", func(t *testing.T) {
		_, err := NewTable([]types.LocationProfile{{ID: "A", CostIndex: 0, Housing: 1, Food: 1, Transport: 1}})
		assert.ErrorIs(t, err, api.ErrValidationFailed)
	})

	t.Run("rejects empty table", func(t *testing.T) {
		_, err := NewTable(nil)
		assert.ErrorIs(t, err, api.ErrValidationFailed)
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		table := DefaultTable()
		all := table.All()
		require.Len(t, all, len(defaultLocations))
		for i, p := range defaultLocations {
			assert.Equal(t, p.ID, all[i].ID)
		}
	})
}

func TestTableLookup(t *testing.T) {
	table := DefaultTable()

	p, err := table.Lookup("San Francisco, CA")
	require.NoError(t, err)
	assert.Equal(t, 179.0, p.CostIndex)

	_, err = table.Lookup("Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnknownLocation))
	assert.False(t, table.Has("Atlantis"))
	assert.True(t, table.Has("Remote"))
}

func TestTableConvert(t *testing.T) {
	t.Run("high cost to baseline", func(t *testing.T) {
		got, err := twoCityTable(t).Convert(100000, "A", "B")
		require.NoError(t, err)
		assert.Equal(t, int64(66667), got)
	})

	t.Run("unknown location does not default to baseline", func(t *testing.T) {
		table := twoCityTable(t)
		_, err := table.Convert(100000, "A", "Nowhere")
		assert.ErrorIs(t, err, api.ErrUnknownLocation)
		_, err = table.Convert(100000, "Nowhere", "B")
		assert.ErrorIs(t, err, api.ErrUnknownLocation)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := twoCityTable(t).Convert(-1, "A", "B")
		assert.ErrorIs(t, err, api.ErrValidationFailed)
	})

	t.Run("identity rounds the amount", func(t *testing.T) {
		table := DefaultTable()
		for _, loc := range table.All() {
			for _, amount := range []float64{0, 99.4, 1234.5, 85000, 123456.78} {
				got, err := table.Convert(amount, loc.ID, loc.ID)
				require.NoError(t, err)
				assert.Equal(t, int64(Round(amount)), got, "%s %v", loc.ID, amount)
			}
		}
	})

	t.Run("round trip stays within one unit", func(t *testing.T) {
		table := DefaultTable()
		amounts := []float64{1, 999, 42000, 85000, 95000, 100000, 250001}
		for _, from := range table.All() {
			for _, to := range table.All() {
				for _, amount := range amounts {
					there, err := table.Convert(amount, from.ID, to.ID)
					require.NoError(t, err)
					back, err := table.Convert(float64(there), to.ID, from.ID)
					require.NoError(t, err)
					assert.InDelta(t, amount, float64(back), 1, "%s -> %s -> %s with %v", from.ID, to.ID, from.ID, amount)
				}
			}
		}
	})
}

func TestRound(t *testing.T) {
	assert.Equal(t, 19.0, Round(18.75))
	assert.Equal(t, 46.0, Round(45.81))
	assert.Equal(t, 3.0, Round(2.5))
	assert.Equal(t, -2.0, Round(-2.5))
}
