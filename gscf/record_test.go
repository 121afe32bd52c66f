package gscf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordToken(t *testing.T) {
	require := require.New(t)

	require.Equal("s1", Record{"token": "s1", "title": "PPS study"}.Token())
	require.Empty(Record{"title": "no token"}.Token())
	require.Empty(Record{"token": 42}.Token())
	require.Empty(Record(nil).Token())
}

func TestMeasurementRecords(t *testing.T) {
	require := require.New(t)

	t.Run("Flatten And Order", func(t *testing.T) {
		byToken := map[string]Record{
			"tok2": {"x": 3, "y": 4},
			"tok1": {"x": 1, "y": 2},
		}

		records := MeasurementRecords(byToken)
		require.Len(records, 2)
		require.Equal(Record{"token": "tok1", "x": 1, "y": 2}, records[0])
		require.Equal(Record{"token": "tok2", "x": 3, "y": 4}, records[1])
	})

	t.Run("Injected Token Wins", func(t *testing.T) {
		records := MeasurementRecords(map[string]Record{
			"tok1": {"token": "bogus", "x": 1},
		})
		require.Len(records, 1)
		require.Equal("tok1", records[0].Token())
	})

	t.Run("Empty Mapping", func(t *testing.T) {
		require.Empty(MeasurementRecords(nil))
	})
}
