package dataframe

import (
	"testing"

	"github.com/arloliu/go-gscf/gscf"
	"github.com/stretchr/testify/require"
)

func TestFromRecords(t *testing.T) {
	require := require.New(t)

	t.Run("Basic Reshape", func(t *testing.T) {
		table, err := FromRecords([]gscf.Record{
			{"token": "s1", "title": "PPS study", "code": "PPS1"},
			{"token": "s2", "title": "Other study", "code": "OTH"},
		})
		require.NoError(err)
		require.Equal(2, table.Len())
		require.Equal([]string{"s1", "s2"}, table.Tokens())
		require.Equal([]string{"code", "title"}, table.Columns())

		title, ok := table.Value("s1", "title")
		require.True(ok)
		require.Equal("PPS study", title)
	})

	t.Run("Column First Seen Order", func(t *testing.T) {
		table, err := FromRecords([]gscf.Record{
			{"token": "a", "weight": 70},
			{"token": "b", "age": 31, "weight": 65},
		})
		require.NoError(err)
		require.Equal([]string{"weight", "age"}, table.Columns())
	})

	t.Run("Missing Token", func(t *testing.T) {
		_, err := FromRecords([]gscf.Record{
			{"token": "a", "x": 1},
			{"x": 2},
		})
		var target *MissingTokenError
		require.ErrorAs(err, &target)
		require.Equal(1, target.Index)
	})

	t.Run("Duplicate Token Keeps Index Position", func(t *testing.T) {
		table, err := FromRecords([]gscf.Record{
			{"token": "a", "x": 1},
			{"token": "b", "x": 2},
			{"token": "a", "x": 3},
		})
		require.NoError(err)
		require.Equal([]string{"a", "b"}, table.Tokens())

		x, ok := table.Value("a", "x")
		require.True(ok)
		require.Equal(3, x)
	})

	t.Run("Empty Input", func(t *testing.T) {
		table, err := FromRecords(nil)
		require.NoError(err)
		require.Zero(table.Len())
		require.Empty(table.Tokens())
	})
}

func TestFromMeasurements(t *testing.T) {
	require := require.New(t)

	table, err := FromMeasurements(map[string]gscf.Record{
		"tok2": {"x": 3, "y": 4},
		"tok1": {"x": 1, "y": 2},
	})
	require.NoError(err)
	require.Equal([]string{"tok1", "tok2"}, table.Tokens())
	require.Equal([]string{"x", "y"}, table.Columns())

	for token, want := range map[string]map[string]int{
		"tok1": {"x": 1, "y": 2},
		"tok2": {"x": 3, "y": 4},
	} {
		for column, value := range want {
			got, ok := table.Value(token, column)
			require.True(ok)
			require.Equal(value, got)
		}
	}
}

func TestTableAccessors(t *testing.T) {
	require := require.New(t)

	table, err := FromRecords([]gscf.Record{
		{"token": "a", "x": 1},
	})
	require.NoError(err)

	t.Run("Row Includes Token", func(t *testing.T) {
		require.Equal(gscf.Record{"token": "a", "x": 1}, table.Row("a"))
	})

	t.Run("Unknown Token", func(t *testing.T) {
		require.Nil(table.Row("zz"))

		_, ok := table.Value("zz", "x")
		require.False(ok)
	})

	t.Run("Row Is A Copy", func(t *testing.T) {
		row := table.Row("a")
		row["x"] = 99

		x, ok := table.Value("a", "x")
		require.True(ok)
		require.Equal(1, x)
	})

	t.Run("Tokens And Columns Are Copies", func(t *testing.T) {
		table.Tokens()[0] = "mutated"
		table.Columns()[0] = "mutated"
		require.Equal([]string{"a"}, table.Tokens())
		require.Equal([]string{"x"}, table.Columns())
	})
}

func TestRecordsRoundTrip(t *testing.T) {
	require := require.New(t)

	original, err := FromRecords([]gscf.Record{
		{"token": "s1", "species": "mouse", "weight": 22.5},
		{"token": "s2", "species": "rat"},
	})
	require.NoError(err)

	rebuilt, err := FromRecords(original.Records())
	require.NoError(err)

	require.Equal(original.Tokens(), rebuilt.Tokens())
	require.Equal(original.Columns(), rebuilt.Columns())
	require.Equal(original.Records(), rebuilt.Records())
}
