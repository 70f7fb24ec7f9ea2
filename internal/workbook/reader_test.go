package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows_HeaderDetection(t *testing.T) {
	t.Run("skips title rows before the real header", func(t *testing.T) {
		matrix := [][]string{
			{"2025 Weekly Stats"},
			{},
			{"Player", "Team", "Yds", "TD"},
			{"Sam Smith", "BUF", "300", "3"},
		}

		rows := ReadRows(matrix)
		require.Len(t, rows, 1)

		v, ok := rows[0].Get("Player")
		require.True(t, ok)
		assert.Equal(t, "Sam Smith", v)
		assert.Equal(t, []string{"Player", "Team", "Yds", "TD"}, rows[0].Keys())
	})

	t.Run("falls back to row zero when nothing looks like a header", func(t *testing.T) {
		matrix := [][]string{
			{"a", "b", "c"},
			{"1", "2", "3"},
		}

		rows := ReadRows(matrix)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"a", "b", "c"}, rows[0].Keys())
	})

	t.Run("empty matrix yields no rows", func(t *testing.T) {
		assert.Nil(t, ReadRows(nil))
		assert.Nil(t, ReadRows([][]string{}))
	})
}

func TestReadRows_DuplicateHeaders(t *testing.T) {
	matrix := [][]string{
		{"Player", "Team", "Yds", "TD", "Yds", "TD"},
		{"Sam Smith", "BUF", "300", "3", "12", "1"},
	}

	rows := ReadRows(matrix)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{"Player", "Team", "Yds", "TD", "Yds.1", "TD.1"}, rows[0].Keys())

	first, _ := rows[0].Get("Yds")
	second, _ := rows[0].Get("Yds.1")
	assert.Equal(t, "300", first)
	assert.Equal(t, "12", second)
}

func TestReadRows_BlankHeaderSentinel(t *testing.T) {
	matrix := [][]string{
		{"Player", "Team", "", "Opp"},
		{"Sam Smith", "BUF", "@", "NYJ"},
	}

	rows := ReadRows(matrix)
	require.Len(t, rows, 1)

	marker, ok := rows[0].Get("@")
	require.True(t, ok)
	assert.Equal(t, "@", marker)
}

func TestReadRows_DropsBlankRows(t *testing.T) {
	matrix := [][]string{
		{"Player", "Team", "Yds"},
		{"Sam Smith", "BUF", "300"},
		{"", "", ""},
		{},
		{"Alex Cole", "NYJ", "60"},
	}

	rows := ReadRows(matrix)
	assert.Len(t, rows, 2)
}

func TestReadRows_ShortDataRows(t *testing.T) {
	matrix := [][]string{
		{"Player", "Team", "Yds", "TD"},
		{"Sam Smith", "BUF"},
	}

	rows := ReadRows(matrix)
	require.Len(t, rows, 1)

	yds, ok := rows[0].Get("Yds")
	require.True(t, ok)
	assert.Equal(t, "", yds)
}

func TestRow_Get(t *testing.T) {
	rows := ReadRows([][]string{
		{"Player", "Team", "Int"},
		{"Sam Smith", "BUF", "2"},
	})
	require.Len(t, rows, 1)
	r := rows[0]

	t.Run("case insensitive", func(t *testing.T) {
		v, ok := r.Get("INT")
		require.True(t, ok)
		assert.Equal(t, "2", v)
	})

	t.Run("first matching candidate wins", func(t *testing.T) {
		v, ok := r.Get("Interceptions", "Int")
		require.True(t, ok)
		assert.Equal(t, "2", v)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := r.Get("Sacks")
		assert.False(t, ok)
	})
}

func TestRow_Num(t *testing.T) {
	rows := ReadRows([][]string{
		{"Player", "Team", "Yds", "PassYds", "TD"},
		{"Sam Smith", "BUF", "", "180", "abc"},
	})
	require.Len(t, rows, 1)
	r := rows[0]

	t.Run("blank cell falls through to next candidate", func(t *testing.T) {
		assert.Equal(t, 180.0, r.Num("Yds", "PassYds"))
	})

	t.Run("malformed cell coerces to zero without falling through", func(t *testing.T) {
		assert.Equal(t, 0.0, r.Num("TD", "PassYds"))
	})

	t.Run("no candidates match", func(t *testing.T) {
		assert.Equal(t, 0.0, r.Num("Sacks"))
	})
}
