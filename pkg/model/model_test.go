package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"featurize/pkg/fold"
	"featurize/pkg/table"
)

func neighborhoods(t *testing.T, values ...table.Value) *table.Table {
	data, err := table.New("Neighborhood", "Street")
	require.NoError(t, err)
	for _, v := range values {
		require.NoError(t, data.AppendRow(v, table.Str("Pave")))
	}
	return data
}

func TestNameMap(t *testing.T) {
	m := NewSortedNameMap([]string{"Pave", "Grvl", "Pave"})
	require.Equal(t, 2, m.Size())
	require.Equal(t, []string{"Grvl", "Pave"}, m.Names())

	index, ok := m.ContainsName("Pave")
	require.True(t, ok)
	require.Equal(t, 1, index)
	_, ok = m.ContainsName("Dirt")
	require.False(t, ok)
}

func TestTargetMeans_Transform(t *testing.T) {
	means := &TargetMeans{
		Target:     "SalePrice",
		Features:   []string{"Neighborhood"},
		GlobalMean: 150,
		Means:      map[string]map[string]float64{"Neighborhood": {"A": 100, "B": 200}},
	}
	data := neighborhoods(t, table.Str("A"), table.Str("B"), table.Str("C"), table.NullValue())

	encoded, err := means.Transform(data, false)
	require.NoError(t, err)
	require.Equal(t, []string{"Neighborhood", "Street", "Neighborhood_target_enc"}, encoded.Columns())
	column, err := encoded.Column("Neighborhood_target_enc")
	require.NoError(t, err)
	require.Equal(t, []table.Value{table.Num(100), table.Num(200), table.Num(150), table.Num(150)}, column)
	require.Equal(t, 2, data.Width())

	encoded, err = means.Transform(data, true)
	require.NoError(t, err)
	require.Equal(t, []string{"Street", "Neighborhood_target_enc"}, encoded.Columns())

	_, err = means.Transform(encoded, false)
	require.True(t, errors.Is(err, fold.ErrConfiguration))
}

func TestOneHotCategories_Transform(t *testing.T) {
	oneHot := &OneHotCategories{
		Features:   []string{"Neighborhood"},
		Categories: map[string]NameMap{"Neighborhood": NewSortedNameMap([]string{"B", "A"})},
	}
	data := neighborhoods(t, table.Str("A"), table.Str("B"), table.Str("C"), table.NullValue())

	encoded, err := oneHot.Transform(data, true)
	require.NoError(t, err)
	require.Equal(t, []string{"Street", "Neighborhood_A", "Neighborhood_B"}, encoded.Columns())
	a, err := encoded.Column("Neighborhood_A")
	require.NoError(t, err)
	b, err := encoded.Column("Neighborhood_B")
	require.NoError(t, err)
	require.Equal(t, []table.Value{table.Num(1), table.Num(0), table.Num(0), table.Num(0)}, a)
	require.Equal(t, []table.Value{table.Num(0), table.Num(1), table.Num(0), table.Num(0)}, b)
}
