package encoder

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"featurize/pkg/table"
)

func airTable(t *testing.T, values ...table.Value) *table.Table {
	tbl, err := table.New("Id", "CentralAir")
	require.NoError(t, err)
	for i, v := range values {
		require.NoError(t, tbl.AppendRow(table.Num(float64(i+1)), v))
	}
	return tbl
}

func TestOneHot(t *testing.T) {
	train := airTable(t, table.Str("Y"), table.Str("N"), table.Str("Y"), table.NullValue())
	categories, err := OneHot{Features: []string{"CentralAir"}}.Fit(train)
	require.NoError(t, err)
	require.Equal(t, []string{"N", "Y"}, categories.Categories["CentralAir"].Names())

	encoded, err := categories.Transform(train, false)
	require.NoError(t, err)
	require.Equal(t, []string{"Id", "CentralAir", "CentralAir_N", "CentralAir_Y"}, encoded.Columns())
	require.Equal(t, table.Num(0), encoded.Get(0, "CentralAir_N"))
	require.Equal(t, table.Num(1), encoded.Get(0, "CentralAir_Y"))
	require.Equal(t, table.Num(1), encoded.Get(1, "CentralAir_N"))
	require.Equal(t, table.Num(0), encoded.Get(3, "CentralAir_N"))
	require.Equal(t, table.Num(0), encoded.Get(3, "CentralAir_Y"))

	test := airTable(t, table.Str("P"), table.Str("N"))
	encodedTest, err := categories.Transform(test, true)
	require.NoError(t, err)
	require.Equal(t, []string{"Id", "CentralAir_N", "CentralAir_Y"}, encodedTest.Columns())
	require.Equal(t, table.Num(0), encodedTest.Get(0, "CentralAir_N"))
	require.Equal(t, table.Num(0), encodedTest.Get(0, "CentralAir_Y"))
	require.Equal(t, table.Num(1), encodedTest.Get(1, "CentralAir_N"))
}

func TestOneHot_MissingFeature(t *testing.T) {
	train := airTable(t, table.Str("Y"))
	_, err := OneHot{Features: []string{"Street"}}.Fit(train)
	require.True(t, errors.Is(err, ErrConfiguration))
}

func TestMapQuality(t *testing.T) {
	tbl, err := table.New("ExterQual", "BsmtQual", "Neighborhood")
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow(table.Str("Ex"), table.Str("None"), table.Str("NAmes")))
	require.NoError(t, tbl.AppendRow(table.Str("TA"), table.NullValue(), table.Str("Gd")))
	require.NoError(t, tbl.AppendRow(table.Str("Po"), table.Str("Av"), table.Str("OldTown")))

	mapped := MapQuality(tbl, "ExterQual", "BsmtQual", "PoolQC")
	require.Equal(t, table.Num(5), mapped.Get(0, "ExterQual"))
	require.Equal(t, table.Num(3), mapped.Get(1, "ExterQual"))
	require.Equal(t, table.Num(1), mapped.Get(2, "ExterQual"))
	require.Equal(t, table.Num(0), mapped.Get(0, "BsmtQual"))
	require.True(t, mapped.Get(1, "BsmtQual").IsNull())
	require.True(t, mapped.Get(2, "BsmtQual").IsNull())
	require.Equal(t, table.Str("Gd"), mapped.Get(1, "Neighborhood"))
	require.Equal(t, table.Str("Ex"), tbl.Get(0, "ExterQual"))
}
