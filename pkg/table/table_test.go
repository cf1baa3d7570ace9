package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *Table {
	tbl, err := New("Id", "Neighborhood", "SalePrice")
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow(Num(1), Str("CollgCr"), Num(208500)))
	require.NoError(t, tbl.AppendRow(Num(2), Str("Veenker"), Num(181500)))
	require.NoError(t, tbl.AppendRow(Num(3), NullValue(), Num(223500)))
	return tbl
}

func TestNew_DuplicateColumn(t *testing.T) {
	_, err := New("a", "b", "a")
	require.Error(t, err)
}

func TestValue(t *testing.T) {
	require.True(t, Num(math.NaN()).IsNull())
	require.Equal(t, "60", Num(60).String())
	require.Equal(t, "65.5", Num(65.5).String())

	f, ok := Str("60").Float()
	require.True(t, ok)
	require.Equal(t, 60.0, f)

	_, ok = Str("RL").Float()
	require.False(t, ok)
	_, ok = NullValue().Float()
	require.False(t, ok)

	require.True(t, Num(1).Equal(Num(1)))
	require.False(t, Num(1).Equal(Str("1")))
	require.True(t, NullValue().Equal(NullValue()))
}

func TestAppendRow_WrongWidth(t *testing.T) {
	tbl := newTestTable(t)
	require.Error(t, tbl.AppendRow(Num(1)))
}

func TestSetColumn(t *testing.T) {
	tbl := newTestTable(t)
	require.NoError(t, tbl.SetColumn("Neighborhood_target_enc", []Value{Num(1), Num(2), Num(3)}))
	require.Equal(t, []string{"Id", "Neighborhood", "SalePrice", "Neighborhood_target_enc"}, tbl.Columns())
	require.Equal(t, Num(2), tbl.Get(1, "Neighborhood_target_enc"))

	require.NoError(t, tbl.SetColumn("Id", []Value{Num(7), Num(8), Num(9)}))
	require.Equal(t, 4, tbl.Width())
	require.Equal(t, Num(9), tbl.Get(2, "Id"))

	require.Error(t, tbl.SetColumn("short", []Value{Num(1)}))
}

func TestDropColumns(t *testing.T) {
	tbl := newTestTable(t)
	tbl.DropColumns("Neighborhood", "Missing")
	require.Equal(t, []string{"Id", "SalePrice"}, tbl.Columns())
	require.Equal(t, Num(223500), tbl.Get(2, "SalePrice"))
	require.False(t, tbl.Has("Neighborhood"))
}

func TestFilterAndClone(t *testing.T) {
	tbl := newTestTable(t)
	filtered := tbl.Filter(func(i int) bool { return !tbl.Get(i, "Neighborhood").IsNull() })
	require.Equal(t, 2, filtered.Len())
	require.Equal(t, 3, tbl.Len())

	clone := tbl.Clone()
	clone.Set(0, "Neighborhood", Str("NAmes"))
	require.Equal(t, Str("CollgCr"), tbl.Get(0, "Neighborhood"))
	require.Equal(t, tbl.Fingerprint(), newTestTable(t).Fingerprint())
	require.NotEqual(t, tbl.Fingerprint(), clone.Fingerprint())
}

func TestColumn(t *testing.T) {
	tbl := newTestTable(t)
	values, err := tbl.Column("SalePrice")
	require.NoError(t, err)
	require.Len(t, values, 3)

	_, err = tbl.Column("LotArea")
	require.Error(t, err)
}

func TestFingerprint_DistinguishesKinds(t *testing.T) {
	a, err := New("x")
	require.NoError(t, err)
	require.NoError(t, a.AppendRow(Num(1)))
	b, err := New("x")
	require.NoError(t, err)
	require.NoError(t, b.AppendRow(Str("1")))
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
