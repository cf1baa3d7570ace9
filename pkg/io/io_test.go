package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"featurize/pkg/model"
	"featurize/pkg/table"
)

const houses = `Id,MSSubClass,Neighborhood,LotFrontage,Alley,SalePrice
1,60,CollgCr,65,NA,208500
2,20,Veenker,80,,181500
3,60,CollgCr,,Grvl,223500
4,70,Crawfor,60.5,NA
5,60,NoRidge,84,Pave,250000
`

func TestReadTable(t *testing.T) {
	tbl, dataErrors, err := ReadTable(strings.NewReader(houses))
	require.NoError(t, err)
	require.Equal(t, []string{"Id", "MSSubClass", "Neighborhood", "LotFrontage", "Alley", "SalePrice"}, tbl.Columns())
	require.Equal(t, 4, tbl.Len())
	require.Equal(t, 1, len(dataErrors)) // Line 5 has no SalePrice
	require.Equal(t, 5, dataErrors[0].Line)

	require.Equal(t, table.Num(60), tbl.Get(0, "MSSubClass"))
	require.Equal(t, table.Str("CollgCr"), tbl.Get(0, "Neighborhood"))
	require.True(t, tbl.Get(2, "LotFrontage").IsNull())
	require.True(t, tbl.Get(0, "Alley").IsNull())
	require.True(t, tbl.Get(1, "Alley").IsNull())
	require.Equal(t, table.Str("Grvl"), tbl.Get(2, "Alley"))
	require.Equal(t, table.Num(250000), tbl.Get(3, "SalePrice"))
}

func TestReadTable_EmptyInput(t *testing.T) {
	_, _, err := ReadTable(strings.NewReader(""))
	require.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	tbl, _, err := ReadTable(strings.NewReader(houses))
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, WriteTable(&b, tbl))
	require.Equal(t, `Id,MSSubClass,Neighborhood,LotFrontage,Alley,SalePrice
1,60,CollgCr,65,,208500
2,20,Veenker,80,,181500
3,60,CollgCr,,Grvl,223500
5,60,NoRidge,84,Pave,250000
`, b.String())

	again, _, err := ReadTable(&b)
	require.NoError(t, err)
	require.Equal(t, tbl.Fingerprint(), again.Fingerprint())
}

func TestFileCodecs(t *testing.T) {
	tbl, _, err := ReadTable(strings.NewReader(houses))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"train.csv", "train.csv.gz", "train.csv.zst", "train.csv.lz4"} {
		fileName := filepath.Join(dir, name)
		require.NoError(t, WriteFile(fileName, tbl))
		read, dataErrors, err := ReadFile(fileName)
		require.NoError(t, err, name)
		require.Empty(t, dataErrors)
		require.Equal(t, tbl.Fingerprint(), read.Fingerprint(), name)
	}

	require.Equal(t, Gzip, CodecFor("a/b.CSV.GZ"))
	require.Equal(t, Plain, CodecFor("train.csv"))

	_, _, err = ReadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}

func TestSaveLoadModel(t *testing.T) {
	m := &model.Model{
		MetaData: &model.Metadata{
			Target:         "SalePrice",
			TargetFeatures: []string{"Neighborhood"},
			NumSplits:      5,
			Alpha:          5,
			RndSeed:        42,
		},
		TargetMeans: &model.TargetMeans{
			Target:     "SalePrice",
			Features:   []string{"Neighborhood"},
			GlobalMean: 180921.19,
			Means:      map[string]map[string]float64{"Neighborhood": {"CollgCr": 197965.77}},
		},
		OneHot: &model.OneHotCategories{
			Features:   []string{"CentralAir"},
			Categories: map[string]model.NameMap{"CentralAir": model.NewSortedNameMap([]string{"Y", "N"})},
		},
	}

	var b bytes.Buffer
	require.NoError(t, SaveModel(m, &b))
	loaded, err := LoadModel(&b)
	require.NoError(t, err)
	require.Equal(t, m, loaded)

	_, err = LoadModel(strings.NewReader("not a model"))
	require.Error(t, err)
}
