package encoder

import (
	"github.com/rs/zerolog/log"

	"featurize/pkg/table"
)

// QualityScale is the ordinal scale shared by the quality and condition
// ratings of the dataset.
var QualityScale = map[string]float64{
	"Ex":   5,
	"Gd":   4,
	"TA":   3,
	"Fa":   2,
	"Po":   1,
	"NA":   0,
	"None": 0,
}

// MapQuality returns a copy of t where every listed column holds the ordinal
// value of its rating. Values outside of the scale become null; columns that
// are not part of t are skipped.
func MapQuality(t *table.Table, columns ...string) *table.Table {
	return MapOrdinal(t, QualityScale, columns...)
}

func MapOrdinal(t *table.Table, scale map[string]float64, columns ...string) *table.Table {
	result := t.Clone()
	for _, column := range columns {
		if !result.Has(column) {
			log.Debug().Str("column", column).Msg("ordinal column not present, skipping")
			continue
		}
		unmapped := 0
		for i := 0; i < result.Len(); i++ {
			v := result.Get(i, column)
			mapped, ok := scale[v.String()]
			if v.IsNull() || !ok {
				result.Set(i, column, table.NullValue())
				unmapped++
				continue
			}
			result.Set(i, column, table.Num(mapped))
		}
		if unmapped > 0 {
			log.Debug().Str("column", column).Int("unmapped", unmapped).Msg("values outside of ordinal scale")
		}
	}
	return result
}
