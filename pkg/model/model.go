package model

import (
	"github.com/pkg/errors"

	"featurize/pkg/fold"
	"featurize/pkg/table"
)

const TargetEncodingSuffix = "_target_enc"

// TargetEncodedColumn returns the name of the column holding the target
// encoding of feature.
func TargetEncodedColumn(feature string) string {
	return feature + TargetEncodingSuffix
}

// OneHotColumn returns the name of the indicator column of a category.
func OneHotColumn(feature, category string) string {
	return feature + "_" + category
}

// Model is the fitted state of the encoders, persisted between the training
// and the inference runs.
type Model struct {
	MetaData    *Metadata
	TargetMeans *TargetMeans
	OneHot      *OneHotCategories
}

// TargetMeans maps, per feature, every category seen in the training table to
// the mean target of its rows. Categories that were never seen take
// GlobalMean.
type TargetMeans struct {
	Target     string
	Features   []string
	GlobalMean float64
	Means      map[string]map[string]float64
}

// Lookup returns the encoding of category for feature.
func (m *TargetMeans) Lookup(feature string, category table.Value) float64 {
	if category.IsNull() {
		return m.GlobalMean
	}
	if mean, ok := m.Means[feature][category.String()]; ok {
		return mean
	}
	return m.GlobalMean
}

// Transform returns a copy of t with a target encoded column appended for
// every feature. The input table does not need the target column.
func (m *TargetMeans) Transform(t *table.Table, dropOriginal bool) (*table.Table, error) {
	for _, feature := range m.Features {
		if !t.Has(feature) {
			return nil, errors.Wrapf(fold.ErrConfiguration, "feature column %s not found", feature)
		}
	}

	result := t.Clone()
	for _, feature := range m.Features {
		encoded := make([]table.Value, t.Len())
		for i := range encoded {
			encoded[i] = table.Num(m.Lookup(feature, t.Get(i, feature)))
		}
		if err := result.SetColumn(TargetEncodedColumn(feature), encoded); err != nil {
			return nil, err
		}
	}
	if dropOriginal {
		result.DropColumns(m.Features...)
	}
	return result, nil
}

// OneHotCategories holds, per feature, the index of every category seen
// during fitting. Indicator columns are emitted in index order.
type OneHotCategories struct {
	Features   []string
	Categories map[string]NameMap
}

// Transform returns a copy of t with one indicator column per known category.
// Unknown categories and nulls produce a row of zeros.
func (o *OneHotCategories) Transform(t *table.Table, dropOriginal bool) (*table.Table, error) {
	for _, feature := range o.Features {
		if !t.Has(feature) {
			return nil, errors.Wrapf(fold.ErrConfiguration, "feature column %s not found", feature)
		}
	}

	result := t.Clone()
	for _, feature := range o.Features {
		categories := o.Categories[feature]
		columns := make([][]table.Value, categories.Size())
		for c := range columns {
			columns[c] = make([]table.Value, t.Len())
			for i := range columns[c] {
				columns[c][i] = table.Num(0)
			}
		}
		for i := 0; i < t.Len(); i++ {
			v := t.Get(i, feature)
			if v.IsNull() {
				continue
			}
			if index, ok := categories.ContainsName(v.String()); ok {
				columns[index][i] = table.Num(1)
			}
		}
		for index, name := range categories.Names() {
			if err := result.SetColumn(OneHotColumn(feature, name), columns[index]); err != nil {
				return nil, err
			}
		}
	}
	if dropOriginal {
		result.DropColumns(o.Features...)
	}
	return result, nil
}
