package encoder

import (
	"featurize/pkg/model"
	"featurize/pkg/table"
)

// OneHot indexes the categories of low-cardinality features so they can be
// expanded into indicator columns.
type OneHot struct {
	Features []string
}

// Fit collects the distinct non-null values of every feature, in lexical
// order.
func (o OneHot) Fit(t *table.Table) (*model.OneHotCategories, error) {
	if err := RequireColumns(t, o.Features...); err != nil {
		return nil, err
	}
	result := &model.OneHotCategories{
		Features:   append([]string(nil), o.Features...),
		Categories: make(map[string]model.NameMap, len(o.Features)),
	}
	for _, feature := range o.Features {
		var names []string
		for i := 0; i < t.Len(); i++ {
			if v := t.Get(i, feature); !v.IsNull() {
				names = append(names, v.String())
			}
		}
		result.Categories[feature] = model.NewSortedNameMap(names)
	}
	return result, nil
}
