package model

import "sort"

// NameMap implements a bidirectional mapping between a name and an index
type NameMap struct {
	NameToIndex map[string]int
	IndexToName map[int]string
}

func (f NameMap) Set(name string, index int) {
	f.NameToIndex[name] = index
	f.IndexToName[index] = name
}

func (f NameMap) Size() int {
	return len(f.IndexToName)
}

func (f NameMap) ContainsName(name string) (int, bool) {
	index, ok := f.NameToIndex[name]
	return index, ok

}

// Names returns the names ordered by index.
func (f NameMap) Names() []string {
	result := make([]string, 0, len(f.IndexToName))
	for i := 0; i < len(f.IndexToName); i++ {
		result = append(result, f.IndexToName[i])
	}
	return result
}

func NewNameMap() NameMap {
	return NameMap{
		NameToIndex: map[string]int{},
		IndexToName: map[int]string{},
	}
}

// NewSortedNameMap indexes the distinct names in lexical order.
func NewSortedNameMap(names []string) NameMap {
	unique := map[string]struct{}{}
	for _, name := range names {
		unique[name] = struct{}{}
	}
	sorted := make([]string, 0, len(unique))
	for name := range unique {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	m := NewNameMap()
	for i, name := range sorted {
		m.Set(name, i)
	}
	return m
}

// Metadata records how the encoders in a Model were fitted, so the same
// transformation can be replayed on new data.
type Metadata struct {
	// Columns are the training table columns after cleaning, before encoding
	Columns []string

	// Target is the name of the column the target encoding was computed from
	Target string

	TargetFeatures []string
	OneHotFeatures []string
	QualityColumns []string

	NumSplits    int
	Alpha        float64
	RndSeed      int64
	DropOriginal bool

	// TrainFingerprint is the fingerprint of the encoded training table
	TrainFingerprint uint64
}
