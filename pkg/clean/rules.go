package clean

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"featurize/pkg/table"
)

// Rule is a single cleaning step. A rule may modify the table it is given and
// returns the table the next rule should work on.
type Rule interface {
	Apply(t *table.Table) (*table.Table, error)
	String() string
}

// present returns the columns that are part of t, logging the others.
func present(t *table.Table, rule Rule, columns []string) []string {
	result := make([]string, 0, len(columns))
	for _, c := range columns {
		if t.Has(c) {
			result = append(result, c)
		} else {
			log.Debug().Str("rule", rule.String()).Str("column", c).Msg("column not present, skipping")
		}
	}
	return result
}

// DropColumns removes columns
type DropColumns struct {
	Columns []string
}

func (r DropColumns) Apply(t *table.Table) (*table.Table, error) {
	t.DropColumns(r.Columns...)
	return t, nil
}

func (r DropColumns) String() string { return "drop-columns" }

// FillMode replaces nulls with the most frequent value of the column. Ties
// go to the smallest value.
type FillMode struct {
	Columns []string
}

func (r FillMode) Apply(t *table.Table) (*table.Table, error) {
	for _, c := range present(t, r, r.Columns) {
		values, _ := t.Column(c)
		mode, ok := Mode(values)
		if !ok {
			continue
		}
		fill(t, c, mode)
	}
	return t, nil
}

func (r FillMode) String() string { return "fill-mode" }

// FillConstant replaces nulls with Value
type FillConstant struct {
	Columns []string
	Value   table.Value
}

func (r FillConstant) Apply(t *table.Table) (*table.Table, error) {
	for _, c := range present(t, r, r.Columns) {
		fill(t, c, r.Value)
	}
	return t, nil
}

func (r FillConstant) String() string { return "fill-constant" }

// FillGroupMedian replaces nulls of Column with the median of the non-null
// values sharing the same By value. Groups without values and rows whose By
// value is null stay null.
type FillGroupMedian struct {
	Column string
	By     string
}

func (r FillGroupMedian) Apply(t *table.Table) (*table.Table, error) {
	if len(present(t, r, []string{r.Column, r.By})) < 2 {
		return t, nil
	}
	groups := map[string][]float64{}
	for i := 0; i < t.Len(); i++ {
		by := t.Get(i, r.By)
		if by.IsNull() {
			continue
		}
		if f, ok := t.Get(i, r.Column).Float(); ok {
			groups[by.String()] = append(groups[by.String()], f)
		}
	}
	medians := make(map[string]float64, len(groups))
	for key, values := range groups {
		medians[key] = Median(values)
	}
	for i := 0; i < t.Len(); i++ {
		if !t.Get(i, r.Column).IsNull() || t.Get(i, r.By).IsNull() {
			continue
		}
		if m, ok := medians[t.Get(i, r.By).String()]; ok {
			t.Set(i, r.Column, table.Num(m))
		}
	}
	return t, nil
}

func (r FillGroupMedian) String() string { return "fill-group-median" }

// DropDuplicates keeps the first of every group of identical rows.
type DropDuplicates struct{}

func (r DropDuplicates) Apply(t *table.Table) (*table.Table, error) {
	seen := map[string]struct{}{}
	result := t.Filter(func(i int) bool {
		key := rowKey(t.Row(i))
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
	if dropped := t.Len() - result.Len(); dropped > 0 {
		log.Debug().Int("rows", dropped).Msg("dropped duplicate rows")
	}
	return result, nil
}

func (r DropDuplicates) String() string { return "drop-duplicates" }

func rowKey(row []table.Value) string {
	var sb strings.Builder
	for _, v := range row {
		sb.WriteByte(byte(v.Kind()))
		sb.WriteString(v.String())
		sb.WriteByte(0)
	}
	return sb.String()
}

// ToNumeric converts columns to numbers. Values that do not parse become null.
type ToNumeric struct {
	Columns []string
}

func (r ToNumeric) Apply(t *table.Table) (*table.Table, error) {
	for _, c := range present(t, r, r.Columns) {
		for i := 0; i < t.Len(); i++ {
			f, ok := t.Get(i, c).Float()
			if !ok {
				t.Set(i, c, table.NullValue())
				continue
			}
			t.Set(i, c, table.Num(f))
		}
	}
	return t, nil
}

func (r ToNumeric) String() string { return "to-numeric" }

// ToYear keeps values that are a whole four digit year and nulls the rest.
type ToYear struct {
	Columns []string
}

func (r ToYear) Apply(t *table.Table) (*table.Table, error) {
	for _, c := range present(t, r, r.Columns) {
		for i := 0; i < t.Len(); i++ {
			f, ok := t.Get(i, c).Float()
			if !ok || f != math.Trunc(f) || f < 1000 || f > 9999 {
				t.Set(i, c, table.NullValue())
				continue
			}
			t.Set(i, c, table.Num(f))
		}
	}
	return t, nil
}

func (r ToYear) String() string { return "to-year" }

// ToString turns numeric codes into categories
type ToString struct {
	Columns []string
}

func (r ToString) Apply(t *table.Table) (*table.Table, error) {
	for _, c := range present(t, r, r.Columns) {
		for i := 0; i < t.Len(); i++ {
			if v := t.Get(i, c); !v.IsNull() {
				t.Set(i, c, table.Str(v.String()))
			}
		}
	}
	return t, nil
}

func (r ToString) String() string { return "to-string" }

// Log stores the natural logarithm of Column in Output.
type Log struct {
	Column string
	Output string
}

func (r Log) Apply(t *table.Table) (*table.Table, error) {
	values, err := t.Column(r.Column)
	if err != nil {
		log.Debug().Str("rule", r.String()).Str("column", r.Column).Msg("column not present, skipping")
		return t, nil
	}
	result := make([]table.Value, len(values))
	for i, v := range values {
		f, ok := v.Float()
		if !ok || f <= 0 {
			result[i] = table.NullValue()
			continue
		}
		result[i] = table.Num(math.Log(f))
	}
	return t, t.SetColumn(r.Output, result)
}

func (r Log) String() string { return "log" }

// Below keeps the rows whose Column is strictly lower than Limit. Rows where
// the column is null are dropped.
type Below struct {
	Column string
	Limit  float64
}

func (r Below) Apply(t *table.Table) (*table.Table, error) {
	if !t.Has(r.Column) {
		log.Debug().Str("rule", r.String()).Str("column", r.Column).Msg("column not present, skipping")
		return t, nil
	}
	result := t.Filter(func(i int) bool {
		f, ok := t.Get(i, r.Column).Float()
		return ok && f < r.Limit
	})
	if dropped := t.Len() - result.Len(); dropped > 0 {
		log.Debug().Str("column", r.Column).Float64("limit", r.Limit).Int("rows", dropped).Msg("dropped outliers")
	}
	return result, nil
}

func (r Below) String() string { return fmt.Sprintf("below(%s<%v)", r.Column, r.Limit) }

// RequireComplete fails when any cell of the table is null.
type RequireComplete struct{}

func (r RequireComplete) Apply(t *table.Table) (*table.Table, error) {
	var incomplete []string
	for _, c := range t.Columns() {
		values, _ := t.Column(c)
		for _, v := range values {
			if v.IsNull() {
				incomplete = append(incomplete, c)
				break
			}
		}
	}
	if len(incomplete) > 0 {
		return nil, errors.Wrap(ErrIncomplete, strings.Join(incomplete, ", "))
	}
	return t, nil
}

func (r RequireComplete) String() string { return "require-complete" }

func fill(t *table.Table, column string, value table.Value) {
	filled := 0
	for i := 0; i < t.Len(); i++ {
		if t.Get(i, column).IsNull() {
			t.Set(i, column, value)
			filled++
		}
	}
	if filled > 0 {
		log.Debug().Str("column", column).Str("value", value.String()).Int("rows", filled).Msg("filled missing values")
	}
}

// Mode returns the most frequent non-null value. Ties are resolved toward
// the smallest number, or the lexically smallest string.
func Mode(values []table.Value) (table.Value, bool) {
	type candidate struct {
		value table.Value
		count int
	}
	byKey := map[string]*candidate{}
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		key := rowKey([]table.Value{v})
		if c, ok := byKey[key]; ok {
			c.count++
		} else {
			byKey[key] = &candidate{value: v, count: 1}
		}
	}
	if len(byKey) == 0 {
		return table.NullValue(), false
	}
	candidates := make([]*candidate, 0, len(byKey))
	for _, c := range byKey {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return less(candidates[i].value, candidates[j].value)
	})
	return candidates[0].value, true
}

func less(a, b table.Value) bool {
	if a.Kind() != b.Kind() {
		return a.Kind() < b.Kind()
	}
	if a.Kind() == table.Number {
		fa, _ := a.Float()
		fb, _ := b.Float()
		return fa < fb
	}
	return a.String() < b.String()
}

// Median returns the middle value of values, or the mean of the two middle
// values for an even count.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
