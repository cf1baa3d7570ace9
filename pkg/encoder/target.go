package encoder

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"featurize/pkg/fold"
	"featurize/pkg/model"
	"featurize/pkg/table"
)

// ErrConfiguration is wrapped by every error caused by invalid encoder
// parameters or by an input table that does not satisfy them.
var ErrConfiguration = fold.ErrConfiguration

// TargetEncoder replaces categorical features with smoothed, out-of-fold
// means of a numeric target.
type TargetEncoder struct {
	Features []string
	Target   string

	// NumSplits is the number of folds used to compute out-of-fold statistics
	NumSplits int

	// Alpha is the smoothing strength, see Smooth
	Alpha float64

	RndSeed int64

	// DropOriginal removes the encoded categorical columns from the output
	DropOriginal bool
}

func NewTargetEncoder(target string, features ...string) *TargetEncoder {
	return &TargetEncoder{
		Features:  features,
		Target:    target,
		NumSplits: fold.DefaultSplits,
		Alpha:     DefaultAlpha,
		RndSeed:   fold.DefaultSeed,
	}
}

// FitTransform returns a copy of t with a {feature}_target_enc column for
// every feature. The value of each row is computed from the rows outside of
// its validation fold only: the category mean over those rows smoothed toward
// their overall mean, or that overall mean when the category does not occur
// in them.
func (e *TargetEncoder) FitTransform(t *table.Table) (*table.Table, error) {
	targets, err := e.validate(t)
	if err != nil {
		return nil, err
	}
	folds, err := fold.KFold(t.Len(), e.NumSplits, e.RndSeed)
	if err != nil {
		return nil, err
	}

	result := t.Clone()
	globalMean := stat.Mean(targets, nil)
	for _, feature := range e.Features {
		column, err := t.Column(feature)
		if err != nil {
			return nil, errors.Wrapf(ErrConfiguration, "feature column %s not found", feature)
		}
		encoded := e.encodeOutOfFold(column, targets, folds)
		if err := result.SetColumn(model.TargetEncodedColumn(feature), encoded); err != nil {
			return nil, err
		}
		log.Debug().Str("feature", feature).Float64("global_mean", globalMean).Int("folds", len(folds)).Msg("target encoded")
	}
	if e.DropOriginal {
		result.DropColumns(e.Features...)
	}
	return result, nil
}

func (e *TargetEncoder) encodeOutOfFold(column []table.Value, targets []float64, folds []fold.Fold) []table.Value {
	encoded := make([]table.Value, len(column))
	for _, f := range folds {
		stats := categoryStats{}
		trainTargets := make([]float64, len(f.Train))
		for k, i := range f.Train {
			trainTargets[k] = targets[i]
			if !column[i].IsNull() {
				stats.add(column[i].String(), targets[i])
			}
		}
		foldMean := stat.Mean(trainTargets, nil)

		smoothed := make(map[string]float64, len(stats))
		for category, s := range stats {
			smoothed[category] = Smooth(s.mean(), float64(s.count), foldMean, e.Alpha)
		}

		for _, i := range f.Validation {
			value := foldMean
			if !column[i].IsNull() {
				if s, ok := smoothed[column[i].String()]; ok {
					value = s
				}
			}
			encoded[i] = table.Num(value)
		}
	}
	return encoded
}

// Fit computes the mapping applied to data that has no target: the raw mean
// of every category over the whole table, falling back to the table mean.
func (e *TargetEncoder) Fit(t *table.Table) (*model.TargetMeans, error) {
	targets, err := e.validate(t)
	if err != nil {
		return nil, err
	}

	means := &model.TargetMeans{
		Target:     e.Target,
		Features:   append([]string(nil), e.Features...),
		GlobalMean: stat.Mean(targets, nil),
		Means:      make(map[string]map[string]float64, len(e.Features)),
	}
	for _, feature := range e.Features {
		column, err := t.Column(feature)
		if err != nil {
			return nil, errors.Wrapf(ErrConfiguration, "feature column %s not found", feature)
		}
		stats := categoryStats{}
		for i, v := range column {
			if !v.IsNull() {
				stats.add(v.String(), targets[i])
			}
		}
		featureMeans := make(map[string]float64, len(stats))
		for category, s := range stats {
			featureMeans[category] = s.mean()
		}
		means.Means[feature] = featureMeans
	}
	return means, nil
}

// validate checks the encoder parameters against t and returns the target
// column as numbers.
func (e *TargetEncoder) validate(t *table.Table) ([]float64, error) {
	if e.NumSplits < 2 {
		return nil, errors.Wrapf(ErrConfiguration, "number of splits must be at least 2, got %d", e.NumSplits)
	}
	if e.Alpha < 0 {
		return nil, errors.Wrapf(ErrConfiguration, "smoothing alpha must not be negative, got %v", e.Alpha)
	}
	if t.Len() == 0 {
		return nil, errors.Wrap(ErrConfiguration, "table has no rows")
	}
	for _, feature := range e.Features {
		if feature == e.Target {
			return nil, errors.Wrapf(ErrConfiguration, "target column %s cannot be encoded as a feature", feature)
		}
	}
	if err := RequireColumns(t, e.Features...); err != nil {
		return nil, err
	}

	column, err := t.Column(e.Target)
	if err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "target column %s not found", e.Target)
	}
	targets := make([]float64, len(column))
	for i, v := range column {
		f, ok := v.Float()
		if !ok {
			if v.IsNull() {
				return nil, errors.Wrapf(ErrConfiguration, "target column %s is null at row %d", e.Target, i)
			}
			return nil, errors.Wrapf(ErrConfiguration, "target column %s is not numeric at row %d: %q", e.Target, i, v.String())
		}
		targets[i] = f
	}
	return targets, nil
}

// RequireColumns returns a configuration error naming the first column
// missing from t.
func RequireColumns(t *table.Table, columns ...string) error {
	for _, c := range columns {
		if !t.Has(c) {
			return errors.Wrapf(ErrConfiguration, "feature column %s not found", c)
		}
	}
	return nil
}
