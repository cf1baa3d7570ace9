package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"featurize/pkg/clean"
	"featurize/pkg/encoder"
	"featurize/pkg/fold"
)

// Config selects the columns the pipeline encodes and how.
type Config struct {
	// Target is the numeric column the target encoding is computed from
	Target string `yaml:"target"`

	// Features are the high-cardinality categorical columns to target encode
	Features []string `yaml:"features"`

	NumSplits    int     `yaml:"n_splits"`
	Alpha        float64 `yaml:"alpha"`
	RndSeed      int64   `yaml:"seed"`
	DropOriginal bool    `yaml:"drop_original"`

	// OneHotFeatures are the low-cardinality categorical columns expanded into
	// indicator columns
	OneHotFeatures []string `yaml:"onehot_features"`

	// QualityColumns hold Ex/Gd/TA/Fa/Po ratings mapped to an ordinal scale
	QualityColumns []string `yaml:"quality_columns"`
}

func Default() Config {
	return Config{
		Target: clean.TargetColumn,
		Features: []string{
			"MSSubClass",
			"MSZoning",
			"Neighborhood",
			"Condition1",
			"Condition2",
			"BldgType",
			"HouseStyle",
			"RoofStyle",
			"Exterior1st",
			"Exterior2nd",
			"Foundation",
			"SaleType",
			"SaleCondition",
			"LotConfig",
			"LandSlope",
			"Functional",
			"MasVnrType",
			"GarageType",
		},
		NumSplits: fold.DefaultSplits,
		Alpha:     encoder.DefaultAlpha,
		RndSeed:   fold.DefaultSeed,
		OneHotFeatures: []string{
			"CentralAir",
			"Street",
			"PavedDrive",
			"LotShape",
			"Utilities",
			"LandContour",
			"BsmtExposure",
			"Electrical",
			"Heating",
		},
		QualityColumns: []string{
			"ExterQual",
			"ExterCond",
			"BsmtQual",
			"BsmtCond",
			"HeatingQC",
			"KitchenQual",
			"FireplaceQu",
			"GarageQual",
			"GarageCond",
			"PoolQC",
		},
	}
}

// Load reads a YAML file on top of the default configuration. Keys absent
// from the file keep their default value.
func Load(fileName string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(fileName)
	if err != nil {
		return c, errors.Wrapf(err, "error reading config file %s", fileName)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, errors.Wrapf(err, "error unmarshalling config file %s", fileName)
	}
	return c, nil
}

// Validate checks the values that do not depend on the data.
func (c Config) Validate() error {
	if c.Target == "" {
		return errors.Wrap(encoder.ErrConfiguration, "target column required")
	}
	if c.NumSplits < 2 {
		return errors.Wrapf(encoder.ErrConfiguration, "n_splits must be at least 2, got %d", c.NumSplits)
	}
	if c.Alpha < 0 {
		return errors.Wrapf(encoder.ErrConfiguration, "alpha must not be negative, got %v", c.Alpha)
	}
	for _, f := range c.Features {
		if f == c.Target {
			return errors.Wrapf(encoder.ErrConfiguration, "target column %s cannot be encoded as a feature", f)
		}
	}
	return nil
}

// TargetEncoder returns the encoder configured by c.
func (c Config) TargetEncoder() *encoder.TargetEncoder {
	e := encoder.NewTargetEncoder(c.Target, c.Features...)
	e.NumSplits = c.NumSplits
	e.Alpha = c.Alpha
	e.RndSeed = c.RndSeed
	e.DropOriginal = c.DropOriginal
	return e
}
