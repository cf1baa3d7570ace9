package clean

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"featurize/pkg/table"
)

const (
	TargetColumn    = "SalePrice"
	LogTargetColumn = "SalePrice_log"
)

// ErrIncomplete is returned when a cleaned table still holds nulls.
var ErrIncomplete = errors.New("table has missing values")

// Apply runs the rules in order on a copy of t.
func Apply(t *table.Table, rules ...Rule) (*table.Table, error) {
	result := t.Clone()
	for _, rule := range rules {
		var err error
		rows := result.Len()
		result, err = rule.Apply(result)
		if err != nil {
			return nil, errors.Wrapf(err, "cleaning rule %s failed", rule)
		}
		log.Debug().Str("rule", rule.String()).Int("rows_before", rows).Int("rows", result.Len()).Msg("applied cleaning rule")
	}
	return result, nil
}

// HousePriceRules is the cleaning applied to both the train and the test files
// of the house price dataset. Missing values are repaired first, then
// duplicates are dropped, types are normalized and outliers are removed.
func HousePriceRules() []Rule {
	return []Rule{
		DropColumns{Columns: []string{"PoolQC", "MiscFeature", "Alley", "Fence"}},

		FillMode{Columns: []string{"MasVnrType", "FireplaceQu"}},
		FillGroupMedian{Column: "LotFrontage", By: "Neighborhood"},
		FillConstant{Columns: []string{"SaleType"}, Value: table.Str("Oth")},
		FillConstant{Columns: []string{"GarageCond", "GarageType", "GarageFinish", "GarageQual"}, Value: table.Str("None")},
		FillConstant{Columns: []string{"GarageCars", "GarageArea"}, Value: table.Num(0)},
		FillConstant{Columns: []string{"GarageYrBlt"}, Value: table.Num(1801)},
		FillConstant{
			Columns: []string{"BsmtFinType2", "BsmtExposure", "BsmtQual", "BsmtCond", "BsmtFinType1"},
			Value:   table.Str("None"),
		},
		FillConstant{
			Columns: []string{"BsmtFinSF1", "BsmtFinSF2", "BsmtUnfSF", "TotalBsmtSF", "BsmtFullBath", "BsmtHalfBath"},
			Value:   table.Num(0),
		},
		FillConstant{Columns: []string{"MasVnrArea"}, Value: table.Num(0)},
		FillMode{Columns: []string{
			"Electrical", "MSZoning", "Functional", "Utilities", "KitchenQual", "Exterior2nd", "Exterior1st",
		}},

		DropDuplicates{},

		ToNumeric{Columns: []string{
			"LotFrontage", "MasVnrArea", "BsmtFinSF1", "BsmtFinSF2", "BsmtUnfSF", "TotalBsmtSF",
			"BsmtFullBath", "BsmtHalfBath", "GarageCars", "GarageArea", "OverallQual", "OverallCond",
		}},
		ToYear{Columns: []string{"YearBuilt", "YearRemodAdd", "GarageYrBlt", "YrSold"}},
		ToString{Columns: []string{"MSSubClass"}},

		Log{Column: TargetColumn, Output: LogTargetColumn},

		Below{Column: "LotFrontage", Limit: 300},
		Below{Column: "LotArea", Limit: 100000},
		Below{Column: "TotalBsmtSF", Limit: 3000},
		Below{Column: "1stFlrSF", Limit: 3000},
		Below{Column: "2ndFlrSF", Limit: 1500},
		Below{Column: "GrLivArea", Limit: 4000},
		Below{Column: "GarageArea", Limit: 1200},
		Below{Column: "WoodDeckSF", Limit: 600},
		Below{Column: "OpenPorchSF", Limit: 300},
		Below{Column: "MiscVal", Limit: 5000},

		RequireComplete{},
	}
}
