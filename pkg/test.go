package pkg

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"featurize/pkg/clean"
	"featurize/pkg/encoder"
	"featurize/pkg/io"
	"featurize/pkg/model"
	"featurize/pkg/table"
)

// Transform replays the encoders of m on a cleaned table.
func Transform(m *model.Model, t *table.Table) (*table.Table, error) {
	if m.MetaData == nil || m.TargetMeans == nil || m.OneHot == nil {
		return nil, fmt.Errorf("model is incomplete")
	}
	if err := encoder.RequireColumns(t, m.TargetMeans.Features...); err != nil {
		return nil, err
	}
	if err := encoder.RequireColumns(t, m.OneHot.Features...); err != nil {
		return nil, err
	}

	if err := requireSchema(m.MetaData, t); err != nil {
		return nil, err
	}

	mapped := encoder.MapQuality(t, m.MetaData.QualityColumns...)
	encoded, err := m.TargetMeans.Transform(mapped, false)
	if err != nil {
		return nil, err
	}
	encoded, err = m.OneHot.Transform(encoded, false)
	if err != nil {
		return nil, err
	}
	if m.MetaData.DropOriginal {
		encoded.DropColumns(m.TargetMeans.Features...)
		encoded.DropColumns(m.OneHot.Features...)
	}
	return encoded, nil
}

// requireSchema checks that t holds every cleaned training column apart from
// the target and its log.
func requireSchema(meta *model.Metadata, t *table.Table) error {
	for _, column := range meta.Columns {
		if column == meta.Target || column == clean.LogTargetColumn {
			continue
		}
		if !t.Has(column) {
			return errors.Wrapf(encoder.ErrConfiguration, "column %s of the training data not found", column)
		}
	}
	return nil
}

// Apply cleans t and encodes it with m. t does not need the target column.
func Apply(m *model.Model, t *table.Table) (*table.Table, error) {
	cleaned, err := Clean(t)
	if err != nil {
		return nil, fmt.Errorf("error cleaning data: %w", err)
	}
	encoded, err := Transform(m, cleaned)
	if err != nil {
		return nil, err
	}
	logTable("encoded data", encoded)
	return encoded, nil
}

// ApplyFiles encodes inputFileName with the model saved in modelFileName.
func ApplyFiles(modelFileName, inputFileName, outputFileName string) error {
	modelFile, err := os.Open(modelFileName)
	if err != nil {
		return fmt.Errorf("error opening model file %s: %w", modelFileName, err)
	}
	defer modelFile.Close()

	m, err := io.LoadModel(modelFile)
	if err != nil {
		return fmt.Errorf("error loading model from file %s: %w", modelFileName, err)
	}

	input, err := readData(inputFileName)
	if err != nil {
		return err
	}
	encoded, err := Apply(m, input)
	if err != nil {
		return err
	}
	return writeData(outputFileName, encoded)
}
