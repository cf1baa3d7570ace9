package pkg

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"featurize/pkg/clean"
	"featurize/pkg/config"
	"featurize/pkg/encoder"
	"featurize/pkg/io"
	"featurize/pkg/model"
	"featurize/pkg/table"
)

// Result holds the processed tables and the encoder state fitted on the
// training table.
type Result struct {
	Train *table.Table
	Test  *table.Table
	Model *model.Model
}

// FileParameters names the files read and written by ProcessFiles.
type FileParameters struct {
	TrainFile      string
	TestFile       string
	OutputFile     string
	TestOutputFile string
	ModelFile      string
}

// Clean applies the house price cleaning rules to a copy of t.
func Clean(t *table.Table) (*table.Table, error) {
	cleaned, err := clean.Apply(t, clean.HousePriceRules()...)
	if err != nil {
		return nil, err
	}
	logTable("cleaned data", cleaned)
	return cleaned, nil
}

// Encode target encodes t without any other preprocessing.
func Encode(t *table.Table, c config.Config) (*table.Table, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	encoded, err := c.TargetEncoder().FitTransform(t)
	if err != nil {
		return nil, err
	}
	logTable("target encoded data", encoded)
	return encoded, nil
}

// Process cleans train and test, maps the quality ratings, target encodes
// train out of fold and test with the means of the whole training table, and
// one-hot encodes both with the categories of train. test may be nil.
func Process(train, test *table.Table, c config.Config) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cleanedTrain, err := Clean(train)
	if err != nil {
		return nil, fmt.Errorf("error cleaning training data: %w", err)
	}

	m := &model.Model{
		MetaData: &model.Metadata{
			Columns:        cleanedTrain.Columns(),
			Target:         c.Target,
			TargetFeatures: c.Features,
			OneHotFeatures: c.OneHotFeatures,
			QualityColumns: c.QualityColumns,
			NumSplits:      c.NumSplits,
			Alpha:          c.Alpha,
			RndSeed:        c.RndSeed,
			DropOriginal:   c.DropOriginal,
		},
	}

	mapped := encoder.MapQuality(cleanedTrain, c.QualityColumns...)

	// Originals are dropped after both encoders ran: a column may feed both
	targetEncoder := c.TargetEncoder()
	targetEncoder.DropOriginal = false
	m.TargetMeans, err = targetEncoder.Fit(mapped)
	if err != nil {
		return nil, err
	}
	encoded, err := targetEncoder.FitTransform(mapped)
	if err != nil {
		return nil, err
	}

	m.OneHot, err = encoder.OneHot{Features: c.OneHotFeatures}.Fit(encoded)
	if err != nil {
		return nil, err
	}
	encoded, err = m.OneHot.Transform(encoded, false)
	if err != nil {
		return nil, err
	}
	if c.DropOriginal {
		encoded.DropColumns(c.Features...)
		encoded.DropColumns(c.OneHotFeatures...)
	}
	m.MetaData.TrainFingerprint = encoded.Fingerprint()
	logTable("encoded training data", encoded)

	result := &Result{Train: encoded, Model: m}
	if test != nil {
		result.Test, err = Apply(m, test)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ProcessFiles runs Process on the files named in p and writes the results.
func ProcessFiles(p FileParameters, c config.Config) error {
	if p.TestFile != "" && p.TestOutputFile == "" {
		return fmt.Errorf("test output file required when a test file is given")
	}

	train, err := readData(p.TrainFile)
	if err != nil {
		return err
	}
	var test *table.Table
	if p.TestFile != "" {
		test, err = readData(p.TestFile)
		if err != nil {
			return err
		}
	}

	result, err := Process(train, test, c)
	if err != nil {
		return err
	}

	if err := writeData(p.OutputFile, result.Train); err != nil {
		return err
	}
	if result.Test != nil {
		if err := writeData(p.TestOutputFile, result.Test); err != nil {
			return err
		}
	}

	if p.ModelFile != "" {
		outputFile, err := os.Create(p.ModelFile)
		if err != nil {
			return fmt.Errorf("error creating model file %s: %w", p.ModelFile, err)
		}
		defer outputFile.Close()

		if err := io.SaveModel(result.Model, outputFile); err != nil {
			return fmt.Errorf("error saving model to %s: %w", p.ModelFile, err)
		}
		log.Info().Str("file", p.ModelFile).Msg("saved model")
	}
	return nil
}

// EncodeFiles target encodes inputFileName as is, without cleaning.
func EncodeFiles(inputFileName, outputFileName string, c config.Config) error {
	input, err := readData(inputFileName)
	if err != nil {
		return err
	}
	encoded, err := Encode(input, c)
	if err != nil {
		return err
	}
	return writeData(outputFileName, encoded)
}

// CleanFiles cleans inputFileName.
func CleanFiles(inputFileName, outputFileName string) error {
	input, err := readData(inputFileName)
	if err != nil {
		return err
	}
	cleaned, err := Clean(input)
	if err != nil {
		return err
	}
	return writeData(outputFileName, cleaned)
}
