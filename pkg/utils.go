package pkg

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"featurize/pkg/io"
	"featurize/pkg/table"
)

func printDataErrors(errors []io.DataError) {
	for _, err := range errors {
		log.Error().Msgf("Error parsing data at line %d: %s", err.Line, err.Error)
	}
}

// Fingerprint formats the fingerprint of t for logs and metadata.
func Fingerprint(t *table.Table) string {
	return fmt.Sprintf("%016x", t.Fingerprint())
}

func logTable(msg string, t *table.Table) {
	log.Info().Int("rows", t.Len()).Int("columns", t.Width()).Str("fingerprint", Fingerprint(t)).Msg(msg)
}

func readData(fileName string) (*table.Table, error) {
	t, dataErrors, err := io.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("error loading data from %s: %w", fileName, err)
	}
	printDataErrors(dataErrors)
	if t.Len() == 0 {
		return nil, fmt.Errorf("no data in %s", fileName)
	}
	logTable("loaded "+fileName, t)
	return t, nil
}

func writeData(fileName string, t *table.Table) error {
	if err := io.WriteFile(fileName, t); err != nil {
		return err
	}
	logTable("saved "+fileName, t)
	return nil
}
