package table

import (
	"github.com/cespare/xxhash/v2"
)

const separator = "\x00"

// Fingerprint returns an xxhash64 digest of the column names and every cell.
// Two tables with the same fingerprint serialize to the same CSV.
func (t *Table) Fingerprint() uint64 {
	d := xxhash.New()
	for _, c := range t.columns {
		_, _ = d.WriteString(c)
		_, _ = d.WriteString(separator)
	}
	for _, row := range t.rows {
		for _, v := range row {
			_, _ = d.Write([]byte{byte(v.kind)})
			_, _ = d.WriteString(v.String())
			_, _ = d.WriteString(separator)
		}
	}
	return d.Sum64()
}
