package library

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadRows decodes a comma separated export into raw rows. Decoding is
// lenient: rows may have different lengths and stray quotes are accepted,
// since exporters rarely escape titles properly.
func ReadRows(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("skip byte order mark: %w", err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		if isBlankRow(record) {
			continue
		}
		rows = append(rows, record)
	}

	return rows, nil
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
