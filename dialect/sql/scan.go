package sql

import "errors"

// ScanRecords scans all remaining rows into ordered column-name to value
// records and closes the row set. Byte slices are normalized to strings so
// record values stay comparable across drivers.
func ScanRecords(rows *Rows) (records []map[string]any, err error) {
	defer func() {
		err = errors.Join(err, rows.Close())
	}()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		values := make([]any, len(columns))
		for i := range values {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, err
		}
		record := make(map[string]any, len(columns))
		for i, c := range columns {
			v := *(values[i].(*any))
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			record[c] = v
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
