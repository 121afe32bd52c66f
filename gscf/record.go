package gscf

import "github.com/arloliu/go-gscf/internal/util"

// Record is one study, subject, assay, sample or measurement row as returned
// by the GSCF API: a flat mapping from field name to value. Values carry
// whatever encoding/json produced for the response payload.
type Record map[string]any

// Token returns the record's "token" field, the unique identifier the GSCF
// API assigns to every study, subject, assay and sample.
//
// It returns an empty string when the field is absent or not a string.
func (r Record) Token() string {
	token, _ := r["token"].(string)
	return token
}

// MeasurementRecords converts the measurement response shape, a mapping from
// sample token to field mapping, into a flat record list.
//
// Each entry becomes one Record with a "token" field injected from its key;
// a field literally named "token" inside the mapping is overwritten by the
// key. Records are ordered by ascending token so the result is deterministic
// regardless of map iteration order.
func MeasurementRecords(byToken map[string]Record) []Record {
	records := make([]Record, 0, len(byToken))
	for _, token := range util.SortedKeys(byToken) {
		fields := byToken[token]
		record := make(Record, len(fields)+1)
		for name, value := range fields {
			record[name] = value
		}
		record["token"] = token
		records = append(records, record)
	}

	return records
}
