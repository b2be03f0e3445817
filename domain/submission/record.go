package submission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/akeren/bizguard-leads/pkg/constants"
)

const (
	timestampField = "timestamp"
	sourceField    = "source"
	emailField     = "email"
)

// Record is a persisted submission: the submitted fields plus the
// server-assigned timestamp and source.
type Record map[string]any

// Enrich copies payload and stamps it. Client-supplied timestamp and source
// keys are overwritten.
func Enrich(payload map[string]any, category Category, at time.Time) Record {
	record := make(Record, len(payload)+2)
	for k, v := range payload {
		record[k] = v
	}

	record[timestampField] = formatTimestamp(at)
	record[sourceField] = string(category)

	return record
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.ISO8601MillisFormat)
}

func (r Record) Timestamp() string {
	s, _ := r[timestampField].(string)
	return s
}

func (r Record) Source() string {
	s, _ := r[sourceField].(string)
	return s
}

func (r Record) Email() string {
	s, _ := r[emailField].(string)
	return s
}

// DecodePayload parses a JSON object, keeping numbers as json.Number so large
// integers survive a round trip through the log file.
func DecodePayload(r io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}

	if payload == nil {
		return nil, fmt.Errorf("decode submission: body must be a JSON object")
	}

	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode submission: unexpected data after JSON object")
	}

	return payload, nil
}

func decodeRecords(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Record{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var records []Record
	if err := decoder.Decode(&records); err != nil {
		return nil, err
	}

	if records == nil {
		records = []Record{}
	}

	return records, nil
}

func decodeRecord(data []byte) (Record, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var record Record
	if err := decoder.Decode(&record); err != nil {
		return nil, err
	}

	return record, nil
}
