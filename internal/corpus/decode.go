package corpus

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"recipematch/internal/domain"
)

var validate = validator.New()

// DecodeRecord converts one loosely typed row (as produced by encoding/json or
// a database scan) into a Record. Numeric ids become strings, a missing
// cuisine becomes an empty label and a missing id is replaced by a UUID.
func DecodeRecord(row map[string]any) (domain.Record, error) {
	var rec domain.Record
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rec,
	})
	if err != nil {
		return domain.Record{}, err
	}
	if err := dec.Decode(row); err != nil {
		return domain.Record{}, fmt.Errorf("corpus: decode record: %w", err)
	}
	if err := Validate(&rec); err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

// DecodeRecords decodes rows in order, stopping at the first invalid one.
func DecodeRecords(rows []map[string]any) ([]domain.Record, error) {
	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := DecodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Validate assigns a UUID to records without an id and checks field limits.
func Validate(rec *domain.Record) error {
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("corpus: invalid record %q: %w", rec.ID, err)
	}
	return nil
}
