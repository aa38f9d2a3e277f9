package pipeline

import (
	"fmt"
	"strings"
)

// IndexField names one logical part of a transaction that can be indexed.
type IndexField int

const (
	FieldTransaction IndexField = iota
	FieldEffects
	FieldEvents
	FieldInputObjects
	FieldOutputObjects
)

var fieldNames = map[IndexField]string{
	FieldTransaction:   "transaction",
	FieldEffects:       "effects",
	FieldEvents:        "events",
	FieldInputObjects:  "input_objects",
	FieldOutputObjects: "output_objects",
}

func (f IndexField) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("IndexField(%d)", int(f))
}

func ParseIndexField(s string) (IndexField, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown index field %q", s)
}

func ParseIndexFields(names []string) ([]IndexField, error) {
	fields := make([]IndexField, 0, len(names))
	for _, name := range names {
		f, err := ParseIndexField(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// DefaultFields is used when no field filter is configured.
func DefaultFields() []IndexField {
	return []IndexField{FieldTransaction, FieldEffects}
}
