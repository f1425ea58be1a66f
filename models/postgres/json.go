package postgres

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gorm.io/datatypes"
)

// Helpers for the JSONB columns. JSON object keys are always strings, so
// the seat map (int keyed in memory) gets converted on the way in and out.

func EncodeJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error encoding jsonb value: %w", err)
	}
	return datatypes.JSON(b), nil
}

func DecodeStringSlice(j datatypes.JSON) ([]string, error) {
	if len(j) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return nil, fmt.Errorf("error decoding jsonb array: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func DecodeSlotMap(j datatypes.JSON) (map[string]int, error) {
	if len(j) == 0 {
		return map[string]int{}, nil
	}
	var out map[string]int
	if err := json.Unmarshal(j, &out); err != nil {
		return nil, fmt.Errorf("error decoding slot map: %w", err)
	}
	if out == nil {
		out = map[string]int{}
	}
	return out, nil
}

func DecodeSeatMap(j datatypes.JSON) (map[int]string, error) {
	if len(j) == 0 {
		return map[int]string{}, nil
	}
	var raw map[string]string
	if err := json.Unmarshal(j, &raw); err != nil {
		return nil, fmt.Errorf("error decoding seat map: %w", err)
	}
	out := make(map[int]string, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid seat number %q: %w", k, err)
		}
		out[n] = v
	}
	return out, nil
}

func EncodeSeatMap(seats map[int]string) (datatypes.JSON, error) {
	raw := make(map[string]string, len(seats))
	for k, v := range seats {
		raw[strconv.Itoa(k)] = v
	}
	return EncodeJSON(raw)
}

func DecodeTableMap(j datatypes.JSON) (map[string][]string, error) {
	if len(j) == 0 {
		return map[string][]string{}, nil
	}
	var out map[string][]string
	if err := json.Unmarshal(j, &out); err != nil {
		return nil, fmt.Errorf("error decoding table map: %w", err)
	}
	for k, v := range out {
		if v == nil {
			out[k] = []string{}
		}
	}
	return out, nil
}
