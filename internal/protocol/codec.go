// Package protocol translates between the typed filter/result model and
// the upstream's undocumented positional-array wire format. Encoding and
// decoding are pure functions of their input plus the static code
// registry; the same raw body always decodes to the same output.
package protocol

import (
	"encoding/json"
	"strconv"

	"github.com/punitarani/flights-tracker-sub001/internal/registry"
	"github.com/punitarani/flights-tracker-sub001/pkg/logger"
	"github.com/punitarani/flights-tracker-sub001/pkg/metrics"
)

type Codec struct {
	reg     *registry.Registry
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewCodec builds a codec over the given registry. metrics may be nil.
func NewCodec(reg *registry.Registry, log logger.Logger, m *metrics.Metrics) *Codec {
	return &Codec{reg: reg, log: log, metrics: m}
}

// Positional access helpers. Out-of-range and wrong-type reads degrade
// to "absent" instead of panicking; the upstream drops and reorders
// tuple tails without notice.

func asArray(v interface{}) ([]interface{}, bool) {
	arr, ok := v.([]interface{})
	return arr, ok
}

func elemAt(arr []interface{}, i int) interface{} {
	if i < 0 || i >= len(arr) {
		return nil
	}
	return arr[i]
}

func arrayAt(arr []interface{}, i int) []interface{} {
	nested, _ := asArray(elemAt(arr, i))
	return nested
}

func stringAt(arr []interface{}, i int) (string, bool) {
	s, ok := elemAt(arr, i).(string)
	return s, ok
}

// numberAt reads a numeric slot that may arrive as a JSON number or a
// numeric string.
func numberAt(arr []interface{}, i int) (float64, bool) {
	switch v := elemAt(arr, i).(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func intAt(arr []interface{}, i int) (int, bool) {
	f, ok := numberAt(arr, i)
	return int(f), ok
}

func allNull(arr []interface{}) bool {
	for _, v := range arr {
		if v != nil {
			return false
		}
	}
	return true
}

// fragment renders an offending tuple for the defect log.
func fragment(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "<unencodable>"
	}
	if len(data) > 200 {
		data = data[:200]
	}
	return string(data)
}
