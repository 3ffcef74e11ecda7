package format

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/awcullen/opcua/ua"
	"github.com/pkg/errors"
)

// ParseArguments converts the textual method arguments from the command
// line into variants. Two forms are accepted: a JSON array
// ("[1, true, \"x\"]") or comma-separated simple values. Simple values
// coerce in order: boolean, int32, float64, string.
func ParseArguments(s string) ([]ua.Variant, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return parseJSONArguments(s)
	}

	parts := strings.Split(s, ",")
	args := make([]ua.Variant, 0, len(parts))
	for _, p := range parts {
		args = append(args, parseSimpleValue(strings.TrimSpace(p)))
	}
	return args, nil
}

func parseJSONArguments(s string) ([]ua.Variant, error) {
	var raw []interface{}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, errors.Wrap(err, "parsing JSON arguments")
	}
	args := make([]ua.Variant, 0, len(raw))
	for i, v := range raw {
		arg, err := jsonToVariant(v)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		args = append(args, arg)
	}
	return args, nil
}

func jsonToVariant(v interface{}) (ua.Variant, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return val, nil
	case float64:
		// JSON numbers arrive as float64; keep integral values integral.
		if val == math.Trunc(val) {
			if val >= math.MinInt32 && val <= math.MaxInt32 {
				return int32(val), nil
			}
			if val >= math.MinInt64 && val <= math.MaxInt64 {
				return int64(val), nil
			}
		}
		return val, nil
	case string:
		return val, nil
	case []interface{}:
		return nil, errors.New("nested arrays are not supported")
	case map[string]interface{}:
		return nil, errors.New("objects are not supported as arguments")
	}
	return nil, errors.Errorf("unsupported argument type %T", v)
}

func parseSimpleValue(s string) ua.Variant {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
