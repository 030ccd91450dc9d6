package options

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tag identifies which variant a Value holds.
type Tag uint8

const (
	TagUnset Tag = iota
	TagScalar
	TagArray
	TagFunc
)

func (t Tag) String() string {
	switch t {
	case TagScalar:
		return "scalar"
	case TagArray:
		return "array"
	case TagFunc:
		return "func"
	default:
		return "unset"
	}
}

// Call is the argument bundle handed to function valued options. Series and
// Point are -1 when the option is not evaluated for a particular series or
// point.
type Call struct {
	Name    string
	Surface any
	Data    any
	Stat    any
	Series  int
	Point   int
	Extra   any
}

// At returns a call for the given name and indices.
func At(name string, series, point int) Call {
	return Call{Name: name, Series: series, Point: point}
}

// Fn is the signature of function valued options.
type Fn func(Call) any

// Value is an option value: a scalar applied to every index, an array indexed
// by point (or series) or a function evaluated per call.
type Value struct {
	tag    Tag
	scalar any
	array  []any
	fn     Fn
}

// Of wraps v in a Value choosing the variant from its dynamic type.
func Of(v any) Value {
	switch e := v.(type) {
	case nil:
		return Value{}
	case Value:
		return e
	case Fn:
		return Function(e)
	case func(Call) any:
		return Function(e)
	case []any:
		return List(e...)
	case []string:
		a := make([]any, len(e))
		for i := range e {
			a[i] = e[i]
		}
		return List(a...)
	case []float64:
		a := make([]any, len(e))
		for i := range e {
			a[i] = e[i]
		}
		return List(a...)
	case []int:
		a := make([]any, len(e))
		for i := range e {
			a[i] = float64(e[i])
		}
		return List(a...)
	case int:
		return Value{tag: TagScalar, scalar: float64(e)}
	case int64:
		return Value{tag: TagScalar, scalar: float64(e)}
	case float32:
		return Value{tag: TagScalar, scalar: float64(e)}
	default:
		return Value{tag: TagScalar, scalar: v}
	}
}

// List returns an array Value.
func List(v ...any) Value {
	return Value{tag: TagArray, array: v}
}

// Function returns a function Value.
func Function(fn Fn) Value {
	if fn == nil {
		return Value{}
	}
	return Value{tag: TagFunc, fn: fn}
}

func (v Value) Tag() Tag { return v.tag }

func (v Value) IsSet() bool { return v.tag != TagUnset }

// Len returns the number of array elements, 1 for scalars and functions.
func (v Value) Len() int {
	switch v.tag {
	case TagArray:
		return len(v.array)
	case TagUnset:
		return 0
	default:
		return 1
	}
}

// Eval evaluates the value for call. Arrays are indexed by call.Point when it
// is not negative and by call.Series otherwise; the index is clamped to the
// array bounds.
func (v Value) Eval(call Call) any {
	switch v.tag {
	case TagScalar:
		return v.scalar
	case TagArray:
		if len(v.array) == 0 {
			return nil
		}
		idx := call.Point
		if idx < 0 {
			idx = call.Series
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(v.array) {
			idx = len(v.array) - 1
		}
		return v.array[idx]
	case TagFunc:
		return v.fn(call)
	default:
		return nil
	}
}

// Raw returns the underlying scalar, array or function.
func (v Value) Raw() any {
	switch v.tag {
	case TagScalar:
		return v.scalar
	case TagArray:
		return v.array
	case TagFunc:
		return v.fn
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.tag {
	case TagScalar:
		return fmt.Sprint(v.scalar)
	case TagArray:
		return fmt.Sprint(v.array)
	case TagFunc:
		return "func"
	default:
		return "<unset>"
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.tag {
	case TagScalar:
		return json.Marshal(v.scalar)
	case TagArray:
		return json.Marshal(v.array)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var o any
	if err := json.Unmarshal(b, &o); err != nil {
		return err
	}
	*v = Of(o)
	return nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*v = Value{}
		return nil
	}
	var o any
	if err := node.Decode(&o); err != nil {
		return err
	}
	*v = Of(o)
	return nil
}

// NoRescale disables the rescale step of Resolve.
const NoRescale = -1

// Resolve evaluates an option for one call. A set override wins over def.
// Numeric results are multiplied by rescale and rounded up unless rescale is
// not positive.
func Resolve(rescale float64, override, def Value, call Call) any {
	v := def
	if override.IsSet() {
		v = override
	}
	out := v.Eval(call)
	if rescale <= 0 {
		return out
	}
	switch out.(type) {
	case float64, int, int64, float32:
		f, _ := ToFloat(out)
		return math.Ceil(f * rescale)
	}
	return out
}

// ToFloat converts option results to float64.
func ToFloat(v any) (float64, bool) {
	switch e := v.(type) {
	case float64:
		return e, true
	case float32:
		return float64(e), true
	case int:
		return float64(e), true
	case int64:
		return float64(e), true
	case uint64:
		return float64(e), true
	case bool:
		if e {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(e), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ToString converts option results to string.
func ToString(v any) string {
	switch e := v.(type) {
	case nil:
		return ""
	case string:
		return e
	case float64:
		return strconv.FormatFloat(e, 'f', -1, 64)
	default:
		return fmt.Sprint(e)
	}
}

// ToBool converts option results to bool. Strings "true", "yes" and "1" are
// true.
func ToBool(v any) bool {
	switch e := v.(type) {
	case bool:
		return e
	case float64:
		return e != 0
	case int:
		return e != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(e)) {
		case "true", "yes", "1":
			return true
		}
	}
	return false
}
