package dicev1

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformed indicates a Struct field with a missing value or the wrong kind.
var ErrMalformed = errors.New("malformed dice message")

// RollRequest asks the service to roll notation.
type RollRequest struct {
	Notation   string
	Seed       *int64 // Replay seed; the server generates one when nil
	PlusHalf   bool
	Difficulty *int
}

// RollResponse is a resolved roll.
type RollResponse struct {
	Notation string // Canonical form of the parsed notation
	Sum      int
	Total    int
	ThrowMod int
	Faces    []int // Kept results, in kept order
	Dropped  []int
	Dice     []DieResult // Every die, in throw order
	Check    *CheckResult
	Rng      RngResult
	Text     string // Human-readable summary, e.g. "[5] dropped [2] +2 = 7"
}

// DieResult describes one thrown die.
type DieResult struct {
	Name   string
	Raw    int
	Result int
	Kept   bool
}

// CheckResult is the comparison of the total against a difficulty.
type CheckResult struct {
	Difficulty int
	Success    bool
	Margin     int
}

// RngResult identifies the generator state needed to replay a roll.
type RngResult struct {
	SeedUsed   int64
	SeedSource string
	Algorithm  string
}

// ParseRequest asks the service to validate notation without rolling.
type ParseRequest struct {
	Notation string
}

// ParseResponse describes parsed notation.
type ParseResponse struct {
	Notation      string
	Dice          int
	Sides         int
	KeepDirection string // "none", "highest" or "lowest"
	KeepCount     int
	Modifier      int
	MinTotal      int
	MaxTotal      int
}

// ToStruct encodes the request. Seeds travel as decimal strings so that the
// full int64 range survives the float64 number kind.
func (r *RollRequest) ToStruct() (*structpb.Struct, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil roll request", ErrMalformed)
	}
	fields := map[string]any{
		"notation":  r.Notation,
		"plus_half": r.PlusHalf,
	}
	if r.Seed != nil {
		fields["seed"] = strconv.FormatInt(*r.Seed, 10)
	}
	if r.Difficulty != nil {
		fields["difficulty"] = *r.Difficulty
	}
	return structpb.NewStruct(fields)
}

// RollRequestFromStruct decodes a roll request.
func RollRequestFromStruct(s *structpb.Struct) (*RollRequest, error) {
	d := newDecoder(s)
	req := &RollRequest{
		Notation:   d.string("notation"),
		Seed:       d.optionalInt64("seed"),
		PlusHalf:   d.bool("plus_half"),
		Difficulty: d.optionalInt("difficulty"),
	}
	return req, d.err
}

// ToStruct encodes the response.
func (r *RollResponse) ToStruct() (*structpb.Struct, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil roll response", ErrMalformed)
	}
	dice := make([]any, 0, len(r.Dice))
	for _, die := range r.Dice {
		dice = append(dice, map[string]any{
			"name":   die.Name,
			"raw":    die.Raw,
			"result": die.Result,
			"kept":   die.Kept,
		})
	}
	fields := map[string]any{
		"notation":  r.Notation,
		"sum":       r.Sum,
		"total":     r.Total,
		"throw_mod": r.ThrowMod,
		"faces":     intList(r.Faces),
		"dropped":   intList(r.Dropped),
		"dice":      dice,
		"rng": map[string]any{
			"seed_used":   strconv.FormatInt(r.Rng.SeedUsed, 10),
			"seed_source": r.Rng.SeedSource,
			"rng_algo":    r.Rng.Algorithm,
		},
		"text": r.Text,
	}
	if r.Check != nil {
		fields["check"] = map[string]any{
			"difficulty": r.Check.Difficulty,
			"success":    r.Check.Success,
			"margin":     r.Check.Margin,
		}
	}
	return structpb.NewStruct(fields)
}

// RollResponseFromStruct decodes a roll response.
func RollResponseFromStruct(s *structpb.Struct) (*RollResponse, error) {
	d := newDecoder(s)
	resp := &RollResponse{
		Notation: d.string("notation"),
		Sum:      d.int("sum"),
		Total:    d.int("total"),
		ThrowMod: d.int("throw_mod"),
		Faces:    d.ints("faces"),
		Dropped:  d.ints("dropped"),
		Text:     d.string("text"),
	}
	for _, die := range d.objects("dice") {
		resp.Dice = append(resp.Dice, DieResult{
			Name:   die.string("name"),
			Raw:    die.int("raw"),
			Result: die.int("result"),
			Kept:   die.bool("kept"),
		})
		d.absorb(die)
	}
	if check := d.object("check"); check != nil {
		resp.Check = &CheckResult{
			Difficulty: check.int("difficulty"),
			Success:    check.bool("success"),
			Margin:     check.int("margin"),
		}
		d.absorb(check)
	}
	if rng := d.object("rng"); rng != nil {
		if seed := rng.optionalInt64("seed_used"); seed != nil {
			resp.Rng.SeedUsed = *seed
		}
		resp.Rng.SeedSource = rng.string("seed_source")
		resp.Rng.Algorithm = rng.string("rng_algo")
		d.absorb(rng)
	}
	return resp, d.err
}

// ToStruct encodes the request.
func (r *ParseRequest) ToStruct() (*structpb.Struct, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil parse request", ErrMalformed)
	}
	return structpb.NewStruct(map[string]any{"notation": r.Notation})
}

// ParseRequestFromStruct decodes a parse request.
func ParseRequestFromStruct(s *structpb.Struct) (*ParseRequest, error) {
	d := newDecoder(s)
	req := &ParseRequest{Notation: d.string("notation")}
	return req, d.err
}

// ToStruct encodes the response.
func (r *ParseResponse) ToStruct() (*structpb.Struct, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil parse response", ErrMalformed)
	}
	return structpb.NewStruct(map[string]any{
		"notation":       r.Notation,
		"dice":           r.Dice,
		"sides":          r.Sides,
		"keep_direction": r.KeepDirection,
		"keep_count":     r.KeepCount,
		"modifier":       r.Modifier,
		"min_total":      r.MinTotal,
		"max_total":      r.MaxTotal,
	})
}

// ParseResponseFromStruct decodes a parse response.
func ParseResponseFromStruct(s *structpb.Struct) (*ParseResponse, error) {
	d := newDecoder(s)
	resp := &ParseResponse{
		Notation:      d.string("notation"),
		Dice:          d.int("dice"),
		Sides:         d.int("sides"),
		KeepDirection: d.string("keep_direction"),
		KeepCount:     d.int("keep_count"),
		Modifier:      d.int("modifier"),
		MinTotal:      d.int("min_total"),
		MaxTotal:      d.int("max_total"),
	}
	return resp, d.err
}

func intList(values []int) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

// decoder reads typed fields from a Struct and keeps the first error.
// Absent fields decode to their zero value.
type decoder struct {
	fields map[string]*structpb.Value
	err    error
}

func newDecoder(s *structpb.Struct) *decoder {
	return &decoder{fields: s.GetFields()}
}

func (d *decoder) fail(key, want string) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: field %q is not %s", ErrMalformed, key, want)
	}
}

func (d *decoder) absorb(other *decoder) {
	if d.err == nil {
		d.err = other.err
	}
}

func (d *decoder) value(key string) *structpb.Value {
	v, ok := d.fields[key]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	return v
}

func (d *decoder) string(key string) string {
	v := d.value(key)
	if v == nil {
		return ""
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		d.fail(key, "a string")
		return ""
	}
	return s.StringValue
}

func (d *decoder) bool(key string) bool {
	v := d.value(key)
	if v == nil {
		return false
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		d.fail(key, "a bool")
		return false
	}
	return b.BoolValue
}

func (d *decoder) int(key string) int {
	v := d.value(key)
	if v == nil {
		return 0
	}
	n, ok := toInt(v)
	if !ok {
		d.fail(key, "an integer")
	}
	return n
}

func (d *decoder) optionalInt(key string) *int {
	v := d.value(key)
	if v == nil {
		return nil
	}
	n, ok := toInt(v)
	if !ok {
		d.fail(key, "an integer")
		return nil
	}
	return &n
}

func (d *decoder) optionalInt64(key string) *int64 {
	v := d.value(key)
	if v == nil {
		return nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(kind.StringValue, 10, 64)
		if err != nil {
			d.fail(key, "a decimal int64")
			return nil
		}
		return &n
	case *structpb.Value_NumberValue:
		n, ok := toInt(v)
		if !ok {
			d.fail(key, "an integer")
			return nil
		}
		n64 := int64(n)
		return &n64
	default:
		d.fail(key, "a decimal int64")
		return nil
	}
}

func (d *decoder) ints(key string) []int {
	v := d.value(key)
	if v == nil {
		return nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		d.fail(key, "a list")
		return nil
	}
	out := make([]int, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		n, ok := toInt(item)
		if !ok {
			d.fail(key, "a list of integers")
			return nil
		}
		out = append(out, n)
	}
	return out
}

func (d *decoder) object(key string) *decoder {
	v := d.value(key)
	if v == nil {
		return nil
	}
	s, ok := v.GetKind().(*structpb.Value_StructValue)
	if !ok {
		d.fail(key, "an object")
		return nil
	}
	return newDecoder(s.StructValue)
}

func (d *decoder) objects(key string) []*decoder {
	v := d.value(key)
	if v == nil {
		return nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		d.fail(key, "a list")
		return nil
	}
	out := make([]*decoder, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StructValue)
		if !ok {
			d.fail(key, "a list of objects")
			return nil
		}
		out = append(out, newDecoder(s.StructValue))
	}
	return out
}

// maxExactFloat is the largest magnitude at which every integer is exactly
// representable as a float64.
const maxExactFloat = 1 << 53

func toInt(v *structpb.Value) (int, bool) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	f := n.NumberValue
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if math.Abs(f) > maxExactFloat {
		return 0, false
	}
	return int(f), true
}
