package editor

import "strconv"

// Bool

type (
	Bool struct {
		value BoolValue
	}

	BoolValue interface {
		Value() bool
		SetValue(bool)
	}
)

func MakeBool(value BoolValue) Bool { return Bool{value: value} }
func (v Bool) Toggle()              { v.SetValue(!v.Value()) }

func (v Bool) SetValue(value bool) (changed bool) {
	if !v.Enabled() || v.Value() == value {
		return false
	}
	v.value.SetValue(value)
	return true
}

func (v Bool) Value() bool {
	if v.value == nil {
		return false
	}
	return v.value.Value()
}

func (v Bool) Enabled() bool {
	if v.value == nil {
		return false
	}
	e, ok := v.value.(Enabler)
	if !ok {
		return true
	}
	return e.Enabled()
}

// Int

type (
	// Int wraps an IntValue so all changes stay within the range of the
	// underlying implementation and SetValue is only called when the value
	// actually changes.
	Int struct {
		value IntValue
	}

	IntValue interface {
		Value() int
		SetValue(int) (changed bool)
		Range() RangeInclusive
	}
)

func MakeInt(value IntValue) Int { return Int{value} }

func (v Int) Add(delta int) (changed bool) {
	return v.SetValue(v.Value() + delta)
}

func (v Int) SetValue(value int) (changed bool) {
	r := v.Range()
	value = r.Clamp(value)
	if value == v.Value() || value < r.Min || value > r.Max {
		return false
	}
	return v.value.SetValue(value)
}

func (v Int) Range() RangeInclusive {
	if v.value == nil {
		return RangeInclusive{0, 0}
	}
	return v.value.Range()
}

func (v Int) Value() int {
	if v.value == nil {
		return 0
	}
	return v.value.Value()
}

func (v Int) String() string { return strconv.Itoa(v.Value()) }

// Float

type (
	// Float is Int for continuous values: BPM, beat positions, the snap
	// grid.
	Float struct {
		value FloatValue
	}

	FloatValue interface {
		Value() float64
		SetValue(float64) (changed bool)
		Range() RangeF
	}
)

func MakeFloat(value FloatValue) Float { return Float{value} }

func (v Float) Add(delta float64) (changed bool) {
	return v.SetValue(v.Value() + delta)
}

func (v Float) SetValue(value float64) (changed bool) {
	r := v.Range()
	value = r.Clamp(value)
	if value == v.Value() {
		return false
	}
	return v.value.SetValue(value)
}

func (v Float) Range() RangeF {
	if v.value == nil {
		return RangeF{}
	}
	return v.value.Range()
}

func (v Float) Value() float64 {
	if v.value == nil {
		return 0
	}
	return v.value.Value()
}

func (v Float) String() string { return strconv.FormatFloat(v.Value(), 'g', 4, 64) }

// String

type (
	String struct {
		value StringValue
	}

	StringValue interface {
		Value() string
		SetValue(string) (changed bool)
	}
)

func MakeString(value StringValue) String { return String{value: value} }

func (v String) SetValue(value string) (changed bool) {
	if v.value == nil || v.value.Value() == value {
		return false
	}
	return v.value.SetValue(value)
}

func (v String) Value() string {
	if v.value == nil {
		return ""
	}
	return v.value.Value()
}

// RangeInclusive represents a range of integers [Min, Max], inclusive.
type RangeInclusive struct{ Min, Max int }

func (r RangeInclusive) Clamp(value int) int { return max(min(value, r.Max), r.Min) }

// RangeF is RangeInclusive for floats.
type RangeF struct{ Min, Max float64 }

func (r RangeF) Clamp(value float64) float64 { return max(min(value, r.Max), r.Min) }
