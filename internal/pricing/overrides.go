package pricing

import "fmt"

// Perspective selects which cost breakdown and rate table a computation
// targets.
type Perspective int

const (
	Customer Perspective = iota
	Internal
)

func (p Perspective) String() string {
	if p == Internal {
		return "internal"
	}
	return "customer"
}

// Field identifies one derived cost field within a perspective.
type Field int

const (
	EntryFee Field = iota
	ServiceFee
	JuicePrice
	TeaPrice
	FireworkPrice
	CandlePrice
	FlowerPrice
	WaterPrice
	DinnerPrice
)

var fieldNames = map[Field]string{
	EntryFee:      "entryFee",
	ServiceFee:    "serviceFee",
	JuicePrice:    "juicePrice",
	TeaPrice:      "teaPrice",
	FireworkPrice: "fireworkPrice",
	CandlePrice:   "candlePrice",
	FlowerPrice:   "flowerPrice",
	WaterPrice:    "waterPrice",
	DinnerPrice:   "dinnerPrice",
}

func (f Field) String() string { return fieldNames[f] }

// RawField identifies a raw contract input whose edit re-derives the cost
// fields depending on it.
type RawField int

const (
	RawServiceStaffCount RawField = iota
	RawJuiceCount
	RawTeaCount
	RawFireworkCount
	RawWaterCount
	RawDinnerCount
	RawDinnerType
	RawStartTime
	RawEndTime
)

// rawDeps maps each raw input to the derived fields it feeds. Editing the
// input moves those fields back to the Derived state in both perspectives.
var rawDeps = map[RawField][]Field{
	RawServiceStaffCount: {ServiceFee},
	RawJuiceCount:        {JuicePrice},
	RawTeaCount:          {TeaPrice},
	RawFireworkCount:     {FireworkPrice},
	RawWaterCount:        {WaterPrice},
	RawDinnerCount:       {DinnerPrice},
	RawDinnerType:        {DinnerPrice},
	RawStartTime:         {EntryFee},
	RawEndTime:           {EntryFee},
}

type overrideKey struct {
	p Perspective
	f Field
}

// Overrides records which derived fields the user has manually set. Each
// field is either Derived (engine-controlled, absent from the set) or
// Overridden (user-controlled, present). The zero value and a nil pointer
// both mean nothing is overridden.
type Overrides struct {
	set map[overrideKey]struct{}
}

// NewOverrides returns an empty override set.
func NewOverrides() *Overrides {
	return &Overrides{set: make(map[overrideKey]struct{})}
}

// MarkOverridden freezes a derived field after the user typed a value into
// it directly.
func (o *Overrides) MarkOverridden(p Perspective, f Field) {
	if o.set == nil {
		o.set = make(map[overrideKey]struct{})
	}
	o.set[overrideKey{p, f}] = struct{}{}
}

// IsOverridden reports whether the field is currently user-controlled.
func (o *Overrides) IsOverridden(p Perspective, f Field) bool {
	if o == nil || o.set == nil {
		return false
	}
	_, ok := o.set[overrideKey{p, f}]
	return ok
}

// ObserveRawChange clears the override flags of every derived field that
// depends on the edited raw input, in both perspectives. Inclusion flag
// toggles are deliberately not raw inputs: they never clear an override.
func (o *Overrides) ObserveRawChange(raw RawField) {
	if o == nil || o.set == nil {
		return
	}
	for _, f := range rawDeps[raw] {
		delete(o.set, overrideKey{Customer, f})
		delete(o.set, overrideKey{Internal, f})
	}
}

// ParseFieldRef resolves a "perspective.field" reference such as
// "customer.entryFee" as submitted by clients alongside a contract.
func ParseFieldRef(ref string) (Perspective, Field, error) {
	for f, name := range fieldNames {
		if ref == "customer."+name {
			return Customer, f, nil
		}
		if ref == "internal."+name {
			return Internal, f, nil
		}
	}
	return 0, 0, fmt.Errorf("unknown derived field reference %q", ref)
}
