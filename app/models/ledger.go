package models

import (
	"encoding/json"
	"fmt"
)

// MonthSlot is a position in the school-year payment calendar. Slots are
// ordered September through June, which is NOT calendar order: September is
// the first slot and June the last.
type MonthSlot int

const (
	SlotSeptember MonthSlot = iota
	SlotOctober
	SlotNovember
	SlotDecember
	SlotJanuary
	SlotFebruary
	SlotMarch
	SlotApril
	SlotMay
	SlotJune

	NumSlots = 10
)

// SlotFromCalendarMonth maps a calendar month (9..12, 1..6) to its school-year
// slot. July and August are not part of the payment calendar.
func SlotFromCalendarMonth(month int) (MonthSlot, error) {
	switch {
	case month >= 9 && month <= 12:
		return MonthSlot(month - 9), nil
	case month >= 1 && month <= 6:
		return MonthSlot(month + 3), nil
	default:
		return 0, &ValidationError{Message: fmt.Sprintf("month %d is outside the school year", month)}
	}
}

// CalendarMonth returns the calendar month number (9..12, 1..6) for a slot.
func (s MonthSlot) CalendarMonth() int {
	if s <= SlotDecember {
		return int(s) + 9
	}
	return int(s) - 3
}

// Index returns the 1-based school-year index (September=1 .. June=10).
func (s MonthSlot) Index() int {
	return int(s) + 1
}

func (s MonthSlot) Valid() bool {
	return s >= SlotSeptember && s < NumSlots
}

// SchoolYearSlots lists every slot in school-year order. Reports iterate this
// slice so the September..June ordering is fixed in one place.
var SchoolYearSlots = [NumSlots]MonthSlot{
	SlotSeptember, SlotOctober, SlotNovember, SlotDecember,
	SlotJanuary, SlotFebruary, SlotMarch, SlotApril, SlotMay, SlotJune,
}

// Stream is one of the two month-scoped payment streams.
type Stream string

const (
	StreamTuition   Stream = "tuition"
	StreamTransport Stream = "transport"
	// StreamInsurance is a single yearly scalar, not month-scoped. It exists
	// as a Stream so ledger rows can be keyed uniformly in storage.
	StreamInsurance Stream = "insurance"
)

// LedgerSide holds one amount per slot and stream plus the insurance scalar.
// A Ledger has two sides: agreed (contracted) and real (collected).
type LedgerSide struct {
	Tuition   [NumSlots]float64
	Transport [NumSlots]float64
	Insurance float64
}

// Slot returns a pointer to the amount for a month-scoped stream.
func (ls *LedgerSide) Slot(stream Stream, slot MonthSlot) *float64 {
	switch stream {
	case StreamTuition:
		return &ls.Tuition[slot]
	case StreamTransport:
		return &ls.Transport[slot]
	}
	return nil
}

// Ledger is the per-student payment table: agreed vs real amounts for the ten
// school-year months across both streams, plus insurance.
type Ledger struct {
	Agreed LedgerSide
	Real   LedgerSide
}

// LedgerChange records a single cell mutation, used both to persist only the
// touched rows and to feed the change log.
type LedgerChange struct {
	Stream Stream
	Slot   MonthSlot
	Side   string // "agreed" or "real"
	Old    float64
	New    float64
}

const (
	SideAgreed = "agreed"
	SideReal   = "real"
)

// FieldName renders the change target in the legacy wire naming
// (m9_real, m10_transport_agreed, insurance_real, ...).
func (c LedgerChange) FieldName() string {
	if c.Stream == StreamInsurance {
		return "insurance_" + c.Side
	}
	if c.Stream == StreamTransport {
		return fmt.Sprintf("m%d_transport_%s", c.Slot.CalendarMonth(), c.Side)
	}
	return fmt.Sprintf("m%d_%s", c.Slot.CalendarMonth(), c.Side)
}

// ApplyReal records a collected amount for one slot of a month-scoped stream.
// The real value is overwritten (the endpoint reports the latest collected
// total, not an increment). If the new real amount exceeds the agreed amount
// at the same slot, the agreed amount is raised to match and the new floor is
// propagated to every later slot whose agreed amount is below it. Agreed
// amounts are never lowered. A zero amount is a reversal: the real value is
// reset and agreed amounts are left untouched.
func (l *Ledger) ApplyReal(stream Stream, slot MonthSlot, amount float64) []LedgerChange {
	var changes []LedgerChange

	real := l.Real.Slot(stream, slot)
	if *real != amount {
		changes = append(changes, LedgerChange{stream, slot, SideReal, *real, amount})
		*real = amount
	}

	if amount == 0 {
		return changes
	}

	agreed := l.Agreed.Slot(stream, slot)
	if amount > *agreed {
		changes = append(changes, LedgerChange{stream, slot, SideAgreed, *agreed, amount})
		*agreed = amount

		// Propagate the floor forward in school-year order.
		for later := slot + 1; later < NumSlots; later++ {
			cell := l.Agreed.Slot(stream, later)
			if *cell < amount {
				changes = append(changes, LedgerChange{stream, later, SideAgreed, *cell, amount})
				*cell = amount
			}
		}
	}

	return changes
}

// ApplyRealInsurance records the collected insurance amount. Insurance has no
// month ordering, so the agreed amount is raised if undercut but nothing is
// propagated.
func (l *Ledger) ApplyRealInsurance(amount float64) []LedgerChange {
	var changes []LedgerChange

	if l.Real.Insurance != amount {
		changes = append(changes, LedgerChange{StreamInsurance, 0, SideReal, l.Real.Insurance, amount})
		l.Real.Insurance = amount
	}
	if amount != 0 && amount > l.Agreed.Insurance {
		changes = append(changes, LedgerChange{StreamInsurance, 0, SideAgreed, l.Agreed.Insurance, amount})
		l.Agreed.Insurance = amount
	}

	return changes
}

// SetAgreed overwrites a single agreed cell, returning the change if any.
// Used by the bulk agreed-changes endpoint; no propagation is applied there
// because the office is editing the contract directly.
func (l *Ledger) SetAgreed(stream Stream, slot MonthSlot, amount float64) (LedgerChange, bool) {
	if stream == StreamInsurance {
		if l.Agreed.Insurance == amount {
			return LedgerChange{}, false
		}
		c := LedgerChange{StreamInsurance, 0, SideAgreed, l.Agreed.Insurance, amount}
		l.Agreed.Insurance = amount
		return c, true
	}
	cell := l.Agreed.Slot(stream, slot)
	if *cell == amount {
		return LedgerChange{}, false
	}
	c := LedgerChange{stream, slot, SideAgreed, *cell, amount}
	*cell = amount
	return c, true
}

// DiffFrom lists every cell where this ledger differs from old. Used by the
// full-ledger student update to feed the change log.
func (l *Ledger) DiffFrom(old *Ledger) []LedgerChange {
	var changes []LedgerChange
	for _, stream := range []Stream{StreamTuition, StreamTransport} {
		for _, slot := range SchoolYearSlots {
			if ov, nv := *old.Agreed.Slot(stream, slot), *l.Agreed.Slot(stream, slot); ov != nv {
				changes = append(changes, LedgerChange{stream, slot, SideAgreed, ov, nv})
			}
			if ov, nv := *old.Real.Slot(stream, slot), *l.Real.Slot(stream, slot); ov != nv {
				changes = append(changes, LedgerChange{stream, slot, SideReal, ov, nv})
			}
		}
	}
	if old.Agreed.Insurance != l.Agreed.Insurance {
		changes = append(changes, LedgerChange{StreamInsurance, 0, SideAgreed, old.Agreed.Insurance, l.Agreed.Insurance})
	}
	if old.Real.Insurance != l.Real.Insurance {
		changes = append(changes, LedgerChange{StreamInsurance, 0, SideReal, old.Real.Insurance, l.Real.Insurance})
	}
	return changes
}

// wireKey builds the legacy field name for a stream/slot on one side.
func wireKey(stream Stream, slot MonthSlot, side string) string {
	if stream == StreamInsurance {
		return "insurance_" + side
	}
	if stream == StreamTransport {
		return fmt.Sprintf("m%d_transport_%s", slot.CalendarMonth(), side)
	}
	return fmt.Sprintf("m%d_%s", slot.CalendarMonth(), side)
}

func (ls *LedgerSide) toWire(side string) map[string]float64 {
	m := make(map[string]float64, NumSlots*2+1)
	for _, slot := range SchoolYearSlots {
		m[wireKey(StreamTuition, slot, side)] = ls.Tuition[slot]
		m[wireKey(StreamTransport, slot, side)] = ls.Transport[slot]
	}
	m[wireKey(StreamInsurance, 0, side)] = ls.Insurance
	return m
}

func (ls *LedgerSide) fromWire(side string, m map[string]float64) {
	for _, slot := range SchoolYearSlots {
		if v, ok := m[wireKey(StreamTuition, slot, side)]; ok {
			ls.Tuition[slot] = v
		}
		if v, ok := m[wireKey(StreamTransport, slot, side)]; ok {
			ls.Transport[slot] = v
		}
	}
	if v, ok := m[wireKey(StreamInsurance, 0, side)]; ok {
		ls.Insurance = v
	}
}

// ParseWireField resolves a legacy field name ("m9_agreed",
// "m10_transport_agreed", "insurance_agreed", ...) into its typed location.
func ParseWireField(key string) (stream Stream, slot MonthSlot, side string, err error) {
	for _, s := range []string{SideAgreed, SideReal} {
		if key == "insurance_"+s {
			return StreamInsurance, 0, s, nil
		}
		for _, sl := range SchoolYearSlots {
			if key == wireKey(StreamTuition, sl, s) {
				return StreamTuition, sl, s, nil
			}
			if key == wireKey(StreamTransport, sl, s) {
				return StreamTransport, sl, s, nil
			}
		}
	}
	return "", 0, "", &ValidationError{Message: fmt.Sprintf("unknown payment field: %s", key)}
}

// MarshalJSON keeps the wire format the frontend already speaks:
// {"agreed_payments": {"m9_agreed": ...}, "real_payments": {"m9_real": ...}}.
func (l Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]float64{
		"agreed_payments": l.Agreed.toWire(SideAgreed),
		"real_payments":   l.Real.toWire(SideReal),
	})
}

func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw struct {
		Agreed map[string]float64 `json:"agreed_payments"`
		Real   map[string]float64 `json:"real_payments"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Agreed.fromWire(SideAgreed, raw.Agreed)
	l.Real.fromWire(SideReal, raw.Real)
	return nil
}
