package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotFromCalendarMonth(t *testing.T) {
	cases := map[int]MonthSlot{
		9:  SlotSeptember,
		10: SlotOctober,
		11: SlotNovember,
		12: SlotDecember,
		1:  SlotJanuary,
		2:  SlotFebruary,
		6:  SlotJune,
	}
	for month, want := range cases {
		slot, err := SlotFromCalendarMonth(month)
		require.NoError(t, err)
		assert.Equal(t, want, slot, "month %d", month)
		assert.Equal(t, month, slot.CalendarMonth())
	}

	for _, month := range []int{0, 7, 8, 13, -1} {
		_, err := SlotFromCalendarMonth(month)
		assert.Error(t, err, "month %d should be invalid", month)
	}
}

func TestMonthSlotIndex(t *testing.T) {
	assert.Equal(t, 1, SlotSeptember.Index())
	assert.Equal(t, 4, SlotDecember.Index())
	assert.Equal(t, 5, SlotJanuary.Index())
	assert.Equal(t, 10, SlotJune.Index())
}

func TestApplyRealOverwritesAndRaisesAgreed(t *testing.T) {
	l := &Ledger{}
	l.Agreed.Tuition[SlotSeptember] = 500

	changes := l.ApplyReal(StreamTuition, SlotSeptember, 600)

	assert.Equal(t, 600.0, l.Real.Tuition[SlotSeptember])
	assert.Equal(t, 600.0, l.Agreed.Tuition[SlotSeptember])
	// Every later month is raised to the new floor.
	for slot := SlotOctober; slot < NumSlots; slot++ {
		assert.Equal(t, 600.0, l.Agreed.Tuition[slot], "slot %d", slot)
	}
	assert.NotEmpty(t, changes)
}

func TestApplyRealPropagationNeverLowers(t *testing.T) {
	l := &Ledger{}
	for _, slot := range SchoolYearSlots {
		l.Agreed.Tuition[slot] = 500
	}
	l.Agreed.Tuition[SlotJanuary] = 800

	l.ApplyReal(StreamTuition, SlotSeptember, 600)

	assert.Equal(t, 600.0, l.Agreed.Tuition[SlotSeptember])
	assert.Equal(t, 600.0, l.Agreed.Tuition[SlotDecember])
	// January was already above the floor and must stay put.
	assert.Equal(t, 800.0, l.Agreed.Tuition[SlotJanuary])
}

func TestApplyRealLaterPaymentDoesNotLowerRaisedAgreed(t *testing.T) {
	l := &Ledger{}
	l.Agreed.Tuition[SlotSeptember] = 500

	l.ApplyReal(StreamTuition, SlotSeptember, 600)
	l.ApplyReal(StreamTuition, SlotOctober, 400)

	assert.Equal(t, 400.0, l.Real.Tuition[SlotOctober])
	assert.Equal(t, 600.0, l.Agreed.Tuition[SlotOctober], "paying less than agreed must not lower the contract")
}

func TestApplyRealPropagationIsForwardOnly(t *testing.T) {
	l := &Ledger{}

	l.ApplyReal(StreamTuition, SlotJanuary, 700)

	for slot := SlotSeptember; slot <= SlotDecember; slot++ {
		assert.Zero(t, l.Agreed.Tuition[slot], "slot %d before the payment month must be untouched", slot)
	}
	for slot := SlotJanuary; slot < NumSlots; slot++ {
		assert.Equal(t, 700.0, l.Agreed.Tuition[slot])
	}
}

func TestApplyRealZeroIsReversal(t *testing.T) {
	l := &Ledger{}
	l.Agreed.Tuition[SlotSeptember] = 500
	l.ApplyReal(StreamTuition, SlotSeptember, 500)

	changes := l.ApplyReal(StreamTuition, SlotSeptember, 0)

	assert.Equal(t, 0.0, l.Real.Tuition[SlotSeptember])
	assert.Equal(t, 500.0, l.Agreed.Tuition[SlotSeptember], "reversal must not touch agreed")
	require.Len(t, changes, 1)
	assert.Equal(t, SideReal, changes[0].Side)

	// Second zero reset is a no-op: same state, no changes.
	again := l.ApplyReal(StreamTuition, SlotSeptember, 0)
	assert.Empty(t, again)
	assert.Equal(t, 0.0, l.Real.Tuition[SlotSeptember])
	assert.Equal(t, 500.0, l.Agreed.Tuition[SlotSeptember])
}

func TestApplyRealMonotonicAgreedAfterSequence(t *testing.T) {
	l := &Ledger{}
	l.ApplyReal(StreamTransport, SlotSeptember, 120)
	l.ApplyReal(StreamTransport, SlotNovember, 200)
	l.ApplyReal(StreamTransport, SlotOctober, 90)

	prev := l.Agreed.Transport[SlotSeptember]
	for slot := SlotOctober; slot < NumSlots; slot++ {
		assert.GreaterOrEqual(t, l.Agreed.Transport[slot], prev, "agreed floor must not decrease at slot %d", slot)
		prev = l.Agreed.Transport[slot]
	}
}

func TestApplyRealStreamsAreIndependent(t *testing.T) {
	l := &Ledger{}

	l.ApplyReal(StreamTuition, SlotSeptember, 600)

	for _, slot := range SchoolYearSlots {
		assert.Zero(t, l.Agreed.Transport[slot], "transport must be untouched by a tuition payment")
	}
}

func TestApplyRealInsuranceNoPropagation(t *testing.T) {
	l := &Ledger{}
	l.Agreed.Insurance = 100

	changes := l.ApplyRealInsurance(150)

	assert.Equal(t, 150.0, l.Real.Insurance)
	assert.Equal(t, 150.0, l.Agreed.Insurance)
	for _, slot := range SchoolYearSlots {
		assert.Zero(t, l.Agreed.Tuition[slot])
		assert.Zero(t, l.Agreed.Transport[slot])
	}
	assert.Len(t, changes, 2)

	// Zero reset leaves agreed alone.
	l.ApplyRealInsurance(0)
	assert.Equal(t, 0.0, l.Real.Insurance)
	assert.Equal(t, 150.0, l.Agreed.Insurance)
}

func TestSetAgreedNoPropagation(t *testing.T) {
	l := &Ledger{}

	c, changed := l.SetAgreed(StreamTuition, SlotSeptember, 500)
	require.True(t, changed)
	assert.Equal(t, "m9_agreed", c.FieldName())
	assert.Equal(t, 500.0, l.Agreed.Tuition[SlotSeptember])
	assert.Zero(t, l.Agreed.Tuition[SlotOctober], "direct contract edits never propagate")

	// Lowering is allowed for direct edits.
	_, changed = l.SetAgreed(StreamTuition, SlotSeptember, 300)
	require.True(t, changed)
	assert.Equal(t, 300.0, l.Agreed.Tuition[SlotSeptember])

	_, changed = l.SetAgreed(StreamTuition, SlotSeptember, 300)
	assert.False(t, changed)
}

func TestChangeFieldNames(t *testing.T) {
	c := LedgerChange{Stream: StreamTuition, Slot: SlotOctober, Side: SideReal}
	assert.Equal(t, "m10_real", c.FieldName())

	c = LedgerChange{Stream: StreamTransport, Slot: SlotJanuary, Side: SideAgreed}
	assert.Equal(t, "m1_transport_agreed", c.FieldName())

	c = LedgerChange{Stream: StreamInsurance, Side: SideAgreed}
	assert.Equal(t, "insurance_agreed", c.FieldName())
}

func TestParseWireField(t *testing.T) {
	stream, slot, side, err := ParseWireField("m9_agreed")
	require.NoError(t, err)
	assert.Equal(t, StreamTuition, stream)
	assert.Equal(t, SlotSeptember, slot)
	assert.Equal(t, SideAgreed, side)

	stream, slot, side, err = ParseWireField("m2_transport_real")
	require.NoError(t, err)
	assert.Equal(t, StreamTransport, stream)
	assert.Equal(t, SlotFebruary, slot)
	assert.Equal(t, SideReal, side)

	stream, _, side, err = ParseWireField("insurance_agreed")
	require.NoError(t, err)
	assert.Equal(t, StreamInsurance, stream)
	assert.Equal(t, SideAgreed, side)

	_, _, _, err = ParseWireField("m7_agreed")
	assert.Error(t, err, "July is not a school-year month")
	_, _, _, err = ParseWireField("bogus")
	assert.Error(t, err)
}

func TestLedgerJSONRoundTrip(t *testing.T) {
	l := Ledger{}
	l.Agreed.Tuition[SlotSeptember] = 500
	l.Real.Transport[SlotJanuary] = 120
	l.Agreed.Insurance = 90

	data, err := json.Marshal(l)
	require.NoError(t, err)

	var wire map[string]map[string]float64
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, 500.0, wire["agreed_payments"]["m9_agreed"])
	assert.Equal(t, 120.0, wire["real_payments"]["m1_transport_real"])
	assert.Equal(t, 90.0, wire["agreed_payments"]["insurance_agreed"])

	var back Ledger
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, l, back)
}
