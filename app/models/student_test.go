package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJoinedSlot(t *testing.T) {
	s := &Student{JoinedMonth: 9}
	assert.Equal(t, SlotSeptember, s.JoinedSlot())

	s.JoinedMonth = 1
	assert.Equal(t, SlotJanuary, s.JoinedSlot())

	// Summer joiners count from September.
	s.JoinedMonth = 7
	assert.Equal(t, SlotSeptember, s.JoinedSlot())
}

func TestEnrolledBy(t *testing.T) {
	s := &Student{JoinedMonth: 12}

	assert.False(t, s.EnrolledBy(SlotSeptember))
	assert.False(t, s.EnrolledBy(SlotNovember))
	assert.True(t, s.EnrolledBy(SlotDecember))
	assert.True(t, s.EnrolledBy(SlotJanuary))
}

func TestLeftSlot(t *testing.T) {
	s := &Student{}
	_, ok := s.LeftSlot()
	assert.False(t, ok)

	left := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	s.IsLeft = true
	s.LeftDate = &left
	slot, ok := s.LeftSlot()
	assert.True(t, ok)
	assert.Equal(t, SlotFebruary, slot)

	// A July departure has no slot in the payment calendar.
	july := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)
	s.LeftDate = &july
	_, ok = s.LeftSlot()
	assert.False(t, ok)
}
