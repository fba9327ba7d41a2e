package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerLedger_Admit_FIFOOrder(t *testing.T) {
	// GIVEN customers arriving at 1, 2, 3
	l := &CustomerLedger{}
	l.Record(1)
	l.Record(2)
	l.Record(3)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.Waiting())

	// WHEN two are admitted at time 4
	first, ok := l.Admit(4)
	require.True(t, ok)
	second, ok := l.Admit(4)
	require.True(t, ok)

	// THEN they leave the line oldest first, stamped with their service start
	assert.Equal(t, CustomerRecord{ArrivalTime: 1, ServiceStart: 4}, first)
	assert.Equal(t, CustomerRecord{ArrivalTime: 2, ServiceStart: 4}, second)
	assert.Equal(t, 3, l.Len(), "admitted customers stay in the system")
	assert.Equal(t, 1, l.Waiting())
	assert.Equal(t, 2, l.InService())

	head, ok := l.Peek()
	require.True(t, ok)
	assert.Equal(t, 3.0, head.ArrivalTime)
}

func TestCustomerLedger_Discharge_RemovesFromSystem(t *testing.T) {
	l := &CustomerLedger{}
	l.Record(0.5)
	rec, _ := l.Admit(0.5)

	l.Discharge(rec)

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.InService())
	assert.Panics(t, func() { l.Discharge(rec) })
}

func TestCustomerLedger_Admit_EmptyReturnsFalse(t *testing.T) {
	l := &CustomerLedger{}
	_, ok := l.Admit(1)
	assert.False(t, ok)
	_, ok = l.Peek()
	assert.False(t, ok)
}

func TestCustomerLedger_String(t *testing.T) {
	l := &CustomerLedger{}
	l.Record(1)
	l.Record(2)
	l.Admit(2)
	assert.Equal(t, "[2] in-service=1", l.String())
}
