package redpacket

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeasurementCycle(t *testing.T) {
	var m measurement

	m.start(100)
	m.stop(140)
	require.Equal(t, 40, m.change())

	// change does not reset, the delta accumulates across cycles.
	m.start(140)
	m.stop(130)
	require.Equal(t, 30, m.change())

	m.reset()
	require.Equal(t, 0, m.change())
}

func TestMeasurementRepeatedStart(t *testing.T) {
	var m measurement

	m.start(10)
	require.PanicsWithValue(t, errRepeatedStart, func() { m.start(20) })
}

func TestMeasurementMissingStart(t *testing.T) {
	var m measurement

	require.PanicsWithValue(t, errMissingStart, func() { m.stop(10) })
}

func TestMeasurementPendingChange(t *testing.T) {
	var m measurement

	m.start(10)
	require.PanicsWithValue(t, errPendingMeasurement, func() { m.change() })

	// reset forces the session back to idle even while pending.
	m.reset()
	require.Equal(t, 0, m.change())
	m.start(0)
	m.stop(25)
	require.Equal(t, 25, m.change())
}
