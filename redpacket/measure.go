package redpacket

// Storage measurement errors. These indicate a broken call sequence inside
// the contract itself and should never be observable from valid invocations.
const (
	errRepeatedStart      = "repeated start of storage measurement"
	errMissingStart       = "missing start of storage measurement"
	errPendingMeasurement = "pending storage measurement"
)

// measurement records the tracked-storage byte delta caused by a single
// invocation. It lives in a package-level variable: contract globals are
// re-initialized by the VM on every invocation, so a session never survives
// a transaction.
type measurement struct {
	reference int
	delta     int
	pending   bool
}

var measure measurement

// start snapshots the current usage counter.
func (m *measurement) start(usage int) {
	if m.pending {
		panic(errRepeatedStart)
	}
	m.reference = usage
	m.pending = true
}

// stop accumulates the delta against the start snapshot.
func (m *measurement) stop(usage int) {
	if !m.pending {
		panic(errMissingStart)
	}
	m.delta += usage - m.reference
	m.reference = 0
	m.pending = false
}

// change returns the accumulated delta. It does not reset the session and
// panics while a measurement is still running.
func (m *measurement) change() int {
	if m.pending {
		panic(errPendingMeasurement)
	}
	return m.delta
}

func (m *measurement) reset() {
	m.reference = 0
	m.delta = 0
	m.pending = false
}
