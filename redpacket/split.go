package redpacket

// Distribution modes of a red packet.
const (
	ModeAverage = 0
	ModeRandom  = 1
)

// minSub is the smallest amount a single random claim can return. The closer
// it is to 0, the higher the variance of the draw.
const minSub = 1

// averageSub returns the even share of balance among split remaining claims.
// The remainder stays in the packet until the division becomes exact, so the
// last claim (split == 1) always drains the balance.
func averageSub(balance, split int) int {
	if balance < split {
		panic("balance must be greater than or equal to split")
	}
	return balance / split
}

// randomSub returns a bounded random share of balance among split remaining
// claims. entropy is the raw per-transaction random value supplied by the
// caller. Every remaining claim can still receive at least minSub afterwards
// and no single draw exceeds twice the even share.
func randomSub(balance, split, entropy int) int {
	if balance < split*minSub {
		panic("balance must be greater than or equal to split * minSub")
	}
	if split == 1 {
		return balance
	}
	maxSub := balance - minSub*(split-1)
	if bound := 2 * (balance / split); bound < maxSub {
		maxSub = bound
	}
	return genRange(minSub, maxSub+1, entropy)
}

// genRange maps entropy to [start, end).
func genRange(start, end, entropy int) int {
	r := entropy % (end - start)
	if r < 0 {
		r += end - start
	}
	return start + r
}
