package redpacket

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAverageSub(t *testing.T) {
	require.Equal(t, 20, averageSub(100, 5))
	require.Equal(t, 1, averageSub(5, 5))
	require.Panics(t, func() { averageSub(4, 5) })
}

func TestAverageSubSequence(t *testing.T) {
	balance, split := 100, 5
	for split > 0 {
		amount := averageSub(balance, split)
		require.Equal(t, 20, amount)
		balance -= amount
		split--
	}
	require.Equal(t, 0, balance)
}

func TestAverageSubRemainder(t *testing.T) {
	// The remainder accrues to whoever arrives when the division becomes
	// exact, the last claim always drains the balance.
	balance, split := 7, 3
	var amounts []int
	for split > 0 {
		amount := averageSub(balance, split)
		amounts = append(amounts, amount)
		balance -= amount
		split--
	}
	require.Equal(t, []int{2, 2, 3}, amounts)
	require.Equal(t, 0, balance)
}

func TestRandomSubSingle(t *testing.T) {
	require.Equal(t, 1000, randomSub(1000, 1, 12345))
}

func TestRandomSubMinimum(t *testing.T) {
	// balance == split forces the minimal draw on every claim.
	r := rand.New(rand.NewSource(1))
	balance, split := 10, 10
	for split > 0 {
		amount := randomSub(balance, split, int(r.Int63()))
		require.Equal(t, 1, amount)
		balance -= amount
		split--
	}
	require.Equal(t, 0, balance)
	require.Panics(t, func() { randomSub(9, 10, 0) })
}

func TestRandomSubSequence(t *testing.T) {
	for seed := int64(0); seed < 32; seed++ {
		r := rand.New(rand.NewSource(seed))
		balance, split := 1000, 10
		for split > 0 {
			amount := randomSub(balance, split, int(r.Int63()))
			require.GreaterOrEqual(t, amount, minSub)
			if split > 1 {
				require.LessOrEqual(t, amount, 2*(balance/split))
				require.LessOrEqual(t, amount, balance-minSub*(split-1))
			}
			balance -= amount
			split--
		}
		require.Equal(t, 0, balance)
	}
}

func TestGenRange(t *testing.T) {
	for _, entropy := range []int{0, 1, 41, 42, 43, 1<<62 - 1, -5} {
		v := genRange(1, 43, entropy)
		require.GreaterOrEqual(t, v, 1)
		require.Less(t, v, 43)
	}
	require.Equal(t, 7, genRange(7, 8, 99))
}
