package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/stretchr/testify/require"
)

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func gasHash(t *testing.T, e *neotest.Executor) util.Uint160 {
	return e.NativeHash(t, nativenames.Gas)
}

// newCredential makes a fresh claim credential together with a signer whose
// witness satisfies a claim authorized by that credential.
func newCredential(t *testing.T) (*keys.PrivateKey, neotest.Signer) {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	return priv, neotest.NewSingleSigner(wallet.NewAccountFromPrivateKey(priv))
}
