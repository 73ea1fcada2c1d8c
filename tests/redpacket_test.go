package tests

import (
	"path"
	"testing"

	"github.com/hanakannzashi/saika/common"
	rpcredpacket "github.com/hanakannzashi/saika/rpc/redpacket"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const redpacketPath = "../redpacket"

const (
	testBytePrice      = 1
	testStorageDeposit = 1_0000_0000
)

const (
	modeAverage = 0
	modeRandom  = 1
)

func deployRedPacketContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, redpacketPath, path.Join(redpacketPath, "config.yml"))
	e.DeployContract(t, c, []interface{}{int64(testBytePrice)})
	return c.Hash
}

func newRedPacketInvoker(t *testing.T) (*neotest.Executor, *neotest.ContractInvoker) {
	e := newExecutor(t)
	h := deployRedPacketContract(t, e)
	return e, e.CommitteeInvoker(h)
}

// registerStorage funds the storage ledger record of acc with a GAS deposit,
// registering it on first use.
func registerStorage(t *testing.T, c *neotest.ContractInvoker, acc neotest.Signer) {
	gasInv := c.NewInvoker(gasHash(t, c.Executor), acc)
	gasInv.Invoke(t, true, "transfer",
		acc.ScriptHash(), c.Hash, int64(testStorageDeposit), []interface{}{"storage"})
}

// lockPacket locks amount of GAS of owner under a new red packet.
func lockPacket(t *testing.T, c *neotest.ContractInvoker, owner neotest.Signer,
	cred *keys.PrivateKey, amount int64, split, mode int64, message, whitelist interface{}) {
	gasInv := c.NewInvoker(gasHash(t, c.Executor), owner)
	data := []interface{}{"packet", cred.PublicKey().Bytes(), split, mode, message, whitelist}
	gasInv.Invoke(t, true, "transfer", owner.ScriptHash(), c.Hash, amount, data)
}

func queryPacket(t *testing.T, c *neotest.ContractInvoker, cred *keys.PrivateKey) *rpcredpacket.RedpacketPacket {
	s, err := c.TestInvoke(t, "getPacket", cred.PublicKey().Bytes())
	require.NoError(t, err)
	p := new(rpcredpacket.RedpacketPacket)
	require.NoError(t, p.FromStackItem(s.Pop().Item()))
	return p
}

func TestRedPacket_Version(t *testing.T) {
	_, c := newRedPacketInvoker(t)
	c.Invoke(t, common.Version, "version")
}

func TestRedPacket_AverageClaimSequence(t *testing.T) {
	e, c := newRedPacketInvoker(t)

	owner := c.NewAccount(t)
	registerStorage(t, c, owner)

	cred, credSigner := newCredential(t)
	lockPacket(t, c, owner, cred, 100, 5, modeAverage, "happy new year", nil)

	cc := c.WithSigners(e.Validator, credSigner)
	for i := 0; i < 5; i++ {
		claimer := c.NewAccount(t)
		cc.Invoke(t, 20, "claim", cred.PublicKey().Bytes(), claimer.ScriptHash())
	}

	p := queryPacket(t, c, cred)
	require.EqualValues(t, 0, p.CurrentBalance.Int64())
	require.EqualValues(t, 0, p.CurrentSplit.Int64())
	require.EqualValues(t, 100, p.InitBalance.Int64())
	require.Len(t, p.Claimers, 5)
	require.NotZero(t, p.RunOutAt.Int64())
	require.Equal(t, "happy new year", p.Message)

	// a run-out packet pays nothing, it does not fail
	late := c.NewAccount(t)
	cc.Invoke(t, 0, "claim", cred.PublicKey().Bytes(), late.ScriptHash())
}

func TestRedPacket_DoubleClaim(t *testing.T) {
	e, c := newRedPacketInvoker(t)

	owner := c.NewAccount(t)
	registerStorage(t, c, owner)

	cred, credSigner := newCredential(t)
	lockPacket(t, c, owner, cred, 10, 2, modeAverage, nil, nil)

	claimer := c.NewAccount(t)
	cc := c.WithSigners(e.Validator, credSigner)
	cc.Invoke(t, 5, "claim", cred.PublicKey().Bytes(), claimer.ScriptHash())
	cc.InvokeFail(t, "no double claim", "claim", cred.PublicKey().Bytes(), claimer.ScriptHash())
}

func TestRedPacket_ClaimWitness(t *testing.T) {
	e, c := newRedPacketInvoker(t)

	owner := c.NewAccount(t)
	registerStorage(t, c, owner)

	cred, _ := newCredential(t)
	lockPacket(t, c, owner, cred, 10, 2, modeAverage, nil, nil)

	// the credential key is the sole authorization of a claim
	claimer := c.NewAccount(t)
	cc := c.WithSigners(e.Validator)
	cc.InvokeFail(t, common.ErrWitnessFailed, "claim", cred.PublicKey().Bytes(), claimer.ScriptHash())
}

func TestRedPacket_RandomClaimSequence(t *testing.T) {
	e, c := newRedPacketInvoker(t)

	const (
		balance = 1000
		split   = 10
	)

	owner := c.NewAccount(t)
	registerStorage(t, c, owner)

	cred, credSigner := newCredential(t)
	lockPacket(t, c, owner, cred, balance, split, modeRandom, nil, nil)

	cc := c.WithSigners(e.Validator, credSigner)
	var total int64
	for i := 0; i < split; i++ {
		claimer := c.NewAccount(t)
		cc.InvokeAndCheck(t, func(t testing.TB, stack []stackitem.Item) {
			require.Len(t, stack, 1)
			amount, err := stack[0].TryInteger()
			require.NoError(t, err)
			require.True(t, amount.Sign() > 0)
			total += amount.Int64()
		}, "claim", cred.PublicKey().Bytes(), claimer.ScriptHash())
	}
	require.EqualValues(t, balance, total)

	p := queryPacket(t, c, cred)
	require.EqualValues(t, 0, p.CurrentBalance.Int64())
	require.EqualValues(t, 0, p.CurrentSplit.Int64())
}

func TestRedPacket_Whitelist(t *testing.T) {
	e, c := newRedPacketInvoker(t)

	owner := c.NewAccount(t)
	registerStorage(t, c, owner)

	allowedA := c.NewAccount(t)
	allowedB := c.NewAccount(t)
	outsider := c.NewAccount(t)

	cred, credSigner := newCredential(t)
	lockPacket(t, c, owner, cred, 10, 2, modeAverage, nil,
		[]interface{}{allowedA.ScriptHash(), allowedB.ScriptHash()})

	cc := c.WithSigners(e.Validator, credSigner)
	cc.InvokeFail(t, "claimer is not in the white list of red packet",
		"claim", cred.PublicKey().Bytes(), outsider.ScriptHash())
	cc.Invoke(t, 5, "claim", cred.PublicKey().Bytes(), allowedA.ScriptHash())
	cc.Invoke(t, 5, "claim", cred.PublicKey().Bytes(), allowedB.ScriptHash())
}

func TestRedPacket_CreateFailures(t *testing.T) {
	_, c := newRedPacketInvoker(t)

	owner := c.NewAccount(t)
	gasInv := c.NewInvoker(gasHash(t, c.Executor), owner)

	cred, _ := newCredential(t)
	packetData := func(split, mode int64, whitelist interface{}) []interface{} {
		return []interface{}{"packet", cred.PublicKey().Bytes(), split, mode, nil, whitelist}
	}

	// owner must hold a storage ledger record first
	gasInv.InvokeFail(t, "account is not registered", "transfer",
		owner.ScriptHash(), c.Hash, int64(100), packetData(5, modeAverage, nil))

	registerStorage(t, c, owner)

	gasInv.InvokeFail(t, "invalid red packet parameter", "transfer",
		owner.ScriptHash(), c.Hash, int64(100), packetData(0, modeAverage, nil))
	gasInv.InvokeFail(t, "invalid red packet parameter", "transfer",
		owner.ScriptHash(), c.Hash, int64(3), packetData(5, modeAverage, nil))
	gasInv.InvokeFail(t, "invalid red packet parameter", "transfer",
		owner.ScriptHash(), c.Hash, int64(100), packetData(2, int64(7), nil))
	gasInv.InvokeFail(t, "invalid red packet parameter", "transfer",
		owner.ScriptHash(), c.Hash, int64(100),
		packetData(2, modeAverage, []interface{}{owner.ScriptHash()}))

	gasInv.Invoke(t, true, "transfer",
		owner.ScriptHash(), c.Hash, int64(100), packetData(5, modeAverage, nil))
	gasInv.InvokeFail(t, "red packet with the same credential exists", "transfer",
		owner.ScriptHash(), c.Hash, int64(100), packetData(5, modeAverage, nil))

	// payments without a recognized payload roll the transfer back
	gasInv.InvokeFail(t, "ABORT", "transfer",
		owner.ScriptHash(), c.Hash, int64(100), nil)
	gasInv.InvokeFail(t, "ABORT", "transfer",
		owner.ScriptHash(), c.Hash, int64(100), []interface{}{"bogus"})
}

func TestRedPacket_Refund(t *testing.T) {
	e, c := newRedPacketInvoker(t)

	owner := c.NewAccount(t)
	registerStorage(t, c, owner)

	cred, credSigner := newCredential(t)
	lockPacket(t, c, owner, cred, 100, 5, modeAverage, nil, nil)

	claimer := c.NewAccount(t)
	cc := c.WithSigners(e.Validator, credSigner)
	cc.Invoke(t, 20, "claim", cred.PublicKey().Bytes(), claimer.ScriptHash())

	stranger := c.NewAccount(t)
	c.WithSigners(stranger).InvokeFail(t, "no permission to red packet",
		"refund", cred.PublicKey().Bytes())

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, 80, "refund", cred.PublicKey().Bytes())

	p := queryPacket(t, c, cred)
	require.EqualValues(t, 0, p.CurrentBalance.Int64())
	require.EqualValues(t, 0, p.CurrentSplit.Int64())
	require.EqualValues(t, 80, p.RefundedBalance.Int64())

	// refunding a run-out packet is a no-op for anyone
	c.WithSigners(stranger).Invoke(t, 0, "refund", cred.PublicKey().Bytes())

	late := c.NewAccount(t)
	cc.Invoke(t, 0, "claim", cred.PublicKey().Bytes(), late.ScriptHash())
}

func TestRedPacket_TokenClaimAndResolve(t *testing.T) {
	e, c := newRedPacketInvoker(t)

	// NEO stands in for an arbitrary NEP-17 token here
	neoHash := e.NativeHash(t, nativenames.Neo)
	owner := e.Validator
	registerStorage(t, c, owner)

	cred, credSigner := newCredential(t)
	neoInv := c.NewInvoker(neoHash, owner)

	// storage deposits take GAS only
	neoInv.InvokeFail(t, "ABORT", "transfer", owner.ScriptHash(), c.Hash, int64(1),
		[]interface{}{"storage"})

	neoInv.Invoke(t, true, "transfer", owner.ScriptHash(), c.Hash, int64(50),
		[]interface{}{"packet", cred.PublicKey().Bytes(), int64(1), int64(modeAverage), nil, nil})

	p := queryPacket(t, c, cred)
	require.EqualValues(t, 1, p.Kind.Int64())
	require.Equal(t, neoHash.BytesBE(), p.AssetID)

	claimer := c.NewAccount(t)
	cc := c.WithSigners(e.Validator, credSigner)
	cc.Invoke(t, 50, "claim", cred.PublicKey().Bytes(), claimer.ScriptHash())

	p = queryPacket(t, c, cred)
	require.Len(t, p.Claimers, 1)
	require.Len(t, p.FailedClaimers, 0)

	resolveArgs := []interface{}{
		claimer.ScriptHash(), owner.ScriptHash(), int64(50), neoHash, cred.PublicKey().Bytes(),
	}

	c.WithSigners(claimer).InvokeFail(t, common.ErrCommitteeWitnessFailed,
		"resolveTransfer", append(resolveArgs, false)...)

	// successful settlement leaves the packet as is
	c.Invoke(t, stackitem.Null{}, "resolveTransfer", append(resolveArgs, true)...)
	p = queryPacket(t, c, cred)
	require.Len(t, p.Claimers, 1)
	require.EqualValues(t, 0, p.RefundedBalance.Int64())

	// a failed one moves the claim into the failed set and the amount into
	// the refundable pool of the owner
	c.Invoke(t, stackitem.Null{}, "resolveTransfer", append(resolveArgs, false)...)
	p = queryPacket(t, c, cred)
	require.Len(t, p.Claimers, 0)
	require.Len(t, p.FailedClaimers, 1)
	require.Equal(t, claimer.ScriptHash(), p.FailedClaimers[0].Claimer)
	require.EqualValues(t, 50, p.FailedClaimers[0].Amount.Int64())
	require.EqualValues(t, 50, p.RefundedBalance.Int64())
}

func TestRedPacket_RemoveHistory(t *testing.T) {
	e, c := newRedPacketInvoker(t)

	owner := c.NewAccount(t)
	registerStorage(t, c, owner)

	cred, credSigner := newCredential(t)
	lockPacket(t, c, owner, cred, 10, 1, modeAverage, nil, nil)

	cOwner := c.WithSigners(owner)
	cOwner.InvokeFail(t, "red packet does not run out", "removeHistory", cred.PublicKey().Bytes())

	claimer := c.NewAccount(t)
	c.WithSigners(e.Validator, credSigner).Invoke(t, 10,
		"claim", cred.PublicKey().Bytes(), claimer.ScriptHash())

	stranger := c.NewAccount(t)
	c.WithSigners(stranger).InvokeFail(t, "no permission to red packet",
		"removeHistory", cred.PublicKey().Bytes())

	cOwner.Invoke(t, stackitem.Null{}, "removeHistory", cred.PublicKey().Bytes())
	_, err := c.TestInvoke(t, "getPacket", cred.PublicKey().Bytes())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no matching red packet")

	// removing an unknown credential is a no-op
	unknown, _ := newCredential(t)
	cOwner.Invoke(t, stackitem.Null{}, "removeHistory", unknown.PublicKey().Bytes())
}

func TestRedPacket_ClearHistory(t *testing.T) {
	e, c := newRedPacketInvoker(t)

	owner := c.NewAccount(t)
	registerStorage(t, c, owner)

	spent, spentSigner := newCredential(t)
	live, _ := newCredential(t)
	lockPacket(t, c, owner, spent, 10, 1, modeAverage, nil, nil)
	lockPacket(t, c, owner, live, 10, 2, modeAverage, nil, nil)

	claimer := c.NewAccount(t)
	c.WithSigners(e.Validator, spentSigner).Invoke(t, 10,
		"claim", spent.PublicKey().Bytes(), claimer.ScriptHash())

	stranger := c.NewAccount(t)
	c.WithSigners(stranger).InvokeFail(t, "no permission to red packet",
		"clearHistory", owner.ScriptHash())

	c.WithSigners(owner).Invoke(t, stackitem.Null{}, "clearHistory", owner.ScriptHash())

	s, err := c.TestInvoke(t, "credentialsOf", owner.ScriptHash())
	require.NoError(t, err)
	iter := s.Pop().Value().(*storage.Iterator)
	items := iteratorToArray(iter)
	require.Len(t, items, 1)
	got, err := items[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, live.PublicKey().Bytes(), got)
}

func TestRedPacket_PacketsOf(t *testing.T) {
	_, c := newRedPacketInvoker(t)

	owner := c.NewAccount(t)
	registerStorage(t, c, owner)

	credA, _ := newCredential(t)
	credB, _ := newCredential(t)
	lockPacket(t, c, owner, credA, 10, 2, modeAverage, nil, nil)
	lockPacket(t, c, owner, credB, 30, 3, modeRandom, nil, nil)

	s, err := c.TestInvoke(t, "packetsOf", owner.ScriptHash())
	require.NoError(t, err)
	item := s.Pop().Item()
	views, ok := item.Value().([]stackitem.Item)
	require.True(t, ok)
	require.Len(t, views, 2)

	seen := make(map[string]int64)
	for i := range views {
		v := new(rpcredpacket.RedpacketPacketView)
		require.NoError(t, v.FromStackItem(views[i]))
		seen[string(v.Credential.Bytes())] = v.Packet.InitBalance.Int64()
	}
	require.EqualValues(t, 10, seen[string(credA.PublicKey().Bytes())])
	require.EqualValues(t, 30, seen[string(credB.PublicKey().Bytes())])
}
