package redpacket

import (
	"github.com/hanakannzashi/saika/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// PacketView couples a packet with the claim credential it is stored under.
type PacketView struct {
	Credential interop.PublicKey
	Packet     Packet
}

const (
	packetKeyPrefix  = 'p'
	ownerKeyPrefix   = 'o'
	accountKeyPrefix = 'a'

	bytePriceKey = "bytePrice"
)

const errWrongPayload = "wrong receiver payload"

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]any)
	price := args[0].(int)
	if price <= 0 {
		panic("non-positive byte price")
	}
	storage.Put(ctx, bytePriceKey, price)

	runtime.Log("red packet contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("red packet contract updated")
}

// OnNEP17Payment is the single funds ingress of the contract. The attached
// data names the purpose of the payment:
//
//	["packet", credential, split, mode, message, whitelist] locks the
//	transferred amount under a new red packet owned by the sender. GAS
//	ingress makes a native packet, any other NEP-17 token an asset packet
//	identified by the calling token contract.
//
//	["storage", account, registrationOnly] registers account (the sender
//	when nil) in the storage ledger or tops up its prepaid balance. Storage
//	is paid in GAS only.
//
// Payments without a recognized payload are aborted so that the transfer
// itself rolls back and no funds get stuck.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetContext()
	if data == nil {
		common.AbortWithMessage(errWrongPayload)
	}
	args := data.([]any)
	if len(args) == 0 {
		common.AbortWithMessage(errWrongPayload)
	}

	caller := runtime.GetCallingScriptHash()

	switch args[0].(string) {
	case "packet":
		if len(args) != 6 {
			common.AbortWithMessage(errWrongPayload)
		}
		credential := args[1].(interop.PublicKey)
		split := args[2].(int)
		mode := args[3].(int)
		var message string
		if args[4] != nil {
			message = args[4].(string)
		}
		var whitelist []interop.Hash160
		if args[5] != nil {
			raw := args[5].([]any)
			for i := range raw {
				whitelist = append(whitelist, raw[i].(interop.Hash160))
			}
		}

		kind := TokenAsset
		var assetID interop.Hash160
		if common.BytesEqual(caller, []byte(gas.Hash)) {
			kind = NativeAsset
		} else {
			assetID = caller
		}
		createPacket(ctx, kind, assetID, from, amount, credential, split, mode, message, whitelist)
	case "storage":
		if !common.BytesEqual(caller, []byte(gas.Hash)) {
			common.AbortWithMessage("storage is paid in GAS only")
		}
		account := from
		if len(args) > 1 && args[1] != nil {
			account = args[1].(interop.Hash160)
		}
		var registrationOnly bool
		if len(args) > 2 && args[2] != nil {
			registrationOnly = args[2].(bool)
		}
		storageDeposit(ctx, account, amount, registrationOnly)
	default:
		common.AbortWithMessage(errWrongPayload)
	}
}

// createPacket validates and stores a new packet. The owner pays for the
// bytes it occupies, so its storage balance is checked both before and after
// the write.
func createPacket(ctx storage.Context, kind int, assetID, owner interop.Hash160,
	amount int, credential interop.PublicKey, split, mode int,
	message string, whitelist []interop.Hash160) {
	if amount <= 0 {
		panic(errZeroDeposit)
	}
	if len(credential) != interop.PublicKeyCompressedLen {
		panic(errInvalidParameter)
	}
	assertRegistered(ctx, owner)
	assertStorageBalance(ctx, owner)
	if storage.Get(ctx, packetKey(credential)) != nil {
		panic(errDuplicateCredential)
	}

	p := newPacket(kind, assetID, owner, amount, split, mode, message, whitelist)

	measure.start(common.TotalUsage(ctx))
	addPacket(ctx, credential, owner, p)
	measureEnd(ctx, owner)
	assertStorageBalance(ctx, owner)

	runtime.Notify("PacketCreated", credential, owner, amount, split)
	runtime.Log("red packet created")
}

// Claim pays one share of the packet stored under credential to claimer.
// The transaction must be witnessed by the credential key, which is the sole
// authorization of a claim. A claim against a run-out packet returns 0.
// Native shares are transferred within the claim transaction; token shares
// are relayed through a TransferRequest notification and settled later via
// ResolveTransfer.
func Claim(credential interop.PublicKey, claimer interop.Hash160) int {
	ctx := storage.GetContext()
	if len(claimer) != interop.Hash160Len {
		panic(errInvalidParameter)
	}
	common.CheckWitness(credential)

	p := getPacket(ctx, credential)
	amount := p.claim(claimer, runtime.GetRandom())

	measure.start(common.TotalUsage(ctx))
	putPacket(ctx, credential, p)
	measureEnd(ctx, p.Owner)

	if amount != 0 {
		if p.Kind == NativeAsset {
			transferGas(claimer, amount)
		} else {
			runtime.Notify("TransferRequest", claimer, p.Owner, amount, p.AssetID, credential)
		}
	}
	runtime.Notify("PacketClaimed", credential, claimer, amount)
	return amount
}

// Refund moves the unclaimed balance of the packet back to its owner and
// terminates the claim sequence. Refunding a run-out packet is a no-op
// returning 0. Returns the cumulative refunded balance, including amounts
// recorded by earlier claim compensations. Can be invoked only by the packet
// owner.
func Refund(credential interop.PublicKey) int {
	ctx := storage.GetContext()
	p := getPacket(ctx, credential)
	if p.isRunOut() {
		return 0
	}
	if !runtime.CheckWitness(p.Owner) {
		panic(errNoPermission)
	}

	freed := p.CurrentBalance
	total := p.refund()

	measure.start(common.TotalUsage(ctx))
	putPacket(ctx, credential, p)
	measureEnd(ctx, p.Owner)

	if freed != 0 {
		payOut(p, p.Owner, freed, credential)
	}
	runtime.Notify("PacketRefunded", credential, p.Owner, freed)
	return total
}

// ResolveTransfer settles a previously relayed token claim transfer. It can
// be invoked only by committee, an ordinary caller must never be able to
// report a forged failure. Settlement of a successful transfer is a no-op.
// A failed one is compensated: the claimer moves into the failed set of the
// packet and the amount is relayed back to the owner.
func ResolveTransfer(claimer, owner interop.Hash160, amount int,
	assetID interop.Hash160, credential interop.PublicKey, success bool) {
	common.CheckCommitteeWitness()

	if success {
		runtime.Log("token red packet claim settled")
		return
	}
	runtime.Log(errClaimTokenFailed)

	ctx := storage.GetContext()
	data := storage.Get(ctx, packetKey(credential))
	if data != nil {
		p := std.Deserialize(data.([]byte)).(Packet)
		p.markFailed(claimer, amount)

		measure.start(common.TotalUsage(ctx))
		putPacket(ctx, credential, p)
		measureEnd(ctx, p.Owner)
	}

	runtime.Log("refund failed claim to red packet owner")
	runtime.Notify("Payout", owner, amount, assetID, credential)
}

// RemoveHistory deletes the run-out packet stored under credential. Removing
// an unknown credential is a no-op. Can be invoked only by the packet owner.
func RemoveHistory(credential interop.PublicKey) {
	ctx := storage.GetContext()
	data := storage.Get(ctx, packetKey(credential))
	if data == nil {
		return
	}
	p := std.Deserialize(data.([]byte)).(Packet)
	if !runtime.CheckWitness(p.Owner) {
		panic(errNoPermission)
	}
	if !p.isRunOut() {
		panic(errNotRunOut)
	}

	measure.start(common.TotalUsage(ctx))
	removePacket(ctx, credential, p.Owner)
	measureEnd(ctx, p.Owner)
}

// ClearHistory deletes all run-out packets of owner. Can be invoked only by
// the owner.
func ClearHistory(owner interop.Hash160) {
	ctx := storage.GetContext()
	if !runtime.CheckWitness(owner) {
		panic(errNoPermission)
	}

	measure.start(common.TotalUsage(ctx))
	clearPackets(ctx, owner, false)
	measureEnd(ctx, owner)
}

// GetPacket returns the packet stored under credential.
func GetPacket(credential interop.PublicKey) Packet {
	ctx := storage.GetReadOnlyContext()
	return getPacket(ctx, credential)
}

// PacketsOf returns the state of every packet owned by owner together with
// its credential.
func PacketsOf(owner interop.Hash160) []PacketView {
	ctx := storage.GetReadOnlyContext()
	views := []PacketView{}
	credentials := ownedCredentials(ctx, owner)
	for i := range credentials {
		views = append(views, PacketView{
			Credential: credentials[i],
			Packet:     getPacket(ctx, credentials[i]),
		})
	}
	return views
}

// CredentialsOf iterates over claim credentials of all packets owned by
// owner. If owner is empty, it iterates over all packets.
func CredentialsOf(owner interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	key := []byte{ownerKeyPrefix}
	if len(owner) != 0 {
		key = append(key, owner...)
	}
	return storage.Find(ctx, key, storage.ValuesOnly)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func packetKey(credential interop.PublicKey) []byte {
	return append([]byte{packetKeyPrefix}, credential...)
}

func ownerPrefixKey(owner interop.Hash160) []byte {
	return append([]byte{ownerKeyPrefix}, owner...)
}

func ownerIndexKey(owner interop.Hash160, credential interop.PublicKey) []byte {
	return append(ownerPrefixKey(owner), credential...)
}

func getPacket(ctx storage.Context, credential interop.PublicKey) Packet {
	data := storage.Get(ctx, packetKey(credential))
	if data == nil {
		panic(errNoMatchingPacket)
	}
	return std.Deserialize(data.([]byte)).(Packet)
}

func putPacket(ctx storage.Context, credential interop.PublicKey, p Packet) {
	common.SetSerialized(ctx, packetKey(credential), p)
}

func addPacket(ctx storage.Context, credential interop.PublicKey, owner interop.Hash160, p Packet) {
	common.PutTracked(ctx, ownerIndexKey(owner, credential), credential)
	putPacket(ctx, credential, p)
}

func removePacket(ctx storage.Context, credential interop.PublicKey, owner interop.Hash160) {
	common.DeleteTracked(ctx, ownerIndexKey(owner, credential))
	common.DeleteTracked(ctx, packetKey(credential))
}

func ownedCredentials(ctx storage.Context, owner interop.Hash160) []interop.PublicKey {
	result := []interop.PublicKey{}
	it := storage.Find(ctx, ownerPrefixKey(owner), storage.ValuesOnly)
	for iterator.Next(it) {
		result = append(result, iterator.Value(it).(interop.PublicKey))
	}
	return result
}

func allPacketsRunOut(ctx storage.Context, owner interop.Hash160) bool {
	credentials := ownedCredentials(ctx, owner)
	for i := range credentials {
		p := getPacket(ctx, credentials[i])
		if !p.isRunOut() {
			return false
		}
	}
	return true
}

// clearPackets removes run-out packets of owner, or all of them when forced.
// Credentials are collected up front, storage.Find must not observe
// concurrent deletes.
func clearPackets(ctx storage.Context, owner interop.Hash160, force bool) {
	credentials := ownedCredentials(ctx, owner)
	for i := range credentials {
		p := getPacket(ctx, credentials[i])
		if p.isRunOut() || force {
			removePacket(ctx, credentials[i], owner)
		}
	}
}

// payOut returns funds to an owner outside the claim flow. Token payouts are
// relayed without a settlement request: a failed payout is not compensated
// further.
func payOut(p Packet, to interop.Hash160, amount int, credential interop.PublicKey) {
	if p.Kind == NativeAsset {
		transferGas(to, amount)
		return
	}
	runtime.Notify("Payout", to, amount, p.AssetID, credential)
}

func transferGas(to interop.Hash160, amount int) {
	if !contract.Call(interop.Hash160(gas.Hash), "transfer", contract.All,
		runtime.GetExecutingScriptHash(), to, amount, nil).(bool) {
		panic("GAS transfer failed")
	}
}
