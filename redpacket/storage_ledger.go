package redpacket

import (
	"github.com/hanakannzashi/saika/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	errZeroDeposit       = "deposit amount is 0"
	errAlreadyRegistered = "account is already registered"
	errNotRegistered     = "account is not registered"
	errNotEnoughStorage  = "not enough storage balance"
	errNoBalanceBounds   = "storage balance bounds are not defined for dynamic storage usage"
)

type (
	// StorageAccount is the prepaid-storage record of one account.
	StorageAccount struct {
		Usage   int
		Balance int
	}

	// StorageBalance is the view returned by StorageBalanceOf.
	StorageBalance struct {
		Total int
		Used  int
	}
)

// StorageWithdraw moves up to amount of the available (not covering current
// usage) storage balance of account back to it in GAS. Non-positive amount
// means everything available. Returns the withdrawn amount, 0 when nothing
// is available. Can be invoked only by the account itself.
func StorageWithdraw(account interop.Hash160, amount int) int {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(account)

	acc, ok := getStorageAccount(ctx, account)
	if !ok {
		panic(errNotRegistered)
	}

	withdrawn := acc.withdraw(bytePrice(ctx), amount)
	if withdrawn != 0 {
		putStorageAccount(ctx, account, acc)
		transferGas(account, withdrawn)
	}
	return withdrawn
}

// StorageUnregister deletes the storage record of account and returns its
// remaining prepaid balance in GAS. Without force it succeeds only when all
// packets of the account have run out; with force live packets are dropped
// too. Returns false when live packets block the removal. Can be invoked
// only by the account itself.
func StorageUnregister(account interop.Hash160, force bool) bool {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(account)
	assertRegistered(ctx, account)

	if !allPacketsRunOut(ctx, account) && !force {
		return false
	}
	clearPackets(ctx, account, force)

	acc, _ := getStorageAccount(ctx, account)
	acc.Usage = 0
	withdrawn := acc.withdraw(bytePrice(ctx), 0)
	common.DeleteTracked(ctx, accountKey(account))

	if withdrawn != 0 {
		transferGas(account, withdrawn)
	}
	runtime.Log("account unregistered")
	return true
}

// StorageBalanceOf returns the prepaid balance of account next to the cost
// of the storage it currently occupies. Used may exceed Total after a byte
// price change.
func StorageBalanceOf(account interop.Hash160) StorageBalance {
	ctx := storage.GetReadOnlyContext()
	acc, ok := getStorageAccount(ctx, account)
	if !ok {
		panic(errNotRegistered)
	}
	return StorageBalance{Total: acc.Balance, Used: acc.Usage * bytePrice(ctx)}
}

// StorageBalanceBounds always fails: with usage-based pricing there are no
// fixed bounds on a storage balance.
func StorageBalanceBounds() {
	panic(errNoBalanceBounds)
}

// BytePrice returns the cost of one byte of persisted storage in GAS.
func BytePrice() int {
	ctx := storage.GetReadOnlyContext()
	return bytePrice(ctx)
}

// SetBytePrice updates the storage byte price. Can be invoked only by
// committee. Records whose usage was priced before the change keep their
// usage, only its valuation shifts.
func SetBytePrice(price int) {
	common.CheckCommitteeWitness()
	if price <= 0 {
		panic("non-positive byte price")
	}
	ctx := storage.GetContext()
	storage.Put(ctx, bytePriceKey, price)
	runtime.Log("storage byte price updated")
}

// storageDeposit handles the "storage" ingress of OnNEP17Payment: it
// registers account or tops up its prepaid balance. With registrationOnly
// an existing registration is an error instead of a deposit.
func storageDeposit(ctx storage.Context, account interop.Hash160, amount int, registrationOnly bool) {
	if amount <= 0 {
		panic(errZeroDeposit)
	}
	if registrationOnly || !accountRegistered(ctx, account) {
		registerAccount(ctx, account, amount)
		return
	}

	acc, _ := getStorageAccount(ctx, account)
	acc.Balance += amount
	putStorageAccount(ctx, account, acc)
}

// registerAccount creates a record holding the deposit. The bytes consumed
// by the record itself are measured and charged to the new record.
func registerAccount(ctx storage.Context, account interop.Hash160, deposit int) {
	if accountRegistered(ctx, account) {
		panic(errAlreadyRegistered)
	}
	measure.start(common.TotalUsage(ctx))
	putStorageAccount(ctx, account, StorageAccount{Usage: 0, Balance: deposit})
	measureEnd(ctx, account)
	runtime.Log("account registered")
}

// measureEnd stops the running measurement, folds its delta into the record
// of account and resets the session.
func measureEnd(ctx storage.Context, account interop.Hash160) {
	measure.stop(common.TotalUsage(ctx))
	applyUsageChange(ctx, account, measure.change())
	measure.reset()
}

// applyUsageChange shifts the recorded usage of account by change, clamping
// at zero.
func applyUsageChange(ctx storage.Context, account interop.Hash160, change int) {
	acc, ok := getStorageAccount(ctx, account)
	if !ok {
		panic(errNotRegistered)
	}
	if change == 0 {
		return
	}
	acc.Usage += change
	if acc.Usage < 0 {
		acc.Usage = 0
	}
	putStorageAccount(ctx, account, acc)
}

// withdraw takes up to amount from the balance not covering current usage.
// Non-positive amount means everything available.
func (a *StorageAccount) withdraw(bytePrice, amount int) int {
	used := a.Usage * bytePrice
	if a.Balance <= used {
		return 0
	}
	available := a.Balance - used
	if amount <= 0 || amount > available {
		amount = available
	}
	a.Balance -= amount
	return amount
}

func accountKey(account interop.Hash160) []byte {
	return append([]byte{accountKeyPrefix}, account...)
}

func getStorageAccount(ctx storage.Context, account interop.Hash160) (StorageAccount, bool) {
	data := storage.Get(ctx, accountKey(account))
	if data == nil {
		return StorageAccount{}, false
	}
	return std.Deserialize(data.([]byte)).(StorageAccount), true
}

func putStorageAccount(ctx storage.Context, account interop.Hash160, acc StorageAccount) {
	common.SetSerialized(ctx, accountKey(account), acc)
}

func accountRegistered(ctx storage.Context, account interop.Hash160) bool {
	return storage.Get(ctx, accountKey(account)) != nil
}

func assertRegistered(ctx storage.Context, account interop.Hash160) {
	if !accountRegistered(ctx, account) {
		panic(errNotRegistered)
	}
}

// assertStorageBalance checks that the prepaid balance of account covers its
// recorded usage. Callers re-check after mutations: byte price or usage may
// have changed within the operation.
func assertStorageBalance(ctx storage.Context, account interop.Hash160) {
	acc, ok := getStorageAccount(ctx, account)
	if !ok || acc.Balance < acc.Usage*bytePrice(ctx) {
		panic(errNotEnoughStorage)
	}
}

func bytePrice(ctx storage.Context) int {
	return storage.Get(ctx, bytePriceKey).(int)
}
