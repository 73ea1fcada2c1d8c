// Package redpacket contains RPC wrappers for Saika RedPacket contract.
package redpacket

import (
	"crypto/elliptic"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// RedpacketClaim is a contract-specific redpacket.Claim type used by its methods.
type RedpacketClaim struct {
	Claimer util.Uint160
	Amount *big.Int
}

// RedpacketPacket is a contract-specific redpacket.Packet type used by its methods.
type RedpacketPacket struct {
	Kind *big.Int
	AssetID []byte
	Owner util.Uint160
	InitBalance *big.Int
	CurrentBalance *big.Int
	RefundedBalance *big.Int
	InitSplit *big.Int
	CurrentSplit *big.Int
	Mode *big.Int
	Message string
	Whitelist []util.Uint160
	Claimers []*RedpacketClaim
	FailedClaimers []*RedpacketClaim
	CreatedAt *big.Int
	RunOutAt *big.Int
}

// RedpacketPacketView is a contract-specific redpacket.PacketView type used by its methods.
type RedpacketPacketView struct {
	Credential *keys.PublicKey
	Packet *RedpacketPacket
}

// RedpacketStorageBalance is a contract-specific redpacket.StorageBalance type used by its methods.
type RedpacketStorageBalance struct {
	Total *big.Int
	Used *big.Int
}

// PacketCreatedEvent represents "PacketCreated" event emitted by the contract.
type PacketCreatedEvent struct {
	Credential *keys.PublicKey
	Owner util.Uint160
	Amount *big.Int
	Split *big.Int
}

// PacketClaimedEvent represents "PacketClaimed" event emitted by the contract.
type PacketClaimedEvent struct {
	Credential *keys.PublicKey
	Claimer util.Uint160
	Amount *big.Int
}

// PacketRefundedEvent represents "PacketRefunded" event emitted by the contract.
type PacketRefundedEvent struct {
	Credential *keys.PublicKey
	Owner util.Uint160
	Amount *big.Int
}

// TransferRequestEvent represents "TransferRequest" event emitted by the contract.
type TransferRequestEvent struct {
	Claimer util.Uint160
	Owner util.Uint160
	Amount *big.Int
	AssetID util.Uint160
	Credential *keys.PublicKey
}

// PayoutEvent represents "Payout" event emitted by the contract.
type PayoutEvent struct {
	To util.Uint160
	Amount *big.Int
	AssetID util.Uint160
	Credential *keys.PublicKey
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// BytePrice invokes `bytePrice` method of contract.
func (c *ContractReader) BytePrice() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "bytePrice"))
}

// CredentialsOf invokes `credentialsOf` method of contract.
func (c *ContractReader) CredentialsOf(owner util.Uint160) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "credentialsOf", owner))
}

// CredentialsOfExpanded is similar to CredentialsOf (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) CredentialsOfExpanded(owner util.Uint160, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "credentialsOf", _numOfIteratorItems, owner))
}

// GetPacket invokes `getPacket` method of contract.
func (c *ContractReader) GetPacket(credential *keys.PublicKey) (*RedpacketPacket, error) {
	return itemToRedpacketPacket(unwrap.Item(c.invoker.Call(c.hash, "getPacket", credential)))
}

// PacketsOf invokes `packetsOf` method of contract.
func (c *ContractReader) PacketsOf(owner util.Uint160) ([]*RedpacketPacketView, error) {
	return func (item stackitem.Item, err error) ([]*RedpacketPacketView, error) {
		if err != nil {
			return nil, err
		}
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]*RedpacketPacketView, len(arr))
		for i := range res {
			res[i], err = itemToRedpacketPacketView(arr[i], nil)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (unwrap.Item(c.invoker.Call(c.hash, "packetsOf", owner)))
}

// StorageBalanceOf invokes `storageBalanceOf` method of contract.
func (c *ContractReader) StorageBalanceOf(account util.Uint160) (*RedpacketStorageBalance, error) {
	return itemToRedpacketStorageBalance(unwrap.Item(c.invoker.Call(c.hash, "storageBalanceOf", account)))
}

// StorageBalanceBounds invokes `storageBalanceBounds` method of contract.
func (c *ContractReader) StorageBalanceBounds() (*result.Invoke, error) {
	return c.invoker.Call(c.hash, "storageBalanceBounds")
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Claim creates a transaction invoking `claim` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Claim(credential *keys.PublicKey, claimer util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claim", credential, claimer)
}

// ClaimTransaction creates a transaction invoking `claim` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimTransaction(credential *keys.PublicKey, claimer util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claim", credential, claimer)
}

// ClaimUnsigned creates a transaction invoking `claim` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimUnsigned(credential *keys.PublicKey, claimer util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claim", nil, credential, claimer)
}

// ClearHistory creates a transaction invoking `clearHistory` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClearHistory(owner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "clearHistory", owner)
}

// ClearHistoryTransaction creates a transaction invoking `clearHistory` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClearHistoryTransaction(owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "clearHistory", owner)
}

// ClearHistoryUnsigned creates a transaction invoking `clearHistory` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClearHistoryUnsigned(owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "clearHistory", nil, owner)
}

// Refund creates a transaction invoking `refund` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Refund(credential *keys.PublicKey) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "refund", credential)
}

// RefundTransaction creates a transaction invoking `refund` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RefundTransaction(credential *keys.PublicKey) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "refund", credential)
}

// RefundUnsigned creates a transaction invoking `refund` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RefundUnsigned(credential *keys.PublicKey) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "refund", nil, credential)
}

// RemoveHistory creates a transaction invoking `removeHistory` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RemoveHistory(credential *keys.PublicKey) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeHistory", credential)
}

// RemoveHistoryTransaction creates a transaction invoking `removeHistory` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveHistoryTransaction(credential *keys.PublicKey) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "removeHistory", credential)
}

// RemoveHistoryUnsigned creates a transaction invoking `removeHistory` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RemoveHistoryUnsigned(credential *keys.PublicKey) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "removeHistory", nil, credential)
}

// ResolveTransfer creates a transaction invoking `resolveTransfer` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ResolveTransfer(claimer util.Uint160, owner util.Uint160, amount *big.Int, assetID util.Uint160, credential *keys.PublicKey, success bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "resolveTransfer", claimer, owner, amount, assetID, credential, success)
}

// ResolveTransferTransaction creates a transaction invoking `resolveTransfer` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ResolveTransferTransaction(claimer util.Uint160, owner util.Uint160, amount *big.Int, assetID util.Uint160, credential *keys.PublicKey, success bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "resolveTransfer", claimer, owner, amount, assetID, credential, success)
}

// ResolveTransferUnsigned creates a transaction invoking `resolveTransfer` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ResolveTransferUnsigned(claimer util.Uint160, owner util.Uint160, amount *big.Int, assetID util.Uint160, credential *keys.PublicKey, success bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "resolveTransfer", nil, claimer, owner, amount, assetID, credential, success)
}

// SetBytePrice creates a transaction invoking `setBytePrice` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetBytePrice(price *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setBytePrice", price)
}

// SetBytePriceTransaction creates a transaction invoking `setBytePrice` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetBytePriceTransaction(price *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setBytePrice", price)
}

// SetBytePriceUnsigned creates a transaction invoking `setBytePrice` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetBytePriceUnsigned(price *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setBytePrice", nil, price)
}

// StorageUnregister creates a transaction invoking `storageUnregister` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) StorageUnregister(account util.Uint160, force bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "storageUnregister", account, force)
}

// StorageUnregisterTransaction creates a transaction invoking `storageUnregister` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) StorageUnregisterTransaction(account util.Uint160, force bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "storageUnregister", account, force)
}

// StorageUnregisterUnsigned creates a transaction invoking `storageUnregister` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) StorageUnregisterUnsigned(account util.Uint160, force bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "storageUnregister", nil, account, force)
}

// StorageWithdraw creates a transaction invoking `storageWithdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) StorageWithdraw(account util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "storageWithdraw", account, amount)
}

// StorageWithdrawTransaction creates a transaction invoking `storageWithdraw` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) StorageWithdrawTransaction(account util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "storageWithdraw", account, amount)
}

// StorageWithdrawUnsigned creates a transaction invoking `storageWithdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) StorageWithdrawUnsigned(account util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "storageWithdraw", nil, account, amount)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToRedpacketClaim converts stack item into *RedpacketClaim.
func itemToRedpacketClaim(item stackitem.Item, err error) (*RedpacketClaim, error) {
	if err != nil {
		return nil, err
	}
	var res = new(RedpacketClaim)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RedpacketClaim from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RedpacketClaim) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Claimer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Claimer: %w", err)
	}

	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// itemToRedpacketPacket converts stack item into *RedpacketPacket.
func itemToRedpacketPacket(item stackitem.Item, err error) (*RedpacketPacket, error) {
	if err != nil {
		return nil, err
	}
	var res = new(RedpacketPacket)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RedpacketPacket from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RedpacketPacket) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 15 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Kind, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Kind: %w", err)
	}

	index++
	res.AssetID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	index++
	res.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	res.InitBalance, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field InitBalance: %w", err)
	}

	index++
	res.CurrentBalance, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CurrentBalance: %w", err)
	}

	index++
	res.RefundedBalance, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field RefundedBalance: %w", err)
	}

	index++
	res.InitSplit, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field InitSplit: %w", err)
	}

	index++
	res.CurrentSplit, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CurrentSplit: %w", err)
	}

	index++
	res.Mode, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Mode: %w", err)
	}

	index++
	res.Message, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Message: %w", err)
	}

	index++
	res.Whitelist, err = func (item stackitem.Item) ([]util.Uint160, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]util.Uint160, len(arr))
		for i := range res {
			res[i], err = func (item stackitem.Item) (util.Uint160, error) {
				b, err := item.TryBytes()
				if err != nil {
					return util.Uint160{}, err
				}
				u, err := util.Uint160DecodeBytesBE(b)
				if err != nil {
					return util.Uint160{}, err
				}
				return u, nil
			} (arr[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Whitelist: %w", err)
	}

	index++
	res.Claimers, err = func (item stackitem.Item) ([]*RedpacketClaim, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]*RedpacketClaim, len(arr))
		for i := range res {
			res[i], err = itemToRedpacketClaim(arr[i], nil)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Claimers: %w", err)
	}

	index++
	res.FailedClaimers, err = func (item stackitem.Item) ([]*RedpacketClaim, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]*RedpacketClaim, len(arr))
		for i := range res {
			res[i], err = itemToRedpacketClaim(arr[i], nil)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field FailedClaimers: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	index++
	res.RunOutAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field RunOutAt: %w", err)
	}

	return nil
}

// itemToRedpacketPacketView converts stack item into *RedpacketPacketView.
func itemToRedpacketPacketView(item stackitem.Item, err error) (*RedpacketPacketView, error) {
	if err != nil {
		return nil, err
	}
	var res = new(RedpacketPacketView)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RedpacketPacketView from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RedpacketPacketView) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Credential, err = func (item stackitem.Item) (*keys.PublicKey, error) {
		b, err := item.TryBytes()
		if err != nil {
			return nil, err
		}
		k, err := keys.NewPublicKeyFromBytes(b, elliptic.P256())
		if err != nil {
			return nil, err
		}
		return k, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Credential: %w", err)
	}

	index++
	res.Packet, err = itemToRedpacketPacket(arr[index], nil)
	if err != nil {
		return fmt.Errorf("field Packet: %w", err)
	}

	return nil
}

// itemToRedpacketStorageBalance converts stack item into *RedpacketStorageBalance.
func itemToRedpacketStorageBalance(item stackitem.Item, err error) (*RedpacketStorageBalance, error) {
	if err != nil {
		return nil, err
	}
	var res = new(RedpacketStorageBalance)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RedpacketStorageBalance from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RedpacketStorageBalance) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Total, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Total: %w", err)
	}

	index++
	res.Used, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Used: %w", err)
	}

	return nil
}

// PacketCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "PacketCreated" name from the provided [result.ApplicationLog].
func PacketCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*PacketCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*PacketCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "PacketCreated" {
				continue
			}
			event := new(PacketCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize PacketCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to PacketCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *PacketCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Credential, err = func (item stackitem.Item) (*keys.PublicKey, error) {
		b, err := item.TryBytes()
		if err != nil {
			return nil, err
		}
		k, err := keys.NewPublicKeyFromBytes(b, elliptic.P256())
		if err != nil {
			return nil, err
		}
		return k, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Credential: %w", err)
	}

	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Split, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Split: %w", err)
	}

	return nil
}

// PacketClaimedEventsFromApplicationLog retrieves a set of all emitted events
// with "PacketClaimed" name from the provided [result.ApplicationLog].
func PacketClaimedEventsFromApplicationLog(log *result.ApplicationLog) ([]*PacketClaimedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*PacketClaimedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "PacketClaimed" {
				continue
			}
			event := new(PacketClaimedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize PacketClaimedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to PacketClaimedEvent or
// returns an error if it's not possible to do to so.
func (e *PacketClaimedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Credential, err = func (item stackitem.Item) (*keys.PublicKey, error) {
		b, err := item.TryBytes()
		if err != nil {
			return nil, err
		}
		k, err := keys.NewPublicKeyFromBytes(b, elliptic.P256())
		if err != nil {
			return nil, err
		}
		return k, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Credential: %w", err)
	}

	index++
	e.Claimer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Claimer: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// PacketRefundedEventsFromApplicationLog retrieves a set of all emitted events
// with "PacketRefunded" name from the provided [result.ApplicationLog].
func PacketRefundedEventsFromApplicationLog(log *result.ApplicationLog) ([]*PacketRefundedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*PacketRefundedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "PacketRefunded" {
				continue
			}
			event := new(PacketRefundedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize PacketRefundedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to PacketRefundedEvent or
// returns an error if it's not possible to do to so.
func (e *PacketRefundedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Credential, err = func (item stackitem.Item) (*keys.PublicKey, error) {
		b, err := item.TryBytes()
		if err != nil {
			return nil, err
		}
		k, err := keys.NewPublicKeyFromBytes(b, elliptic.P256())
		if err != nil {
			return nil, err
		}
		return k, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Credential: %w", err)
	}

	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// TransferRequestEventsFromApplicationLog retrieves a set of all emitted events
// with "TransferRequest" name from the provided [result.ApplicationLog].
func TransferRequestEventsFromApplicationLog(log *result.ApplicationLog) ([]*TransferRequestEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*TransferRequestEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "TransferRequest" {
				continue
			}
			event := new(TransferRequestEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize TransferRequestEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to TransferRequestEvent or
// returns an error if it's not possible to do to so.
func (e *TransferRequestEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Claimer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Claimer: %w", err)
	}

	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.AssetID, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	index++
	e.Credential, err = func (item stackitem.Item) (*keys.PublicKey, error) {
		b, err := item.TryBytes()
		if err != nil {
			return nil, err
		}
		k, err := keys.NewPublicKeyFromBytes(b, elliptic.P256())
		if err != nil {
			return nil, err
		}
		return k, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Credential: %w", err)
	}

	return nil
}

// PayoutEventsFromApplicationLog retrieves a set of all emitted events
// with "Payout" name from the provided [result.ApplicationLog].
func PayoutEventsFromApplicationLog(log *result.ApplicationLog) ([]*PayoutEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*PayoutEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Payout" {
				continue
			}
			event := new(PayoutEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize PayoutEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to PayoutEvent or
// returns an error if it's not possible to do to so.
func (e *PayoutEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.To, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.AssetID, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	index++
	e.Credential, err = func (item stackitem.Item) (*keys.PublicKey, error) {
		b, err := item.TryBytes()
		if err != nil {
			return nil, err
		}
		k, err := keys.NewPublicKeyFromBytes(b, elliptic.P256())
		if err != nil {
			return nil, err
		}
		return k, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Credential: %w", err)
	}

	return nil
}
