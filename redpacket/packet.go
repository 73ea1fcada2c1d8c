package redpacket

import (
	"github.com/hanakannzashi/saika/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// Asset kinds of a red packet. NativeAsset packets hold GAS and carry no
// asset contract hash, TokenAsset packets hold a NEP-17 token identified by
// its contract hash. The two are mutually exclusive.
const (
	NativeAsset = 0
	TokenAsset  = 1
)

const (
	maxSplit      = 100
	maxMessageLen = 100
)

const (
	errNoMatchingPacket    = "no matching red packet"
	errNoPermission        = "no permission to red packet"
	errNotRunOut           = "red packet does not run out"
	errInvalidParameter    = "invalid red packet parameter"
	errDuplicateCredential = "red packet with the same credential exists"
	errDoubleClaim         = "no double claim"
	errNotInWhitelist      = "claimer is not in the white list of red packet"
	errClaimTokenFailed    = "failed to claim token red packet"
)

type (
	// claim is a single recorded claim of a packet.
	claim struct {
		Claimer interop.Hash160
		Amount  int
	}

	// Packet is one locked-balance distribution job. A packet is identified
	// by its claim credential, the public key whose private half is handed
	// out to claimers.
	Packet struct {
		Kind            int
		AssetID         interop.Hash160
		Owner           interop.Hash160
		InitBalance     int
		CurrentBalance  int
		RefundedBalance int
		InitSplit       int
		CurrentSplit    int
		Mode            int
		Message         string
		Whitelist       []interop.Hash160
		Claimers        []claim
		FailedClaimers  []claim
		CreatedAt       int
		RunOutAt        int
	}
)

// newPacket assembles a packet and validates it, panicking with
// errInvalidParameter on any violation.
func newPacket(kind int, assetID, owner interop.Hash160, amount, split, mode int,
	message string, whitelist []interop.Hash160) Packet {
	p := Packet{
		Kind:            kind,
		AssetID:         assetID,
		Owner:           owner,
		InitBalance:     amount,
		CurrentBalance:  amount,
		RefundedBalance: 0,
		InitSplit:       split,
		CurrentSplit:    split,
		Mode:            mode,
		Message:         message,
		Whitelist:       whitelist,
		Claimers:        []claim{},
		FailedClaimers:  []claim{},
		CreatedAt:       runtime.GetTime(),
		RunOutAt:        0,
	}
	if !p.valid() {
		panic(errInvalidParameter)
	}
	return p
}

// isRunOut reports whether no claim slots remain.
func (p *Packet) isRunOut() bool {
	return p.CurrentSplit == 0
}

func (p *Packet) valid() bool {
	switch p.Kind {
	case NativeAsset:
		if len(p.AssetID) != 0 {
			return false
		}
	case TokenAsset:
		if len(p.AssetID) != interop.Hash160Len {
			return false
		}
	default:
		return false
	}
	if p.Mode != ModeAverage && p.Mode != ModeRandom {
		return false
	}
	if p.InitSplit < 1 || p.InitSplit > maxSplit {
		return false
	}
	if p.InitBalance < p.InitSplit {
		return false
	}
	if len(p.Message) > maxMessageLen {
		return false
	}
	if len(p.Whitelist) != 0 && len(p.Whitelist) != p.InitSplit {
		return false
	}
	return true
}

// claim consumes one slot for claimer and returns the claimed amount.
// A claim against a run-out packet returns 0 and changes nothing.
func (p *Packet) claim(claimer interop.Hash160, entropy int) int {
	if p.isRunOut() {
		return 0
	}
	for i := range p.Claimers {
		if common.BytesEqual(p.Claimers[i].Claimer, claimer) {
			panic(errDoubleClaim)
		}
	}
	if len(p.Whitelist) != 0 && !p.consumeWhitelistSlot(claimer) {
		panic(errNotInWhitelist)
	}

	var amount int
	if p.Mode == ModeAverage {
		amount = averageSub(p.CurrentBalance, p.CurrentSplit)
	} else {
		amount = randomSub(p.CurrentBalance, p.CurrentSplit, entropy)
	}

	p.Claimers = append(p.Claimers, claim{Claimer: claimer, Amount: amount})
	p.CurrentBalance -= amount
	p.CurrentSplit--
	if p.isRunOut() {
		p.RunOutAt = runtime.GetTime()
	}
	return amount
}

// consumeWhitelistSlot removes claimer from the whitelist, reporting whether
// it was present. A whitelisted claim consumes its slot in both distribution
// modes.
func (p *Packet) consumeWhitelistSlot(claimer interop.Hash160) bool {
	for i := range p.Whitelist {
		if common.BytesEqual(p.Whitelist[i], claimer) {
			// the neo-go compiler supports subslicing only for []byte,
			// remove the element with a copy-skip loop instead
			rest := []interop.Hash160{}
			for j := range p.Whitelist {
				if j != i {
					rest = append(rest, p.Whitelist[j])
				}
			}
			p.Whitelist = rest
			return true
		}
	}
	return false
}

// refund moves the remaining balance into the refunded pool and terminates
// the claim sequence. Returns the cumulative refunded balance, including
// amounts moved there by earlier compensations.
func (p *Packet) refund() int {
	p.RefundedBalance += p.CurrentBalance
	p.CurrentBalance = 0
	p.CurrentSplit = 0
	p.Whitelist = nil
	p.RunOutAt = runtime.GetTime()
	return p.RefundedBalance
}

// markFailed compensates a claim whose asset transfer failed: the claimer
// moves into the failed set and the amount joins the refunded pool.
// CurrentBalance and CurrentSplit stay untouched, the slot was consumed
// when the claim committed.
func (p *Packet) markFailed(claimer interop.Hash160, amount int) {
	for i := range p.Claimers {
		if common.BytesEqual(p.Claimers[i].Claimer, claimer) {
			// the neo-go compiler supports subslicing only for []byte,
			// remove the element with a copy-skip loop instead
			kept := []claim{}
			for j := range p.Claimers {
				if j != i {
					kept = append(kept, p.Claimers[j])
				}
			}
			p.Claimers = kept
			break
		}
	}
	p.FailedClaimers = append(p.FailedClaimers, claim{Claimer: claimer, Amount: amount})
	p.RefundedBalance += amount
}
