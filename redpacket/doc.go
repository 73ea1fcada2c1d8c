/*
Package redpacket contains implementation of the Saika RedPacket contract.

RedPacket contract locks a quantity of GAS or of a NEP-17 token under a
single-use claim credential (a public key whose private half the packet owner
hands out), splits it among a bounded number of claimers evenly or by a
bounded random draw, and returns whatever stays unclaimed to the owner on
refund. The contract meters the durable storage every account occupies and
charges it against a prepaid per-account storage balance, so it never grows
state an account has not paid for.

Funds enter the contract exclusively through NEP-17 transfers carrying a
payload, see OnNEP17Payment. Native GAS shares are paid out directly within
the claim transaction. Token shares are relayed: the claim transaction
commits the packet state and produces a TransferRequest notification,
committee-run relay nodes perform the token transfer and report the outcome
through ResolveTransfer. Until that settlement lands, the claimed amount is
committed to a claimer who has not received it yet; a failed settlement moves
it into the refundable pool of the owner.

# Contract notifications

PacketCreated notification. Produced when a NEP-17 payment with a "packet"
payload locks a new red packet.

	PacketCreated:
	  - name: credential
	    type: PublicKey
	  - name: owner
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: split
	    type: Integer

PacketClaimed notification. Produced on every claim, including the zero
no-op claim against a run-out packet.

	PacketClaimed:
	  - name: credential
	    type: PublicKey
	  - name: claimer
	    type: Hash160
	  - name: amount
	    type: Integer

PacketRefunded notification. Produced when the owner reclaims the remaining
balance. amount is the balance freed by this refund, not the cumulative one.

	PacketRefunded:
	  - name: credential
	    type: PublicKey
	  - name: owner
	    type: Hash160
	  - name: amount
	    type: Integer

TransferRequest notification. Produced when a token claim commits. Relay
nodes catch it, perform the token transfer and invoke ResolveTransfer with
the same correlation tuple.

	TransferRequest:
	  - name: claimer
	    type: Hash160
	  - name: owner
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: assetID
	    type: Hash160
	  - name: credential
	    type: PublicKey

Payout notification. Produced when token funds return to an owner through a
refund or a claim compensation. Relay nodes perform the transfer; no
settlement is requested for it.

	Payout:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: assetID
	    type: Hash160
	  - name: credential
	    type: PublicKey
*/
package redpacket
