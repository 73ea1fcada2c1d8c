package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	rpcredpacket "github.com/hanakannzashi/saika/rpc/redpacket"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractHash := flag.String("contract", "", "Hash of the RedPacket contract (LE)")
	ownerArg := flag.String("owner", "", "Address or LE hash of the packet owner to dump")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractHash == "":
		log.Fatal("missing RedPacket contract hash")
	case *ownerArg == "":
		log.Fatal("missing packet owner")
	}

	contract, err := util.Uint160DecodeStringLE(strings.TrimPrefix(*contractHash, "0x"))
	if err != nil {
		log.Fatal(fmt.Errorf("decode contract hash: %w", err))
	}

	owner, err := parseAccount(*ownerArg)
	if err != nil {
		log.Fatal(fmt.Errorf("decode owner: %w", err))
	}

	err = _dump(*neoRPCEndpoint, contract, owner)
	if err != nil {
		log.Fatal(err)
	}
}

// parseAccount accepts both the Neo address form and the LE script hash form.
func parseAccount(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}
	return util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
}

func _dump(neoBlockchainRPCEndpoint string, contract, owner util.Uint160) error {
	b, err := newRemoteBlockchain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	reader := rpcredpacket.NewReader(b.inv, contract)

	version, err := reader.Version()
	if err != nil {
		return fmt.Errorf("get contract version: %w", err)
	}
	price, err := reader.BytePrice()
	if err != nil {
		return fmt.Errorf("get storage byte price: %w", err)
	}
	log.Printf("RedPacket contract %s, version %s, byte price %s\n",
		contract.StringLE(), version, price)

	balance, err := reader.StorageBalanceOf(owner)
	if err != nil {
		log.Printf("owner %s holds no storage record: %v\n", address.Uint160ToString(owner), err)
	} else {
		log.Printf("storage balance of %s: total %s, used %s\n",
			address.Uint160ToString(owner), balance.Total, balance.Used)
	}

	credentials, err := b.collectCredentials(reader, owner)
	if err != nil {
		return err
	}

	for _, credential := range credentials {
		p, err := reader.GetPacket(credential)
		if err != nil {
			return fmt.Errorf("get packet '%s': %w", base58.Encode(credential.Bytes()), err)
		}
		printPacket(credential, p)
	}

	log.Printf("%d red packets dumped\n", len(credentials))
	return nil
}

func printPacket(credential *keys.PublicKey, p *rpcredpacket.RedpacketPacket) {
	fmt.Printf("packet %s\n", base58.Encode(credential.Bytes()))
	fmt.Printf("  owner:   %s\n", address.Uint160ToString(p.Owner))

	asset := "GAS"
	if p.Kind.Int64() != 0 {
		assetID, err := util.Uint160DecodeBytesBE(p.AssetID)
		if err == nil {
			asset = "token " + assetID.StringLE()
		} else {
			asset = "token (bad asset id)"
		}
	}
	fmt.Printf("  asset:   %s\n", asset)

	mode := "average"
	if p.Mode.Int64() != 0 {
		mode = "random"
	}
	fmt.Printf("  mode:    %s\n", mode)
	fmt.Printf("  balance: %s of %s (refunded %s)\n", p.CurrentBalance, p.InitBalance, p.RefundedBalance)
	fmt.Printf("  split:   %s of %s\n", p.CurrentSplit, p.InitSplit)
	if p.Message != "" {
		fmt.Printf("  message: %q\n", p.Message)
	}
	fmt.Printf("  claims:  %d done, %d failed\n", len(p.Claimers), len(p.FailedClaimers))
}
