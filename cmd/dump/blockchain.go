package main

import (
	"context"
	"crypto/elliptic"
	"fmt"
	"time"

	rpcredpacket "github.com/hanakannzashi/saika/rpc/redpacket"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// wrapper over the RPC client providing read access to the deployed contract.
type remoteBlockchain struct {
	rpc *rpcclient.Client
	inv *invoker.Invoker
}

// newRemoteBlockchain dials Neo RPC server and returns remoteBlockchain based
// on the opened connection. Connection and all requests are done within 15s
// timeout.
func newRemoteBlockchain(blockChainRPCEndpoint string) (*remoteBlockchain, error) {
	c, err := rpcclient.New(context.Background(), blockChainRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return &remoteBlockchain{
		rpc: c,
		inv: invoker.New(c, nil),
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// collectCredentials drains the claim credential iterator of owner. Servers
// without session support expand the iterator on their side, in which case
// the prefetched values are used as is.
func (x *remoteBlockchain) collectCredentials(reader *rpcredpacket.ContractReader, owner util.Uint160) ([]*keys.PublicKey, error) {
	sessionID, iter, err := reader.CredentialsOf(owner)
	if err != nil {
		return nil, fmt.Errorf("open credential iterator: %w", err)
	}

	if sessionID == uuid.Nil {
		return credentialsFromItems(iter.Values)
	}
	defer func() {
		_ = x.inv.TerminateSession(sessionID)
	}()

	var res []*keys.PublicKey
	for {
		items, err := x.inv.TraverseIterator(sessionID, &iter, 100)
		if err != nil {
			return nil, fmt.Errorf("traverse credential iterator: %w", err)
		}
		if len(items) == 0 {
			return res, nil
		}

		page, err := credentialsFromItems(items)
		if err != nil {
			return nil, err
		}
		res = append(res, page...)
	}
}

func credentialsFromItems(items []stackitem.Item) ([]*keys.PublicKey, error) {
	res := make([]*keys.PublicKey, 0, len(items))
	for i := range items {
		b, err := items[i].TryBytes()
		if err != nil {
			return nil, fmt.Errorf("credential item #%d: %w", i, err)
		}
		pub, err := keys.NewPublicKeyFromBytes(b, elliptic.P256())
		if err != nil {
			return nil, fmt.Errorf("credential key #%d: %w", i, err)
		}
		res = append(res, pub)
	}
	return res, nil
}
