// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/coremark-inc/coremarkd/ops"
	"github.com/coremark-inc/coremarkd/proof"
	"github.com/coremark-inc/coremarkd/store"
)

func runCompress(c *cli.Context) error {
	caller, funder, err := getActors(c)
	if nil != err {
		return err
	}
	assetCell, err := getCell(c, "address")
	if nil != err {
		return err
	}
	collectionCell, err := getCollectionCell(c)
	if nil != err {
		return err
	}

	compressionProof, err := ops.Compress(caller, assetCell, collectionCell, funder)
	if nil != err {
		return err
	}

	// the proof moves to the off-tier archive; it is the only path
	// back to the full object
	store.Pool.Proofs.Put(assetCell.Address.Bytes(), compressionProof.Pack())
	save(funder, assetCell)

	printJson(c.App.Writer, map[string]interface{}{
		"address": assetCell.Address.String(),
		"size":    len(assetCell.Data),
	})
	return nil
}

func runDecompress(c *cli.Context) error {
	caller, funder, err := getActors(c)
	if nil != err {
		return err
	}
	assetCell, err := getCell(c, "address")
	if nil != err {
		return err
	}
	collectionCell, err := getCollectionCell(c)
	if nil != err {
		return err
	}

	compressionProof, err := getProof(assetCell.Address.Bytes())
	if nil != err {
		return err
	}

	err = ops.Decompress(caller, assetCell, compressionProof, collectionCell, funder)
	if nil != err {
		return err
	}

	store.Pool.Proofs.Delete(assetCell.Address.Bytes())
	save(funder, assetCell)
	return nil
}

func runVerify(c *cli.Context) error {
	assetCell, err := getCell(c, "address")
	if nil != err {
		return err
	}
	compressionProof, err := getProof(assetCell.Address.Bytes())
	if nil != err {
		return err
	}

	asset, plugins, err := proof.Verify(assetCell, compressionProof)
	if nil != err {
		return err
	}

	printJson(c.App.Writer, map[string]interface{}{
		"owner":   asset.Owner.String(),
		"name":    asset.Name,
		"uri":     asset.URI,
		"plugins": len(plugins),
	})
	return nil
}

// load a stored compression proof
func getProof(key []byte) (*proof.CompressionProof, error) {
	packed := store.Pool.Proofs.Get(key)
	if nil == packed {
		return nil, fmt.Errorf("no stored proof for this address")
	}
	return proof.UnpackProof(packed)
}
