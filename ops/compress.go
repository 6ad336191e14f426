// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/proof"
	"github.com/coremark-inc/coremarkd/validate"
)

// Compress - replace an asset cell with its commitment digest
//
// owner only; the returned proof is the sole path back to the full
// object and must be kept by the caller
func Compress(caller identity.Identity, assetCell *cell.Cell, collectionCell *cell.Cell, funder *cell.Funder) (*proof.CompressionProof, error) {
	_, resolved, err := assetContext(caller, assetCell, collectionCell)
	if nil != err {
		return nil, err
	}

	asset, _, registry, err := validate.AssetPermissions(&validate.AssetArgs{
		Caller:         caller,
		AssetCell:      assetCell,
		CollectionCell: collectionCell,
		Resolved:       resolved,
		Strategy:       compressStrategy{validate.Base{Event: plugin.EventCompress}},
	})
	if nil != err {
		return nil, err
	}

	compressionProof, err := proof.Compress(assetCell, asset, registry, funder)
	if nil != err {
		return nil, err
	}

	opLog("compress: asset %s", assetCell.Address)
	return compressionProof, nil
}

// Decompress - rebuild a compressed asset from its proof
//
// the proof's digest must reproduce the committed one before any
// byte of the cell changes
func Decompress(caller identity.Identity, hashedCell *cell.Cell, compressionProof *proof.CompressionProof, collectionCell *cell.Cell, funder *cell.Funder) error {
	err := checkParent(compressionProof.Asset, collectionCell)
	if nil != err {
		return err
	}
	parent, _, err := parentOf(collectionCell)
	if nil != err {
		return err
	}
	resolved, err := authority.Resolve(caller, compressionProof.Asset, parent)
	if nil != err {
		return err
	}
	if !resolved.Equal(authority.Owner{}) {
		return fault.ErrInvalidAuthority
	}

	asset, plugins, err := proof.Verify(hashedCell, compressionProof)
	if nil != err {
		return err
	}

	err = proof.Rebuild(hashedCell, asset, plugins, funder)
	if nil != err {
		return err
	}

	opLog("decompress: asset %s", hashedCell.Address)
	return nil
}
