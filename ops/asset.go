// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/record"
	"github.com/coremark-inc/coremarkd/validate"
)

// InitialPlugin - a plugin attached at creation time
//
// a nil Authority selects the type's default
type InitialPlugin struct {
	Plugin    plugin.Plugin
	Authority authority.Authority
}

// CreateArgs - inputs to Create
type CreateArgs struct {
	Caller         identity.Identity
	Address        identity.Identity // the new cell's address
	Owner          identity.Identity // zero selects the caller
	Name           string
	URI            string
	Authority      record.UpdateAuthority
	Plugins        []InitialPlugin
	CollectionCell *cell.Cell
	Funder         *cell.Funder
}

// Create - mint a new asset into a fresh cell
//
// creating into a collection delegates the asset's update authority
// to that collection and requires the collection's update authority
// to approve; a standalone create is self-authorized
func Create(args *CreateArgs) (*cell.Cell, error) {
	owner := args.Owner
	if owner.IsZero() {
		owner = args.Caller
	}

	asset := &record.Asset{
		Owner:           owner,
		UpdateAuthority: args.Authority,
		Name:            args.Name,
		URI:             args.URI,
	}
	if nil != args.CollectionCell {
		asset.UpdateAuthority = record.DelegatedToCollection(args.CollectionCell.Address)
	}
	err := asset.CheckLengths()
	if nil != err {
		return nil, err
	}

	if nil != args.CollectionCell {
		// validation happens before the cell exists: a rejected
		// create must not have charged the funder
		scratch := &cell.Cell{Address: args.Address, Data: asset.Pack()}
		_, _, _, err = validate.AssetPermissions(&validate.AssetArgs{
			Caller:         args.Caller,
			AssetCell:      scratch,
			CollectionCell: args.CollectionCell,
			Strategy:       createStrategy{validate.Base{Event: plugin.EventCreate}},
		})
		if nil != err {
			return nil, err
		}
	}

	c, err := cell.New(args.Address, asset.Size(), args.Funder)
	if nil != err {
		return nil, err
	}
	err = c.WriteAt(0, asset.Pack())
	if nil != err {
		return nil, err
	}

	for _, initial := range args.Plugins {
		err = plugin.Initialize(c, asset, initial.Plugin, initial.Authority, args.Funder)
		if nil != err {
			return nil, err
		}
	}

	if nil != args.CollectionCell {
		collection, _, _, err := validate.FetchCollection(args.CollectionCell)
		if nil != err {
			return nil, err
		}
		collection.NumMinted += 1
		collection.CurrentSize += 1
		err = rewriteCollection(args.CollectionCell, collection)
		if nil != err {
			return nil, err
		}
	}

	opLog("create: asset %s owner %s", c.Address, owner)
	return c, nil
}

// Transfer - move ownership of an asset to a new owner
func Transfer(caller identity.Identity, assetCell *cell.Cell, collectionCell *cell.Cell, newOwner identity.Identity) error {
	asset, resolved, err := assetContext(caller, assetCell, collectionCell)
	if nil != err {
		return err
	}

	asset, _, _, err = validate.AssetPermissions(&validate.AssetArgs{
		Caller:         caller,
		AssetCell:      assetCell,
		CollectionCell: collectionCell,
		NewOwner:       &newOwner,
		Resolved:       resolved,
		Strategy:       transferStrategy{validate.Base{Event: plugin.EventTransfer}},
	})
	if nil != err {
		return err
	}

	previous := asset.Owner
	asset.Owner = newOwner
	// the owner field is fixed width, no resize
	err = assetCell.WriteAt(0, asset.Pack())
	if nil != err {
		return err
	}

	opLog("transfer: asset %s owner %s → %s", assetCell.Address, previous, newOwner)
	return nil
}

// UpdateArgs - inputs to Update; nil fields keep current values
type UpdateArgs struct {
	Caller         identity.Identity
	AssetCell      *cell.Cell
	CollectionCell *cell.Cell
	NewName        *string
	NewURI         *string
	NewAuthority   *record.UpdateAuthority
	Funder         *cell.Funder
}

// Update - edit an asset's record fields
//
// name and uri are variable width so the cell is rewritten with the
// plugin region relocated
func Update(args *UpdateArgs) error {
	asset, resolved, err := assetContext(args.Caller, args.AssetCell, args.CollectionCell)
	if nil != err {
		return err
	}

	asset, _, _, err = validate.AssetPermissions(&validate.AssetArgs{
		Caller:         args.Caller,
		AssetCell:      args.AssetCell,
		CollectionCell: args.CollectionCell,
		Resolved:       resolved,
		Strategy:       updateStrategy{validate.Base{Event: plugin.EventUpdate}},
	})
	if nil != err {
		return err
	}

	oldSize := asset.Size()
	if nil != args.NewName {
		asset.Name = *args.NewName
	}
	if nil != args.NewURI {
		asset.URI = *args.NewURI
	}
	if nil != args.NewAuthority {
		asset.UpdateAuthority = *args.NewAuthority
	}
	err = asset.CheckLengths()
	if nil != err {
		return err
	}

	err = plugin.Rewrite(args.AssetCell, oldSize, asset, args.Funder)
	if nil != err {
		return err
	}

	opLog("update: asset %s", args.AssetCell.Address)
	return nil
}

// Burn - destroy an asset and release its cell
func Burn(caller identity.Identity, assetCell *cell.Cell, collectionCell *cell.Cell, funder *cell.Funder) error {
	asset, _, _, err := validate.FetchAsset(assetCell)
	if nil != err {
		return err
	}
	err = checkParent(asset, collectionCell)
	if nil != err {
		return err
	}
	parent, collection, err := parentOf(collectionCell)
	if nil != err {
		return err
	}
	resolved, err := authority.Resolve(caller, asset, parent)
	if nil != err {
		return err
	}

	_, _, _, err = validate.AssetPermissions(&validate.AssetArgs{
		Caller:         caller,
		AssetCell:      assetCell,
		CollectionCell: collectionCell,
		Resolved:       resolved,
		Strategy:       burnStrategy{validate.Base{Event: plugin.EventBurn}},
	})
	if nil != err {
		return err
	}

	err = assetCell.Close(funder)
	if nil != err {
		return err
	}

	if nil != collection && record.UpdateAuthorityCollection == asset.UpdateAuthority.Kind {
		if collection.CurrentSize > 0 {
			collection.CurrentSize -= 1
		}
		err = rewriteCollection(collectionCell, collection)
		if nil != err {
			return err
		}
	}

	opLog("burn: asset %s", assetCell.Address)
	return nil
}
