// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/record"
	"github.com/coremark-inc/coremarkd/validate"
)

// CreateCollectionArgs - inputs to CreateCollection
type CreateCollectionArgs struct {
	Caller    identity.Identity
	Address   identity.Identity // the new cell's address
	Authority identity.Identity // zero selects the caller
	Name      string
	URI       string
	Plugins   []InitialPlugin
	Funder    *cell.Funder
}

// CreateCollection - mint a new collection into a fresh cell
//
// the caller becomes the update authority unless one is supplied
func CreateCollection(args *CreateCollectionArgs) (*cell.Cell, error) {
	auth := args.Authority
	if auth.IsZero() {
		auth = args.Caller
	}

	collection := &record.Collection{
		UpdateAuthority: auth,
		Name:            args.Name,
		URI:             args.URI,
	}
	err := collection.CheckLengths()
	if nil != err {
		return nil, err
	}

	c, err := cell.New(args.Address, collection.Size(), args.Funder)
	if nil != err {
		return nil, err
	}
	err = c.WriteAt(0, collection.Pack())
	if nil != err {
		return nil, err
	}

	for _, initial := range args.Plugins {
		err = plugin.Initialize(c, collection, initial.Plugin, initial.Authority, args.Funder)
		if nil != err {
			return nil, err
		}
	}

	opLog("create: collection %s authority %s", c.Address, auth)
	return c, nil
}

// UpdateCollectionArgs - inputs to UpdateCollection; nil fields keep
// current values
type UpdateCollectionArgs struct {
	Caller         identity.Identity
	CollectionCell *cell.Cell
	NewName        *string
	NewURI         *string
	NewAuthority   *identity.Identity
	Funder         *cell.Funder
}

// UpdateCollection - edit a collection's record fields
func UpdateCollection(args *UpdateCollectionArgs) error {
	collection, _, _, err := validate.CollectionPermissions(args.Caller, args.CollectionCell,
		collectionStrategy{validate.Base{Event: plugin.EventUpdate}})
	if nil != err {
		return err
	}

	oldSize := collection.Size()
	if nil != args.NewName {
		collection.Name = *args.NewName
	}
	if nil != args.NewURI {
		collection.URI = *args.NewURI
	}
	if nil != args.NewAuthority {
		collection.UpdateAuthority = *args.NewAuthority
	}
	err = collection.CheckLengths()
	if nil != err {
		return err
	}

	err = plugin.Rewrite(args.CollectionCell, oldSize, collection, args.Funder)
	if nil != err {
		return err
	}

	opLog("update: collection %s", args.CollectionCell.Address)
	return nil
}

// BurnCollection - destroy an empty collection and release its cell
func BurnCollection(caller identity.Identity, collectionCell *cell.Cell, funder *cell.Funder) error {
	collection, _, _, err := validate.CollectionPermissions(caller, collectionCell,
		collectionStrategy{validate.Base{Event: plugin.EventBurn}})
	if nil != err {
		return err
	}
	if collection.CurrentSize > 0 {
		return fault.ErrCollectionNotEmpty
	}

	err = collectionCell.Close(funder)
	if nil != err {
		return err
	}

	opLog("burn: collection %s", collectionCell.Address)
	return nil
}
