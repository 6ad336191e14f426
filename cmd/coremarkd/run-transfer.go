// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/coremark-inc/coremarkd/ops"
	"github.com/coremark-inc/coremarkd/record"
)

func runTransfer(c *cli.Context) error {
	caller, funder, err := getActors(c)
	if nil != err {
		return err
	}
	assetCell, err := getCell(c, "address")
	if nil != err {
		return err
	}
	receiver, err := getIdentity(c, "receiver")
	if nil != err {
		return err
	}
	collectionCell, err := getCollectionCell(c)
	if nil != err {
		return err
	}

	err = ops.Transfer(caller, assetCell, collectionCell, receiver)
	if nil != err {
		return err
	}

	save(funder, assetCell)
	return nil
}

func runUpdate(c *cli.Context) error {
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

	args := &ops.UpdateArgs{
		Caller:         caller,
		AssetCell:      assetCell,
		CollectionCell: collectionCell,
		Funder:         funder,
	}
	if name := c.String("name"); "" != name {
		args.NewName = &name
	}
	if uri := c.String("uri"); "" != uri {
		args.NewURI = &uri
	}

	err = ops.Update(args)
	if nil != err {
		return err
	}

	save(funder, assetCell)
	return nil
}

func runBurn(c *cli.Context) error {
	caller, funder, err := getActors(c)
	if nil != err {
		return err
	}
	target, err := getCell(c, "address")
	if nil != err {
		return err
	}

	key, err := record.LoadKey(target.Data, 0)
	if nil != err {
		return err
	}

	collectionCell, e := getCollectionCell(c)
	if nil != e {
		return e
	}

	switch key {
	case record.KeyCollection:
		err = ops.BurnCollection(caller, target, funder)
	default:
		err = ops.Burn(caller, target, collectionCell, funder)
	}
	if nil != err {
		return err
	}

	save(funder, target, collectionCell)
	return nil
}
