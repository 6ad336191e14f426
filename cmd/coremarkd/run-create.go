// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/ops"
	"github.com/coremark-inc/coremarkd/record"
)

func runCreate(c *cli.Context) error {
	caller, funder, err := getActors(c)
	if nil != err {
		return err
	}
	owner, err := getOptionalIdentity(c, "owner")
	if nil != err {
		return err
	}
	updater, err := getOptionalIdentity(c, "authority")
	if nil != err {
		return err
	}
	collectionCell, err := getCollectionCell(c)
	if nil != err {
		return err
	}

	// fresh cell address
	address, _, err := identity.Generate()
	if nil != err {
		return err
	}

	auth := record.NoUpdateAuthority()
	if !updater.IsZero() {
		auth = record.UpdateAuthorityOf(updater)
	}

	assetCell, err := ops.Create(&ops.CreateArgs{
		Caller:         caller,
		Address:        address,
		Owner:          owner,
		Name:           c.String("name"),
		URI:            c.String("uri"),
		Authority:      auth,
		CollectionCell: collectionCell,
		Funder:         funder,
	})
	if nil != err {
		return err
	}

	save(funder, assetCell, collectionCell)

	printJson(c.App.Writer, map[string]string{
		"address": assetCell.Address.String(),
	})
	return nil
}

func runCreateCollection(c *cli.Context) error {
	caller, funder, err := getActors(c)
	if nil != err {
		return err
	}

	address, _, err := identity.Generate()
	if nil != err {
		return err
	}

	collectionCell, err := ops.CreateCollection(&ops.CreateCollectionArgs{
		Caller:  caller,
		Address: address,
		Name:    c.String("name"),
		URI:     c.String("uri"),
		Funder:  funder,
	})
	if nil != err {
		return err
	}

	save(funder, collectionCell)

	printJson(c.App.Writer, map[string]string{
		"address": collectionCell.Address.String(),
	})
	return nil
}
