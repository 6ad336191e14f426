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

func runAddPlugin(c *cli.Context) error {
	caller, funder, err := getActors(c)
	if nil != err {
		return err
	}
	target, err := getCell(c, "address")
	if nil != err {
		return err
	}
	p, err := parsePlugin(c)
	if nil != err {
		return err
	}
	grant, err := parseGrant(c)
	if nil != err {
		return err
	}

	key, err := record.LoadKey(target.Data, 0)
	if nil != err {
		return err
	}
	switch key {
	case record.KeyCollection:
		err = ops.AddCollectionPlugin(caller, target, p, grant, funder)
	default:
		collectionCell, e := getCollectionCell(c)
		if nil != e {
			return e
		}
		err = ops.AddPlugin(caller, target, collectionCell, p, grant, funder)
	}
	if nil != err {
		return err
	}

	save(funder, target)
	return nil
}

func runRemovePlugin(c *cli.Context) error {
	caller, funder, err := getActors(c)
	if nil != err {
		return err
	}
	target, err := getCell(c, "address")
	if nil != err {
		return err
	}
	pluginType, err := parsePluginType(c.String("type"))
	if nil != err {
		return err
	}

	key, err := record.LoadKey(target.Data, 0)
	if nil != err {
		return err
	}
	switch key {
	case record.KeyCollection:
		err = ops.RemoveCollectionPlugin(caller, target, pluginType, funder)
	default:
		collectionCell, e := getCollectionCell(c)
		if nil != e {
			return e
		}
		err = ops.RemovePlugin(caller, target, collectionCell, pluginType, funder)
	}
	if nil != err {
		return err
	}

	save(funder, target)
	return nil
}
