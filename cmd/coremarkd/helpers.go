// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/store"
)

// read a required identity flag
func getIdentity(c *cli.Context, name string) (identity.Identity, error) {
	s := c.String(name)
	if "" == s {
		return identity.Identity{}, fmt.Errorf("missing --%s", name)
	}
	return identity.FromBase58(s)
}

// read an optional identity flag; zero when absent
func getOptionalIdentity(c *cli.Context, name string) (identity.Identity, error) {
	s := c.String(name)
	if "" == s {
		return identity.Identity{}, nil
	}
	return identity.FromBase58(s)
}

// load a cell that must exist
func getCell(c *cli.Context, name string) (*cell.Cell, error) {
	address, err := getIdentity(c, name)
	if nil != err {
		return nil, err
	}
	stored := store.Pool.Cells.GetCell(address)
	if nil == stored {
		return nil, fmt.Errorf("no cell at address: %s", address)
	}
	return stored, nil
}

// load an optional parent collection cell
func getCollectionCell(c *cli.Context) (*cell.Cell, error) {
	address, err := getOptionalIdentity(c, "collection")
	if nil != err {
		return nil, err
	}
	if address.IsZero() {
		return nil, nil
	}
	stored := store.Pool.Cells.GetCell(address)
	if nil == stored {
		return nil, fmt.Errorf("no collection at address: %s", address)
	}
	return stored, nil
}

// caller and funder for a mutating command; the funder defaults to
// the acting identity
func getActors(c *cli.Context) (identity.Identity, *cell.Funder, error) {
	caller, err := getIdentity(c, "identity")
	if nil != err {
		return identity.Identity{}, nil, err
	}
	funderAddress := caller
	if "" != c.String("funder") {
		funderAddress, err = getIdentity(c, "funder")
		if nil != err {
			return identity.Identity{}, nil, err
		}
	}
	return caller, store.Pool.Funders.GetFunder(funderAddress), nil
}

// persist the cells and balances a command touched
func save(funder *cell.Funder, cells ...*cell.Cell) {
	for _, c := range cells {
		if nil != c {
			store.Pool.Cells.PutCell(c)
		}
	}
	if nil != funder {
		store.Pool.Funders.PutFunder(funder)
	}
}

// parse a plugin type name
func parsePluginType(s string) (plugin.Type, error) {
	switch s {
	case "royalties":
		return plugin.TypeRoyalties, nil
	case "freeze":
		return plugin.TypeFreeze, nil
	case "burn":
		return plugin.TypeBurn, nil
	case "transfer":
		return plugin.TypeTransfer, nil
	case "update-delegate":
		return plugin.TypeUpdateDelegate, nil
	case "attributes":
		return plugin.TypeAttributes, nil
	case "permanent-freeze":
		return plugin.TypePermanentFreeze, nil
	case "permanent-transfer":
		return plugin.TypePermanentTransfer, nil
	case "permanent-burn":
		return plugin.TypePermanentBurn, nil
	default:
		return 0, fault.ErrInvalidPluginType
	}
}

// build a plugin value from command flags
func parsePlugin(c *cli.Context) (plugin.Plugin, error) {
	pluginType, err := parsePluginType(c.String("type"))
	if nil != err {
		return nil, err
	}

	switch pluginType {
	case plugin.TypeRoyalties:
		return plugin.Royalties{}, nil
	case plugin.TypeFreeze:
		return plugin.Freeze{Frozen: c.Bool("frozen")}, nil
	case plugin.TypeBurn:
		return plugin.Burn{}, nil
	case plugin.TypeTransfer:
		return plugin.Transfer{}, nil
	case plugin.TypeUpdateDelegate:
		return plugin.UpdateDelegate{}, nil
	case plugin.TypeAttributes:
		list, err := parseAttributes(c.String("attrs"))
		if nil != err {
			return nil, err
		}
		return plugin.Attributes{List: list}, nil
	case plugin.TypePermanentFreeze:
		return plugin.PermanentFreeze{Frozen: c.Bool("frozen")}, nil
	case plugin.TypePermanentTransfer:
		return plugin.PermanentTransfer{}, nil
	case plugin.TypePermanentBurn:
		return plugin.PermanentBurn{}, nil
	default:
		return nil, fault.ErrInvalidPluginType
	}
}

// parse "K=V,K=V" attribute lists
func parseAttributes(s string) ([]plugin.Attribute, error) {
	if "" == s {
		return nil, nil
	}
	items := strings.Split(s, ",")
	list := make([]plugin.Attribute, 0, len(items))
	for _, item := range items {
		kv := strings.SplitN(item, "=", 2)
		if 2 != len(kv) {
			return nil, fmt.Errorf("invalid attribute: %q", item)
		}
		list = append(list, plugin.Attribute{Key: kv[0], Value: kv[1]})
	}
	return list, nil
}

// optional authority grant flag
func parseGrant(c *cli.Context) (authority.Authority, error) {
	s := c.String("grant")
	if "" == s {
		return nil, nil
	}
	address, err := identity.FromBase58(s)
	if nil != err {
		return nil, err
	}
	return authority.Pubkey{Address: address}, nil
}

// output an indented JSON result
func printJson(w io.Writer, result interface{}) {
	b, err := json.MarshalIndent(result, "", "  ")
	if nil != err {
		fmt.Fprintf(w, "only text available: %v\n", result)
		return
	}
	fmt.Fprintf(w, "%s\n", b)
}
