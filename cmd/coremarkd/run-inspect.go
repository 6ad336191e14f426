// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/record"
	"github.com/coremark-inc/coremarkd/validate"
)

type pluginInfo struct {
	Type      string `json:"type"`
	Authority string `json:"authority"`
}

func runInspect(c *cli.Context) error {
	target, err := getCell(c, "address")
	if nil != err {
		return err
	}

	key, err := record.LoadKey(target.Data, 0)
	if nil != err {
		return err
	}

	result := map[string]interface{}{
		"address": target.Address.String(),
		"deposit": target.Deposit,
		"size":    len(target.Data),
	}

	var registry *plugin.Registry

	switch key {

	case record.KeyAsset:
		asset, _, assetRegistry, err := validate.FetchAsset(target)
		if nil != err {
			return err
		}
		registry = assetRegistry
		result["kind"] = "asset"
		result["owner"] = asset.Owner.String()
		result["name"] = asset.Name
		result["uri"] = asset.URI
		switch asset.UpdateAuthority.Kind {
		case record.UpdateAuthorityAddress:
			result["updateAuthority"] = asset.UpdateAuthority.Address.String()
		case record.UpdateAuthorityCollection:
			result["collection"] = asset.UpdateAuthority.Address.String()
		}

	case record.KeyCollection:
		collection, _, collectionRegistry, err := validate.FetchCollection(target)
		if nil != err {
			return err
		}
		registry = collectionRegistry
		result["kind"] = "collection"
		result["updateAuthority"] = collection.UpdateAuthority.String()
		result["name"] = collection.Name
		result["uri"] = collection.URI
		result["numMinted"] = collection.NumMinted
		result["currentSize"] = collection.CurrentSize

	case record.KeyHashedAsset:
		hashed, err := record.UnpackHashedAsset(target.Data)
		if nil != err {
			return err
		}
		result["kind"] = "hashed asset"
		result["hash"] = hashed.Hash.String()

	default:
		return fmt.Errorf("unsupported cell kind: %d", key)
	}

	if nil != registry {
		plugins := make([]pluginInfo, 0, len(registry.Records))
		for _, r := range registry.Records {
			plugins = append(plugins, pluginInfo{
				Type:      r.Type.String(),
				Authority: r.Authority.String(),
			})
		}
		result["plugins"] = plugins
	}

	printJson(c.App.Writer, result)
	return nil
}
