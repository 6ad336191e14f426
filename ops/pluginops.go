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
	"github.com/coremark-inc/coremarkd/validate"
)

// the permanent plugin types may only be attached at creation
func isPermanent(pluginType plugin.Type) bool {
	switch pluginType {
	case plugin.TypePermanentFreeze, plugin.TypePermanentTransfer, plugin.TypePermanentBurn:
		return true
	}
	return false
}

// AddPlugin - attach a plugin to an existing asset
func AddPlugin(caller identity.Identity, assetCell *cell.Cell, collectionCell *cell.Cell, p plugin.Plugin, auth authority.Authority, funder *cell.Funder) error {
	if isPermanent(p.PluginType()) {
		return fault.ErrInvalidPluginType
	}

	asset, resolved, err := assetContext(caller, assetCell, collectionCell)
	if nil != err {
		return err
	}
	_, _, _, err = validate.AssetPermissions(&validate.AssetArgs{
		Caller:         caller,
		AssetCell:      assetCell,
		CollectionCell: collectionCell,
		Resolved:       resolved,
		Strategy: managePluginStrategy{
			Base:       validate.Base{Event: plugin.EventAddPlugin},
			pluginType: p.PluginType(),
		},
	})
	if nil != err {
		return err
	}

	err = plugin.Initialize(assetCell, asset, p, auth, funder)
	if nil != err {
		return err
	}

	opLog("add plugin: asset %s type %s", assetCell.Address, p.PluginType())
	return nil
}

// RemovePlugin - detach a plugin from an asset
func RemovePlugin(caller identity.Identity, assetCell *cell.Cell, collectionCell *cell.Cell, pluginType plugin.Type, funder *cell.Funder) error {
	asset, resolved, err := assetContext(caller, assetCell, collectionCell)
	if nil != err {
		return err
	}
	_, _, _, err = validate.AssetPermissions(&validate.AssetArgs{
		Caller:         caller,
		AssetCell:      assetCell,
		CollectionCell: collectionCell,
		Resolved:       resolved,
		Strategy: managePluginStrategy{
			Base:       validate.Base{Event: plugin.EventRemovePlugin},
			pluginType: pluginType,
		},
	})
	if nil != err {
		return err
	}

	err = plugin.Delete(assetCell, asset, pluginType, funder)
	if nil != err {
		return err
	}

	opLog("remove plugin: asset %s type %s", assetCell.Address, pluginType)
	return nil
}

// UpdatePlugin - rewrite an attached plugin's state
//
// only the plugin's own recorded authority can approve this
func UpdatePlugin(caller identity.Identity, assetCell *cell.Cell, collectionCell *cell.Cell, p plugin.Plugin, funder *cell.Funder) error {
	asset, resolved, err := assetContext(caller, assetCell, collectionCell)
	if nil != err {
		return err
	}
	_, _, _, err = validate.AssetPermissions(&validate.AssetArgs{
		Caller:         caller,
		AssetCell:      assetCell,
		CollectionCell: collectionCell,
		Resolved:       resolved,
		Strategy:       authorityStrategy{validate.Base{Event: plugin.EventUpdatePlugin}},
	})
	if nil != err {
		return err
	}

	err = plugin.UpdateEntry(assetCell, asset, p, funder)
	if nil != err {
		return err
	}

	opLog("update plugin: asset %s type %s", assetCell.Address, p.PluginType())
	return nil
}

// ApprovePluginAuthority - delegate a plugin's grant to a new identity
func ApprovePluginAuthority(caller identity.Identity, assetCell *cell.Cell, collectionCell *cell.Cell, pluginType plugin.Type, newAuthority authority.Authority, funder *cell.Funder) error {
	asset, resolved, err := assetContext(caller, assetCell, collectionCell)
	if nil != err {
		return err
	}
	_, _, _, err = validate.AssetPermissions(&validate.AssetArgs{
		Caller:         caller,
		AssetCell:      assetCell,
		CollectionCell: collectionCell,
		Resolved:       resolved,
		Strategy:       authorityStrategy{validate.Base{Event: plugin.EventApprovePluginAuthority}},
	})
	if nil != err {
		return err
	}

	err = plugin.SetAuthority(assetCell, asset, pluginType, newAuthority, funder)
	if nil != err {
		return err
	}

	opLog("approve authority: asset %s type %s → %s", assetCell.Address, pluginType, newAuthority)
	return nil
}

// RevokePluginAuthority - reset a plugin's grant to the type default
//
// a Permanent grant survives normal revocation
func RevokePluginAuthority(caller identity.Identity, assetCell *cell.Cell, collectionCell *cell.Cell, pluginType plugin.Type, funder *cell.Funder) error {
	asset, resolved, err := assetContext(caller, assetCell, collectionCell)
	if nil != err {
		return err
	}
	_, r, err := plugin.Fetch(assetCell.Data, asset.Size(), pluginType)
	if nil != err {
		return err
	}
	if authority.TagPermanent == r.Authority.AuthorityTag() {
		return fault.ErrImmutableAuthority
	}

	_, _, _, err = validate.AssetPermissions(&validate.AssetArgs{
		Caller:         caller,
		AssetCell:      assetCell,
		CollectionCell: collectionCell,
		Resolved:       resolved,
		Strategy:       authorityStrategy{validate.Base{Event: plugin.EventRevokePluginAuthority}},
	})
	if nil != err {
		return err
	}

	err = plugin.SetAuthority(assetCell, asset, pluginType, plugin.DefaultAuthority(pluginType), funder)
	if nil != err {
		return err
	}

	opLog("revoke authority: asset %s type %s", assetCell.Address, pluginType)
	return nil
}

// AddCollectionPlugin - attach a plugin to a collection
func AddCollectionPlugin(caller identity.Identity, collectionCell *cell.Cell, p plugin.Plugin, auth authority.Authority, funder *cell.Funder) error {
	if isPermanent(p.PluginType()) {
		return fault.ErrInvalidPluginType
	}

	collection, _, _, err := validate.CollectionPermissions(caller, collectionCell,
		collectionStrategy{validate.Base{Event: plugin.EventAddPlugin}})
	if nil != err {
		return err
	}

	err = plugin.Initialize(collectionCell, collection, p, auth, funder)
	if nil != err {
		return err
	}

	opLog("add plugin: collection %s type %s", collectionCell.Address, p.PluginType())
	return nil
}

// RemoveCollectionPlugin - detach a plugin from a collection
func RemoveCollectionPlugin(caller identity.Identity, collectionCell *cell.Cell, pluginType plugin.Type, funder *cell.Funder) error {
	collection, _, _, err := validate.CollectionPermissions(caller, collectionCell,
		collectionStrategy{validate.Base{Event: plugin.EventRemovePlugin}})
	if nil != err {
		return err
	}

	err = plugin.Delete(collectionCell, collection, pluginType, funder)
	if nil != err {
		return err
	}

	opLog("remove plugin: collection %s type %s", collectionCell.Address, pluginType)
	return nil
}

// UpdateCollectionPlugin - rewrite an attached collection plugin
func UpdateCollectionPlugin(caller identity.Identity, collectionCell *cell.Cell, p plugin.Plugin, funder *cell.Funder) error {
	collection, _, _, err := validate.CollectionPermissions(caller, collectionCell,
		collectionStrategy{validate.Base{Event: plugin.EventUpdatePlugin}})
	if nil != err {
		return err
	}

	err = plugin.UpdateEntry(collectionCell, collection, p, funder)
	if nil != err {
		return err
	}

	opLog("update plugin: collection %s type %s", collectionCell.Address, p.PluginType())
	return nil
}

// ApproveCollectionPluginAuthority - delegate a collection plugin's grant
func ApproveCollectionPluginAuthority(caller identity.Identity, collectionCell *cell.Cell, pluginType plugin.Type, newAuthority authority.Authority, funder *cell.Funder) error {
	collection, _, _, err := validate.CollectionPermissions(caller, collectionCell,
		collectionStrategy{validate.Base{Event: plugin.EventApprovePluginAuthority}})
	if nil != err {
		return err
	}

	err = plugin.SetAuthority(collectionCell, collection, pluginType, newAuthority, funder)
	if nil != err {
		return err
	}

	opLog("approve authority: collection %s type %s → %s", collectionCell.Address, pluginType, newAuthority)
	return nil
}

// RevokeCollectionPluginAuthority - reset a collection plugin's grant
func RevokeCollectionPluginAuthority(caller identity.Identity, collectionCell *cell.Cell, pluginType plugin.Type, funder *cell.Funder) error {
	collection, _, _, err := validate.FetchCollection(collectionCell)
	if nil != err {
		return err
	}
	_, r, err := plugin.Fetch(collectionCell.Data, collection.Size(), pluginType)
	if nil != err {
		return err
	}
	if authority.TagPermanent == r.Authority.AuthorityTag() {
		return fault.ErrImmutableAuthority
	}

	collection, _, _, err = validate.CollectionPermissions(caller, collectionCell,
		collectionStrategy{validate.Base{Event: plugin.EventRevokePluginAuthority}})
	if nil != err {
		return err
	}

	err = plugin.SetAuthority(collectionCell, collection, pluginType, plugin.DefaultAuthority(pluginType), funder)
	if nil != err {
		return err
	}

	opLog("revoke authority: collection %s type %s", collectionCell.Address, pluginType)
	return nil
}
