// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/record"
	"github.com/coremark-inc/coremarkd/validate"
)

// one strategy struct per operation: each names which layer's base
// check it participates in and how the base object votes; plugin
// participation always comes from the event's lifecycle table via the
// embedded validate.Base

// createStrategy - creation into a collection needs the collection's
// update authority; the asset layer does not vote
type createStrategy struct {
	validate.Base
}

func (s createStrategy) CollectionCheck() plugin.CheckResult {
	return plugin.CheckCanApprove
}

func (s createStrategy) ValidateCollection(collection *record.Collection, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	if ctx.Caller == collection.UpdateAuthority {
		return plugin.ValidationApproved, nil
	}
	return plugin.ValidationPass, nil
}

// transferStrategy - the owner may transfer; delegates approve
// through their plugins
type transferStrategy struct {
	validate.Base
}

func (s transferStrategy) AssetCheck() plugin.CheckResult {
	return plugin.CheckCanApprove
}

func (s transferStrategy) ValidateAsset(asset *record.Asset, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	if ctx.Caller == asset.Owner {
		return plugin.ValidationApproved, nil
	}
	return plugin.ValidationPass, nil
}

// burnStrategy - the owner may burn
type burnStrategy struct {
	validate.Base
}

func (s burnStrategy) AssetCheck() plugin.CheckResult {
	return plugin.CheckCanApprove
}

func (s burnStrategy) ValidateAsset(asset *record.Asset, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	if ctx.Caller == asset.Owner {
		return plugin.ValidationApproved, nil
	}
	return plugin.ValidationPass, nil
}

// updateStrategy - only the resolved update authority may edit the
// record fields; the owner alone is not enough
type updateStrategy struct {
	validate.Base
}

func (s updateStrategy) AssetCheck() plugin.CheckResult {
	return plugin.CheckCanApprove
}

func (s updateStrategy) ValidateAsset(asset *record.Asset, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	if nil != ctx.ResolvedAuthority {
		if ctx.ResolvedAuthority.Equal(authority.UpdateAuthority{}) {
			return plugin.ValidationApproved, nil
		}
	}
	return plugin.ValidationPass, nil
}

// managePluginStrategy - add and remove are gated by the plugin
// type's default authority on the asset
type managePluginStrategy struct {
	validate.Base
	pluginType plugin.Type
}

func (s managePluginStrategy) AssetCheck() plugin.CheckResult {
	return plugin.CheckCanApprove
}

func (s managePluginStrategy) ValidateAsset(asset *record.Asset, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	required := plugin.DefaultAuthority(s.pluginType)
	if nil == authority.Assert(asset, ctx.Caller, required) {
		return plugin.ValidationApproved, nil
	}
	// on a delegated asset the UpdateAuthority position is held by
	// the parent collection's update authority; only the resolved
	// label can identify that holder
	if nil != ctx.ResolvedAuthority && ctx.ResolvedAuthority.Equal(required) {
		return plugin.ValidationApproved, nil
	}
	return plugin.ValidationPass, nil
}

// authorityStrategy - approving or revoking a grant is decided by the
// plugin's own recorded authority, never by the base object
type authorityStrategy struct {
	validate.Base
}

// compressStrategy - compression is an owner operation
type compressStrategy struct {
	validate.Base
}

func (s compressStrategy) AssetCheck() plugin.CheckResult {
	return plugin.CheckCanApprove
}

func (s compressStrategy) ValidateAsset(asset *record.Asset, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	if nil != ctx.ResolvedAuthority {
		if ctx.ResolvedAuthority.Equal(authority.Owner{}) {
			return plugin.ValidationApproved, nil
		}
	}
	return plugin.ValidationPass, nil
}

// collectionStrategy - collection record edits, burn and plugin
// attachment are gated by the collection's update authority
type collectionStrategy struct {
	validate.Base
}

func (s collectionStrategy) CollectionCheck() plugin.CheckResult {
	return plugin.CheckCanApprove
}

func (s collectionStrategy) ValidateCollection(collection *record.Collection, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	if ctx.Caller == collection.UpdateAuthority {
		return plugin.ValidationApproved, nil
	}
	return plugin.ValidationPass, nil
}
