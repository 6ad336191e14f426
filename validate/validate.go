// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validate - the permission validation engine
//
// every mutating operation runs through AssetPermissions or
// CollectionPermissions before touching any state; the engine merges
// collection and asset level participation, evaluates the base object
// and every participating plugin, and reduces the verdicts into one
// decision: any rejection aborts immediately, approval needs at least
// one approving vote
package validate

import (
	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/record"
)

// Strategy - the four-way check/validate pairing for one operation
//
// one small struct per operation kind keeps the pairing type checked
// instead of passing four loose function values around
type Strategy interface {
	AssetCheck() plugin.CheckResult
	CollectionCheck() plugin.CheckResult
	PluginCheck(pluginType plugin.Type) plugin.CheckResult
	ValidateAsset(asset *record.Asset, ctx *plugin.ValidationContext) (plugin.ValidationResult, error)
	ValidateCollection(collection *record.Collection, ctx *plugin.ValidationContext) (plugin.ValidationResult, error)
	ValidatePlugin(p plugin.Plugin, ctx *plugin.ValidationContext) (plugin.ValidationResult, error)
}

// Base - default strategy behaviour for one lifecycle event
//
// operations embed Base and override the checks they participate in
type Base struct {
	Event plugin.Event
}

// AssetCheck - no base object participation by default
func (b Base) AssetCheck() plugin.CheckResult { return plugin.CheckNone }

// CollectionCheck - no base object participation by default
func (b Base) CollectionCheck() plugin.CheckResult { return plugin.CheckNone }

// PluginCheck - the event's plugin participation table
func (b Base) PluginCheck(pluginType plugin.Type) plugin.CheckResult {
	return plugin.Check(pluginType, b.Event)
}

// ValidateAsset - no verdict by default
func (b Base) ValidateAsset(asset *record.Asset, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	return plugin.ValidationPass, nil
}

// ValidateCollection - no verdict by default
func (b Base) ValidateCollection(collection *record.Collection, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	return plugin.ValidationPass, nil
}

// ValidatePlugin - delegate to the plugin's own lifecycle validation
func (b Base) ValidatePlugin(p plugin.Plugin, ctx *plugin.ValidationContext) (plugin.ValidationResult, error) {
	return p.Validate(b.Event, ctx)
}

// FetchAsset - load the asset and optional plugin metadata from a cell
//
// a cell longer than the record's own size must carry a plugin region
func FetchAsset(c *cell.Cell) (*record.Asset, *plugin.Header, *plugin.Registry, error) {
	asset, n, err := record.UnpackAsset(c.Data)
	if nil != err {
		return nil, nil, nil, err
	}
	header, registry, err := plugin.LoadMeta(c.Data, n)
	if nil != err {
		return nil, nil, nil, err
	}
	return asset, header, registry, nil
}

// FetchCollection - load the collection and optional plugin metadata
func FetchCollection(c *cell.Cell) (*record.Collection, *plugin.Header, *plugin.Registry, error) {
	collection, n, err := record.UnpackCollection(c.Data)
	if nil != err {
		return nil, nil, nil, err
	}
	header, registry, err := plugin.LoadMeta(c.Data, n)
	if nil != err {
		return nil, nil, nil, err
	}
	return collection, header, registry, nil
}

// AssetArgs - inputs to AssetPermissions
type AssetArgs struct {
	Caller         identity.Identity
	AssetCell      *cell.Cell
	CollectionCell *cell.Cell           // optional parent collection
	NewOwner       *identity.Identity   // transfer only
	Resolved       authority.Authority  // optional pre-resolved caller authority
	Strategy       Strategy
}

// AssetPermissions - decide whether the caller may perform the
// operation on the asset
//
// evaluation order is fixed: the core check first, then collection
// scoped plugin entries, then asset scoped entries; a rejection from
// any single contributor aborts immediately
func AssetPermissions(args *AssetArgs) (*record.Asset, *plugin.Header, *plugin.Registry, error) {
	asset, header, registry, err := FetchAsset(args.AssetCell)
	if nil != err {
		return nil, nil, nil, err
	}

	// the asset participation overrides the collection participation
	coreSource := record.KeyAsset
	coreCheck := args.Strategy.AssetCheck()
	if !coreCheck.Participates() {
		coreSource = record.KeyCollection
		coreCheck = args.Strategy.CollectionCheck()
	}

	// collection plugins first so asset entries shadow them
	checks := plugin.NewCheckMap()
	var collection *record.Collection
	if nil != args.CollectionCell {
		var collectionRegistry *plugin.Registry
		collection, _, collectionRegistry, err = FetchCollection(args.CollectionCell)
		if nil != err {
			return nil, nil, nil, err
		}
		if nil != collectionRegistry {
			collectionRegistry.CheckRegistry(record.KeyCollection, args.Strategy.PluginCheck, checks)
		}
	}
	if nil != registry {
		registry.CheckRegistry(record.KeyAsset, args.Strategy.PluginCheck, checks)
	}

	// core validation
	approved := false
	if coreCheck.Participates() {
		ctx := args.context(asset, nil)
		var verdict plugin.ValidationResult
		switch coreSource {
		case record.KeyCollection:
			if nil == collection {
				return nil, nil, nil, fault.ErrInvalidCollection
			}
			verdict, err = args.Strategy.ValidateCollection(collection, ctx)
		case record.KeyAsset:
			verdict, err = args.Strategy.ValidateAsset(asset, ctx)
		default:
			return nil, nil, nil, fault.ErrIncorrectAccount
		}
		if nil != err {
			return nil, nil, nil, err
		}
		approved = plugin.ValidationApproved == verdict
	}

	// collection scoped plugins, then asset scoped plugins
	pluginApproved, err := evaluateChecks(record.KeyCollection, checks, args, asset, collection)
	if nil != err {
		return nil, nil, nil, err
	}
	approved = pluginApproved || approved

	pluginApproved, err = evaluateChecks(record.KeyAsset, checks, args, asset, collection)
	if nil != err {
		return nil, nil, nil, err
	}
	approved = pluginApproved || approved

	if !approved {
		return nil, nil, nil, fault.ErrInvalidAuthority
	}

	return asset, header, registry, nil
}

// CollectionPermissions - the collection-only variant: no asset
// layer and no new owner
func CollectionPermissions(caller identity.Identity, collectionCell *cell.Cell, strategy Strategy) (*record.Collection, *plugin.Header, *plugin.Registry, error) {
	collection, header, registry, err := FetchCollection(collectionCell)
	if nil != err {
		return nil, nil, nil, err
	}

	approved := false
	if strategy.CollectionCheck().Participates() {
		ctx := &plugin.ValidationContext{
			Caller: caller,
			Target: collection,
		}
		verdict, err := strategy.ValidateCollection(collection, ctx)
		if nil != err {
			return nil, nil, nil, err
		}
		switch verdict {
		case plugin.ValidationApproved:
			approved = true
		case plugin.ValidationRejected:
			return nil, nil, nil, fault.ErrInvalidAuthority
		}
	}

	if nil != registry {
		for _, r := range registry.Records {
			if !strategy.PluginCheck(r.Type).Participates() {
				continue
			}
			if int(r.Offset) >= len(collectionCell.Data) {
				return nil, nil, nil, fault.ErrDeserializationFailed
			}
			p, _, err := plugin.Unpack(collectionCell.Data[r.Offset:])
			if nil != err {
				return nil, nil, nil, err
			}
			ctx := &plugin.ValidationContext{
				Caller:          caller,
				PluginAuthority: r.Authority,
				Target:          collection,
			}
			verdict, err := strategy.ValidatePlugin(p, ctx)
			if nil != err {
				return nil, nil, nil, err
			}
			switch verdict {
			case plugin.ValidationRejected:
				return nil, nil, nil, fault.ErrInvalidAuthority
			case plugin.ValidationApproved, plugin.ValidationForceApproved:
				approved = true
			}
		}
	}

	if !approved {
		return nil, nil, nil, fault.ErrInvalidAuthority
	}

	return collection, header, registry, nil
}

// context - build a validation context for one entry
func (args *AssetArgs) context(asset *record.Asset, target record.CoreObject) *plugin.ValidationContext {
	if nil == target {
		target = asset
	}
	return &plugin.ValidationContext{
		Caller:            args.Caller,
		NewOwner:          args.NewOwner,
		ResolvedAuthority: args.Resolved,
		Target:            target,
	}
}

// evaluateChecks - run the validators for every merged entry of one
// source scope; rejection short-circuits per entry
func evaluateChecks(
	source record.Key,
	checks *plugin.CheckMap,
	args *AssetArgs,
	asset *record.Asset,
	collection *record.Collection,
) (bool, error) {

	approved := false

	for _, entry := range checks.Entries(source) {

		var buffer []byte
		var target record.CoreObject
		switch source {
		case record.KeyCollection:
			if nil == args.CollectionCell || nil == collection {
				return false, fault.ErrInvalidCollection
			}
			buffer = args.CollectionCell.Data
			target = collection
		case record.KeyAsset:
			buffer = args.AssetCell.Data
			target = asset
		default:
			return false, fault.ErrIncorrectAccount
		}

		if int(entry.Record.Offset) >= len(buffer) {
			return false, fault.ErrDeserializationFailed
		}
		p, _, err := plugin.Unpack(buffer[entry.Record.Offset:])
		if nil != err {
			return false, err
		}

		ctx := args.context(asset, target)
		ctx.PluginAuthority = entry.Record.Authority

		verdict, err := args.Strategy.ValidatePlugin(p, ctx)
		if nil != err {
			return false, err
		}

		switch verdict {
		case plugin.ValidationRejected:
			// rejection is decisive, abort the whole operation
			return false, fault.ErrInvalidAuthority
		case plugin.ValidationApproved, plugin.ValidationForceApproved:
			approved = true
		}
	}

	return approved, nil
}
