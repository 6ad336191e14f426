// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package plugin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/record"
)

func makeIdentity(fill byte) identity.Identity {
	var buffer [identity.Size]byte
	for i := range buffer {
		buffer[i] = fill
	}
	id, _ := identity.FromBytes(buffer[:])
	return id
}

var (
	ownerId    = makeIdentity(0x01)
	delegateId = makeIdentity(0x02)
	strangerId = makeIdentity(0x03)
)

func testAsset() *record.Asset {
	return &record.Asset{
		Owner:           ownerId,
		UpdateAuthority: record.UpdateAuthorityOf(delegateId),
		Name:            "item",
		URI:             "uri",
	}
}

func TestRoyaltiesRoundTrip(t *testing.T) {
	p := plugin.Royalties{
		BasisPoints: 500,
		Creators: []plugin.Creator{
			{Address: ownerId, Percentage: 60},
			{Address: delegateId, Percentage: 40},
		},
		Ruleset:   plugin.RulesetDenyList,
		RuleAddrs: []identity.Identity{strangerId},
	}

	packed := p.Pack()
	assert.Equal(t, p.Size(), len(packed), "size mismatch")

	restored, n, err := plugin.Unpack(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, len(packed), n, "wrong consumed length")
	assert.Equal(t, plugin.Plugin(p), restored, "plugin not restored")
}

func TestFreezeRoundTrip(t *testing.T) {
	p := plugin.Freeze{Frozen: true}
	restored, n, err := plugin.Unpack(p.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, 2, n, "wrong consumed length")
	assert.Equal(t, plugin.Plugin(p), restored, "plugin not restored")
}

func TestAttributesRoundTrip(t *testing.T) {
	p := plugin.Attributes{
		List: []plugin.Attribute{
			{Key: "rarity", Value: "epic"},
			{Key: "edition", Value: "7"},
		},
	}
	packed := p.Pack()
	assert.Equal(t, p.Size(), len(packed), "size mismatch")

	restored, _, err := plugin.Unpack(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, plugin.Plugin(p), restored, "plugin not restored")
}

func TestUnpackUnknownType(t *testing.T) {
	_, _, err := plugin.Unpack([]byte{0xee})
	assert.Equal(t, fault.ErrInvalidPluginType, err, "wrong error")
}

// the check table is pure and total over (type, event)
func TestCheckTotal(t *testing.T) {
	types := []plugin.Type{
		plugin.TypeRoyalties, plugin.TypeFreeze, plugin.TypeBurn,
		plugin.TypeTransfer, plugin.TypeUpdateDelegate, plugin.TypeAttributes,
		plugin.TypePermanentFreeze, plugin.TypePermanentTransfer, plugin.TypePermanentBurn,
	}
	events := []plugin.Event{
		plugin.EventCreate, plugin.EventAddPlugin, plugin.EventRemovePlugin,
		plugin.EventUpdatePlugin, plugin.EventApprovePluginAuthority,
		plugin.EventRevokePluginAuthority, plugin.EventUpdate,
		plugin.EventTransfer, plugin.EventBurn,
		plugin.EventCompress, plugin.EventDecompress,
	}

	for _, pluginType := range types {
		for _, event := range events {
			result := plugin.Check(pluginType, event)
			switch result {
			case plugin.CheckNone, plugin.CheckCanApprove, plugin.CheckCanReject:
			default:
				t.Errorf("check(%s, %s) returned unknown result %d", pluginType, event, result)
			}
		}
	}
}

func TestCheckParticipation(t *testing.T) {
	assert.Equal(t, plugin.CheckCanReject, plugin.Check(plugin.TypeFreeze, plugin.EventTransfer), "freeze/transfer")
	assert.Equal(t, plugin.CheckCanApprove, plugin.Check(plugin.TypeBurn, plugin.EventBurn), "burn/burn")
	assert.Equal(t, plugin.CheckNone, plugin.Check(plugin.TypeAttributes, plugin.EventTransfer), "attributes/transfer")
	assert.Equal(t, plugin.CheckCanReject, plugin.Check(plugin.TypePermanentBurn, plugin.EventAddPlugin), "permanent burn/add")
	assert.Equal(t, plugin.CheckCanApprove, plugin.Check(plugin.TypeRoyalties, plugin.EventRemovePlugin), "royalties/remove")
}

func TestFreezeValidation(t *testing.T) {
	frozen := plugin.Freeze{Frozen: true}
	ctx := &plugin.ValidationContext{
		Caller:          ownerId,
		PluginAuthority: authority.Owner{},
		Target:          testAsset(),
	}

	verdict, err := frozen.Validate(plugin.EventTransfer, ctx)
	assert.Nil(t, err, "validate error")
	assert.Equal(t, plugin.ValidationRejected, verdict, "frozen transfer not rejected")

	verdict, err = frozen.Validate(plugin.EventRemovePlugin, ctx)
	assert.Nil(t, err, "validate error")
	assert.Equal(t, plugin.ValidationRejected, verdict, "frozen removal not rejected")

	thawed := plugin.Freeze{Frozen: false}
	verdict, err = thawed.Validate(plugin.EventRemovePlugin, ctx)
	assert.Nil(t, err, "validate error")
	assert.Equal(t, plugin.ValidationApproved, verdict, "owner removal not approved")
}

func TestRoyaltiesDenyList(t *testing.T) {
	p := plugin.Royalties{
		BasisPoints: 100,
		Ruleset:     plugin.RulesetDenyList,
		RuleAddrs:   []identity.Identity{strangerId},
	}

	banned := strangerId
	ctx := &plugin.ValidationContext{
		Caller:          ownerId,
		NewOwner:        &banned,
		PluginAuthority: authority.UpdateAuthority{},
		Target:          testAsset(),
	}
	verdict, err := p.Validate(plugin.EventTransfer, ctx)
	assert.Nil(t, err, "validate error")
	assert.Equal(t, plugin.ValidationRejected, verdict, "denied recipient not rejected")

	allowed := delegateId
	ctx.NewOwner = &allowed
	verdict, err = p.Validate(plugin.EventTransfer, ctx)
	assert.Nil(t, err, "validate error")
	assert.Equal(t, plugin.ValidationPass, verdict, "clean transfer not passed")
}

func TestPermanentBurnForceApproval(t *testing.T) {
	p := plugin.PermanentBurn{}
	grant := authority.Authority(authority.UpdateAuthority{})

	ctx := &plugin.ValidationContext{
		Caller:            delegateId,
		ResolvedAuthority: grant,
		PluginAuthority:   grant,
		Target:            testAsset(),
	}
	verdict, err := p.Validate(plugin.EventBurn, ctx)
	assert.Nil(t, err, "validate error")
	assert.Equal(t, plugin.ValidationForceApproved, verdict, "override not force approved")

	ctx.ResolvedAuthority = authority.Pubkey{Address: strangerId}
	verdict, err = p.Validate(plugin.EventBurn, ctx)
	assert.Nil(t, err, "validate error")
	assert.Equal(t, plugin.ValidationPass, verdict, "non matching authority not passed")

	verdict, err = p.Validate(plugin.EventAddPlugin, ctx)
	assert.Nil(t, err, "validate error")
	assert.Equal(t, plugin.ValidationRejected, verdict, "post creation add not rejected")
}

func TestCheckMapShadowing(t *testing.T) {
	m := plugin.NewCheckMap()

	collectionRecord := plugin.RegistryRecord{
		Type:      plugin.TypeFreeze,
		Offset:    100,
		Authority: authority.UpdateAuthority{},
	}
	assetRecord := plugin.RegistryRecord{
		Type:      plugin.TypeFreeze,
		Offset:    50,
		Authority: authority.Owner{},
	}

	m.Put(plugin.TypeFreeze, plugin.CheckEntry{
		Source: record.KeyCollection,
		Result: plugin.CheckCanReject,
		Record: collectionRecord,
	})
	m.Put(plugin.TypeFreeze, plugin.CheckEntry{
		Source: record.KeyAsset,
		Result: plugin.CheckCanReject,
		Record: assetRecord,
	})

	assert.Equal(t, 1, m.Len(), "wrong entry count")
	assert.Equal(t, 0, len(m.Entries(record.KeyCollection)), "collection entry survived shadowing")

	assetEntries := m.Entries(record.KeyAsset)
	assert.Equal(t, 1, len(assetEntries), "asset entry missing")
	assert.Equal(t, assetRecord, assetEntries[0].Record, "wrong record")

	// the reverse direction must not override
	m.Put(plugin.TypeFreeze, plugin.CheckEntry{
		Source: record.KeyCollection,
		Result: plugin.CheckCanReject,
		Record: collectionRecord,
	})
	assert.Equal(t, 1, len(m.Entries(record.KeyAsset)), "asset entry lost to collection")
}
