// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package plugin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/record"
)

func newAssetCell(t *testing.T, asset *record.Asset, funder *cell.Funder) *cell.Cell {
	packed := asset.Pack()
	c, err := cell.New(makeIdentity(0x99), len(packed), funder)
	assert.Nil(t, err, "cell error")
	err = c.WriteAt(0, packed)
	assert.Nil(t, err, "write error")
	return c
}

func TestCreateMetaIdempotent(t *testing.T) {
	funder := &cell.Funder{Balance: 1_000_000}
	asset := testAsset()
	c := newAssetCell(t, asset, funder)

	header, registry, err := plugin.CreateMeta(c, asset, funder)
	assert.Nil(t, err, "create meta error")
	assert.Equal(t, uint32(asset.Size()+plugin.HeaderSize), header.RegistryOffset, "wrong registry offset")
	assert.Equal(t, 0, len(registry.Records), "registry not empty")

	sizeAfter := len(c.Data)
	header2, _, err := plugin.CreateMeta(c, asset, funder)
	assert.Nil(t, err, "second create meta error")
	assert.Equal(t, header.RegistryOffset, header2.RegistryOffset, "offset changed")
	assert.Equal(t, sizeAfter, len(c.Data), "cell grew on idempotent call")
}

func TestInitializeAndFetch(t *testing.T) {
	funder := &cell.Funder{Balance: 1_000_000}
	asset := testAsset()
	c := newAssetCell(t, asset, funder)

	err := plugin.Initialize(c, asset, plugin.Freeze{Frozen: false}, nil, funder)
	assert.Nil(t, err, "initialize error")

	fetched, r, err := plugin.Fetch(c.Data, asset.Size(), plugin.TypeFreeze)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, plugin.Plugin(plugin.Freeze{Frozen: false}), fetched, "wrong plugin")
	// freeze defaults to the owner grant
	assert.True(t, r.Authority.Equal(authority.Owner{}), "wrong default authority")

	err = plugin.Initialize(c, asset, plugin.Freeze{Frozen: true}, nil, funder)
	assert.Equal(t, fault.ErrPluginAlreadyExists, err, "duplicate accepted")
}

func TestInitializeOffsetsAscending(t *testing.T) {
	funder := &cell.Funder{Balance: 1_000_000}
	asset := testAsset()
	c := newAssetCell(t, asset, funder)

	err := plugin.Initialize(c, asset, plugin.Freeze{}, nil, funder)
	assert.Nil(t, err, "initialize freeze error")
	err = plugin.Initialize(c, asset, plugin.Burn{}, authority.Pubkey{Address: delegateId}, funder)
	assert.Nil(t, err, "initialize burn error")
	err = plugin.Initialize(c, asset, plugin.Transfer{}, nil, funder)
	assert.Nil(t, err, "initialize transfer error")

	_, registry, err := plugin.LoadMeta(c.Data, asset.Size())
	assert.Nil(t, err, "load meta error")
	assert.Equal(t, 3, len(registry.Records), "wrong record count")

	for i := 1; i < len(registry.Records); i += 1 {
		assert.True(t, registry.Records[i-1].Offset < registry.Records[i].Offset,
			"offsets not strictly increasing at %d", i)
	}

	// every plugin must decode from its recorded offset
	for _, r := range registry.Records {
		p, _, err := plugin.Unpack(c.Data[r.Offset:])
		assert.Nil(t, err, "unpack at offset error")
		assert.Equal(t, r.Type, p.PluginType(), "offset points at wrong plugin")
	}
}

func TestDeleteCompacts(t *testing.T) {
	funder := &cell.Funder{Balance: 1_000_000}
	asset := testAsset()
	c := newAssetCell(t, asset, funder)

	err := plugin.Initialize(c, asset, plugin.Freeze{}, nil, funder)
	assert.Nil(t, err, "initialize freeze error")
	err = plugin.Initialize(c, asset, plugin.Attributes{
		List: []plugin.Attribute{{Key: "k", Value: "v"}},
	}, nil, funder)
	assert.Nil(t, err, "initialize attributes error")
	err = plugin.Initialize(c, asset, plugin.Burn{}, nil, funder)
	assert.Nil(t, err, "initialize burn error")

	err = plugin.Delete(c, asset, plugin.TypeAttributes, funder)
	assert.Nil(t, err, "delete error")

	_, registry, err := plugin.LoadMeta(c.Data, asset.Size())
	assert.Nil(t, err, "load meta error")
	assert.Equal(t, 2, len(registry.Records), "wrong record count")

	_, _, err = plugin.Fetch(c.Data, asset.Size(), plugin.TypeAttributes)
	assert.Equal(t, fault.ErrPluginNotFound, err, "deleted plugin still present")

	// survivors still decode from their adjusted offsets
	for _, r := range registry.Records {
		p, _, err := plugin.Unpack(c.Data[r.Offset:])
		assert.Nil(t, err, "unpack at offset error")
		assert.Equal(t, r.Type, p.PluginType(), "offset points at wrong plugin")
	}
}

func TestDeleteRefundsDeposit(t *testing.T) {
	funder := &cell.Funder{Balance: 1_000_000}
	asset := testAsset()
	c := newAssetCell(t, asset, funder)

	err := plugin.Initialize(c, asset, plugin.Freeze{}, nil, funder)
	assert.Nil(t, err, "initialize error")
	balanceWith := funder.Balance
	sizeWith := len(c.Data)

	err = plugin.Delete(c, asset, plugin.TypeFreeze, funder)
	assert.Nil(t, err, "delete error")
	assert.True(t, len(c.Data) < sizeWith, "cell did not shrink")
	assert.True(t, funder.Balance > balanceWith, "deposit not refunded")
}

func TestUpdateEntryPreservesAuthority(t *testing.T) {
	funder := &cell.Funder{Balance: 1_000_000}
	asset := testAsset()
	c := newAssetCell(t, asset, funder)

	grant := authority.Pubkey{Address: delegateId}
	err := plugin.Initialize(c, asset, plugin.Freeze{Frozen: false}, grant, funder)
	assert.Nil(t, err, "initialize error")

	err = plugin.UpdateEntry(c, asset, plugin.Freeze{Frozen: true}, funder)
	assert.Nil(t, err, "update error")

	fetched, r, err := plugin.Fetch(c.Data, asset.Size(), plugin.TypeFreeze)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, plugin.Plugin(plugin.Freeze{Frozen: true}), fetched, "payload not updated")
	assert.True(t, r.Authority.Equal(grant), "authority not preserved")
}

func TestRegistryRoundTrip(t *testing.T) {
	registry := &plugin.Registry{
		Records: []plugin.RegistryRecord{
			{Type: plugin.TypeFreeze, Offset: 120, Authority: authority.Owner{}},
			{Type: plugin.TypeBurn, Offset: 122, Authority: authority.Permanent{Address: delegateId}},
		},
	}

	packed := registry.Pack()
	assert.Equal(t, registry.Size(), len(packed), "size mismatch")

	restored, err := plugin.UnpackRegistry(packed, 0)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, registry, restored, "registry not restored")
}

func TestUnpackRegistryRejectsUnorderedOffsets(t *testing.T) {
	reordered := &plugin.Registry{
		Records: []plugin.RegistryRecord{
			{Type: plugin.TypeFreeze, Offset: 122, Authority: authority.Owner{}},
			{Type: plugin.TypeBurn, Offset: 120, Authority: authority.Owner{}},
		},
	}
	_, err := plugin.UnpackRegistry(reordered.Pack(), 0)
	assert.Equal(t, fault.ErrDeserializationFailed, err, "descending offsets accepted")

	duplicated := &plugin.Registry{
		Records: []plugin.RegistryRecord{
			{Type: plugin.TypeFreeze, Offset: 120, Authority: authority.Owner{}},
			{Type: plugin.TypeBurn, Offset: 120, Authority: authority.Owner{}},
		},
	}
	_, err = plugin.UnpackRegistry(duplicated.Pack(), 0)
	assert.Equal(t, fault.ErrDeserializationFailed, err, "duplicate offsets accepted")
}
