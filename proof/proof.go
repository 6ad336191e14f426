// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof - the compression integrity engine
//
// compressing replaces a materialized object and its plugins with a
// single committed digest; decompressing rebuilds the object from a
// caller supplied proof whose recomputed digest must reproduce the
// committed one before any state is touched
//
// commitment = hash(hash(object) ‖ hash(plugin 0) ‖ … ‖ hash(plugin n))
// with plugins ordered by their original registry offset
package proof

import (
	"encoding/binary"
	"sort"

	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/digest"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/record"
)

// HashablePlugin - one plugin in a compression proof
//
// Index is the plugin's position in the original offset order; it is
// the stable sort key because the proof's array order is untrusted
type HashablePlugin struct {
	Index     uint32
	Authority authority.Authority
	Plugin    plugin.Plugin
}

// Pack - canonical byte form used for hashing and persistence
func (h *HashablePlugin) Pack() []byte {
	buffer := make([]byte, 4)
	binary.LittleEndian.PutUint32(buffer, h.Index)
	buffer = append(buffer, h.Authority.Pack()...)
	return append(buffer, h.Plugin.Pack()...)
}

// Hash - digest of the canonical form
func (h *HashablePlugin) Hash() digest.Digest {
	return digest.New(h.Pack())
}

// CompressionProof - the caller retained reconstruction data
type CompressionProof struct {
	Asset   *record.Asset
	Plugins []HashablePlugin
}

// Pack - serialize a proof for persistence off the primary tier
func (p *CompressionProof) Pack() []byte {
	buffer := []byte(p.Asset.Pack())
	scratch := make([]byte, 4)
	binary.LittleEndian.PutUint32(scratch, uint32(len(p.Plugins)))
	buffer = append(buffer, scratch...)
	for i := range p.Plugins {
		buffer = append(buffer, p.Plugins[i].Pack()...)
	}
	return buffer
}

// UnpackProof - decode a persisted proof
func UnpackProof(buffer []byte) (*CompressionProof, error) {
	asset, n, err := record.UnpackAsset(buffer)
	if nil != err {
		return nil, err
	}
	if n+4 > len(buffer) {
		return nil, fault.ErrDeserializationFailed
	}
	count := binary.LittleEndian.Uint32(buffer[n:])
	n += 4

	plugins := make([]HashablePlugin, 0, count)
	for i := uint32(0); i < count; i += 1 {
		if n+4 > len(buffer) {
			return nil, fault.ErrDeserializationFailed
		}
		index := binary.LittleEndian.Uint32(buffer[n:])
		n += 4
		auth, used, err := authority.Unpack(buffer[n:])
		if nil != err {
			return nil, err
		}
		n += used
		pl, used, err := plugin.Unpack(buffer[n:])
		if nil != err {
			return nil, err
		}
		n += used
		plugins = append(plugins, HashablePlugin{
			Index:     index,
			Authority: auth,
			Plugin:    pl,
		})
	}
	return &CompressionProof{Asset: asset, Plugins: plugins}, nil
}

// commitment - combine the object hash and the ordered plugin hashes
func commitment(assetHash digest.Digest, pluginHashes []digest.Digest) digest.Digest {
	buffer := make([]byte, 0, digest.Length*(1+len(pluginHashes)))
	buffer = append(buffer, assetHash[:]...)
	for _, h := range pluginHashes {
		buffer = append(buffer, h[:]...)
	}
	return digest.New(buffer)
}

// Compress - replace a materialized asset cell with its commitment
//
// returns the proof which must be retained by the caller; the cell is
// shrunk to the fixed hashed form and the deposit excess refunded
func Compress(c *cell.Cell, asset *record.Asset, registry *plugin.Registry, funder *cell.Funder) (*CompressionProof, error) {
	assetHash := digest.New(asset.Pack())

	compressionProof := &CompressionProof{Asset: asset}
	pluginHashes := []digest.Digest{}

	if nil != registry {
		// should already be in offset order, restore it to be sure
		records := make([]plugin.RegistryRecord, len(registry.Records))
		copy(records, registry.Records)
		sorted := &plugin.Registry{Records: records}
		sorted.SortByOffset()

		for i, r := range sorted.Records {
			if int(r.Offset) >= len(c.Data) {
				return nil, fault.ErrDeserializationFailed
			}
			pl, _, err := plugin.Unpack(c.Data[r.Offset:])
			if nil != err {
				return nil, err
			}
			hashable := HashablePlugin{
				Index:     uint32(i),
				Authority: r.Authority,
				Plugin:    pl,
			}
			pluginHashes = append(pluginHashes, hashable.Hash())
			compressionProof.Plugins = append(compressionProof.Plugins, hashable)
		}
	}

	hashed := &record.HashedAsset{
		Hash: commitment(assetHash, pluginHashes),
	}
	packed := hashed.Pack()

	err := c.Resize(funder, len(packed))
	if nil != err {
		return nil, err
	}
	err = c.WriteAt(0, packed)
	if nil != err {
		return nil, err
	}

	return compressionProof, nil
}

// Verify - check a proof against the digest committed in a cell
//
// the digest comparison happens before anything else may use the
// proof's contents; the returned plugin list is sorted by the
// original index regardless of the proof's array order
func Verify(c *cell.Cell, compressionProof *CompressionProof) (*record.Asset, []HashablePlugin, error) {
	assetHash := digest.New(compressionProof.Asset.Pack())

	sortedPlugins := make([]HashablePlugin, len(compressionProof.Plugins))
	copy(sortedPlugins, compressionProof.Plugins)
	sort.SliceStable(sortedPlugins, func(i int, j int) bool {
		return sortedPlugins[i].Index < sortedPlugins[j].Index
	})

	pluginHashes := make([]digest.Digest, 0, len(sortedPlugins))
	for i := range sortedPlugins {
		pluginHashes = append(pluginHashes, sortedPlugins[i].Hash())
	}

	hashed, err := record.UnpackHashedAsset(c.Data)
	if nil != err {
		return nil, nil, err
	}

	if commitment(assetHash, pluginHashes) != hashed.Hash {
		return nil, nil, fault.ErrIncorrectAssetHash
	}

	return compressionProof.Asset, sortedPlugins, nil
}

// Rebuild - write a verified proof back into account space
//
// the caller must have verified the proof first; plugins are attached
// in proof order with their recorded authorities
func Rebuild(c *cell.Cell, asset *record.Asset, plugins []HashablePlugin, funder *cell.Funder) error {
	packed := asset.Pack()

	err := c.Resize(funder, len(packed))
	if nil != err {
		return err
	}
	err = c.WriteAt(0, packed)
	if nil != err {
		return err
	}

	if 0 == len(plugins) {
		return nil
	}

	_, _, err = plugin.CreateMeta(c, asset, funder)
	if nil != err {
		return err
	}
	for i := range plugins {
		err = plugin.Initialize(c, asset, plugins[i].Plugin, plugins[i].Authority, funder)
		if nil != err {
			return err
		}
	}
	return nil
}
