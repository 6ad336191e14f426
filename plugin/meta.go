// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package plugin

import (
	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/record"
)

// cell layout with plugins:
//
//   [core object][header][plugin bytes…][registry]
//
// the header sits at the object's own size; plugins are appended in
// front of the registry which always stays last, so registry record
// offsets are strictly increasing in attachment order

// LoadMeta - read header and registry from a cell buffer
//
// returns (nil, nil, nil) when the cell holds only the bare object
func LoadMeta(buffer []byte, objectSize int) (*Header, *Registry, error) {
	if len(buffer) == objectSize {
		return nil, nil, nil
	}
	if len(buffer) < objectSize+HeaderSize {
		return nil, nil, fault.ErrDeserializationFailed
	}
	header, err := UnpackHeader(buffer, objectSize)
	if nil != err {
		return nil, nil, err
	}
	registry, err := UnpackRegistry(buffer, int(header.RegistryOffset))
	if nil != err {
		return nil, nil, err
	}
	return header, registry, nil
}

// CreateMeta - ensure a cell has a plugin header and empty registry
//
// idempotent: a cell that already carries a plugin region is returned
// as is
func CreateMeta(c *cell.Cell, object record.CoreObject, funder *cell.Funder) (*Header, *Registry, error) {
	objectSize := object.Size()

	header, registry, err := LoadMeta(c.Data, objectSize)
	if nil != err {
		return nil, nil, err
	}
	if nil != header {
		return header, registry, nil
	}

	header = &Header{RegistryOffset: uint32(objectSize + HeaderSize)}
	registry = &Registry{}

	err = c.Resize(funder, objectSize+HeaderSize+registry.Size())
	if nil != err {
		return nil, nil, err
	}
	err = c.WriteAt(objectSize, header.Pack())
	if nil != err {
		return nil, nil, err
	}
	err = c.WriteAt(int(header.RegistryOffset), registry.Pack())
	if nil != err {
		return nil, nil, err
	}
	return header, registry, nil
}

// Initialize - attach a plugin to a cell with the given authority
//
// a nil auth selects the plugin type's default authority
func Initialize(c *cell.Cell, object record.CoreObject, p Plugin, auth authority.Authority, funder *cell.Funder) error {
	header, registry, err := CreateMeta(c, object, funder)
	if nil != err {
		return err
	}

	if _, existing := registry.Find(p.PluginType()); nil != existing {
		return fault.ErrPluginAlreadyExists
	}

	if nil == auth {
		auth = DefaultAuthority(p.PluginType())
	}

	pluginBytes := p.Pack()
	pluginOffset := header.RegistryOffset

	registry.Records = append(registry.Records, RegistryRecord{
		Type:      p.PluginType(),
		Offset:    pluginOffset,
		Authority: auth,
	})
	header.RegistryOffset += uint32(len(pluginBytes))

	// growing preserves the prefix: object, header and already
	// attached plugins; the stale registry bytes are overwritten below
	err = c.Resize(funder, int(header.RegistryOffset)+registry.Size())
	if nil != err {
		return err
	}

	err = c.WriteAt(object.Size(), header.Pack())
	if nil != err {
		return err
	}
	err = c.WriteAt(int(pluginOffset), pluginBytes)
	if nil != err {
		return err
	}
	return c.WriteAt(int(header.RegistryOffset), registry.Pack())
}

// Delete - detach a plugin, compacting following plugins and offsets
func Delete(c *cell.Cell, object record.CoreObject, pluginType Type, funder *cell.Funder) error {
	header, registry, err := LoadMeta(c.Data, object.Size())
	if nil != err {
		return err
	}
	if nil == header {
		return fault.ErrPluginNotFound
	}

	index, target := registry.Find(pluginType)
	if nil == target {
		return fault.ErrPluginNotFound
	}

	// the plugin's bytes end where the next plugin (or the registry) starts
	start := target.Offset
	end := header.RegistryOffset
	for i := range registry.Records {
		offset := registry.Records[i].Offset
		if offset > start && offset < end {
			end = offset
		}
	}
	removed := end - start

	// contents after the removed plugin, up to the registry
	tail := make([]byte, header.RegistryOffset-end)
	copy(tail, c.Data[end:header.RegistryOffset])

	registry.Records = append(registry.Records[:index], registry.Records[index+1:]...)
	for i := range registry.Records {
		if registry.Records[i].Offset > start {
			registry.Records[i].Offset -= removed
		}
	}
	header.RegistryOffset -= removed

	err = c.WriteAt(int(start), tail)
	if nil != err {
		return err
	}
	err = c.Resize(funder, int(header.RegistryOffset)+registry.Size())
	if nil != err {
		return err
	}
	err = c.WriteAt(object.Size(), header.Pack())
	if nil != err {
		return err
	}
	return c.WriteAt(int(header.RegistryOffset), registry.Pack())
}

// Rewrite - replace the core object bytes at the front of a cell
//
// the object may change size: the header and every registry offset
// shift by the difference and the plugin region is preserved
func Rewrite(c *cell.Cell, oldObjectSize int, object record.CoreObject, funder *cell.Funder) error {
	header, registry, err := LoadMeta(c.Data, oldObjectSize)
	if nil != err {
		return err
	}

	packed := object.Pack()
	newObjectSize := len(packed)

	if nil == header {
		err = c.Resize(funder, newObjectSize)
		if nil != err {
			return err
		}
		return c.WriteAt(0, packed)
	}

	pluginBytes := make([]byte, int(header.RegistryOffset)-oldObjectSize-HeaderSize)
	copy(pluginBytes, c.Data[oldObjectSize+HeaderSize:header.RegistryOffset])

	delta := newObjectSize - oldObjectSize
	header.RegistryOffset = uint32(int(header.RegistryOffset) + delta)
	for i := range registry.Records {
		registry.Records[i].Offset = uint32(int(registry.Records[i].Offset) + delta)
	}

	err = c.Resize(funder, int(header.RegistryOffset)+registry.Size())
	if nil != err {
		return err
	}
	err = c.WriteAt(0, packed)
	if nil != err {
		return err
	}
	err = c.WriteAt(newObjectSize, header.Pack())
	if nil != err {
		return err
	}
	err = c.WriteAt(newObjectSize+HeaderSize, pluginBytes)
	if nil != err {
		return err
	}
	return c.WriteAt(int(header.RegistryOffset), registry.Pack())
}

// SetAuthority - replace a plugin's recorded authority grant
//
// authority variants differ in packed size, so the registry may grow
// or shrink with the usual deposit rebalance
func SetAuthority(c *cell.Cell, object record.CoreObject, pluginType Type, auth authority.Authority, funder *cell.Funder) error {
	header, registry, err := LoadMeta(c.Data, object.Size())
	if nil != err {
		return err
	}
	if nil == header {
		return fault.ErrPluginNotFound
	}
	index, target := registry.Find(pluginType)
	if nil == target {
		return fault.ErrPluginNotFound
	}

	registry.Records[index].Authority = auth

	err = c.Resize(funder, int(header.RegistryOffset)+registry.Size())
	if nil != err {
		return err
	}
	return c.WriteAt(int(header.RegistryOffset), registry.Pack())
}

// Fetch - read one attached plugin and its registry record
func Fetch(buffer []byte, objectSize int, pluginType Type) (Plugin, *RegistryRecord, error) {
	_, registry, err := LoadMeta(buffer, objectSize)
	if nil != err {
		return nil, nil, err
	}
	if nil == registry {
		return nil, nil, fault.ErrPluginNotFound
	}
	_, r := registry.Find(pluginType)
	if nil == r {
		return nil, nil, fault.ErrPluginNotFound
	}
	if int(r.Offset) >= len(buffer) {
		return nil, nil, fault.ErrDeserializationFailed
	}
	p, _, err := Unpack(buffer[r.Offset:])
	if nil != err {
		return nil, nil, err
	}
	return p, r, nil
}

// UpdateEntry - rewrite an attached plugin's bytes in place
//
// the new payload may differ in size; following plugins and the
// registry are shifted accordingly
func UpdateEntry(c *cell.Cell, object record.CoreObject, p Plugin, funder *cell.Funder) error {
	header, registry, err := LoadMeta(c.Data, object.Size())
	if nil != err {
		return err
	}
	if nil == header {
		return fault.ErrPluginNotFound
	}
	_, target := registry.Find(p.PluginType())
	if nil == target {
		return fault.ErrPluginNotFound
	}

	// removing then re-attaching keeps the compaction logic in one
	// place; the authority is preserved across the rewrite
	auth := target.Authority

	err = Delete(c, object, p.PluginType(), funder)
	if nil != err {
		return err
	}
	return Initialize(c, object, p, auth, funder)
}
