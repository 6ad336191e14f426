// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package plugin

import (
	"sort"

	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/record"
)

// HeaderSize - packed size of the plugin header
const HeaderSize = 1 + 4

// Header - metadata stored directly after the core object
//
// RegistryOffset is absolute from the start of the cell
type Header struct {
	RegistryOffset uint32
}

// Pack - canonical byte form
func (header *Header) Pack() []byte {
	buffer := make([]byte, 0, HeaderSize)
	buffer = append(buffer, byte(record.KeyPluginHeader))
	return appendUint32(buffer, header.RegistryOffset)
}

// UnpackHeader - decode a plugin header at an offset in a cell buffer
func UnpackHeader(buffer []byte, offset int) (*Header, error) {
	key, err := record.LoadKey(buffer, offset)
	if nil != err {
		return nil, err
	}
	if record.KeyPluginHeader != key {
		return nil, fault.ErrInvalidKey
	}
	registryOffset, _, err := readUint32(buffer, offset+1)
	if nil != err {
		return nil, err
	}
	return &Header{RegistryOffset: registryOffset}, nil
}

// RegistryRecord - one attached plugin: type, absolute byte offset of
// the plugin bytes and the authority controlling that one plugin
type RegistryRecord struct {
	Type      Type
	Offset    uint32
	Authority authority.Authority
}

// Size - packed size of one record
func (r *RegistryRecord) Size() int {
	return 1 + 4 + len(r.Authority.Pack())
}

// Registry - the ordered record list, canonical order is ascending offset
type Registry struct {
	Records []RegistryRecord
}

// Size - exact packed byte length
func (registry *Registry) Size() int {
	size := 1 + 4
	for i := range registry.Records {
		size += registry.Records[i].Size()
	}
	return size
}

// Pack - canonical byte form
func (registry *Registry) Pack() []byte {
	buffer := make([]byte, 0, registry.Size())
	buffer = append(buffer, byte(record.KeyPluginRegistry))
	buffer = appendUint32(buffer, uint32(len(registry.Records)))
	for i := range registry.Records {
		r := &registry.Records[i]
		buffer = append(buffer, byte(r.Type))
		buffer = appendUint32(buffer, r.Offset)
		buffer = append(buffer, r.Authority.Pack()...)
	}
	return buffer
}

// UnpackRegistry - decode the registry at an offset in a cell buffer
func UnpackRegistry(buffer []byte, offset int) (*Registry, error) {
	key, err := record.LoadKey(buffer, offset)
	if nil != err {
		return nil, err
	}
	if record.KeyPluginRegistry != key {
		return nil, fault.ErrInvalidKey
	}
	count, n, err := readUint32(buffer, offset+1)
	if nil != err {
		return nil, err
	}
	if int(count) > maxListLength {
		return nil, fault.ErrDeserializationFailed
	}

	records := make([]RegistryRecord, 0, count)
	previousOffset := uint32(0)
	for i := uint32(0); i < count; i += 1 {
		if n >= len(buffer) {
			return nil, fault.ErrDeserializationFailed
		}
		pluginType := Type(buffer[n])
		if pluginType >= typeLimit {
			return nil, fault.ErrInvalidPluginType
		}
		n += 1
		pluginOffset, m, err := readUint32(buffer, n)
		if nil != err {
			return nil, err
		}
		n = m
		// record offsets are strictly increasing, duplicate or
		// reordered offsets mean an overlapping layout
		if i > 0 && pluginOffset <= previousOffset {
			return nil, fault.ErrDeserializationFailed
		}
		previousOffset = pluginOffset
		auth, used, err := authority.Unpack(buffer[n:])
		if nil != err {
			return nil, err
		}
		n += used
		records = append(records, RegistryRecord{
			Type:      pluginType,
			Offset:    pluginOffset,
			Authority: auth,
		})
	}
	return &Registry{Records: records}, nil
}

// SortByOffset - restore canonical ascending offset order
func (registry *Registry) SortByOffset() {
	sort.SliceStable(registry.Records, func(i int, j int) bool {
		return registry.Records[i].Offset < registry.Records[j].Offset
	})
}

// Find - locate the record for a plugin type
func (registry *Registry) Find(pluginType Type) (int, *RegistryRecord) {
	for i := range registry.Records {
		if registry.Records[i].Type == pluginType {
			return i, &registry.Records[i]
		}
	}
	return -1, nil
}

// CheckEntry - one merged participation entry
type CheckEntry struct {
	Source record.Key // asset or collection scope
	Result CheckResult
	Record RegistryRecord
}

// CheckMap - participation entries keyed by plugin type, in first
// insertion order; scoped to a single validation call
//
// an asset scoped entry replaces a collection scoped entry for the
// same plugin type, never the other way round
type CheckMap struct {
	order   []Type
	entries map[Type]CheckEntry
}

// NewCheckMap - an empty merge map
func NewCheckMap() *CheckMap {
	return &CheckMap{
		entries: make(map[Type]CheckEntry),
	}
}

// Put - insert or override an entry
func (m *CheckMap) Put(pluginType Type, entry CheckEntry) {
	existing, ok := m.entries[pluginType]
	if ok {
		// asset configuration always wins over collection configuration
		if record.KeyAsset == existing.Source && record.KeyCollection == entry.Source {
			return
		}
	} else {
		m.order = append(m.order, pluginType)
	}
	m.entries[pluginType] = entry
}

// Entries - entries restricted to one source scope, in insertion order
func (m *CheckMap) Entries(source record.Key) []CheckEntry {
	result := make([]CheckEntry, 0, len(m.order))
	for _, pluginType := range m.order {
		entry := m.entries[pluginType]
		if entry.Source == source {
			result = append(result, entry)
		}
	}
	return result
}

// Len - number of distinct plugin types present
func (m *CheckMap) Len() int {
	return len(m.order)
}

// CheckRegistry - record every plugin whose check participates into
// the merge map, attributed to the given source scope
//
// checkFn is the operation's plugin participation function
func (registry *Registry) CheckRegistry(source record.Key, checkFn func(Type) CheckResult, into *CheckMap) {
	for _, r := range registry.Records {
		result := checkFn(r.Type)
		if !result.Participates() {
			continue
		}
		into.Put(r.Type, CheckEntry{
			Source: source,
			Result: result,
			Record: r,
		})
	}
}
