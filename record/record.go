// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the fixed layout core object records
//
// every stored object starts with a one byte key discriminant; the
// asset and collection records are followed by an optional plugin
// region which is detected by the cell being longer than the record's
// own computed size
//
// all integers are little endian with no padding
package record

import (
	"encoding/binary"

	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
)

// Key - the one byte discriminant at the start of every stored item
type Key byte

// enumerate the possible stored item kinds
const (
	KeyUninitialized  Key = 0
	KeyAsset          Key = 1
	KeyHashedAsset    Key = 2
	KeyPluginHeader   Key = 3
	KeyPluginRegistry Key = 4
	KeyCollection     Key = 5

	// this item must be last
	keyLimit Key = 6
)

// byte sizes for various fields
const (
	maxNameLength = 256
	maxUriLength  = 2048
)

// Packed - packed records are just a byte slice
type Packed []byte

// CoreObject - generic core object interface
//
// implemented by Asset and Collection; consumed by the authority
// resolution and the permission validation engine
type CoreObject interface {
	ObjectKey() Key
	ObjectOwner() identity.Identity
	UpdateTarget() identity.Identity
	Size() int
	Pack() Packed
}

// LoadKey - read the discriminant byte at an offset in a buffer
func LoadKey(buffer []byte, offset int) (Key, error) {
	if offset < 0 || offset >= len(buffer) {
		return KeyUninitialized, fault.ErrCellTooSmall
	}
	key := Key(buffer[offset])
	if key >= keyLimit {
		return KeyUninitialized, fault.ErrDeserializationFailed
	}
	return key, nil
}

// String - describe a key for logging
func (key Key) String() string {
	switch key {
	case KeyUninitialized:
		return "Uninitialized"
	case KeyAsset:
		return "Asset"
	case KeyHashedAsset:
		return "HashedAsset"
	case KeyPluginHeader:
		return "PluginHeader"
	case KeyPluginRegistry:
		return "PluginRegistry"
	case KeyCollection:
		return "Collection"
	default:
		return "*unknown*"
	}
}

// internal pack/unpack helpers, shared with asset and collection

func appendUint32(buffer []byte, value uint32) []byte {
	scratch := make([]byte, 4)
	binary.LittleEndian.PutUint32(scratch, value)
	return append(buffer, scratch...)
}

func appendUint64(buffer []byte, value uint64) []byte {
	scratch := make([]byte, 8)
	binary.LittleEndian.PutUint64(scratch, value)
	return append(buffer, scratch...)
}

func appendCounted(buffer []byte, s string) []byte {
	buffer = appendUint32(buffer, uint32(len(s)))
	return append(buffer, s...)
}

func readUint32(buffer []byte, n int) (uint32, int, error) {
	if n+4 > len(buffer) {
		return 0, 0, fault.ErrDeserializationFailed
	}
	return binary.LittleEndian.Uint32(buffer[n:]), n + 4, nil
}

func readUint64(buffer []byte, n int) (uint64, int, error) {
	if n+8 > len(buffer) {
		return 0, 0, fault.ErrDeserializationFailed
	}
	return binary.LittleEndian.Uint64(buffer[n:]), n + 8, nil
}

func readCounted(buffer []byte, n int, limit int) (string, int, error) {
	length, n, err := readUint32(buffer, n)
	if nil != err {
		return "", 0, err
	}
	if int(length) > limit || n+int(length) > len(buffer) {
		return "", 0, fault.ErrDeserializationFailed
	}
	return string(buffer[n : n+int(length)]), n + int(length), nil
}

func readIdentity(buffer []byte, n int) (identity.Identity, int, error) {
	if n+identity.Size > len(buffer) {
		return identity.Zero, 0, fault.ErrDeserializationFailed
	}
	id, err := identity.FromBytes(buffer[n : n+identity.Size])
	if nil != err {
		return identity.Zero, 0, err
	}
	return id, n + identity.Size, nil
}
