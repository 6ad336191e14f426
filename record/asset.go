// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
)

// Asset - the singular item record
//
// layout:
//   [1]  key
//   [32] owner
//   [33] update authority (kind byte + address)
//   [4+n] name
//   [4+n] uri
//   [1(+8)] optional sequence number
type Asset struct {
	Owner           identity.Identity
	UpdateAuthority UpdateAuthority
	Name            string
	URI             string
	Seq             *uint64
}

// ObjectKey - discriminant for an asset
func (asset *Asset) ObjectKey() Key {
	return KeyAsset
}

// ObjectOwner - the current owner
func (asset *Asset) ObjectOwner() identity.Identity {
	return asset.Owner
}

// UpdateTarget - the key currently holding update authority
func (asset *Asset) UpdateTarget() identity.Identity {
	return asset.UpdateAuthority.Target()
}

// Size - exact packed byte length
func (asset *Asset) Size() int {
	size := 1 + identity.Size + UpdateAuthoritySize +
		4 + len(asset.Name) +
		4 + len(asset.URI) +
		1
	if nil != asset.Seq {
		size += 8
	}
	return size
}

// Pack - canonical byte form
func (asset *Asset) Pack() Packed {
	message := make([]byte, 0, asset.Size())
	message = append(message, byte(KeyAsset))
	message = append(message, asset.Owner.Bytes()...)
	message = append(message, asset.UpdateAuthority.Pack()...)
	message = appendCounted(message, asset.Name)
	message = appendCounted(message, asset.URI)
	if nil == asset.Seq {
		message = append(message, 0)
	} else {
		message = append(message, 1)
		message = appendUint64(message, *asset.Seq)
	}
	return message
}

// CheckLengths - validate field limits before packing into a cell
func (asset *Asset) CheckLengths() error {
	if len(asset.Name) > maxNameLength {
		return fault.ErrNameTooLong
	}
	if len(asset.URI) > maxUriLength {
		return fault.ErrUriTooLong
	}
	return nil
}

// UnpackAsset - decode an asset record from the start of a buffer
//
// returns the number of bytes consumed so the caller can detect a
// trailing plugin region
func UnpackAsset(buffer []byte) (*Asset, int, error) {
	key, err := LoadKey(buffer, 0)
	if nil != err {
		return nil, 0, err
	}
	if KeyAsset != key {
		return nil, 0, fault.ErrInvalidKey
	}
	n := 1

	owner, n, err := readIdentity(buffer, n)
	if nil != err {
		return nil, 0, err
	}

	updateAuthority, n, err := unpackUpdateAuthority(buffer, n)
	if nil != err {
		return nil, 0, err
	}

	name, n, err := readCounted(buffer, n, maxNameLength)
	if nil != err {
		return nil, 0, err
	}

	uri, n, err := readCounted(buffer, n, maxUriLength)
	if nil != err {
		return nil, 0, err
	}

	if n >= len(buffer) {
		return nil, 0, fault.ErrDeserializationFailed
	}
	var seq *uint64
	switch buffer[n] {
	case 0:
		n += 1
	case 1:
		n += 1
		value, m, err := readUint64(buffer, n)
		if nil != err {
			return nil, 0, err
		}
		n = m
		seq = &value
	default:
		return nil, 0, fault.ErrDeserializationFailed
	}

	asset := &Asset{
		Owner:           owner,
		UpdateAuthority: updateAuthority,
		Name:            name,
		URI:             uri,
		Seq:             seq,
	}
	return asset, n, nil
}
