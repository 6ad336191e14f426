// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
)

// Collection - the grouping record
//
// layout:
//   [1]  key
//   [32] update authority
//   [4+n] name
//   [4+n] uri
//   [4]  num minted
//   [4]  current size
type Collection struct {
	UpdateAuthority identity.Identity
	Name            string
	URI             string
	NumMinted       uint32
	CurrentSize     uint32
}

// ObjectKey - discriminant for a collection
func (collection *Collection) ObjectKey() Key {
	return KeyCollection
}

// ObjectOwner - collections have no owner field
func (collection *Collection) ObjectOwner() identity.Identity {
	return identity.Zero
}

// UpdateTarget - the collection's update authority key
func (collection *Collection) UpdateTarget() identity.Identity {
	return collection.UpdateAuthority
}

// Size - exact packed byte length
func (collection *Collection) Size() int {
	return 1 + identity.Size +
		4 + len(collection.Name) +
		4 + len(collection.URI) +
		4 + 4
}

// Pack - canonical byte form
func (collection *Collection) Pack() Packed {
	message := make([]byte, 0, collection.Size())
	message = append(message, byte(KeyCollection))
	message = append(message, collection.UpdateAuthority.Bytes()...)
	message = appendCounted(message, collection.Name)
	message = appendCounted(message, collection.URI)
	message = appendUint32(message, collection.NumMinted)
	message = appendUint32(message, collection.CurrentSize)
	return message
}

// CheckLengths - validate field limits before packing into a cell
func (collection *Collection) CheckLengths() error {
	if len(collection.Name) > maxNameLength {
		return fault.ErrNameTooLong
	}
	if len(collection.URI) > maxUriLength {
		return fault.ErrUriTooLong
	}
	return nil
}

// UnpackCollection - decode a collection record from the start of a buffer
func UnpackCollection(buffer []byte) (*Collection, int, error) {
	key, err := LoadKey(buffer, 0)
	if nil != err {
		return nil, 0, err
	}
	if KeyCollection != key {
		return nil, 0, fault.ErrInvalidKey
	}
	n := 1

	updateAuthority, n, err := readIdentity(buffer, n)
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

	numMinted, n, err := readUint32(buffer, n)
	if nil != err {
		return nil, 0, err
	}

	currentSize, n, err := readUint32(buffer, n)
	if nil != err {
		return nil, 0, err
	}

	collection := &Collection{
		UpdateAuthority: updateAuthority,
		Name:            name,
		URI:             uri,
		NumMinted:       numMinted,
		CurrentSize:     currentSize,
	}
	return collection, n, nil
}
