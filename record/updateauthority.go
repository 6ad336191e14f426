// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
)

// UpdateAuthorityKind - which variant an asset's update authority holds
type UpdateAuthorityKind byte

// enumerate update authority variants
//
// an asset either has no update authority, a directly assigned one,
// or delegates it to the parent collection named by Address
const (
	UpdateAuthorityNone       UpdateAuthorityKind = 0
	UpdateAuthorityAddress    UpdateAuthorityKind = 1
	UpdateAuthorityCollection UpdateAuthorityKind = 2

	updateAuthorityKindLimit UpdateAuthorityKind = 3
)

// UpdateAuthoritySize - fixed wire size: kind byte plus address
const UpdateAuthoritySize = 1 + identity.Size

// UpdateAuthority - an asset's update authority setting
//
// Address is zero for the None variant; for the Collection variant it
// is the parent collection's cell address, not a participant key
type UpdateAuthority struct {
	Kind    UpdateAuthorityKind
	Address identity.Identity
}

// NoUpdateAuthority - the None variant
func NoUpdateAuthority() UpdateAuthority {
	return UpdateAuthority{Kind: UpdateAuthorityNone}
}

// UpdateAuthorityOf - a directly assigned update authority
func UpdateAuthorityOf(address identity.Identity) UpdateAuthority {
	return UpdateAuthority{Kind: UpdateAuthorityAddress, Address: address}
}

// DelegatedToCollection - update authority delegated to a parent collection
func DelegatedToCollection(collectionAddress identity.Identity) UpdateAuthority {
	return UpdateAuthority{Kind: UpdateAuthorityCollection, Address: collectionAddress}
}

// Target - the key that actually holds the authority
//
// zero for None; for Collection this is the collection cell address
// and the caller must look up that collection's own update authority
func (ua UpdateAuthority) Target() identity.Identity {
	if UpdateAuthorityNone == ua.Kind {
		return identity.Zero
	}
	return ua.Address
}

// Pack - fixed 33 byte wire form
func (ua UpdateAuthority) Pack() []byte {
	buffer := make([]byte, 0, UpdateAuthoritySize)
	buffer = append(buffer, byte(ua.Kind))
	return append(buffer, ua.Address.Bytes()...)
}

func unpackUpdateAuthority(buffer []byte, n int) (UpdateAuthority, int, error) {
	if n+UpdateAuthoritySize > len(buffer) {
		return UpdateAuthority{}, 0, fault.ErrDeserializationFailed
	}
	kind := UpdateAuthorityKind(buffer[n])
	if kind >= updateAuthorityKindLimit {
		return UpdateAuthority{}, 0, fault.ErrDeserializationFailed
	}
	n += 1
	address, n, err := readIdentity(buffer, n)
	if nil != err {
		return UpdateAuthority{}, 0, err
	}
	if UpdateAuthorityNone == kind && !address.IsZero() {
		return UpdateAuthority{}, 0, fault.ErrDeserializationFailed
	}
	return UpdateAuthority{Kind: kind, Address: address}, n, nil
}
