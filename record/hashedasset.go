// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/coremark-inc/coremarkd/digest"
	"github.com/coremark-inc/coremarkd/fault"
)

// HashedAssetSize - fixed cell image size of a compressed asset
const HashedAssetSize = 1 + digest.Length

// HashedAsset - the compressed form: just the commitment digest
type HashedAsset struct {
	Hash digest.Digest
}

// Size - exact packed byte length
func (hashed *HashedAsset) Size() int {
	return HashedAssetSize
}

// Pack - canonical byte form
func (hashed *HashedAsset) Pack() Packed {
	message := make([]byte, 0, HashedAssetSize)
	message = append(message, byte(KeyHashedAsset))
	return append(message, hashed.Hash[:]...)
}

// UnpackHashedAsset - decode a compressed cell image
func UnpackHashedAsset(buffer []byte) (*HashedAsset, error) {
	key, err := LoadKey(buffer, 0)
	if nil != err {
		return nil, err
	}
	if KeyHashedAsset != key {
		return nil, fault.ErrInvalidKey
	}
	if len(buffer) < HashedAssetSize {
		return nil, fault.ErrDeserializationFailed
	}
	hashed := &HashedAsset{}
	copy(hashed.Hash[:], buffer[1:HashedAssetSize])
	return hashed, nil
}
