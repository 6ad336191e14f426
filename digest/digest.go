// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - the commitment digest
//
// a 32 byte SHA3-256 of some packed bytes; used both for individual
// object/plugin hashes and for the combined commitment stored in a
// compressed cell
package digest

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/coremark-inc/coremarkd/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - type for a digest
//
// stored as its natural byte order, represented as hex for printing
// and JSON encoding; to convert to bytes just use d[:]
type Digest [Length]byte

// New - create a digest from a byte slice
func New(record []byte) Digest {
	return Digest(sha3.Sum256(record))
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(Length)
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if hex.EncodedLen(Length) != len(s) {
		return fault.ErrInvalidKeyLength
	}
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.ErrInvalidKeyLength
	}
	copy(digest[:], buffer)
	return nil
}
