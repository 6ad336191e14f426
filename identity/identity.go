// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - participant identities
//
// an identity is an ed25519 public key; the text form is Base58 of:
// key variant byte, the key bytes and a truncated SHA3-256 checksum
package identity

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/coremark-inc/coremarkd/fault"
)

// Size - number of bytes in an identity
const Size = ed25519.PublicKeySize

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key variant byte starting from LSB
	publicKeyCode = 0x01

	algorithmShift = 4 // shift 4 bits to get algorithm
	algorithmED    = 0 // only supported algorithm
)

// Identity - an ed25519 public key
type Identity [Size]byte

// Signature - raw signature bytes
type Signature []byte

// Zero - the all-zero identity, used as "not set"
var Zero Identity

// FromBytes - construct an identity from raw public key bytes
func FromBytes(buffer []byte) (Identity, error) {
	var id Identity
	if Size != len(buffer) {
		return id, fault.ErrInvalidKeyLength
	}
	copy(id[:], buffer)
	return id, nil
}

// FromBase58 - decode the text form of an identity
func FromBase58(s string) (Identity, error) {
	var id Identity

	decoded, err := base58.Decode(s)
	if nil != err {
		return id, fault.ErrCannotDecodeIdentity
	}
	if len(decoded) != 1+Size+checksumLength {
		return id, fault.ErrInvalidKeyLength
	}

	keyVariant := decoded[0]
	if keyVariant&publicKeyCode != publicKeyCode {
		return id, fault.ErrNotPublicKey
	}
	if keyVariant>>algorithmShift != algorithmED {
		return id, fault.ErrInvalidKeyType
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return id, fault.ErrChecksumMismatch
	}

	copy(id[:], decoded[1:checksumStart])
	return id, nil
}

// Bytes - the raw public key bytes
func (id Identity) Bytes() []byte {
	return id[:]
}

// IsZero - true for the unset identity
func (id Identity) IsZero() bool {
	return id == Zero
}

// String - Base58 text form for use by the fmt package (for %s)
func (id Identity) String() string {
	buffer := make([]byte, 0, 1+Size+checksumLength)
	buffer = append(buffer, publicKeyCode|algorithmED<<algorithmShift)
	buffer = append(buffer, id[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert identity to Base58 text
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert Base58 text into an identity
func (id *Identity) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*id = decoded
	return nil
}

// CheckSignature - verify an ed25519 signature over a message
func (id Identity) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(id[:], message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
