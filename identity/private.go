// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"github.com/coremark-inc/coremarkd/fault"
)

// PrivateKey - an ed25519 private key for offline signing
type PrivateKey []byte

// Generate - create a new random key pair
func Generate() (Identity, PrivateKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return Zero, nil, err
	}
	id, err := FromBytes(publicKey)
	if nil != err {
		return Zero, nil, err
	}
	return id, PrivateKey(privateKey), nil
}

// GenerateFromSeed - create a deterministic key pair, for testing
func GenerateFromSeed(seed []byte) (Identity, PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return Zero, nil, fault.ErrInvalidKeyLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	id, err := FromBytes(privateKey[ed25519.SeedSize:])
	if nil != err {
		return Zero, nil, err
	}
	return id, PrivateKey(privateKey), nil
}

// Sign - sign a message
func (key PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(ed25519.PrivateKey(key), message))
}

// Identity - the public half of the key
func (key PrivateKey) Identity() (Identity, error) {
	if ed25519.PrivateKeySize != len(key) {
		return Zero, fault.ErrInvalidKeyLength
	}
	return FromBytes(key[ed25519.SeedSize:])
}
