// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/record"
)

func makeIdentity(fill byte) identity.Identity {
	var buffer [identity.Size]byte
	for i := range buffer {
		buffer[i] = fill
	}
	id, _ := identity.FromBytes(buffer[:])
	return id
}

// ensure the asset layout is bit exact: key byte, owner, update
// authority, counted name, counted uri, optional seq
func TestAssetLayout(t *testing.T) {
	owner := makeIdentity(0x11)
	asset := &record.Asset{
		Owner:           owner,
		UpdateAuthority: record.NoUpdateAuthority(),
		Name:            "ab",
		URI:             "u",
	}

	expected := []byte{0x01} // key
	expected = append(expected, owner.Bytes()...)
	expected = append(expected, make([]byte, 33)...)      // none update authority
	expected = append(expected, 0x02, 0, 0, 0, 'a', 'b') // name
	expected = append(expected, 0x01, 0, 0, 0, 'u')      // uri
	expected = append(expected, 0x00)                    // no seq

	packed := asset.Pack()
	assert.Equal(t, record.Packed(expected), packed, "wrong packed bytes")
	assert.Equal(t, len(packed), asset.Size(), "size does not match packed length")
}

func TestAssetRoundTrip(t *testing.T) {
	seq := uint64(42)
	asset := &record.Asset{
		Owner:           makeIdentity(0x22),
		UpdateAuthority: record.UpdateAuthorityOf(makeIdentity(0x33)),
		Name:            "test item",
		URI:             "https://example.com/item.json",
		Seq:             &seq,
	}

	packed := asset.Pack()
	assert.Equal(t, len(packed), asset.Size(), "size mismatch")

	restored, n, err := record.UnpackAsset(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, len(packed), n, "wrong consumed length")
	assert.Equal(t, asset, restored, "asset not restored")
}

func TestAssetDelegatedRoundTrip(t *testing.T) {
	asset := &record.Asset{
		Owner:           makeIdentity(0x44),
		UpdateAuthority: record.DelegatedToCollection(makeIdentity(0x55)),
		Name:            "member",
		URI:             "ipfs://x",
	}

	restored, _, err := record.UnpackAsset(asset.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, record.UpdateAuthorityCollection, restored.UpdateAuthority.Kind, "wrong kind")
	assert.Equal(t, makeIdentity(0x55), restored.UpdateAuthority.Target(), "wrong target")
}

func TestCollectionRoundTrip(t *testing.T) {
	collection := &record.Collection{
		UpdateAuthority: makeIdentity(0x66),
		Name:            "a collection",
		URI:             "https://example.com/collection.json",
		NumMinted:       7,
		CurrentSize:     5,
	}

	packed := collection.Pack()
	assert.Equal(t, len(packed), collection.Size(), "size mismatch")

	restored, n, err := record.UnpackCollection(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, len(packed), n, "wrong consumed length")
	assert.Equal(t, collection, restored, "collection not restored")
}

func TestUnpackWrongKey(t *testing.T) {
	collection := &record.Collection{UpdateAuthority: makeIdentity(0x01)}
	_, _, err := record.UnpackAsset(collection.Pack())
	assert.Equal(t, fault.ErrInvalidKey, err, "wrong error")
}

func TestUnpackTruncated(t *testing.T) {
	asset := &record.Asset{
		Owner: makeIdentity(0x77),
		Name:  "n",
		URI:   "u",
	}
	packed := asset.Pack()

	for i := 1; i < len(packed); i += 1 {
		_, _, err := record.UnpackAsset(packed[:i])
		assert.NotNil(t, err, "truncated record accepted at length %d", i)
	}
}

func TestHashedAssetRoundTrip(t *testing.T) {
	hashed := &record.HashedAsset{}
	for i := range hashed.Hash {
		hashed.Hash[i] = byte(i)
	}

	packed := hashed.Pack()
	assert.Equal(t, record.HashedAssetSize, len(packed), "wrong size")
	assert.Equal(t, byte(record.KeyHashedAsset), packed[0], "wrong key byte")

	restored, err := record.UnpackHashedAsset(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, hashed, restored, "hashed asset not restored")
}

func TestLoadKeyRejectsUnknown(t *testing.T) {
	_, err := record.LoadKey([]byte{0xff}, 0)
	assert.Equal(t, fault.ErrDeserializationFailed, err, "wrong error")

	_, err = record.LoadKey([]byte{}, 0)
	assert.Equal(t, fault.ErrCellTooSmall, err, "wrong error")
}
