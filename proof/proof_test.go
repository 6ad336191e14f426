// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/plugin"
	"github.com/coremark-inc/coremarkd/proof"
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

var ownerA = makeIdentity(0x0a)

// a populated asset cell: core object plus two plugins
func makeAssetCell(t *testing.T, funder *cell.Funder) (*cell.Cell, *record.Asset) {
	asset := &record.Asset{
		Owner:           ownerA,
		UpdateAuthority: record.NoUpdateAuthority(),
		Name:            "compress me",
		URI:             "https://example.org/c",
	}
	c, err := cell.New(makeIdentity(0xff), asset.Size(), funder)
	assert.Nil(t, err, "cell error")
	err = c.WriteAt(0, asset.Pack())
	assert.Nil(t, err, "write error")

	err = plugin.Initialize(c, asset, plugin.Freeze{Frozen: false}, authority.Owner{}, funder)
	assert.Nil(t, err, "freeze init error")
	err = plugin.Initialize(c, asset, plugin.Attributes{
		List: []plugin.Attribute{{Key: "k", Value: "v"}},
	}, authority.UpdateAuthority{}, funder)
	assert.Nil(t, err, "attributes init error")

	return c, asset
}

func TestCompressVerifyRebuild(t *testing.T) {
	funder := &cell.Funder{Balance: 10_000_000}
	c, asset := makeAssetCell(t, funder)

	original := make([]byte, len(c.Data))
	copy(original, c.Data)
	balanceBefore := funder.Balance

	_, registry, err := plugin.LoadMeta(c.Data, asset.Size())
	assert.Nil(t, err, "meta error")
	assert.NotNil(t, registry, "missing registry")

	compressionProof, err := proof.Compress(c, asset, registry, funder)
	assert.Nil(t, err, "compress error")
	assert.Equal(t, record.HashedAssetSize, len(c.Data), "hashed size mismatch")
	assert.Equal(t, 2, len(compressionProof.Plugins), "plugin count mismatch")

	// shrinking refunds deposit
	assert.True(t, funder.Balance > balanceBefore, "no deposit refund")

	verifiedAsset, sortedPlugins, err := proof.Verify(c, compressionProof)
	assert.Nil(t, err, "verify error")
	assert.Equal(t, asset.Owner, verifiedAsset.Owner, "owner mismatch")
	assert.Equal(t, 2, len(sortedPlugins), "verified plugin count mismatch")

	err = proof.Rebuild(c, verifiedAsset, sortedPlugins, funder)
	assert.Nil(t, err, "rebuild error")
	assert.Equal(t, original, c.Data, "rebuild not byte identical")
}

// the proof's array order is untrusted: a shuffled proof must still
// verify because plugins are re-sorted by their recorded index
func TestVerifyUnsortedProof(t *testing.T) {
	funder := &cell.Funder{Balance: 10_000_000}
	c, asset := makeAssetCell(t, funder)

	_, registry, err := plugin.LoadMeta(c.Data, asset.Size())
	assert.Nil(t, err, "meta error")

	compressionProof, err := proof.Compress(c, asset, registry, funder)
	assert.Nil(t, err, "compress error")

	compressionProof.Plugins[0], compressionProof.Plugins[1] =
		compressionProof.Plugins[1], compressionProof.Plugins[0]

	_, sortedPlugins, err := proof.Verify(c, compressionProof)
	assert.Nil(t, err, "shuffled proof rejected")
	assert.Equal(t, uint32(0), sortedPlugins[0].Index, "sort order wrong")
	assert.Equal(t, uint32(1), sortedPlugins[1].Index, "sort order wrong")
}

func TestVerifyTamperedProof(t *testing.T) {
	funder := &cell.Funder{Balance: 10_000_000}
	c, asset := makeAssetCell(t, funder)

	_, registry, err := plugin.LoadMeta(c.Data, asset.Size())
	assert.Nil(t, err, "meta error")

	compressionProof, err := proof.Compress(c, asset, registry, funder)
	assert.Nil(t, err, "compress error")

	// tampered core object
	compressionProof.Asset.Name = "compress mf"
	_, _, err = proof.Verify(c, compressionProof)
	assert.Equal(t, fault.ErrIncorrectAssetHash, err, "tampered asset accepted")
	compressionProof.Asset.Name = "compress me"

	// tampered plugin state
	compressionProof.Plugins[0].Plugin = plugin.Freeze{Frozen: true}
	_, _, err = proof.Verify(c, compressionProof)
	assert.Equal(t, fault.ErrIncorrectAssetHash, err, "tampered plugin accepted")
	compressionProof.Plugins[0].Plugin = plugin.Freeze{Frozen: false}

	// tampered plugin authority
	compressionProof.Plugins[0].Authority = authority.Pubkey{Address: ownerA}
	_, _, err = proof.Verify(c, compressionProof)
	assert.Equal(t, fault.ErrIncorrectAssetHash, err, "tampered authority accepted")
}

func TestProofPersistence(t *testing.T) {
	funder := &cell.Funder{Balance: 10_000_000}
	c, asset := makeAssetCell(t, funder)

	_, registry, err := plugin.LoadMeta(c.Data, asset.Size())
	assert.Nil(t, err, "meta error")

	compressionProof, err := proof.Compress(c, asset, registry, funder)
	assert.Nil(t, err, "compress error")

	restored, err := proof.UnpackProof(compressionProof.Pack())
	assert.Nil(t, err, "unpack error")

	_, _, err = proof.Verify(c, restored)
	assert.Nil(t, err, "restored proof rejected")
}

func TestCompressBareAsset(t *testing.T) {
	funder := &cell.Funder{Balance: 10_000_000}
	asset := &record.Asset{
		Owner:           ownerA,
		UpdateAuthority: record.NoUpdateAuthority(),
		Name:            "bare",
		URI:             "u",
	}
	c, err := cell.New(makeIdentity(0xfe), asset.Size(), funder)
	assert.Nil(t, err, "cell error")
	err = c.WriteAt(0, asset.Pack())
	assert.Nil(t, err, "write error")

	compressionProof, err := proof.Compress(c, asset, nil, funder)
	assert.Nil(t, err, "compress error")
	assert.Equal(t, 0, len(compressionProof.Plugins), "unexpected plugins")

	verifiedAsset, sortedPlugins, err := proof.Verify(c, compressionProof)
	assert.Nil(t, err, "verify error")

	err = proof.Rebuild(c, verifiedAsset, sortedPlugins, funder)
	assert.Nil(t, err, "rebuild error")
	assert.Equal(t, []byte(asset.Pack()), c.Data, "rebuild mismatch")
}
