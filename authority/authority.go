// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authority - who may act on an object or plugin
//
// a closed variant set; exactly one Authority value is attached to
// each authorization slot and matching is exhaustive over the
// variants, there is no open extension point
package authority

import (
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
)

// Tag - wire discriminant for an authority variant
type Tag byte

// enumerate authority variants
const (
	TagNone            Tag = 0
	TagOwner           Tag = 1
	TagUpdateAuthority Tag = 2
	TagPubkey          Tag = 3
	TagPermanent       Tag = 4

	tagLimit Tag = 5
)

// Authority - one variant of the closed set
//
// implementations: None, Owner, UpdateAuthority, Pubkey, Permanent
type Authority interface {
	AuthorityTag() Tag
	Pack() []byte
	Equal(other Authority) bool
	String() string
}

// None - nobody; an explicit deny-all slot
type None struct{}

// Owner - the object's current owner field
type Owner struct{}

// UpdateAuthority - the object's designated update authority
type UpdateAuthority struct{}

// Pubkey - one fixed external identity
type Pubkey struct {
	Address identity.Identity
}

// Permanent - a fixed identity whose grant survives normal revocation
type Permanent struct {
	Address identity.Identity
}

// AuthorityTag - wire discriminant
func (None) AuthorityTag() Tag            { return TagNone }
func (Owner) AuthorityTag() Tag           { return TagOwner }
func (UpdateAuthority) AuthorityTag() Tag { return TagUpdateAuthority }
func (Pubkey) AuthorityTag() Tag          { return TagPubkey }
func (Permanent) AuthorityTag() Tag       { return TagPermanent }

// Pack - wire form: tag byte, plus the address for the fixed identity variants
func (None) Pack() []byte            { return []byte{byte(TagNone)} }
func (Owner) Pack() []byte           { return []byte{byte(TagOwner)} }
func (UpdateAuthority) Pack() []byte { return []byte{byte(TagUpdateAuthority)} }

func (a Pubkey) Pack() []byte {
	return append([]byte{byte(TagPubkey)}, a.Address.Bytes()...)
}

func (a Permanent) Pack() []byte {
	return append([]byte{byte(TagPermanent)}, a.Address.Bytes()...)
}

// Equal - structural equality
func (None) Equal(other Authority) bool            { _, ok := other.(None); return ok }
func (Owner) Equal(other Authority) bool           { _, ok := other.(Owner); return ok }
func (UpdateAuthority) Equal(other Authority) bool { _, ok := other.(UpdateAuthority); return ok }

func (a Pubkey) Equal(other Authority) bool {
	b, ok := other.(Pubkey)
	return ok && a.Address == b.Address
}

func (a Permanent) Equal(other Authority) bool {
	b, ok := other.(Permanent)
	return ok && a.Address == b.Address
}

func (None) String() string            { return "None" }
func (Owner) String() string           { return "Owner" }
func (UpdateAuthority) String() string { return "UpdateAuthority" }
func (a Pubkey) String() string        { return "Pubkey:" + a.Address.String() }
func (a Permanent) String() string     { return "Permanent:" + a.Address.String() }

// Unpack - decode an authority from a buffer, returning bytes consumed
func Unpack(buffer []byte) (Authority, int, error) {
	if 0 == len(buffer) {
		return nil, 0, fault.ErrDeserializationFailed
	}
	tag := Tag(buffer[0])
	switch tag {
	case TagNone:
		return None{}, 1, nil
	case TagOwner:
		return Owner{}, 1, nil
	case TagUpdateAuthority:
		return UpdateAuthority{}, 1, nil
	case TagPubkey, TagPermanent:
		if len(buffer) < 1+identity.Size {
			return nil, 0, fault.ErrDeserializationFailed
		}
		address, err := identity.FromBytes(buffer[1 : 1+identity.Size])
		if nil != err {
			return nil, 0, err
		}
		if TagPubkey == tag {
			return Pubkey{Address: address}, 1 + identity.Size, nil
		}
		return Permanent{Address: address}, 1 + identity.Size, nil
	default:
		return nil, 0, fault.ErrDeserializationFailed
	}
}
