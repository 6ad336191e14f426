// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package plugin - attachable behaviour and authority units
//
// a plugin is a typed payload stored after the core object together
// with a registry record naming its byte offset and the authority
// allowed to reconfigure it; plugin types also participate in
// lifecycle authorization through the check tables in lifecycle.go
package plugin

import (
	"encoding/binary"

	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
)

// Type - the fixed plugin type enumeration
type Type byte

// enumerate the plugin types
const (
	TypeRoyalties         Type = 0
	TypeFreeze            Type = 1
	TypeBurn              Type = 2
	TypeTransfer          Type = 3
	TypeUpdateDelegate    Type = 4
	TypeAttributes        Type = 5
	TypePermanentFreeze   Type = 6
	TypePermanentTransfer Type = 7
	TypePermanentBurn     Type = 8

	// this item must be last
	typeLimit Type = 9
)

// String - describe a plugin type for logging
func (pluginType Type) String() string {
	switch pluginType {
	case TypeRoyalties:
		return "Royalties"
	case TypeFreeze:
		return "Freeze"
	case TypeBurn:
		return "Burn"
	case TypeTransfer:
		return "Transfer"
	case TypeUpdateDelegate:
		return "UpdateDelegate"
	case TypeAttributes:
		return "Attributes"
	case TypePermanentFreeze:
		return "PermanentFreeze"
	case TypePermanentTransfer:
		return "PermanentTransfer"
	case TypePermanentBurn:
		return "PermanentBurn"
	default:
		return "*unknown*"
	}
}

// Plugin - one attached behaviour unit
type Plugin interface {
	PluginType() Type
	Size() int
	Pack() []byte
	Validate(event Event, ctx *ValidationContext) (ValidationResult, error)
}

// RulesetKind - royalty enforcement rule variants
type RulesetKind byte

// enumerate ruleset variants
const (
	RulesetNone      RulesetKind = 0
	RulesetAllowList RulesetKind = 1
	RulesetDenyList  RulesetKind = 2
)

// Creator - one royalty recipient
type Creator struct {
	Address    identity.Identity
	Percentage byte
}

// Royalties - royalty configuration with an optional transfer ruleset
type Royalties struct {
	BasisPoints uint16
	Creators    []Creator
	Ruleset     RulesetKind
	RuleAddrs   []identity.Identity
}

// Freeze - revocable freeze delegate; rejects transfer and burn while frozen
type Freeze struct {
	Frozen bool
}

// Burn - revocable burn delegate
type Burn struct{}

// Transfer - revocable transfer delegate
type Transfer struct{}

// UpdateDelegate - delegate allowed to perform updates
type UpdateDelegate struct{}

// Attribute - one key/value pair
type Attribute struct {
	Key   string
	Value string
}

// Attributes - on-object key/value data, no lifecycle participation
type Attributes struct {
	List []Attribute
}

// PermanentFreeze - freeze that can only be attached at creation
type PermanentFreeze struct {
	Frozen bool
}

// PermanentTransfer - permanent transfer override authority
type PermanentTransfer struct{}

// PermanentBurn - permanent burn override authority
type PermanentBurn struct{}

// PluginType implementations

func (Royalties) PluginType() Type         { return TypeRoyalties }
func (Freeze) PluginType() Type            { return TypeFreeze }
func (Burn) PluginType() Type              { return TypeBurn }
func (Transfer) PluginType() Type          { return TypeTransfer }
func (UpdateDelegate) PluginType() Type    { return TypeUpdateDelegate }
func (Attributes) PluginType() Type        { return TypeAttributes }
func (PermanentFreeze) PluginType() Type   { return TypePermanentFreeze }
func (PermanentTransfer) PluginType() Type { return TypePermanentTransfer }
func (PermanentBurn) PluginType() Type     { return TypePermanentBurn }

// Size - packed byte length including the leading type byte

func (p Royalties) Size() int {
	return 1 + 2 +
		4 + len(p.Creators)*(identity.Size+1) +
		1 + 4 + len(p.RuleAddrs)*identity.Size
}

func (Freeze) Size() int            { return 2 }
func (Burn) Size() int              { return 1 }
func (Transfer) Size() int          { return 1 }
func (UpdateDelegate) Size() int    { return 1 }
func (PermanentFreeze) Size() int   { return 2 }
func (PermanentTransfer) Size() int { return 1 }
func (PermanentBurn) Size() int     { return 1 }

func (p Attributes) Size() int {
	size := 1 + 4
	for _, attribute := range p.List {
		size += 4 + len(attribute.Key) + 4 + len(attribute.Value)
	}
	return size
}

// Pack - wire form: type byte then the little endian payload

func (p Royalties) Pack() []byte {
	buffer := make([]byte, 0, p.Size())
	buffer = append(buffer, byte(TypeRoyalties))
	buffer = appendUint16(buffer, p.BasisPoints)
	buffer = appendUint32(buffer, uint32(len(p.Creators)))
	for _, creator := range p.Creators {
		buffer = append(buffer, creator.Address.Bytes()...)
		buffer = append(buffer, creator.Percentage)
	}
	buffer = append(buffer, byte(p.Ruleset))
	buffer = appendUint32(buffer, uint32(len(p.RuleAddrs)))
	for _, address := range p.RuleAddrs {
		buffer = append(buffer, address.Bytes()...)
	}
	return buffer
}

func (p Freeze) Pack() []byte {
	return []byte{byte(TypeFreeze), packBool(p.Frozen)}
}

func (Burn) Pack() []byte           { return []byte{byte(TypeBurn)} }
func (Transfer) Pack() []byte       { return []byte{byte(TypeTransfer)} }
func (UpdateDelegate) Pack() []byte { return []byte{byte(TypeUpdateDelegate)} }

func (p Attributes) Pack() []byte {
	buffer := make([]byte, 0, p.Size())
	buffer = append(buffer, byte(TypeAttributes))
	buffer = appendUint32(buffer, uint32(len(p.List)))
	for _, attribute := range p.List {
		buffer = appendCounted(buffer, attribute.Key)
		buffer = appendCounted(buffer, attribute.Value)
	}
	return buffer
}

func (p PermanentFreeze) Pack() []byte {
	return []byte{byte(TypePermanentFreeze), packBool(p.Frozen)}
}

func (PermanentTransfer) Pack() []byte { return []byte{byte(TypePermanentTransfer)} }
func (PermanentBurn) Pack() []byte     { return []byte{byte(TypePermanentBurn)} }

// Unpack - decode one plugin from the start of a buffer
//
// returns the bytes consumed; trailing data is the caller's concern
func Unpack(buffer []byte) (Plugin, int, error) {
	if 0 == len(buffer) {
		return nil, 0, fault.ErrDeserializationFailed
	}
	pluginType := Type(buffer[0])
	n := 1

	switch pluginType {

	case TypeRoyalties:
		basisPoints, n, err := readUint16(buffer, n)
		if nil != err {
			return nil, 0, err
		}
		creatorCount, n, err := readUint32(buffer, n)
		if nil != err {
			return nil, 0, err
		}
		if int(creatorCount) > maxListLength {
			return nil, 0, fault.ErrDeserializationFailed
		}
		creators := make([]Creator, 0, creatorCount)
		for i := uint32(0); i < creatorCount; i += 1 {
			address, m, err := readIdentity(buffer, n)
			if nil != err {
				return nil, 0, err
			}
			n = m
			if n >= len(buffer) {
				return nil, 0, fault.ErrDeserializationFailed
			}
			creators = append(creators, Creator{Address: address, Percentage: buffer[n]})
			n += 1
		}
		if n >= len(buffer) {
			return nil, 0, fault.ErrDeserializationFailed
		}
		ruleset := RulesetKind(buffer[n])
		if ruleset > RulesetDenyList {
			return nil, 0, fault.ErrDeserializationFailed
		}
		n += 1
		addrCount, n, err := readUint32(buffer, n)
		if nil != err {
			return nil, 0, err
		}
		if int(addrCount) > maxListLength {
			return nil, 0, fault.ErrDeserializationFailed
		}
		ruleAddrs := make([]identity.Identity, 0, addrCount)
		for i := uint32(0); i < addrCount; i += 1 {
			address, m, err := readIdentity(buffer, n)
			if nil != err {
				return nil, 0, err
			}
			n = m
			ruleAddrs = append(ruleAddrs, address)
		}
		return Royalties{
			BasisPoints: basisPoints,
			Creators:    creators,
			Ruleset:     ruleset,
			RuleAddrs:   ruleAddrs,
		}, n, nil

	case TypeFreeze:
		frozen, n, err := readBool(buffer, n)
		if nil != err {
			return nil, 0, err
		}
		return Freeze{Frozen: frozen}, n, nil

	case TypeBurn:
		return Burn{}, n, nil

	case TypeTransfer:
		return Transfer{}, n, nil

	case TypeUpdateDelegate:
		return UpdateDelegate{}, n, nil

	case TypeAttributes:
		count, n, err := readUint32(buffer, n)
		if nil != err {
			return nil, 0, err
		}
		if int(count) > maxListLength {
			return nil, 0, fault.ErrDeserializationFailed
		}
		list := make([]Attribute, 0, count)
		for i := uint32(0); i < count; i += 1 {
			key, m, err := readCounted(buffer, n)
			if nil != err {
				return nil, 0, err
			}
			value, m, err := readCounted(buffer, m)
			if nil != err {
				return nil, 0, err
			}
			n = m
			list = append(list, Attribute{Key: key, Value: value})
		}
		return Attributes{List: list}, n, nil

	case TypePermanentFreeze:
		frozen, n, err := readBool(buffer, n)
		if nil != err {
			return nil, 0, err
		}
		return PermanentFreeze{Frozen: frozen}, n, nil

	case TypePermanentTransfer:
		return PermanentTransfer{}, n, nil

	case TypePermanentBurn:
		return PermanentBurn{}, n, nil

	default:
		return nil, 0, fault.ErrInvalidPluginType
	}
}

// limits for list fields
const (
	maxListLength   = 1024
	maxStringLength = 2048
)

// internal pack/unpack helpers

func packBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func appendUint16(buffer []byte, value uint16) []byte {
	scratch := make([]byte, 2)
	binary.LittleEndian.PutUint16(scratch, value)
	return append(buffer, scratch...)
}

func appendUint32(buffer []byte, value uint32) []byte {
	scratch := make([]byte, 4)
	binary.LittleEndian.PutUint32(scratch, value)
	return append(buffer, scratch...)
}

func appendCounted(buffer []byte, s string) []byte {
	buffer = appendUint32(buffer, uint32(len(s)))
	return append(buffer, s...)
}

func readBool(buffer []byte, n int) (bool, int, error) {
	if n >= len(buffer) {
		return false, 0, fault.ErrDeserializationFailed
	}
	switch buffer[n] {
	case 0:
		return false, n + 1, nil
	case 1:
		return true, n + 1, nil
	default:
		return false, 0, fault.ErrDeserializationFailed
	}
}

func readUint16(buffer []byte, n int) (uint16, int, error) {
	if n+2 > len(buffer) {
		return 0, 0, fault.ErrDeserializationFailed
	}
	return binary.LittleEndian.Uint16(buffer[n:]), n + 2, nil
}

func readUint32(buffer []byte, n int) (uint32, int, error) {
	if n+4 > len(buffer) {
		return 0, 0, fault.ErrDeserializationFailed
	}
	return binary.LittleEndian.Uint32(buffer[n:]), n + 4, nil
}

func readCounted(buffer []byte, n int) (string, int, error) {
	length, n, err := readUint32(buffer, n)
	if nil != err {
		return "", 0, err
	}
	if int(length) > maxStringLength || n+int(length) > len(buffer) {
		return "", 0, fault.ErrDeserializationFailed
	}
	return string(buffer[n : n+int(length)]), n + int(length), nil
}

func readIdentity(buffer []byte, n int) (identity.Identity, int, error) {
	if n+identity.Size > len(buffer) {
		return identity.Zero, 0, fault.ErrDeserializationFailed
	}
	id, err := identity.FromBytes(buffer[n : n+identity.Size])
	if nil != err {
		return identity.Zero, 0, err
	}
	return id, n + identity.Size, nil
}
