// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority

import (
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/record"
)

// Parent - the parent collection context supplied with a call
//
// Address is the collection's cell address; UpdateAuthority its
// recorded update authority key
type Parent struct {
	Address         identity.Identity
	UpdateAuthority identity.Identity
}

// Resolve - classify a caller against an asset's authority structure
//
// returns Owner or UpdateAuthority if the caller holds that position,
// otherwise a Pubkey label carrying the caller's own identity; when
// the asset delegates update authority to a parent collection the
// supplied parent must be present and match the recorded address or
// resolution fails with ErrInvalidCollection
func Resolve(caller identity.Identity, asset *record.Asset, parent *Parent) (Authority, error) {
	if caller == asset.Owner {
		return Owner{}, nil
	}

	switch asset.UpdateAuthority.Kind {
	case record.UpdateAuthorityAddress:
		if caller == asset.UpdateAuthority.Address {
			return UpdateAuthority{}, nil
		}
	case record.UpdateAuthorityCollection:
		if nil == parent {
			return nil, fault.ErrInvalidCollection
		}
		if parent.Address != asset.UpdateAuthority.Address {
			return nil, fault.ErrInvalidCollection
		}
		if caller == parent.UpdateAuthority {
			return UpdateAuthority{}, nil
		}
	}

	return Pubkey{Address: caller}, nil
}

// Assert - check a caller against a required authority on an object
//
// None never matches; Owner matches only objects that carry an owner
// field; the fixed identity variants match their embedded address
func Assert(object record.CoreObject, caller identity.Identity, required Authority) error {
	switch req := required.(type) {
	case None:
		// explicit deny-all

	case Owner:
		owner := object.ObjectOwner()
		if !owner.IsZero() && owner == caller {
			return nil
		}

	case UpdateAuthority:
		target := object.UpdateTarget()
		if !target.IsZero() && target == caller {
			return nil
		}

	case Pubkey:
		if caller == req.Address {
			return nil
		}

	case Permanent:
		if caller == req.Address {
			return nil
		}
	}

	return fault.ErrInvalidAuthority
}
