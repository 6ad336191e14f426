// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ops - the external interface operations
//
// one function per lifecycle operation; every mutating operation runs
// the permission validation engine before touching any state, and any
// failure leaves all cells untouched
package ops

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/record"
	"github.com/coremark-inc/coremarkd/validate"
)

// globals for this module
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	initialised bool
}

var globalData globalDataType

// Initialise - start the operations subsystem
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("ops")
	globalData.log.Info("initialising…")

	globalData.initialised = true
	return nil
}

// Finalise - stop the operations subsystem
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

// log lines are best effort: operations stay usable without a
// configured logger so library callers need no setup
func opLog(format string, arguments ...interface{}) {
	globalData.RLock()
	l := globalData.log
	globalData.RUnlock()
	if nil != l {
		l.Infof(format, arguments...)
	}
}

// parentOf - build the resolution context from a collection cell
func parentOf(collectionCell *cell.Cell) (*authority.Parent, *record.Collection, error) {
	if nil == collectionCell {
		return nil, nil, nil
	}
	collection, _, _, err := validate.FetchCollection(collectionCell)
	if nil != err {
		return nil, nil, err
	}
	return &authority.Parent{
		Address:         collectionCell.Address,
		UpdateAuthority: collection.UpdateAuthority,
	}, collection, nil
}

// checkParent - the supplied collection cell must be exactly the
// asset's recorded parent
//
// a collection supplied for a non-delegated asset is as wrong as a
// missing or mismatched one: accepting it would let a caller inject
// plugin grants from an unrelated collection they control
func checkParent(asset *record.Asset, collectionCell *cell.Cell) error {
	if record.UpdateAuthorityCollection != asset.UpdateAuthority.Kind {
		if nil != collectionCell {
			return fault.ErrInvalidCollection
		}
		return nil
	}
	if nil == collectionCell {
		return fault.ErrInvalidCollection
	}
	if collectionCell.Address != asset.UpdateAuthority.Address {
		return fault.ErrInvalidCollection
	}
	return nil
}

// assetContext - shared preamble for asset operations: load the
// asset, bind the parent collection, classify the caller
func assetContext(caller identity.Identity, assetCell *cell.Cell, collectionCell *cell.Cell) (*record.Asset, authority.Authority, error) {
	asset, _, _, err := validate.FetchAsset(assetCell)
	if nil != err {
		return nil, nil, err
	}
	err = checkParent(asset, collectionCell)
	if nil != err {
		return nil, nil, err
	}
	parent, _, err := parentOf(collectionCell)
	if nil != err {
		return nil, nil, err
	}
	resolved, err := authority.Resolve(caller, asset, parent)
	if nil != err {
		return nil, nil, err
	}
	return asset, resolved, nil
}

// rewriteCollection - store updated collection counters in place
//
// counter changes never alter the record size
func rewriteCollection(collectionCell *cell.Cell, collection *record.Collection) error {
	return collectionCell.WriteAt(0, collection.Pack())
}
