// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/identity"
)

// PoolHandle - one key space inside the database
type PoolHandle struct {
	prefix byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("pool.Put nil database")
		return
	}
	err := poolData.db.Put(p.prefixKey(key), value, nil)
	logger.PanicIfError("pool.Put", err)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("pool.Delete nil database")
		return
	}
	err := poolData.db.Delete(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Delete", err)
}

// Get - read a value for a given key
//
// returns nil if the key is absent
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil
	}
	value, err := poolData.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return false
	}
	value, err := poolData.db.Has(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Has", err)
	return value
}

// PutFunder - persist a funder balance keyed by address
func (p *PoolHandle) PutFunder(f *cell.Funder) {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, f.Balance)
	p.Put(f.Address.Bytes(), value)
}

// GetFunder - load a funder balance by address
//
// an absent funder starts with a zero balance
func (p *PoolHandle) GetFunder(address identity.Identity) *cell.Funder {
	f := &cell.Funder{Address: address}
	value := p.Get(address.Bytes())
	if nil == value {
		return f
	}
	if 8 != len(value) {
		logger.Panicf("pool.GetFunder truncated record for: %s", address)
	}
	f.Balance = binary.BigEndian.Uint64(value)
	return f
}

// cell persisted form:
//
//   [8]  deposit, big endian
//   [n]  cell data

// PutCell - persist a cell keyed by its address
func (p *PoolHandle) PutCell(c *cell.Cell) {
	value := make([]byte, 8, 8+len(c.Data))
	binary.BigEndian.PutUint64(value, c.Deposit)
	value = append(value, c.Data...)
	p.Put(c.Address.Bytes(), value)
}

// GetCell - load a cell by address
//
// returns nil if the address is absent
func (p *PoolHandle) GetCell(address identity.Identity) *cell.Cell {
	value := p.Get(address.Bytes())
	if nil == value {
		return nil
	}
	if len(value) < 8 {
		logger.Panicf("pool.GetCell truncated record for: %s", address)
	}
	data := make([]byte, len(value)-8)
	copy(data, value[8:])
	return &cell.Cell{
		Address: address,
		Data:    data,
		Deposit: binary.BigEndian.Uint64(value[:8]),
	}
}
