// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cell - storage cells of the host ledger
//
// a cell is the byte buffer backing one object together with the
// deposit held against its size; growing or shrinking a cell always
// rebalances the deposit against a funding participant in the same
// step so the two can never drift apart
package cell

import (
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
)

// deposit schedule: a fixed base charge plus a per-byte charge
const (
	DepositBase    uint64 = 1000
	DepositPerByte uint64 = 10
)

// Cell - one storage cell
type Cell struct {
	Address identity.Identity
	Data    []byte
	Deposit uint64
}

// Funder - a participant paying for (or refunded) deposit changes
type Funder struct {
	Address identity.Identity
	Balance uint64
}

// RequiredDeposit - deposit that must be held for a cell of the given size
func RequiredDeposit(size int) (uint64, error) {
	charge, err := mulUint64(DepositPerByte, uint64(size))
	if nil != err {
		return 0, err
	}
	return addUint64(DepositBase, charge)
}

// New - allocate a funded cell of the given size
func New(address identity.Identity, size int, funder *Funder) (*Cell, error) {
	deposit, err := RequiredDeposit(size)
	if nil != err {
		return nil, err
	}
	if funder.Balance < deposit {
		return nil, fault.ErrInsufficientDeposit
	}
	funder.Balance -= deposit
	return &Cell{
		Address: address,
		Data:    make([]byte, size),
		Deposit: deposit,
	}, nil
}

// Resize - change the cell size, rebalancing the deposit with the funder
//
// the deposit transfer and the buffer resize happen together; any
// arithmetic failure leaves both untouched
func (c *Cell) Resize(funder *Funder, newSize int) error {
	newDeposit, err := RequiredDeposit(newSize)
	if nil != err {
		return err
	}
	currentDeposit, err := RequiredDeposit(len(c.Data))
	if nil != err {
		return err
	}

	if newDeposit >= currentDeposit {
		diff := newDeposit - currentDeposit
		if funder.Balance < diff {
			return fault.ErrInsufficientDeposit
		}
		deposit, err := addUint64(c.Deposit, diff)
		if nil != err {
			return err
		}
		funder.Balance -= diff
		c.Deposit = deposit
	} else {
		diff := currentDeposit - newDeposit
		balance, err := addUint64(funder.Balance, diff)
		if nil != err {
			return err
		}
		deposit, err := subUint64(c.Deposit, diff)
		if nil != err {
			return err
		}
		funder.Balance = balance
		c.Deposit = deposit
	}

	if newSize <= len(c.Data) {
		c.Data = c.Data[:newSize]
	} else {
		grown := make([]byte, newSize)
		copy(grown, c.Data)
		c.Data = grown
	}
	return nil
}

// Close - release the cell: refund all deposit above the one byte
// minimum and shrink to a single zeroed marker byte
func (c *Cell) Close(refund *Funder) error {
	minimum, err := RequiredDeposit(1)
	if nil != err {
		return err
	}
	amount, err := subUint64(c.Deposit, minimum)
	if nil != err {
		return err
	}
	balance, err := addUint64(refund.Balance, amount)
	if nil != err {
		return err
	}
	refund.Balance = balance
	c.Deposit = minimum
	c.Data = []byte{0}
	return nil
}

// ReadAt - bounds checked read of n bytes from an offset
func (c *Cell) ReadAt(offset int, n int) ([]byte, error) {
	if offset < 0 || n < 0 || offset+n > len(c.Data) {
		return nil, fault.ErrCellTooSmall
	}
	return c.Data[offset : offset+n], nil
}

// WriteAt - bounds checked write at an offset
func (c *Cell) WriteAt(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > len(c.Data) {
		return fault.ErrCellTooSmall
	}
	copy(c.Data[offset:], data)
	return nil
}

// checked arithmetic

func addUint64(a uint64, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, fault.ErrNumericalOverflow
	}
	return sum, nil
}

func subUint64(a uint64, b uint64) (uint64, error) {
	if b > a {
		return 0, fault.ErrNumericalOverflow
	}
	return a - b, nil
}

func mulUint64(a uint64, b uint64) (uint64, error) {
	if 0 == a || 0 == b {
		return 0, nil
	}
	product := a * b
	if product/a != b {
		return 0, fault.ErrNumericalOverflow
	}
	return product, nil
}
