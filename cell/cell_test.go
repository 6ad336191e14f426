// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/fault"
	"github.com/coremark-inc/coremarkd/identity"
)

func newFunder(balance uint64) *cell.Funder {
	return &cell.Funder{Balance: balance}
}

func TestNewTakesDeposit(t *testing.T) {
	funder := newFunder(1_000_000)
	c, err := cell.New(identity.Zero, 100, funder)
	assert.Nil(t, err, "new error")

	deposit, _ := cell.RequiredDeposit(100)
	assert.Equal(t, deposit, c.Deposit, "wrong deposit")
	assert.Equal(t, uint64(1_000_000)-deposit, funder.Balance, "wrong balance")
	assert.Equal(t, 100, len(c.Data), "wrong size")
}

func TestNewInsufficientBalance(t *testing.T) {
	funder := newFunder(1)
	_, err := cell.New(identity.Zero, 100, funder)
	assert.Equal(t, fault.ErrInsufficientDeposit, err, "wrong error")
}

func TestResizeGrowAndShrink(t *testing.T) {
	funder := newFunder(1_000_000)
	c, err := cell.New(identity.Zero, 10, funder)
	assert.Nil(t, err, "new error")
	copy(c.Data, "0123456789")

	balanceBefore := funder.Balance
	err = c.Resize(funder, 50)
	assert.Nil(t, err, "grow error")
	assert.Equal(t, 50, len(c.Data), "wrong size after grow")
	assert.Equal(t, "0123456789", string(c.Data[:10]), "data lost on grow")
	assert.Equal(t, byte(0), c.Data[49], "grown region not zeroed")
	assert.Equal(t, balanceBefore-40*cell.DepositPerByte, funder.Balance, "wrong balance after grow")

	err = c.Resize(funder, 5)
	assert.Nil(t, err, "shrink error")
	assert.Equal(t, 5, len(c.Data), "wrong size after shrink")
	assert.Equal(t, balanceBefore+5*cell.DepositPerByte, funder.Balance, "refund not returned")

	deposit, _ := cell.RequiredDeposit(5)
	assert.Equal(t, deposit, c.Deposit, "deposit not rebalanced")
}

func TestResizeInsufficientBalance(t *testing.T) {
	funder := newFunder(1_000_000)
	c, err := cell.New(identity.Zero, 10, funder)
	assert.Nil(t, err, "new error")

	funder.Balance = 0
	sizeBefore := len(c.Data)
	depositBefore := c.Deposit

	err = c.Resize(funder, 1000)
	assert.Equal(t, fault.ErrInsufficientDeposit, err, "wrong error")
	assert.Equal(t, sizeBefore, len(c.Data), "size changed on failure")
	assert.Equal(t, depositBefore, c.Deposit, "deposit changed on failure")
}

func TestClose(t *testing.T) {
	funder := newFunder(1_000_000)
	c, err := cell.New(identity.Zero, 200, funder)
	assert.Nil(t, err, "new error")
	balanceBefore := funder.Balance

	err = c.Close(funder)
	assert.Nil(t, err, "close error")
	assert.Equal(t, []byte{0}, c.Data, "cell not reduced to marker")

	minimum, _ := cell.RequiredDeposit(1)
	assert.Equal(t, minimum, c.Deposit, "wrong residual deposit")
	assert.Equal(t, balanceBefore+199*cell.DepositPerByte, funder.Balance, "wrong refund")
}

func TestReadWriteBounds(t *testing.T) {
	funder := newFunder(1_000_000)
	c, err := cell.New(identity.Zero, 8, funder)
	assert.Nil(t, err, "new error")

	err = c.WriteAt(4, []byte{1, 2, 3, 4})
	assert.Nil(t, err, "write error")

	_, err = c.ReadAt(6, 4)
	assert.Equal(t, fault.ErrCellTooSmall, err, "read past end accepted")

	err = c.WriteAt(6, []byte{9, 9, 9})
	assert.Equal(t, fault.ErrCellTooSmall, err, "write past end accepted")

	data, err := c.ReadAt(4, 4)
	assert.Nil(t, err, "read error")
	assert.Equal(t, []byte{1, 2, 3, 4}, data, "wrong data")
}
