// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/coremark-inc/coremarkd/fault"
)

var (
	errExistsOne   = fault.ExistsError("exists one")
	errInvalidOne  = fault.InvalidError("invalid one")
	errLengthOne   = fault.LengthError("length one")
	errNotFoundOne = fault.NotFoundError("not found one")
	errOverflowOne = fault.OverflowError("overflow one")
	errProcessOne  = fault.ProcessError("process one")
	errRecordOne   = fault.RecordError("record one")
)

// test that the error classes do not overlap
func TestClassification(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		overflow bool
		process  bool
		record   bool
	}{
		{errExistsOne, true, false, false, false, false, false, false},
		{errInvalidOne, false, true, false, false, false, false, false},
		{errLengthOne, false, false, true, false, false, false, false},
		{errNotFoundOne, false, false, false, true, false, false, false},
		{errOverflowOne, false, false, false, false, true, false, false},
		{errProcessOne, false, false, false, false, false, true, false},
		{errRecordOne, false, false, false, false, false, false, true},
		{fault.ErrInvalidAuthority, false, true, false, false, false, false, false},
		{fault.ErrIncorrectAssetHash, false, false, false, false, false, true, false},
		{fault.ErrNumericalOverflow, false, false, false, false, true, false, false},
		{fault.ErrDeserializationFailed, false, false, false, false, false, false, true},
	}

	for i, item := range errorList {
		if fault.IsErrExists(item.err) != item.exists {
			t.Errorf("%d: exists classification failed for: %v", i, item.err)
		}
		if fault.IsErrInvalid(item.err) != item.invalid {
			t.Errorf("%d: invalid classification failed for: %v", i, item.err)
		}
		if fault.IsErrLength(item.err) != item.length {
			t.Errorf("%d: length classification failed for: %v", i, item.err)
		}
		if fault.IsErrNotFound(item.err) != item.notFound {
			t.Errorf("%d: not found classification failed for: %v", i, item.err)
		}
		if fault.IsErrOverflow(item.err) != item.overflow {
			t.Errorf("%d: overflow classification failed for: %v", i, item.err)
		}
		if fault.IsErrProcess(item.err) != item.process {
			t.Errorf("%d: process classification failed for: %v", i, item.err)
		}
		if fault.IsErrRecord(item.err) != item.record {
			t.Errorf("%d: record classification failed for: %v", i, item.err)
		}
	}
}

// errors must compare equal to themselves only
func TestSingleton(t *testing.T) {
	if fault.ErrInvalidAuthority != fault.ErrInvalidAuthority {
		t.Errorf("ErrInvalidAuthority is not comparable")
	}
	if error(fault.ErrInvalidAuthority) == error(fault.ErrInvalidCollection) {
		t.Errorf("distinct errors compare equal")
	}
}
