// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coremark-inc/coremarkd/digest"
)

// from: echo -n hello | sha3sum -a 256
const helloDigest = "3338be694f50c5f338814986cdf0686453a888b84f424d792af4b9202398f392"

func TestNew(t *testing.T) {
	d := digest.New([]byte("hello"))
	assert.Equal(t, helloDigest, d.String(), "wrong digest")
}

func TestMarshalText(t *testing.T) {
	d := digest.New([]byte("hello"))

	marshaled, err := d.MarshalText()
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, helloDigest, string(marshaled), "wrong content")

	var restored digest.Digest
	err = restored.UnmarshalText(marshaled)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, d, restored, "digest not restored")
}

func TestUnmarshalTextBadLength(t *testing.T) {
	var d digest.Digest
	err := d.UnmarshalText([]byte("0123456789"))
	assert.NotNil(t, err, "short hex accepted")
}
