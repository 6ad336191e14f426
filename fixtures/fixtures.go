// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test scaffolding
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/coremark-inc/coremarkd/identity"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

var (
	Owner     identity.Identity
	Stranger  identity.Identity
	Updater   identity.Identity
	Delegate  identity.Identity
	Recipient identity.Identity
)

func init() {
	Owner = MakeIdentity(0x01)
	Stranger = MakeIdentity(0x02)
	Updater = MakeIdentity(0x03)
	Delegate = MakeIdentity(0x04)
	Recipient = MakeIdentity(0x05)
}

// MakeIdentity - deterministic identity from a fill byte
func MakeIdentity(fill byte) identity.Identity {
	var buffer [identity.Size]byte
	for i := range buffer {
		buffer[i] = fill
	}
	id, _ := identity.FromBytes(buffer[:])
	return id
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
