// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/coremark-inc/coremarkd/cell"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/store"
)

// new identities start with a working deposit balance so they can
// fund cells straight away
const initialBalance = 1_000_000_000

func runKeygen(c *cli.Context) error {
	id, privateKey, err := identity.Generate()
	if nil != err {
		return err
	}

	store.Pool.Funders.PutFunder(&cell.Funder{
		Address: id,
		Balance: initialBalance,
	})

	printJson(c.App.Writer, map[string]string{
		"identity":   id.String(),
		"privateKey": fmt.Sprintf("%x", []byte(privateKey)),
	})
	return nil
}
