// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/coremark-inc/coremarkd/ops"
	"github.com/coremark-inc/coremarkd/store"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "coremarkd"
	app.Usage = "manage plugin-extensible digital objects"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "data, d",
			Value: "data",
			Usage: " data directory `DIR`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "keygen",
			Usage:  "generate an identity key pair",
			Action: runKeygen,
		},
		{
			Name:      "create",
			Usage:     "create a new asset",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*asset name `STRING`",
				},
				cli.StringFlag{
					Name:  "uri, u",
					Value: "",
					Usage: "*asset uri `STRING`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner `IDENTITY` [default caller]",
				},
				cli.StringFlag{
					Name:  "authority, a",
					Value: "",
					Usage: " update authority `IDENTITY`",
				},
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: " parent collection `ADDRESS`",
				},
			}, callerFlags()...),
			Action: runCreate,
		},
		{
			Name:      "create-collection",
			Usage:     "create a new collection",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*collection name `STRING`",
				},
				cli.StringFlag{
					Name:  "uri, u",
					Value: "",
					Usage: "*collection uri `STRING`",
				},
			}, callerFlags()...),
			Action: runCreateCollection,
		},
		{
			Name:      "inspect",
			Usage:     "show an object, its plugins and grants",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*cell `ADDRESS`",
				},
			},
			Action: runInspect,
		},
		{
			Name:      "add-plugin",
			Usage:     "attach a plugin to an asset or collection",
			ArgsUsage: "\n   (* = required)",
			Flags:     append(pluginFlags(), callerFlags()...),
			Action:    runAddPlugin,
		},
		{
			Name:      "remove-plugin",
			Usage:     "detach a plugin from an asset or collection",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*cell `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "type, t",
					Value: "",
					Usage: "*plugin `TYPE`",
				},
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: " parent collection `ADDRESS`",
				},
			}, callerFlags()...),
			Action: runRemovePlugin,
		},
		{
			Name:      "transfer",
			Usage:     "transfer an asset to a new owner",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*asset cell `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*new owner `IDENTITY`",
				},
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: " parent collection `ADDRESS`",
				},
			}, callerFlags()...),
			Action: runTransfer,
		},
		{
			Name:      "update",
			Usage:     "edit an asset's record fields",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*asset cell `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: " new name `STRING`",
				},
				cli.StringFlag{
					Name:  "uri, u",
					Value: "",
					Usage: " new uri `STRING`",
				},
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: " parent collection `ADDRESS`",
				},
			}, callerFlags()...),
			Action: runUpdate,
		},
		{
			Name:      "burn",
			Usage:     "destroy an asset or an empty collection",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*cell `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: " parent collection `ADDRESS`",
				},
			}, callerFlags()...),
			Action: runBurn,
		},
		{
			Name:      "compress",
			Usage:     "compress an asset to its commitment digest",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*asset cell `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: " parent collection `ADDRESS`",
				},
			}, callerFlags()...),
			Action: runCompress,
		},
		{
			Name:      "decompress",
			Usage:     "rebuild a compressed asset from its stored proof",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*asset cell `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: " parent collection `ADDRESS`",
				},
			}, callerFlags()...),
			Action: runDecompress,
		},
		{
			Name:      "verify",
			Usage:     "check a stored proof against a compressed asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*asset cell `ADDRESS`",
				},
			},
			Action: runVerify,
		},
	}

	app.Before = func(c *cli.Context) error {
		dataDirectory := c.GlobalString("data")
		err := os.MkdirAll(dataDirectory, 0700)
		if nil != err {
			return err
		}

		logging := logger.Configuration{
			Directory: dataDirectory,
			File:      "coremarkd.log",
			Size:      1048576,
			Count:     10,
			Console:   c.GlobalBool("verbose"),
			Levels: map[string]string{
				logger.DefaultTag: "info",
			},
		}
		err = logger.Initialise(logging)
		if nil != err {
			return err
		}

		err = store.Initialise(path.Join(dataDirectory, "coremark"))
		if nil != err {
			return err
		}
		return ops.Initialise()
	}

	app.After = func(c *cli.Context) error {
		if store.IsInitialised() {
			_ = ops.Finalise()
			store.Finalise()
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		exitwithstatus.Exit(1)
	}
}

// flags shared by every mutating command
func callerFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: "*acting `IDENTITY`",
		},
		cli.StringFlag{
			Name:  "funder, f",
			Value: "",
			Usage: " funding `IDENTITY` [default acting identity]",
		},
	}
}

// flags for add-plugin
func pluginFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "address, a",
			Value: "",
			Usage: "*cell `ADDRESS`",
		},
		cli.StringFlag{
			Name:  "type, t",
			Value: "",
			Usage: "*plugin `TYPE` [royalties|freeze|burn|transfer|update-delegate|attributes]",
		},
		cli.BoolFlag{
			Name:  "frozen, z",
			Usage: " initial frozen state (freeze)",
		},
		cli.StringFlag{
			Name:  "attrs, m",
			Value: "",
			Usage: " attribute list `K=V,K=V` (attributes)",
		},
		cli.StringFlag{
			Name:  "grant, g",
			Value: "",
			Usage: " authority grant `IDENTITY` [default type default]",
		},
		cli.StringFlag{
			Name:  "collection, c",
			Value: "",
			Usage: " parent collection `ADDRESS`",
		},
	}
}
