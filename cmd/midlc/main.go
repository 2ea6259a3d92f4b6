// Copyright 2026 The midlc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/midlc/midlc/internal/driver"
)

func main() {
	app := cli.NewApp()
	app.Name = "midlc"
	app.Usage = "compile a .midl schema into Go serialization and servant dispatch code"
	app.ArgsUsage = "<schema> [output_prefix]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to a .midlc.yaml to use instead of the one next to <schema>",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colorized diagnostic output",
		},
		cli.BoolFlag{
			Name:  "no-progress",
			Usage: "disable the terminal progress bar during emission",
		},
	}

	exitCode := 1
	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("midlc: missing <schema> argument", 1)
		}

		exitCode = driver.Run(driver.Options{
			SchemaPath:   c.Args().Get(0),
			OutputPrefix: c.Args().Get(1),
			ConfigPath:   c.String("config"),
			NoColor:      c.Bool("no-color"),
			NoProgress:   c.Bool("no-progress"),
		})
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
