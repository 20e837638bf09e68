// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/walteh/acipher/cmd/acipher/commands"
	"github.com/walteh/acipher/cmd/acipher/opts"
	"gitlab.com/tozd/go/errors"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 0 on success or help, 1 otherwise.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o := &opts.RootOpts{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
	}

	rootCmd := newRootCmd(o)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		console := o.Console
		if console == nil {
			console = fallbackConsole(stderr)
		}
		console.Error(err.Error())
		if errors.Is(err, commands.ErrUsage) {
			fmt.Fprintln(stderr, "Please use option -h for help.")
		}
		return 1
	}

	return 0
}
