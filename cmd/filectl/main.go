// Copyright 2025 sentgine
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
	"os"

	"github.com/pterm/pterm"
	"github.com/sentgine/file/cmd/filectl/commands"
	"github.com/spf13/cobra"
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "filectl",
		Short: "A convenience wrapper over native file and directory operations",
		Long: `filectl creates, reads, overwrites, deletes and copies files, creates
directories, recursively removes directories, and substitutes placeholders
when copying text files. Batches of operations run from declarative plan
files (YAML, JSON or HCL).`,
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Flags are only known after parsing, so logging and dependencies are
	// wired in the pre-run hook
	opts := newRootOpts()
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cmd.SetContext(setupLogging(cmd.Context()))
		configureRootOpts(opts)
	}

	// Add commands
	rootCmd.AddCommand(
		commands.NewMkdirCmd(opts),
		commands.NewCreateCmd(opts),
		commands.NewCatCmd(opts),
		commands.NewUpdateCmd(opts),
		commands.NewRmCmd(opts),
		commands.NewCpCmd(opts),
		commands.NewRenderCmd(opts),
		commands.NewRmdirCmd(opts),
		commands.NewApplyCmd(opts),
		commands.NewCleanCmd(opts),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
