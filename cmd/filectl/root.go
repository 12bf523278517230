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

	"github.com/rs/zerolog"
	"github.com/sentgine/file/cmd/filectl/opts"
	"github.com/sentgine/file/pkg/fileops"
	"github.com/sentgine/file/pkg/log"
	"github.com/spf13/cobra"
)

var (
	// Flags
	debug           bool
	sourcePath      string
	destinationPath string
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&sourcePath, "source", "", "default source path when a command's path argument is omitted")
	cmd.PersistentFlags().StringVar(&destinationPath, "destination", "", "default destination path when a command's path argument is omitted")
}

// setupLogging configures zerolog based on flags and returns a context
// carrying the logger
func setupLogging(ctx context.Context) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return logger.WithContext(ctx)
}

// newRootOpts creates the shared options holder handed to every command
func newRootOpts() *opts.RootOpts {
	return &opts.RootOpts{}
}

// configureRootOpts fills in dependencies once flags are parsed
func configureRootOpts(o *opts.RootOpts) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	o.Ops = fileops.New().WithSourcePath(sourcePath).WithDestinationPath(destinationPath)
	o.Console = log.New(os.Stdout, level)
}
