// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package commands holds the collectionsync command line.
package commands

import (
	"os"
	"runtime"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("collectionsync.cmd")

// Version is the collectionsync release.
const Version = "1.0.0"

// LoggingConfigEnvKey names the environment variable holding the default
// logging configuration.
const LoggingConfigEnvKey = "COLLECTIONSYNC_LOGGING_CONFIG"

const superDoc = `
collectionsync creates a DSpace collection for an ArchivesSpace resource and
links the two through an ArchivesSpace digital object, or refreshes an
existing collection from the current description of its resource.

Settings and credentials are read from config.ini; see --config.
`

// NewSuperCommand returns the collectionsync command with all its
// subcommands registered.
func NewSuperCommand() *cmd.SuperCommand {
	return newSuperCommand(newSynchronizer)
}

func newSuperCommand(factory SynchronizerFactory) *cmd.SuperCommand {
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "collectionsync",
		Purpose: "Synchronize ArchivesSpace resources with DSpace collections.",
		Doc:     superDoc,
		Log: &cmd.Log{
			DefaultConfig: os.Getenv(LoggingConfigEnvKey),
		},
		Version:   Version,
		NotifyRun: runNotifier,
	})
	super.Register(newCreateCommand(factory))
	super.Register(newUpdateCommand(factory))
	super.Register(newResolveCommand(factory))
	return super
}

func runNotifier(name string) {
	logger.Infof("running %s [%s %s %s]", name, Version, runtime.Compiler, runtime.Version())
}
