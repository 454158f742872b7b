// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"

	"github.com/juju/cmd/v3"

	"github.com/bentley-historical-library/collectionsync/collectionsync"
)

const resolveDoc = `
Shows the handle of the DSpace collection an ArchivesSpace resource is
linked to. Nothing is changed in either system.
`

type resolveCommand struct {
	syncCommandBase
}

func newResolveCommand(factory SynchronizerFactory) cmd.Command {
	return &resolveCommand{syncCommandBase{newSynchronizer: factory}}
}

// Info implements cmd.Command.
func (c *resolveCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "resolve",
		Purpose: "Show the DSpace collection of an ArchivesSpace resource.",
		Doc:     resolveDoc,
	}
}

// Run implements cmd.Command.
func (c *resolveCommand) Run(ctx *cmd.Context) error {
	return c.run(ctx, SynchronizerParams{}, nil, func(stdCtx context.Context, s Synchronizer) (collectionsync.Result, error) {
		return s.Resolve(stdCtx, collectionsync.ResolveArgs{Resource: c.resource})
	})
}
