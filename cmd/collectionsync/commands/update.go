// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"

	"github.com/juju/cmd/v3"

	"github.com/bentley-historical-library/collectionsync/collectionsync"
)

const updateDoc = `
Refreshes the DSpace collection linked to an ArchivesSpace resource. The
collection name, introductory text, copyright text and license are rendered
again from the resource, and the title of the linking digital object is
updated. The resource itself is left unchanged.
`

const updateExamples = `
    collectionsync update -r https://archivesspace.example.edu/resources/1234/edit
`

type updateCommand struct {
	syncCommandBase
}

func newUpdateCommand(factory SynchronizerFactory) cmd.Command {
	return &updateCommand{syncCommandBase{newSynchronizer: factory}}
}

// Info implements cmd.Command.
func (c *updateCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:     "update",
		Purpose:  "Update the DSpace collection of an ArchivesSpace resource.",
		Doc:      updateDoc,
		Examples: updateExamples,
	}
}

// Run implements cmd.Command.
func (c *updateCommand) Run(ctx *cmd.Context) error {
	return c.run(ctx, SynchronizerParams{}, nil, func(stdCtx context.Context, s Synchronizer) (collectionsync.Result, error) {
		return s.Update(stdCtx, collectionsync.UpdateArgs{Resource: c.resource})
	})
}
