// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/bentley-historical-library/collectionsync/collectionsync"
	"github.com/bentley-historical-library/collectionsync/internal/config"
)

const createDoc = `
Creates a DSpace collection from an ArchivesSpace resource that is not yet
linked to one. The collection gets its name, introductory text, copyright
text and license from the resource; the resource gets a digital object
pointing at the collection handle.

With --space, an AIP storage location for the collection is added to that
Archivematica Storage Service space. With --uniqname, the named Slack member
is told that the collection is ready.
`

const createExamples = `
    collectionsync create -r https://archivesspace.example.edu/resources/1234
    collectionsync create -r 1234 -s 7f3c0f2e-0c5a-4d1b-9f61-1b7f2a8f2e10 -u jsmith
`

type createCommand struct {
	syncCommandBase

	space    string
	uniqname string
}

func newCreateCommand(factory SynchronizerFactory) cmd.Command {
	return &createCommand{syncCommandBase: syncCommandBase{newSynchronizer: factory}}
}

// Info implements cmd.Command.
func (c *createCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:     "create",
		Purpose:  "Create a DSpace collection for an ArchivesSpace resource.",
		Doc:      createDoc,
		Examples: createExamples,
	}
}

// SetFlags implements cmd.Command.
func (c *createCommand) SetFlags(f *gnuflag.FlagSet) {
	c.syncCommandBase.SetFlags(f)
	f.StringVar(&c.space, "s", "", "Archivematica Storage Service space UUID to provision a location in")
	f.StringVar(&c.space, "space", "", "")
	f.StringVar(&c.uniqname, "u", "", "Slack name of the person to notify")
	f.StringVar(&c.uniqname, "uniqname", "", "")
}

// Run implements cmd.Command.
func (c *createCommand) Run(ctx *cmd.Context) error {
	params := SynchronizerParams{
		Space:  c.space,
		Notify: c.uniqname != "",
	}
	return c.run(ctx, params, c.checkConfig, func(stdCtx context.Context, s Synchronizer) (collectionsync.Result, error) {
		return s.Create(stdCtx, collectionsync.CreateArgs{
			Resource:  c.resource,
			Recipient: c.uniqname,
		})
	})
}

func (c *createCommand) checkConfig(cfg config.Config) error {
	if c.space != "" {
		if err := cfg.ValidateStorageService(); err != nil {
			return errors.Annotate(err, "provisioning a storage location")
		}
	}
	if c.uniqname != "" {
		if err := cfg.ValidateSlack(); err != nil {
			return errors.Annotate(err, "notifying on Slack")
		}
	}
	return nil
}
