// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/bentley-historical-library/collectionsync/archivesspace"
	"github.com/bentley-historical-library/collectionsync/collectionsync"
	corehttp "github.com/bentley-historical-library/collectionsync/core/http"
	"github.com/bentley-historical-library/collectionsync/dspace"
	"github.com/bentley-historical-library/collectionsync/internal/config"
	"github.com/bentley-historical-library/collectionsync/internal/metrics"
	"github.com/bentley-historical-library/collectionsync/internal/narrative"
	"github.com/bentley-historical-library/collectionsync/internal/restclient"
	notifyslack "github.com/bentley-historical-library/collectionsync/notify/slack"
	"github.com/bentley-historical-library/collectionsync/storageservice"
)

// Synchronizer is the synchronization API used by the commands.
type Synchronizer interface {
	Create(ctx context.Context, args collectionsync.CreateArgs) (collectionsync.Result, error)
	Update(ctx context.Context, args collectionsync.UpdateArgs) (collectionsync.Result, error)
	Resolve(ctx context.Context, args collectionsync.ResolveArgs) (collectionsync.Result, error)
}

// SynchronizerParams holds what a SynchronizerFactory needs to build a
// Synchronizer for one run.
type SynchronizerParams struct {
	Config  config.Config
	Metrics *metrics.Collector

	// Space is the Storage Service space to provision a location in. No
	// location is provisioned when it is empty.
	Space string

	// Notify asks for a Slack notifier.
	Notify bool
}

// SynchronizerFactory logs into the remote systems and returns a
// Synchronizer using them.
type SynchronizerFactory func(ctx context.Context, params SynchronizerParams) (Synchronizer, error)

// newSynchronizer is the SynchronizerFactory used outside tests.
func newSynchronizer(ctx context.Context, params SynchronizerParams) (Synchronizer, error) {
	cfg := params.Config
	transport := func(system string) restclient.Transport {
		return restclient.NewRecordingTransport(corehttp.DefaultHTTPClient(), params.Metrics.RecorderFor(system), clock.WallClock)
	}

	archive, err := archivesspace.Login(ctx, restclient.NewAPIRequester(transport("archivesspace")), archivesspace.Credentials{
		BaseURL:      cfg.ArchivesSpace.BaseURL,
		User:         cfg.ArchivesSpace.User,
		Password:     cfg.ArchivesSpace.Password,
		RepositoryID: cfg.ArchivesSpace.RepositoryID,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	repository, err := dspace.Login(ctx, restclient.NewAPIRequester(transport("dspace")), dspace.Credentials{
		BaseURL:  cfg.DSpace.BaseURL,
		Email:    cfg.DSpace.Email,
		Password: cfg.DSpace.Password,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	renderer, err := narrative.LoadRenderer(cfg.Narrative.Template)
	if err != nil {
		return nil, errors.Trace(err)
	}

	syncConfig := collectionsync.Config{
		Archive:           archive,
		Repository:        repository,
		Renderer:          renderer,
		CommunityID:       cfg.DSpace.CommunityID,
		HandleBaseURL:     cfg.DSpace.HandleBaseURL,
		RepositoryBaseURL: cfg.DSpace.BaseURL,
	}
	if params.Space != "" {
		provisioner, err := storageservice.NewProvisioner(
			restclient.NewAPIRequester(transport("storageservice")),
			storageservice.Credentials{
				URL:      cfg.StorageService.URL,
				Username: cfg.StorageService.Username,
				APIKey:   cfg.StorageService.APIKey,
			},
			storageservice.Config{
				Space:     params.Space,
				Pipelines: cfg.StorageService.Pipelines,
			},
		)
		if err != nil {
			return nil, errors.Trace(err)
		}
		syncConfig.Provisioner = provisioner
	}
	if params.Notify {
		api := notifyslack.NewAPI(cfg.Slack.Token, cfg.Slack.APIURL, transport("slack"))
		syncConfig.Notifier = notifyslack.NewNotifier(api, notifyslack.Config{
			Channel:        cfg.Slack.Channel,
			HandleBaseURL:  cfg.DSpace.HandleBaseURL,
			RepositoryName: cfg.DSpace.RepositoryName,
		})
	}
	synchronizer, err := collectionsync.New(syncConfig)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return synchronizer, nil
}

// syncCommandBase holds the flags and run logic shared by the commands.
type syncCommandBase struct {
	cmd.CommandBase

	newSynchronizer SynchronizerFactory

	configPath  string
	metricsFile string
	resource    string
	out         cmd.Output
}

// SetFlags implements cmd.Command.
func (c *syncCommandBase) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.configPath, "config", config.DefaultPath, "Path to the configuration file")
	f.StringVar(&c.metricsFile, "metrics-file", "", "Write remote call metrics to this file when done")
	f.StringVar(&c.resource, "r", "", "ArchivesSpace resource URL or id")
	f.StringVar(&c.resource, "resource", "", "")
	c.out.AddFlags(f, "yaml", map[string]cmd.Formatter{
		"yaml": cmd.FormatYaml,
		"json": cmd.FormatJson,
	})
}

// Init implements cmd.Command.
func (c *syncCommandBase) Init(args []string) error {
	if c.resource == "" {
		return errors.New("no resource specified, use --resource")
	}
	return cmd.CheckEmpty(args)
}

// run loads the configuration, builds a Synchronizer and writes the result
// of op. The optional check validates config sections the run depends on.
// Metrics are written even when op fails.
func (c *syncCommandBase) run(
	ctx *cmd.Context,
	params SynchronizerParams,
	check func(config.Config) error,
	op func(context.Context, Synchronizer) (collectionsync.Result, error),
) error {
	cfg, err := config.Load(ctx.AbsPath(c.configPath))
	if err != nil {
		return errors.Trace(err)
	}
	if check != nil {
		if err := check(cfg); err != nil {
			return errors.Trace(err)
		}
	}
	params.Config = cfg
	params.Metrics = metrics.NewMetricsCollector()
	if c.metricsFile != "" {
		path := ctx.AbsPath(c.metricsFile)
		defer func() {
			if err := metrics.WriteTextfile(path, params.Metrics); err != nil {
				logger.Errorf("writing metrics: %v", err)
			}
		}()
	}

	stdCtx := context.Background()
	synchronizer, err := c.newSynchronizer(stdCtx, params)
	if err != nil {
		return errors.Trace(err)
	}
	result, err := op(stdCtx, synchronizer)
	if err != nil {
		return errors.Trace(err)
	}
	return c.out.Write(ctx, result)
}
