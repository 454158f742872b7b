// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config loads the credentials and endpoints of the systems
// collectionsync talks to from an ini file.
package config

import (
	"fmt"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"gopkg.in/ini.v1"
)

const (
	// DefaultPath is the config file read when none is given.
	DefaultPath = "config.ini"

	// DefaultRepositoryID is the ArchivesSpace repository holding the
	// resources.
	DefaultRepositoryID = "2"

	// DefaultHandleBaseURL prefixes collection handles in digital object
	// file versions.
	DefaultHandleBaseURL = "https://dev.deepblue.lib.umich.edu/handle/"

	// DefaultRepositoryName names the repository in notifications.
	DefaultRepositoryName = "Deep Blue"

	// DefaultSlackChannel is the channel processors are notified in.
	DefaultSlackChannel = "C2B25BKTM"
)

// ArchivesSpace holds the ArchivesSpace API endpoint and credentials.
type ArchivesSpace struct {
	BaseURL      string `ini:"base_url"`
	User         string `ini:"user"`
	Password     string `ini:"password"`
	RepositoryID string `ini:"repository_id"`
}

// DSpace holds the DSpace REST endpoint, credentials and the community new
// collections are created in.
type DSpace struct {
	BaseURL        string `ini:"base_url"`
	Email          string `ini:"email"`
	Password       string `ini:"password"`
	CommunityID    string `ini:"community_id"`
	HandleBaseURL  string `ini:"handle_base_url"`
	RepositoryName string `ini:"repository_name"`
}

// StorageService holds the Archivematica Storage Service endpoint and API
// credentials.
type StorageService struct {
	URL       string   `ini:"url"`
	Username  string   `ini:"username"`
	APIKey    string   `ini:"api_key"`
	Pipelines []string `ini:"pipelines" delim:","`
}

// Slack holds the notification settings.
type Slack struct {
	Token   string `ini:"token"`
	Channel string `ini:"channel"`
	APIURL  string `ini:"api_url"`
}

// Narrative holds the location of the introductory text template.
type Narrative struct {
	Template string `ini:"template"`
}

// Config is the full configuration of a run.
type Config struct {
	ArchivesSpace  ArchivesSpace
	DSpace         DSpace
	StorageService StorageService
	Slack          Slack
	Narrative      Narrative
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, errors.Annotatef(err, "loading config %q", path)
	}
	return Parse(file)
}

// Parse maps the sections of file onto a Config, fills in defaults and
// validates the result.
func Parse(file *ini.File) (Config, error) {
	cfg := Config{
		ArchivesSpace: ArchivesSpace{RepositoryID: DefaultRepositoryID},
		DSpace: DSpace{
			HandleBaseURL:  DefaultHandleBaseURL,
			RepositoryName: DefaultRepositoryName,
		},
		Slack: Slack{Channel: DefaultSlackChannel},
	}
	sections := []struct {
		name   string
		target interface{}
	}{
		{"archivesspace", &cfg.ArchivesSpace},
		{"dspace", &cfg.DSpace},
		{"archivematica_storage_service", &cfg.StorageService},
		{"slack", &cfg.Slack},
		{"narrative", &cfg.Narrative},
	}
	for _, s := range sections {
		if !file.HasSection(s.name) {
			continue
		}
		if err := file.Section(s.name).MapTo(s.target); err != nil {
			return Config{}, errors.Annotatef(err, "reading [%s]", s.name)
		}
	}
	if !strings.HasSuffix(cfg.DSpace.HandleBaseURL, "/") {
		cfg.DSpace.HandleBaseURL += "/"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Trace(err)
	}
	return cfg, nil
}

// Validate checks that the settings every run needs are present.
func (c Config) Validate() error {
	if err := requireKeys("archivesspace", map[string]string{
		"base_url": c.ArchivesSpace.BaseURL,
		"user":     c.ArchivesSpace.User,
		"password": c.ArchivesSpace.Password,
	}); err != nil {
		return err
	}
	return requireKeys("dspace", map[string]string{
		"base_url":     c.DSpace.BaseURL,
		"email":        c.DSpace.Email,
		"password":     c.DSpace.Password,
		"community_id": c.DSpace.CommunityID,
	})
}

// ValidateStorageService checks the settings needed to provision storage
// locations.
func (c Config) ValidateStorageService() error {
	return requireKeys("archivematica_storage_service", map[string]string{
		"url":      c.StorageService.URL,
		"username": c.StorageService.Username,
		"api_key":  c.StorageService.APIKey,
	})
}

// ValidateSlack checks the settings needed to notify processors.
func (c Config) ValidateSlack() error {
	return requireKeys("slack", map[string]string{
		"token":   c.Slack.Token,
		"channel": c.Slack.Channel,
	})
}

func requireKeys(section string, keys map[string]string) error {
	missing := set.NewStrings()
	for k, v := range keys {
		if strings.TrimSpace(v) == "" {
			missing.Add(k)
		}
	}
	if missing.IsEmpty() {
		return nil
	}
	return errors.NewNotValid(nil, fmt.Sprintf("[%s] missing %s", section, strings.Join(missing.SortedValues(), ", ")))
}
