// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package slack tells a processing archivist on Slack that their
// collection is ready for deposit.
package slack

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/slack-go/slack"

	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
	corehttp "github.com/bentley-historical-library/collectionsync/core/http"
)

var logger = loggo.GetLogger("collectionsync.notify.slack")

const (
	botUsername  = "ArchivesSpace-Archivematica-DSpace bot"
	botIconEmoji = ":robot_face:"
)

// API is the subset of the Slack web API the notifier uses.
type API interface {
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Config holds the notification settings.
type Config struct {
	// Channel is the ID of the channel messages are posted to.
	Channel string

	// HandleBaseURL prefixes the collection handle to link the collection.
	HandleBaseURL string

	// RepositoryName names the repository in the message.
	RepositoryName string
}

// Notifier posts collection announcements to a Slack channel.
type Notifier struct {
	api    API
	config Config
}

// NewNotifier returns a notifier using api.
func NewNotifier(api API, config Config) *Notifier {
	return &Notifier{api: api, config: config}
}

// NewAPI returns a Slack web API client for token that sends its requests
// through transport. An empty apiURL uses the public Slack endpoint.
func NewAPI(token, apiURL string, transport corehttp.HTTPClient) *slack.Client {
	var options []slack.Option
	if apiURL != "" {
		options = append(options, slack.OptionAPIURL(apiURL))
	}
	if transport != nil {
		options = append(options, slack.OptionHTTPClient(transport))
	}
	return slack.New(token, options...)
}

// Notify mentions the Slack member named recipient in a message announcing
// the collection with the given handle.
func (n *Notifier) Notify(ctx context.Context, recipient, title, handle string) error {
	logger.Infof("notifying %s about collection %s", recipient, handle)
	memberID, err := n.memberID(ctx, recipient)
	if err != nil {
		return errors.Trace(err)
	}
	text := fmt.Sprintf(
		"Hey <@%s>, the *%s* Collection has been added to %s: %s%s\nDeposit away! :partyparrot:",
		memberID, title, n.config.RepositoryName, n.config.HandleBaseURL, handle,
	)
	_, _, err = n.api.PostMessageContext(ctx, n.config.Channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionUsername(botUsername),
		slack.MsgOptionIconEmoji(botIconEmoji),
	)
	if err != nil {
		return errors.WithType(errors.Annotate(err, "posting Slack message"), coreerrors.RemoteCallError)
	}
	return nil
}

func (n *Notifier) memberID(ctx context.Context, name string) (string, error) {
	users, err := n.api.GetUsersContext(ctx)
	if err != nil {
		return "", errors.WithType(errors.Annotate(err, "listing Slack users"), coreerrors.RemoteCallError)
	}
	for _, user := range users {
		if user.Name == name {
			return user.ID, nil
		}
	}
	return "", errors.NotFoundf("Slack user %q", name)
}
