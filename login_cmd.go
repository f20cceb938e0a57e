package main

import (
	"context"

	"github.com/gravitational/trace"
	"github.com/manifoldco/promptui"
	log "github.com/sirupsen/logrus"

	"github.com/phraselab/phraselab-cli/lib/api"
	"github.com/phraselab/phraselab-cli/lib/auth"
)

// LoginCmdConfig is the login command description.
type LoginCmdConfig struct {
	APIConfig

	// Key is the API key to store; prompted for when omitted
	Key string `arg:"true" optional:"true" help:"API key; prompted for when omitted"`
}

// Run verifies the key against the instance, derives its scope and expiry
// from the server's answer and stores it for later commands.
func (c *LoginCmdConfig) Run() error {
	ctx := context.Background()

	key := c.Key
	if key == "" {
		prompt := promptui.Prompt{
			Label: "API key",
			Mask:  '*',
		}
		entered, err := prompt.Run()
		if err != nil {
			return trace.Wrap(err)
		}
		key = entered
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:   c.APIURL,
		APIKey:    key,
		ProjectID: auth.NoProject,
		UserAgent: userAgent(),
	})
	if err != nil {
		return trace.Wrap(err)
	}

	info, err := client.Keys().Current(ctx)
	if err != nil {
		return trace.Wrap(err, "verifying API key against %v", c.APIURL)
	}

	cred := credentialFromKeyInfo(key, info)

	resolver, err := c.CredentialResolver()
	if err != nil {
		return trace.Wrap(err)
	}
	if err := resolver.SaveCredential(c.APIURL, cred); err != nil {
		return trace.Wrap(err)
	}

	entry := log.WithField("user", info.Username)
	if info.Project != nil {
		entry = entry.WithField("project", info.Project.Name)
	}
	entry.Info("Logged in")

	return nil
}

// credentialFromKeyInfo derives the credential to store from what the
// server reported about the key: a project-scoped key becomes a PAK, any
// other key a PAT.
func credentialFromKeyInfo(key string, info api.KeyInfo) auth.Credential {
	if info.Project != nil {
		return auth.ProjectAPIKey{
			Key:      key,
			Username: info.Username,
			Project:  auth.ProjectRef{ID: info.Project.ID, Name: info.Project.Name},
			Expires:  info.ExpiresAt,
		}
	}
	return auth.PersonalToken{
		Key:      key,
		Username: info.Username,
		Expires:  info.ExpiresAt,
	}
}
