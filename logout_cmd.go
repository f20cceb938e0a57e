package main

import (
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"

	"github.com/phraselab/phraselab-cli/lib/auth"
)

// LogoutCmdConfig is the logout command description.
type LogoutCmdConfig struct {
	APIConfig

	// All drops every credential for the instance, not just the
	// selected project's key
	All bool `help:"Forget all keys for the instance, including the personal token"`
}

// Run removes stored credentials. With --project and without --all only the
// project's key is forgotten.
func (c *LogoutCmdConfig) Run() error {
	resolver, err := c.CredentialResolver()
	if err != nil {
		return trace.Wrap(err)
	}

	if c.ProjectID != auth.NoProject && !c.All {
		if err := resolver.RemoveProjectCredential(c.APIURL, c.ProjectID); err != nil {
			return trace.Wrap(err)
		}
		log.WithField("project", c.ProjectID).Info("Forgot project API key")
		return nil
	}

	if err := resolver.RemoveCredentials(c.APIURL); err != nil {
		return trace.Wrap(err)
	}
	log.WithField("instance", c.APIURL).Info("Logged out")

	return nil
}
