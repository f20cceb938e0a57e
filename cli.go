package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/gravitational/trace"

	"github.com/phraselab/phraselab-cli/lib/api"
	"github.com/phraselab/phraselab-cli/lib/auth"
)

const toolName = "phraselab"

// Version is set at build time via -ldflags.
var Version = "development"

// APIConfig is shared by every command that talks to an instance.
type APIConfig struct {
	// APIURL is the Phraselab instance to talk to
	APIURL string `help:"Phraselab instance URL" default:"https://app.phraselab.com" env:"PHRASELAB_API_URL" name:"api-url"`

	// APIKey bypasses the credential store when set
	APIKey string `help:"API key to use, bypassing stored credentials" env:"PHRASELAB_API_KEY" name:"api-key"`

	// ProjectID is the numeric project to operate on, -1 for none
	ProjectID int64 `help:"Numeric project id" default:"-1" env:"PHRASELAB_PROJECT" name:"project"`
}

// CredentialResolver returns the resolver over the default store location.
func (c *APIConfig) CredentialResolver() (*auth.Resolver, error) {
	storePath, err := auth.DefaultStorePath()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return auth.NewResolver(auth.NewFileStore(storePath)), nil
}

// NewClient builds an API client for the configured instance, resolving the
// key from the credential store unless --api-key was given.
func (c *APIConfig) NewClient() (*api.Client, error) {
	key := c.APIKey
	if key == "" {
		resolver, err := c.CredentialResolver()
		if err != nil {
			return nil, trace.Wrap(err)
		}
		key, err = resolver.ResolveKey(c.APIURL, c.ProjectID)
		if trace.IsNotFound(err) {
			return nil, trace.Wrap(err, "no usable API key for %v: run `%v login` first", c.APIURL, toolName)
		}
		if err != nil {
			return nil, trace.Wrap(err)
		}
	}

	return api.NewClient(api.ClientConfig{
		BaseURL:   c.APIURL,
		APIKey:    key,
		ProjectID: c.ProjectID,
		UserAgent: userAgent(),
	})
}

func userAgent() string {
	return fmt.Sprintf("%v/%v", toolName, Version)
}

// VersionCmdConfig is the version print command.
type VersionCmdConfig struct{}

func (c *VersionCmdConfig) Run() error {
	fmt.Printf("%v %v\n", toolName, Version)
	return nil
}

// CLI represents command structure
type CLI struct {
	// Config is the path to configuration file
	Config kong.ConfigFlag `help:"Path to TOML configuration file" optional:"true" type:"existingfile" env:"PHRASELAB_CONFIG" short:"c"`

	// Debug is a debug logging mode flag
	Debug bool `help:"Debug logging" short:"d" env:"PHRASELAB_DEBUG"`

	// Version is the version print command
	Version VersionCmdConfig `cmd:"true" help:"Print the client version"`

	// Login stores an API key for an instance
	Login LoginCmdConfig `cmd:"true" help:"Verify an API key and store it for later use"`

	// Logout forgets stored API keys
	Logout LogoutCmdConfig `cmd:"true" help:"Forget stored API keys for an instance"`

	// Push uploads translation files
	Push PushCmdConfig `cmd:"true" help:"Upload translation files and apply the import"`

	// Pull downloads translations
	Pull PullCmdConfig `cmd:"true" help:"Download translations as an archive"`

	// Project manages projects
	Project ProjectCmdConfig `cmd:"true" help:"Manage projects"`
}
