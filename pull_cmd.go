package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"

	"github.com/phraselab/phraselab-cli/lib/api"
	"github.com/phraselab/phraselab-cli/lib/auth"
)

// PullCmdConfig is the pull command description.
type PullCmdConfig struct {
	APIConfig

	// Dest is where the exported archive is written
	Dest string `help:"Output file path" short:"o" default:"translations.zip"`

	// Format is the export file format
	Format string `help:"Export format" default:"JSON"`

	// Languages narrows the export to the given language tags
	Languages []string `help:"Language tags to export, all when empty"`

	// States narrows the export by translation state
	States []string `help:"Translation states to include"`

	// StateDir is where pull bookkeeping lives
	StateDir string `help:"Directory for pull state" env:"PHRASELAB_STATE_DIR"`
}

// Run downloads the export archive and records the pull time per instance
// and project.
func (c *PullCmdConfig) Run() error {
	ctx := context.Background()

	client, err := c.NewClient()
	if err != nil {
		return trace.Wrap(err)
	}

	blob, err := client.Exports().Download(ctx, api.ExportOptions{
		Languages: c.Languages,
		Format:    c.Format,
		States:    c.States,
	})
	if err != nil {
		return trace.Wrap(err)
	}

	if err := os.WriteFile(c.Dest, blob, 0644); err != nil {
		return trace.Wrap(err)
	}
	log.WithField("file", c.Dest).
		WithField("bytes", len(blob)).
		Info("Export downloaded")

	// Pull bookkeeping is best effort: a failed state write must not fail
	// a pull that already produced its archive
	if err := c.recordPull(); err != nil {
		log.WithError(err).Warn("Failed to record pull state")
	}

	return nil
}

func (c *PullCmdConfig) recordPull() error {
	dir := c.StateDir
	if dir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return trace.Wrap(err)
		}
		dir = filepath.Join(cacheDir, toolName)
	}

	state, err := NewPullState(dir)
	if err != nil {
		return trace.Wrap(err)
	}

	host, err := auth.NormalizeHost(c.APIURL)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(state.SetLastPull(host, c.ProjectID, time.Now().UTC()))
}
