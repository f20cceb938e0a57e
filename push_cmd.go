package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"

	"github.com/phraselab/phraselab-cli/lib/api"
)

// PushCmdConfig is the push command description.
type PushCmdConfig struct {
	APIConfig

	// Files are the translation files to upload
	Files []string `arg:"true" type:"existingfile" help:"Translation files to upload"`

	// ForceMode resolves conflicts against existing translations
	ForceMode string `help:"Conflict resolution mode" enum:"KEEP,OVERRIDE,NO_FORCE" default:"NO_FORCE"`

	// StructureDelimiter splits flat keys into a tree
	StructureDelimiter string `help:"Key structure delimiter" default:"."`
}

// Run uploads the files as one staged import, then applies it.
func (c *PushCmdConfig) Run() error {
	ctx := context.Background()

	client, err := c.NewClient()
	if err != nil {
		return trace.Wrap(err)
	}

	uploads := make([]api.UploadFile, 0, len(c.Files))
	handles := make([]*os.File, 0, len(c.Files))
	defer func() {
		for _, handle := range handles {
			handle.Close()
		}
	}()
	for _, name := range c.Files {
		file, err := os.Open(name)
		if err != nil {
			return trace.Wrap(err)
		}
		handles = append(handles, file)
		uploads = append(uploads, api.UploadFile{Name: filepath.Base(name), Content: file})
	}

	result, err := client.Imports().Upload(ctx, uploads, api.UploadOptions{
		StructureDelimiter: c.StructureDelimiter,
	})
	if err != nil {
		return trace.Wrap(err)
	}
	for _, language := range result.Languages {
		log.WithField("language", language.Name).
			WithField("keys", language.TotalCount).
			Info("Uploaded")
	}

	if err := client.Imports().Apply(ctx, api.ApplyOptions{ForceMode: c.ForceMode}); err != nil {
		return trace.Wrap(err)
	}
	log.Info("Import applied")

	return nil
}
