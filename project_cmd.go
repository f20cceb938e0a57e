package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/gravitational/trace"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"

	"github.com/phraselab/phraselab-cli/lib/api"
)

// ProjectCmdConfig groups the project management subcommands.
type ProjectCmdConfig struct {
	List   ProjectListCmdConfig   `cmd:"true" help:"List projects visible to the current key"`
	Delete ProjectDeleteCmdConfig `cmd:"true" help:"Delete a project"`
}

// ProjectListCmdConfig is the project list command description.
type ProjectListCmdConfig struct {
	APIConfig

	// Search filters projects by name
	Search string `help:"Filter projects by name"`

	// JSON switches the output to raw JSON
	JSON bool `help:"Print raw JSON instead of a table" name:"json"`
}

func (c *ProjectListCmdConfig) Run() error {
	ctx := context.Background()

	client, err := c.NewClient()
	if err != nil {
		return trace.Wrap(err)
	}

	projects, err := client.Projects().List(ctx, api.ListProjectsOptions{Search: c.Search})
	if err != nil {
		return trace.Wrap(err)
	}

	if c.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return trace.Wrap(encoder.Encode(projects))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Base Language"})
	for _, project := range projects {
		table.Append([]string{
			strconv.FormatInt(project.ID, 10),
			project.Name,
			project.BaseLanguage,
		})
	}
	table.Render()

	return nil
}

// ProjectDeleteCmdConfig is the project delete command description.
type ProjectDeleteCmdConfig struct {
	APIConfig

	// ID is the project to delete
	ID int64 `arg:"true" help:"Project id"`

	// IgnoreMissing succeeds when the project is already gone
	IgnoreMissing bool `help:"Succeed when the project is already absent"`
}

func (c *ProjectDeleteCmdConfig) Run() error {
	ctx := context.Background()

	client, err := c.NewClient()
	if err != nil {
		return trace.Wrap(err)
	}

	if c.IgnoreMissing {
		err = client.Projects().DeleteIfExists(ctx, c.ID)
	} else {
		err = client.Projects().Delete(ctx, c.ID)
	}
	if err != nil {
		return trace.Wrap(err)
	}

	log.WithField("project", c.ID).Info("Project deleted")
	return nil
}
