package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/gravitational/trace"
)

// Project is a translation project as reported by the server.
type Project struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	BaseLanguage string `json:"baseLanguage,omitempty"`
}

// ProjectsClient groups project-management endpoints.
type ProjectsClient struct {
	client *Client
}

// Projects returns the project-management endpoint client.
func (c *Client) Projects() *ProjectsClient {
	return &ProjectsClient{client: c}
}

// ListProjectsOptions filters the project listing. Zero-valued fields are
// not serialized at all.
type ListProjectsOptions struct {
	Search string `url:"search,omitempty"`
	Page   int    `url:"page,omitempty"`
	Size   int    `url:"size,omitempty"`
}

type projectsPage struct {
	Projects   []Project `json:"projects"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// List returns all projects visible to the bound key, walking the server's
// pages.
func (p *ProjectsClient) List(ctx context.Context, opts ListProjectsOptions) ([]Project, error) {
	var all []Project
	for {
		values, err := query.Values(opts)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		resp, err := p.client.Do(ctx, Request{
			Method: http.MethodGet,
			Path:   "projects",
			Query:  values,
		})
		if err != nil {
			return nil, trace.Wrap(err)
		}

		var page projectsPage
		if err := DecodeJSON(resp, &page); err != nil {
			return nil, trace.Wrap(err)
		}
		all = append(all, page.Projects...)

		if len(page.Projects) == 0 || page.Page+1 >= page.TotalPages {
			return all, nil
		}
		opts.Page = page.Page + 1
	}
}

// Get returns a single project.
func (p *ProjectsClient) Get(ctx context.Context, id int64) (Project, error) {
	resp, err := p.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("projects/%d", id),
	})
	if err != nil {
		return Project{}, trace.Wrap(err)
	}

	var project Project
	if err := DecodeJSON(resp, &project); err != nil {
		return Project{}, trace.Wrap(err)
	}
	return project, nil
}

// Delete removes a project. Any non-2xx status propagates, 404 included.
func (p *ProjectsClient) Delete(ctx context.Context, id int64) error {
	resp, err := p.client.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("projects/%d", id),
	})
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(Discard(resp))
}

// DeleteIfExists removes a project, treating 404 as success: the project
// being already absent is the desired end state. Every other error
// propagates untouched.
func (p *ProjectsClient) DeleteIfExists(ctx context.Context, id int64) error {
	err := p.Delete(ctx, id)
	if IsStatus(err, http.StatusNotFound) {
		return nil
	}
	return trace.Wrap(err)
}
