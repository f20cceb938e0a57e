package api

import (
	"context"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/gravitational/trace"
)

// ExportsClient groups translation-export endpoints.
type ExportsClient struct {
	client *Client
}

// Exports returns the export endpoint client.
func (c *Client) Exports() *ExportsClient {
	return &ExportsClient{client: c}
}

// ExportOptions narrows what gets exported. List values serialize as one
// query parameter per element, preserving order; empty fields are omitted
// entirely.
type ExportOptions struct {
	// Languages are language tags to include, all when empty
	Languages []string `url:"languages,omitempty"`
	// Format is the file format, e.g. JSON or XLIFF
	Format string `url:"format,omitempty"`
	// States filters by translation state, e.g. REVIEWED
	States []string `url:"filterState,omitempty"`
	// StructureDelimiter nests keys on export, e.g. "."
	StructureDelimiter string `url:"structureDelimiter,omitempty"`
}

// Download returns the exported archive as an opaque blob; the caller
// decides where the bytes go.
func (e *ExportsClient) Download(ctx context.Context, opts ExportOptions) ([]byte, error) {
	exportPath, err := e.client.projectPath("export")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	values, err := query.Values(opts)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	resp, err := e.client.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   exportPath,
		Query:  values,
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}

	blob, err := ReadAll(resp)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return blob, nil
}
