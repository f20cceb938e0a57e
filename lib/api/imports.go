package api

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gravitational/trace"
)

// ImportsClient groups translation-import endpoints. All of them are
// project-scoped.
type ImportsClient struct {
	client *Client
}

// Imports returns the import endpoint client.
func (c *Client) Imports() *ImportsClient {
	return &ImportsClient{client: c}
}

// UploadFile is one translation file submitted for import.
type UploadFile struct {
	// Name is the file name the server uses to detect format and language
	Name string
	// Content is read once while the upload request is sent
	Content io.Reader
}

// UploadOptions are the scalar fields of the upload form.
type UploadOptions struct {
	// StructureDelimiter splits flat keys into a tree, e.g. "."
	StructureDelimiter string
	// OverrideKeyDescriptions replaces existing key descriptions from
	// file comments
	OverrideKeyDescriptions bool
}

// ImportLanguage is one language the server detected in an upload.
type ImportLanguage struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ImportFile   string `json:"importFileName"`
	TotalCount   int    `json:"totalCount"`
	ConflictBusy int    `json:"conflictCount"`
}

// UploadResult is the outcome of an upload, before the import is applied.
type UploadResult struct {
	Languages []ImportLanguage `json:"languages"`
	Errors    []string         `json:"errors,omitempty"`
}

// Upload submits translation files as a multipart form. The import stays
// staged until Apply is called.
func (i *ImportsClient) Upload(ctx context.Context, files []UploadFile, opts UploadOptions) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, trace.BadParameter("no files to upload")
	}
	importPath, err := i.client.projectPath("import")
	if err != nil {
		return nil, trace.Wrap(err)
	}

	fields := map[string]string{}
	if opts.StructureDelimiter != "" {
		fields["structureDelimiter"] = opts.StructureDelimiter
	}
	if opts.OverrideKeyDescriptions {
		fields["overrideKeyDescriptions"] = strconv.FormatBool(true)
	}
	parts := make([]File, 0, len(files))
	for _, file := range files {
		parts = append(parts, File{Param: "files", Name: file.Name, Content: file.Content})
	}

	resp, err := i.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   importPath,
		Body:   Multipart(fields, parts...),
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}

	var result UploadResult
	if err := DecodeJSON(resp, &result); err != nil {
		return nil, trace.Wrap(err)
	}
	return &result, nil
}

// ApplyOptions controls how a staged import is merged.
type ApplyOptions struct {
	// ForceMode is the conflict resolution: KEEP, OVERRIDE or NO_FORCE
	ForceMode string `json:"forceMode,omitempty"`
}

// Apply merges the staged import into the project. The server responds
// with no payload worth keeping, so the body is drained and discarded.
func (i *ImportsClient) Apply(ctx context.Context, opts ApplyOptions) error {
	applyPath, err := i.client.projectPath("import", "apply")
	if err != nil {
		return trace.Wrap(err)
	}

	resp, err := i.client.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   applyPath,
		Body:   JSON(opts),
	})
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(Discard(resp))
}
