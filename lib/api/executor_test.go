package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gravitational/trace"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, router http.Handler, projectID int64) *Client {
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		ProjectID: projectID,
		UserAgent: "phraselab-cli/test",
	})
	require.NoError(t, err)
	return client
}

func TestMandatoryHeaders(t *testing.T) {
	var gotAPIKey, gotUserAgent, gotContentType string

	router := httprouter.New()
	router.GET("/v2/ping", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotAPIKey = r.Header.Get("x-api-key")
		gotUserAgent = r.Header.Get("User-Agent")
		gotContentType = r.Header.Get("Content-Type")
		rw.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, router, 42)

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "ping"})
	require.NoError(t, err)
	require.NoError(t, Discard(resp))

	require.Equal(t, "test-key", gotAPIKey)
	require.Equal(t, "phraselab-cli/test", gotUserAgent)
	// No body means no content-type at all
	require.Empty(t, gotContentType)
}

func TestExtraHeaders(t *testing.T) {
	var gotAccept string

	router := httprouter.New()
	router.GET("/v2/ping", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotAccept = r.Header.Get("Accept")
		rw.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, router, 42)

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "ping",
		Header: map[string]string{"Accept": "application/zip"},
	})
	require.NoError(t, err)
	require.NoError(t, Discard(resp))
	require.Equal(t, "application/zip", gotAccept)
}

func TestQueryParameters(t *testing.T) {
	var gotQuery string

	router := httprouter.New()
	router.GET("/v2/search", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotQuery = r.URL.RawQuery
		rw.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, router, 42)

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "search",
		Query: map[string][]string{
			"languages": {"de", "en", "fr"},
			"format":    {"JSON"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, Discard(resp))

	values, err := parseRawQuery(gotQuery)
	require.NoError(t, err)
	// List values appear once per element, preserving order
	require.Equal(t, []string{"de", "en", "fr"}, values["languages"])
	require.Equal(t, []string{"JSON"}, values["format"])
	require.NotContains(t, values, "filterState")
}

func TestJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]interface{}

	router := httprouter.New()
	router.PUT("/v2/things", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		rw.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, router, 42)

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodPut,
		Path:   "things",
		Body:   JSON(map[string]string{"forceMode": "KEEP"}),
	})
	require.NoError(t, err)
	require.NoError(t, Discard(resp))

	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, map[string]interface{}{"forceMode": "KEEP"}, gotBody)
}

func TestMultipartBody(t *testing.T) {
	var gotContentType, gotField, gotFileName, gotFileContent string

	router := httprouter.New()
	router.POST("/v2/projects/42/import", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotField = r.FormValue("structureDelimiter")

		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		gotFileName = header.Filename
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		gotFileContent = string(content)

		rw.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, router, 42)

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "projects/42/import",
		Body: Multipart(
			map[string]string{"structureDelimiter": "."},
			File{Param: "files", Name: "en.json", Content: strings.NewReader(`{"hello":"world"}`)},
		),
	})
	require.NoError(t, err)
	require.NoError(t, Discard(resp))

	require.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="))
	require.Equal(t, ".", gotField)
	require.Equal(t, "en.json", gotFileName)
	require.Equal(t, `{"hello":"world"}`, gotFileContent)
}

func TestStatusErrorClassification(t *testing.T) {
	router := httprouter.New()
	router.GET("/v2/forbidden", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusForbidden)
		_, _ = rw.Write([]byte(`{"message": "operation not permitted"}`))
	})
	client := newTestClient(t, router, 42)

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "forbidden"})
	require.Error(t, err)

	statusErr, ok := AsStatusError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, statusErr.Status)
	require.Contains(t, string(statusErr.Body), "operation not permitted")
	require.Contains(t, err.Error(), "operation not permitted")

	require.Equal(t, http.StatusForbidden, StatusCode(err))
	require.True(t, IsStatus(err, http.StatusForbidden))
	require.False(t, IsStatus(err, http.StatusNotFound))
}

func TestDecodeFailureIsNotStatusFailure(t *testing.T) {
	router := httprouter.New()
	router.GET("/v2/garbage", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("certainly not json"))
	})
	client := newTestClient(t, router, 42)

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "garbage"})
	require.NoError(t, err)

	var out map[string]interface{}
	err = DecodeJSON(resp, &out)
	require.True(t, trace.IsBadParameter(err))
	_, ok := AsStatusError(err)
	require.False(t, ok)
}

func TestTransportFailure(t *testing.T) {
	client, err := NewClient(ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		APIKey:  "test-key",
	})
	require.NoError(t, err)

	_, err = client.Do(context.Background(), Request{Method: http.MethodGet, Path: "ping"})
	require.Error(t, err)
	_, ok := AsStatusError(err)
	require.False(t, ok)
}

func TestResponseCloseIsIdempotent(t *testing.T) {
	router := httprouter.New()
	router.GET("/v2/blob", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		_, _ = rw.Write([]byte("payload"))
	})
	client := newTestClient(t, router, 42)

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "blob"})
	require.NoError(t, err)
	require.NoError(t, resp.Close())
	require.NoError(t, resp.Close())
}

func TestConsumers(t *testing.T) {
	router := httprouter.New()
	router.GET("/v2/json", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write([]byte(`{"name": "website"}`))
	})
	router.GET("/v2/blob", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		_, _ = rw.Write([]byte{0x50, 0x4b, 0x03, 0x04})
	})
	client := newTestClient(t, router, 42)

	t.Run("DecodeJSON", func(t *testing.T) {
		resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "json"})
		require.NoError(t, err)
		var out struct {
			Name string `json:"name"`
		}
		require.NoError(t, DecodeJSON(resp, &out))
		require.Equal(t, "website", out.Name)
	})

	t.Run("ReadAll", func(t *testing.T) {
		resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "blob"})
		require.NoError(t, err)
		blob, err := ReadAll(resp)
		require.NoError(t, err)
		require.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04}, blob)
	})
}

func parseRawQuery(raw string) (map[string][]string, error) {
	values := map[string][]string{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		key := parts[0]
		value := ""
		if len(parts) == 2 {
			value = parts[1]
		}
		values[key] = append(values[key], value)
	}
	return values, nil
}
