package fxaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// HTTP is the shared JSON transport for both servers.
type HTTP struct {
	Base string
	HTTP *http.Client
}

func newHTTP(base string, hc *http.Client) HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}
	return HTTP{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// post sends in as JSON and decodes the reply into out. It reports whether
// the reply carried a body other than JSON null.
func (c *HTTP) post(ctx context.Context, path, bearer string, in, out any) (bool, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, bearer, out)
}

func (c *HTTP) getJSON(ctx context.Context, path, bearer string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return false, err
	}
	return c.do(req, path, bearer, out)
}

func (c *HTTP) do(req *http.Request, path, bearer string, out any) (bool, error) {
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return false, decodeAPIError(resp, req.Method, path)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	return true, json.Unmarshal(data, out)
}
