package ynab

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"error"`
}

// do issues one request with the stored Authorization header and returns the
// raw response body after the status check. No retries.
func (c *Client) do(method, path string, body any) (json.RawMessage, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errorf("YNAB API error:\n%v", err)
		}
		payload = bytes.NewBuffer(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return nil, errorf("YNAB API error:\n%v", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	APICalls++
	log.Debug().Msgf("%s %s", method, path)

	resp, err := c.client.Do(req)
	if err != nil {
		APIErrors++
		return nil, errorf("YNAB API error:\n%v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		APIErrors++
		return nil, errorf("YNAB API error:\n%v", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		APIErrors++
		var eb errorResponse
		if err := json.Unmarshal(raw, &eb); err != nil {
			return nil, errorf("Request Error: %d (undecodable error body)", resp.StatusCode)
		}
		return nil, errorf("Request Error: %d %s:%s", resp.StatusCode, eb.Error.Name, eb.Error.Detail)
	}

	return raw, nil
}

// getJSON issues a GET and decodes the body into out.
func (c *Client) getJSON(path string, out any) error {
	raw, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errorf("YNAB API error:\n%v", err)
	}
	return nil
}

// Get issues a GET against a path relative to the API base and returns the
// parsed JSON body.
func (c *Client) Get(path string) (any, error) {
	raw, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return parseBody(raw)
}

// Patch issues a PATCH with a JSON-serialized body and returns the parsed
// JSON response.
func (c *Client) Patch(path string, body any) (any, error) {
	raw, err := c.do(http.MethodPatch, path, body)
	if err != nil {
		return nil, err
	}
	return parseBody(raw)
}

// parseBody decodes a 2xx body into a generic value. The YNAB API wraps
// everything in {data:...}, but a top-level array or an empty body is still
// returned as-is rather than treated as an error.
func parseBody(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errorf("YNAB API error:\n%v", err)
	}
	return parsed, nil
}
