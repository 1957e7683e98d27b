package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// API response structures
type DefinitionResponse struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description"`
}

type EventResponse struct {
	ID        int64  `json:"id" yaml:"id"`
	EventType string `json:"event_type" yaml:"event_type"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

type HealthResponse struct {
	Status  string `json:"status" yaml:"status"`
	Time    string `json:"time" yaml:"time"`
	DB      string `json:"db" yaml:"db"`
	Cache   string `json:"cache" yaml:"cache"`
	Version string `json:"version" yaml:"version"`
}

type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// Client talks to the Life Tracker API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Out     io.Writer
	Format  string // table | json | yaml
}

func NewClient(baseURL, format string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Out:     os.Stdout,
		Format:  format,
	}
}

// HTTP client methods
func (c *Client) makeRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	url := c.BaseURL + path
	logVerbose("Making %s request to %s", method, url)

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	logVerbose("Response status: %s", resp.Status)
	return resp, nil
}

func (c *Client) handleResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			if len(errResp.Fields) > 0 {
				return fmt.Errorf("API error (%d): %s %v", resp.StatusCode, errResp.Error, errResp.Fields)
			}
			return fmt.Errorf("API error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	if target != nil {
		if err := json.Unmarshal(body, target); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, target interface{}) error {
	resp, err := c.makeRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return c.handleResponse(resp, target)
}

// Definition methods
func (c *Client) CreateDefinition(ctx context.Context, name, description string) (DefinitionResponse, error) {
	payload := map[string]interface{}{"name": name}
	if description != "" {
		payload["description"] = description
	}
	var def DefinitionResponse
	err := c.do(ctx, http.MethodPost, "/event-definitions/", payload, &def)
	return def, err
}

func (c *Client) ListDefinitions(ctx context.Context) ([]DefinitionResponse, error) {
	var defs []DefinitionResponse
	err := c.do(ctx, http.MethodGet, "/event-definitions/", nil, &defs)
	return defs, err
}

// Event methods
func (c *Client) LogEvent(ctx context.Context, eventType, timestamp string) (EventResponse, error) {
	payload := map[string]interface{}{"event_type_name": eventType}
	if timestamp != "" {
		payload["timestamp"] = timestamp
	}
	var ev EventResponse
	err := c.do(ctx, http.MethodPost, "/events/", payload, &ev)
	return ev, err
}

func (c *Client) ListEvents(ctx context.Context) ([]EventResponse, error) {
	var evs []EventResponse
	err := c.do(ctx, http.MethodGet, "/events/", nil, &evs)
	return evs, err
}

func (c *Client) CheckHealth(ctx context.Context) (HealthResponse, error) {
	var h HealthResponse
	resp, err := c.makeRequest(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return h, err
	}
	// 503 still carries a health body worth printing
	if resp.StatusCode == http.StatusServiceUnavailable {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
			return h, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return h, nil
	}
	err = c.handleResponse(resp, &h)
	return h, err
}

// Output formatting helpers
func (c *Client) printDefinitions(defs []DefinitionResponse) error {
	if c.Format != "table" {
		return c.formatOutput(defs)
	}
	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, d := range defs {
		desc := ""
		if d.Description != nil {
			desc = *d.Description
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", d.ID, d.Name, desc)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "\nTotal: %d definitions\n", len(defs))
	return nil
}

func (c *Client) printEvents(evs []EventResponse) error {
	if c.Format != "table" {
		return c.formatOutput(evs)
	}
	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEVENT TYPE\tTIMESTAMP")
	for _, e := range evs {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", e.ID, e.EventType, e.Timestamp)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "\nTotal: %d events\n", len(evs))
	return nil
}

func (c *Client) formatOutput(data interface{}) error {
	switch c.Format {
	case "json":
		encoder := json.NewEncoder(c.Out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case "yaml":
		encoder := yaml.NewEncoder(c.Out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(data)
	default:
		_, err := fmt.Fprintf(c.Out, "%+v\n", data)
		return err
	}
}
