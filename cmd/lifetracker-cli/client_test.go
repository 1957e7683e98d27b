package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://lifetracker.test"

func newTestClient(t *testing.T, format string) (*Client, *bytes.Buffer) {
	t.Helper()
	c := NewClient(testBaseURL+"/", format)
	httpmock.ActivateNonDefault(c.HTTP)
	t.Cleanup(httpmock.DeactivateAndReset)
	out := &bytes.Buffer{}
	c.Out = out
	return c, out
}

func TestCreateDefinition_SendsPayload(t *testing.T) {
	c, _ := newTestClient(t, "table")

	var got map[string]any
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/event-definitions/",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"id": 1, "name": "COFFEE", "description": "morning cup",
			})
		})

	def, err := c.CreateDefinition(context.Background(), "coffee", "morning cup")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "coffee", "description": "morning cup"}, got)
	assert.Equal(t, int64(1), def.ID)
	assert.Equal(t, "COFFEE", def.Name)
	require.NotNil(t, def.Description)
	assert.Equal(t, "morning cup", *def.Description)
}

func TestCreateDefinition_OmitsEmptyDescription(t *testing.T) {
	c, _ := newTestClient(t, "table")

	var got map[string]any
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/event-definitions/",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
			return httpmock.NewStringResponse(http.StatusOK, `{"id":2,"name":"RUN","description":null}`), nil
		})

	def, err := c.CreateDefinition(context.Background(), "run", "")
	require.NoError(t, err)
	_, hasDesc := got["description"]
	assert.False(t, hasDesc)
	assert.Nil(t, def.Description)
}

func TestCreateDefinition_Conflict(t *testing.T) {
	c, _ := newTestClient(t, "table")
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/event-definitions/",
		httpmock.NewStringResponder(http.StatusBadRequest, `{"error":"Definition already exists."}`))

	_, err := c.CreateDefinition(context.Background(), "coffee", "")
	require.Error(t, err)
	assert.Equal(t, "API error (400): Definition already exists.", err.Error())
}

func TestLogEvent_NotFound(t *testing.T) {
	c, _ := newTestClient(t, "table")
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/events/",
		httpmock.NewStringResponder(http.StatusNotFound, `{"error":"There is no TEA event definition."}`))

	_, err := c.LogEvent(context.Background(), "tea", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "There is no TEA event definition.")
}

func TestLogEvent_SendsTimestamp(t *testing.T) {
	c, _ := newTestClient(t, "table")

	var got map[string]any
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/events/",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
			return httpmock.NewStringResponse(http.StatusOK,
				`{"id":7,"event_type":"COFFEE","timestamp":"2024-01-01T08:00:00+00:00"}`), nil
		})

	ev, err := c.LogEvent(context.Background(), "coffee", "2024-01-01T08:00:00")
	require.NoError(t, err)
	assert.Equal(t, "coffee", got["event_type_name"])
	assert.Equal(t, "2024-01-01T08:00:00", got["timestamp"])
	assert.Equal(t, EventResponse{ID: 7, EventType: "COFFEE", Timestamp: "2024-01-01T08:00:00+00:00"}, ev)
}

func TestValidationErrorIncludesFields(t *testing.T) {
	c, _ := newTestClient(t, "table")
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/events/",
		httpmock.NewStringResponder(http.StatusUnprocessableEntity,
			`{"error":"validation failed","fields":{"timestamp":["datetime"]}}`))

	_, err := c.LogEvent(context.Background(), "coffee", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "timestamp")
}

func TestListDefinitions_TableOutput(t *testing.T) {
	c, out := newTestClient(t, "table")
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/event-definitions/",
		httpmock.NewStringResponder(http.StatusOK,
			`[{"id":1,"name":"COFFEE","description":"cup"},{"id":2,"name":"RUN","description":null}]`))

	defs, err := c.ListDefinitions(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 2)
	require.NoError(t, c.printDefinitions(defs))

	s := out.String()
	assert.Contains(t, s, "NAME")
	assert.Contains(t, s, "COFFEE")
	assert.Contains(t, s, "RUN")
	assert.Contains(t, s, "Total: 2 definitions")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestListEvents_JSONOutput(t *testing.T) {
	c, out := newTestClient(t, "json")
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/events/",
		httpmock.NewStringResponder(http.StatusOK,
			`[{"id":1,"event_type":"COFFEE","timestamp":"2024-01-01T08:00:00+00:00"}]`))

	evs, err := c.ListEvents(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.printEvents(evs))

	var decoded []EventResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, evs, decoded)
}

func TestListEvents_YAMLOutput(t *testing.T) {
	c, out := newTestClient(t, "yaml")
	require.NoError(t, c.printEvents([]EventResponse{{ID: 3, EventType: "RUN", Timestamp: "2024-01-01T08:00:00+00:00"}}))

	s := out.String()
	assert.Contains(t, s, "event_type: RUN")
	assert.Contains(t, s, "id: 3")
}

func TestCheckHealth_DegradedStillDecoded(t *testing.T) {
	c, _ := newTestClient(t, "table")
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/healthz",
		httpmock.NewStringResponder(http.StatusServiceUnavailable,
			`{"status":"degraded","db":"down","cache":"disabled","version":"dev"}`))

	h, err := c.CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "degraded", h.Status)
	assert.Equal(t, "down", h.DB)
}

func TestHandleResponse_NonJSONError(t *testing.T) {
	c, _ := newTestClient(t, "table")
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/events/",
		httpmock.NewStringResponder(http.StatusBadGateway, "upstream down"))

	_, err := c.ListEvents(context.Background())
	require.Error(t, err)
	assert.Equal(t, "API error (502): upstream down", err.Error())
}
