package twchart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/calvinmclean/babyapi"
	"github.com/calvinmclean/twchart"

	"github.com/calvinmclean/scalecal"
)

// WeightProbe is the only probe used by calibration sessions
var WeightProbe = twchart.Probe{Name: "Weight", Position: 1}

// Client uploads a calibration run to TWChart as a session with one event per factor change
type Client struct {
	client    *babyapi.Client[*session]
	sessionID string
}

type session struct {
	// include NilResource so we don't implement Render/Bind which are not needed
	*babyapi.NilResource
	twchart.Session
}

func (s session) GetID() string {
	return s.Session.GetID()
}

func NewClient(addr string) *Client {
	client := babyapi.NewClient[*session](addr, "/sessions")
	return &Client{client: client}
}

// SessionID returns the ID of the session created by StartCalibration
func (c *Client) SessionID() string {
	return c.sessionID
}

// StartCalibration creates a session starting now with a single "Calibrating" stage
func (c *Client) StartCalibration(ctx context.Context, name string, now time.Time) error {
	resp, err := c.client.Post(ctx, &session{
		Session: twchart.Session{
			Name:      name,
			Date:      now,
			StartTime: now,
			Probes:    []twchart.Probe{WeightProbe},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}

	c.sessionID = resp.Data.GetID()

	return c.addStage(ctx, "Calibrating", now)
}

// RecordFactor adds an event for a calibration factor change
func (c *Client) RecordFactor(ctx context.Context, factor float64, now time.Time) error {
	return c.addEvent(ctx, scalecal.FormatFactor(factor), now)
}

// Note adds a free-form event
func (c *Client) Note(ctx context.Context, note string, now time.Time) error {
	return c.addEvent(ctx, note, now)
}

// Done marks the session as finished
func (c *Client) Done(ctx context.Context) error {
	url, err := c.client.URL(c.sessionID)
	if err != nil {
		return fmt.Errorf("error building URL: %w", err)
	}

	return c.makeRequest(ctx, url+"/done", map[string]any{"time": time.Now()})
}

func (c *Client) addEvent(ctx context.Context, note string, now time.Time) error {
	url, err := c.client.URL(c.sessionID)
	if err != nil {
		return fmt.Errorf("error building URL: %w", err)
	}

	return c.makeRequest(ctx, url+"/add-event", twchart.Event{Note: note, Time: now})
}

func (c *Client) addStage(ctx context.Context, name string, now time.Time) error {
	url, err := c.client.URL(c.sessionID)
	if err != nil {
		return fmt.Errorf("error building URL: %w", err)
	}

	return c.makeRequest(ctx, url+"/add-stage", twchart.Stage{Name: name, Start: now})
}

func (c *Client) makeRequest(ctx context.Context, url string, body any) error {
	if c.sessionID == "" {
		return fmt.Errorf("no session")
	}

	var bodyReader io.Reader = http.NoBody
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding body: %w", err)
		}

		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bodyReader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := c.client.MakeGenericRequest(req, nil)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	if resp.Response.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d, response: %v", resp.Response.StatusCode, resp.Body)
	}

	return nil
}
