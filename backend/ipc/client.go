package ipc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var (
	ErrPingFail = errors.New("ping failed")
	// ErrAnotherInstance is returned by callers that found a running
	// instance and handed their work to it.
	ErrAnotherInstance = errors.New("another instance is running")
)

type Client struct {
	httpC http.Client
}

// Connect attempts to connect to the IPC socket as client.
func Connect() (*Client, error) {
	return connect(func(context.Context) (net.Conn, error) { return Dial() })
}

func connect(dial func(context.Context) (net.Conn, error)) (*Client, error) {
	client := &Client{httpC: http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				return dial(ctx)
			},
		},
	}}
	if err := client.Ping(); err != nil {
		log.Debugf("ipc ping error: %v", err)
		return nil, err
	}
	return client, nil
}

func (c *Client) Ping() error {
	if c.makeSimpleRequest(http.MethodGet, PingPath) != nil {
		return ErrPingFail
	}
	return nil
}

// Enqueue hands media locators to the running instance.
func (c *Client) Enqueue(locators []string, play bool) error {
	return c.makeRequest(http.MethodPost, EnqueuePath, Enqueue{Locators: locators, Play: play})
}

func (c *Client) Play() error {
	return c.makeSimpleRequest(http.MethodPost, PlayPath)
}

func (c *Client) Pause() error {
	return c.makeSimpleRequest(http.MethodPost, PausePath)
}

func (c *Client) PlayPause() error {
	return c.makeSimpleRequest(http.MethodPost, PlayPausePath)
}

func (c *Client) Stop() error {
	return c.makeSimpleRequest(http.MethodPost, StopPath)
}

func (c *Client) Next() error {
	return c.makeSimpleRequest(http.MethodPost, NextPath)
}

func (c *Client) Previous() error {
	return c.makeSimpleRequest(http.MethodPost, PreviousPath)
}

func (c *Client) SeekBy(secs float64) error {
	return c.makeSimpleRequest(http.MethodPost, SeekBySecondsPath(secs))
}

func (c *Client) SetVolume(vol int) error {
	return c.makeRequest(http.MethodPost, VolumePath, Volume{Volume: vol})
}

func (c *Client) Volume() (int, error) {
	resp, err := c.httpC.Get("http://reel" + VolumePath)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	var v Volume
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return 0, err
	}
	return v.Volume, nil
}

func (c *Client) Show() error {
	return c.makeSimpleRequest(http.MethodPost, ShowPath)
}

func (c *Client) Quit() error {
	return c.makeSimpleRequest(http.MethodPost, QuitPath)
}

func (c *Client) makeSimpleRequest(method string, path string) error {
	return c.makeRequest(method, path, nil)
}

func (c *Client) makeRequest(method string, path string, body any) error {
	var resp *http.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = c.httpC.Get("http://reel" + path)
	case http.MethodPost:
		var r io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			if err != nil {
				return err
			}
			r = bytes.NewReader(b)
		}
		resp, err = c.httpC.Post("http://reel"+path, "application/json", r)
	}

	if err != nil {
		log.Printf("http err: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var r Response
		json.NewDecoder(resp.Body).Decode(&r)
		return errors.New(r.Error)
	}
	return nil
}
