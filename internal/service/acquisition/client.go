package acquisition

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"SomnoScan/internal/domain/models"
	drepo "SomnoScan/internal/domain/repository"
	xhttp "SomnoScan/pkg/http"

	"github.com/gorilla/websocket"
)

// Client implements a DeviceStream backed by the acquisition gateway's
// WebSocket feed.
type Client struct {
	token          string
	websocketURL   string
	devices        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	httpc     *xhttp.Client
	conn      *websocket.Conn
	connected bool
}

// New creates a new gateway DeviceStream.
func New(token, websocketURL string, devices []string, reconnectDelay, pingInterval time.Duration) drepo.DeviceStream {
	return &Client{
		token:          token,
		websocketURL:   websocketURL,
		devices:        devices,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		httpc:          xhttp.NewClient(xhttp.WithTimeout(5 * time.Second)),
	}
}

// healthURL maps the WebSocket endpoint to the gateway's HTTP health check.
func healthURL(wsURL string) string {
	u, err := url.Parse(wsURL)
	if err != nil {
		return ""
	}
	if u.Scheme == "wss" {
		u.Scheme = "https"
	} else {
		u.Scheme = "http"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/healthz"
	u.RawQuery = ""
	return u.String()
}

// Connect establishes the WebSocket connection. The gateway health endpoint
// is probed first so a dead gateway shows up in the logs as such, not as a
// dial timeout.
func (c *Client) Connect(ctx context.Context) error {
	if hu := healthURL(c.websocketURL); hu != "" {
		opts := &xhttp.RequestOptions{Method: xhttp.MethodGet, URL: hu}
		if err := c.httpc.SendAndParse(ctx, opts, nil); err != nil {
			log.Printf("acquisition: gateway health check failed: %v", err)
		}
	}

	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("gateway connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("acquisition: connected")
	return nil
}

// Subscribe subscribes to configured devices.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("gateway not connected")
	}
	for _, d := range c.devices {
		msg := map[string]string{"type": "subscribe", "device": d}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", d, err)
		}
		log.Printf("acquisition: subscribed %s", d)
	}
	return nil
}

// gateway frame: one message may carry batches for several signals
type gwMessage struct {
	Type string               `json:"type"`
	Data []models.SampleBatch `json:"data"`
}

// Read streams sample batches and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.SampleBatch, <-chan error) {
	batches := make(chan *models.SampleBatch, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(batches)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("gateway conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("gateway read: %w", err)
					return
				}
				var m gwMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-batch frames
					continue
				}
				if m.Type != "samples" {
					continue
				}
				for i := range m.Data {
					batch := m.Data[i]
					if batch.Timestamp > 1e11 { // ms
						batch.Timestamp = batch.Timestamp / 1000
					}
					select {
					case batches <- &batch:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return batches, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
