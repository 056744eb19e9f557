package ldap

import (
	"fmt"
	"net"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/kelseyhightower/envconfig"
)

// requestTimeout bounds both the TCP dial and every request on an
// established connection. Operations are never retried; a timeout
// surfaces to the caller immediately.
const requestTimeout = 5 * time.Second

func NewClient(config *Config) *Client {
	return &Client{config: config}
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process LDAP configuration: %w", err)
	}
	return &config, nil
}

// Connect establishes the transport. It does not authenticate; call
// BindAdmin or Bind afterwards. Reconnecting an already-bound client is
// not supported.
func (c *Client) Connect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	conn, err := c.dial()
	if err != nil {
		c.connected = false
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	c.conn = conn
	c.connected = true
	return nil
}

func (c *Client) dial() (*ldap.Conn, error) {
	conn, err := ldap.DialURL(c.config.URL, ldap.DialWithDialer(&net.Dialer{Timeout: requestTimeout}))
	if err != nil {
		return nil, err
	}
	conn.SetTimeout(requestTimeout)
	return conn, nil
}

// BindAdmin authenticates the service's own directory identity on this
// connection.
func (c *Client) BindAdmin() error {
	return c.Bind(c.config.AdminDN, c.config.AdminPassword)
}

// Bind authenticates as the given DN. On success the connection stays
// bound as that identity.
func (c *Client) Bind(dn string, password string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.connected || c.conn == nil {
		return fmt.Errorf("%w: not connected", ErrConnection)
	}

	if err := c.conn.Bind(dn, password); err != nil {
		return wrapBindError(err)
	}

	c.bound = true
	return nil
}

// Disconnect releases the transport. Safe to call more than once.
func (c *Client) Disconnect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
	c.bound = false
	return nil
}

func (c *Client) IsConnected() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.connected
}

func (c *Client) Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.connected || c.conn == nil {
		return nil, fmt.Errorf("%w: not connected", ErrConnection)
	}

	return c.conn.Search(searchRequest)
}

func (c *Client) Add(addRequest *ldap.AddRequest) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.connected || c.conn == nil {
		return fmt.Errorf("%w: not connected", ErrConnection)
	}

	return c.conn.Add(addRequest)
}
