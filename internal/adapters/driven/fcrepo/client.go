package fcrepo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// MetadataSuffix addresses the description of a binary resource.
	MetadataSuffix = "/fcr:metadata"

	// VersionsSuffix addresses the version history of a resource.
	VersionsSuffix = "/fcr:versions"

	contentTypeSPARQLUpdate = "application/sparql-update"

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 4096
)

// Config configures a Client.
type Config struct {
	// BaseURL is the repository REST endpoint, e.g. http://localhost:8080/rest.
	BaseURL string

	// Username and Password enable HTTP basic authentication.
	Username string
	Password string

	// Token enables bearer authentication. It takes precedence over basic auth.
	Token string

	// RateLimit caps requests per second. Zero or less disables throttling.
	RateLimit float64

	// Timeout is the per-request timeout. Zero uses DefaultTimeout.
	Timeout time.Duration
}

// Ensure Client implements the interface.
var _ driven.TargetRepository = (*Client)(nil)

// Client talks to a Fedora 4 repository over HTTP.
type Client struct {
	http     *http.Client
	base     *url.URL
	username string
	password string
	limiter  *rate.Limiter
}

// NewClient creates a client for the repository at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNoBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidInput, base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := &http.Client{}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = timeout

	c := &Client{
		http: httpClient,
		base: base,
	}
	if cfg.Token == "" {
		c.username = cfg.Username
		c.password = cfg.Password
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c, nil
}

// CreateObject creates a container resource at path.
func (c *Client) CreateObject(ctx context.Context, path string) (driven.ObjectResource, error) {
	if err := c.do(ctx, http.MethodPut, path, nil, nil); err != nil {
		return nil, err
	}
	logger.Debug("Created object %s", path)
	return &objectResource{resource{client: c, path: path, patchPath: path}}, nil
}

// CreateDatastream creates a binary resource at path holding content.
func (c *Client) CreateDatastream(ctx context.Context, path string, content domain.Content) (driven.DatastreamResource, error) {
	if err := c.putContent(ctx, path, content); err != nil {
		return nil, err
	}
	logger.Debug("Created datastream %s", path)
	return &datastreamResource{resource{client: c, path: path, patchPath: path + MetadataSuffix}}, nil
}

// CreateOrUpdateRedirectDatastream creates or replaces a resource at path
// that redirects to target when fetched.
func (c *Client) CreateOrUpdateRedirectDatastream(ctx context.Context, path, target string) error {
	headers := http.Header{}
	headers.Set("Content-Type", fmt.Sprintf("message/external-body; access-type=URL; URL=%q", target))
	if err := c.do(ctx, http.MethodPut, path, headers, nil); err != nil {
		return err
	}
	logger.Debug("Redirected %s to %s", path, target)
	return nil
}

// putContent replaces the binary at path.
func (c *Client) putContent(ctx context.Context, path string, content domain.Content) error {
	headers := http.Header{}
	if content.MIMEType != "" {
		headers.Set("Content-Type", content.MIMEType)
	}
	return c.do(ctx, http.MethodPut, path, headers, content.Body)
}

// resolve returns the absolute URL of a repository path.
func (c *Client) resolve(path string) string {
	return c.base.String() + "/" + strings.TrimLeft(path, "/")
}

// do sends a request. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, headers http.Header, body io.Reader) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	target := c.resolve(path)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header[k] = v
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        target,
			Message:    strings.TrimSpace(string(msg)),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// resource is the state shared by objects and datastreams.
type resource struct {
	client    *Client
	path      string
	patchPath string
}

// Path returns the resource path.
func (r *resource) Path() string { return r.path }

// UpdateProperties applies delta as one SPARQL update.
func (r *resource) UpdateProperties(ctx context.Context, delta *domain.Delta) error {
	update := BuildUpdate(delta)
	logger.Debug("PATCH %s\n%s", r.patchPath, update)

	headers := http.Header{}
	headers.Set("Content-Type", contentTypeSPARQLUpdate)
	return r.client.do(ctx, http.MethodPatch, r.patchPath, headers, bytes.NewBufferString(update))
}

// objectResource is a container created for a legacy object.
type objectResource struct {
	resource
}

var _ driven.ObjectResource = (*objectResource)(nil)

// CreateVersionSnapshot records the container's current state under label.
func (o *objectResource) CreateVersionSnapshot(ctx context.Context, label string) error {
	headers := http.Header{}
	headers.Set("Slug", label)
	if err := o.client.do(ctx, http.MethodPost, o.path+VersionsSuffix, headers, nil); err != nil {
		return err
	}
	logger.Debug("Created version %s of %s", label, o.path)
	return nil
}

// datastreamResource is a binary created for a legacy datastream.
type datastreamResource struct {
	resource
}

var _ driven.DatastreamResource = (*datastreamResource)(nil)

// UpdateContent replaces the binary content.
func (d *datastreamResource) UpdateContent(ctx context.Context, content domain.Content) error {
	return d.client.putContent(ctx, d.path, content)
}
