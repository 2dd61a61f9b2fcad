package nextcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Share types understood by the OCS sharing API.
const ShareTypeUser = 0

// Permission is the share permission bitmask of the OCS API.
type Permission int

// Permissions exposed to callers. Create (8) and reshare (16) are only reachable through PermissionAll.
const (
	PermissionRead   Permission = 1
	PermissionEdit   Permission = 2
	PermissionUpdate Permission = 4
	PermissionAll    Permission = 31
)

const sharesPath = "/ocs/v2.php/apps/files_sharing/api/v1/shares?format=json"

// Credentials identify the Nextcloud account every request runs as.
// Host is the API base; URL is the public base used in links shown to users.
type Credentials struct {
	Host     string
	URL      string
	User     string
	Password string
}

// Client performs folder, upload, listing and share operations for one account.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	creds     Credentials
	transport Doer
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout   time.Duration
	transport Doer
	logger    *zap.Logger
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithTransport replaces the HTTP transport, mainly for tests.
func WithTransport(d Doer) Option {
	return func(o *clientOptions) { o.transport = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient creates a Client for creds.
func NewClient(creds Credentials, opts ...Option) *Client {
	o := clientOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.transport == nil {
		o.transport = NewTransport(BasicAuth{User: creds.User, Password: creds.Password}, o.timeout)
	}

	creds.Host = strings.TrimRight(creds.Host, "/")
	creds.URL = strings.TrimRight(creds.URL, "/")
	return &Client{creds: creds, transport: o.transport, logger: o.logger}
}

// ViewURL returns the browser link for a remote file id.
func (c *Client) ViewURL(id int64) string {
	return c.creds.URL + "/f/" + strconv.FormatInt(id, 10)
}

// CreateFolder creates path with MKCOL. An existing folder (405) counts as success.
func (c *Client) CreateFolder(ctx context.Context, path string) Result {
	resp, err := c.transport.Do(ctx, c.davRequest(MethodMkcol, path, "application/json", nil))
	if err != nil {
		return Failed(CodeFolderTransport, err.Error())
	}
	c.trace(MethodMkcol, path, resp)

	switch {
	case resp.StatusCode == http.StatusCreated, resp.StatusCode == http.StatusMethodNotAllowed:
		return Succeeded("")
	case resp.StatusCode != 0:
		return Failed(CodeFolderStatus, resp.Status())
	default:
		return Failed(CodeFolderResponse, dumpResponse(resp))
	}
}

// Upload writes content to path with PUT. Both creation (201) and overwrite (204) succeed.
func (c *Client) Upload(ctx context.Context, path string, content []byte) Result {
	resp, err := c.transport.Do(ctx, c.davRequest(http.MethodPut, path, "application/json", content))
	if err != nil {
		return Failed(CodeUploadTransport, err.Error())
	}
	c.trace(http.MethodPut, path, resp)

	switch {
	case resp.StatusCode == http.StatusCreated, resp.StatusCode == http.StatusNoContent:
		return Succeeded("")
	case resp.StatusCode != 0:
		return Failed(CodeUploadStatus, resp.Status())
	default:
		return Failed(CodeUploadResponse, dumpResponse(resp))
	}
}

// ResolveID looks up the server-assigned file id of path with PROPFIND.
// On success Data holds the id as sent by the server.
func (c *Client) ResolveID(ctx context.Context, path string) Result {
	req := c.davRequest(MethodPropfind, path, "application/xml", []byte(propfindBody))
	req.Header.Set("Depth", "0")

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return Failed(CodeListTransport, err.Error())
	}
	c.trace(MethodPropfind, path, resp)

	props, err := parseMultistatus(resp.Body)
	if err != nil {
		return Failed(CodeListXML, msgXMLErrors)
	}
	if props.FileID == "" {
		return Failed(CodeListNoFileID, msgNoFileID)
	}
	c.logger.Debug("resolved remote file",
		zap.String("path", path),
		zap.String("fileid", props.FileID),
		zap.String("etag", props.ETag),
		zap.String("permissions", props.Permissions))
	return Succeeded(props.FileID)
}

type shareRequest struct {
	Path        string     `json:"path"`
	ShareType   int        `json:"shareType"`
	Permissions Permission `json:"permissions"`
	ShareWith   string     `json:"shareWith"`
}

type shareResponse struct {
	OCS struct {
		Data struct {
			ID json.RawMessage `json:"id"`
		} `json:"data"`
	} `json:"ocs"`
}

// Share grants perm on path to the user principal. On success Data holds the share id.
func (c *Client) Share(ctx context.Context, path, principal string, perm Permission) Result {
	body, err := json.Marshal(shareRequest{
		Path:        path,
		ShareType:   ShareTypeUser,
		Permissions: perm,
		ShareWith:   principal,
	})
	if err != nil {
		return Failed(CodeShareTransport, err.Error())
	}

	resp, err := c.transport.Do(ctx, c.request(http.MethodPost, c.creds.Host+sharesPath, "application/json", body))
	if err != nil {
		return Failed(CodeShareTransport, err.Error())
	}
	c.trace(http.MethodPost, path, resp)

	switch {
	case !resp.HasStatus():
		return Failed(CodeShareNoStatus, dumpResponse(resp))
	case resp.StatusCode == 0:
		return Failed(CodeShareMalformedStatus, dumpResponse(resp))
	case resp.StatusCode != http.StatusOK:
		return Failed(CodeShareStatus, resp.Status())
	}

	var decoded shareResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return Failed(CodeShareBody, msgUnexpectedBody)
	}
	id := rawID(decoded.OCS.Data.ID)
	if id == "" {
		return Failed(CodeShareBody, msgUnexpectedBody)
	}
	return Succeeded(id)
}

func (c *Client) davURL(path string) string {
	return c.creds.Host + "/remote.php/dav/files/" + url.PathEscape(c.creds.User) + "/" + escapePath(path)
}

func (c *Client) davRequest(method, path, contentType string, body []byte) *Request {
	return c.request(method, c.davURL(path), contentType, body)
}

func (c *Client) request(method, target, contentType string, body []byte) *Request {
	header := http.Header{}
	header.Set("Content-Type", contentType)
	header.Set("OCS-APIRequest", "true")
	return &Request{Method: method, URL: target, Header: header, Body: body}
}

func (c *Client) trace(method, path string, resp *Response) {
	c.logger.Debug("nextcloud response",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("status", resp.StatusLine()))
}

// escapePath escapes each segment of a slash-separated path.
func escapePath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// rawID renders a JSON string or number id as text. Missing or null ids yield "".
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// dumpResponse describes a response whose status could not be understood.
func dumpResponse(resp *Response) string {
	b, err := json.MarshalIndent(struct {
		Proto  string      `json:"proto"`
		Status string      `json:"status"`
		Header http.Header `json:"header"`
	}{resp.Proto, resp.RawStatus, resp.Header}, "", "  ")
	if err != nil {
		return resp.RawStatus
	}
	return string(b)
}
