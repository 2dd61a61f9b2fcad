package nextcloud

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// WebDAV verbs not defined by net/http.
const (
	MethodMkcol    = "MKCOL"
	MethodPropfind = "PROPFIND"
)

const (
	// DefaultTimeout bounds every request, connection setup included.
	DefaultTimeout = 10 * time.Second

	maxRedirects = 10
)

// Authenticator decorates an outgoing request with credentials.
type Authenticator interface {
	Authenticate(req *http.Request)
}

// BasicAuth sends the account credentials base64-encoded in the Authorization header.
// The password travels in cleartext apart from that encoding, so TLS is mandatory in practice.
type BasicAuth struct {
	User     string
	Password string
}

// Authenticate implements Authenticator.
func (a BasicAuth) Authenticate(req *http.Request) {
	req.SetBasicAuth(a.User, a.Password)
}

// Request is a single call to the remote server.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is what the server answered. StatusCode is 0 when the status line could not be parsed.
type Response struct {
	Proto      string
	StatusCode int
	Reason     string
	RawStatus  string
	Header     http.Header
	Body       []byte
}

// Status returns "<code> <reason>", the form the server status is compared and reported in.
func (r *Response) Status() string {
	if r.StatusCode == 0 {
		return r.RawStatus
	}
	if r.Reason == "" {
		return strconv.Itoa(r.StatusCode)
	}
	return strconv.Itoa(r.StatusCode) + " " + r.Reason
}

// StatusLine returns the full status line, e.g. "HTTP/1.1 201 Created".
func (r *Response) StatusLine() string {
	return strings.TrimSpace(r.Proto + " " + r.Status())
}

// HasStatus reports whether the server sent any status line at all.
func (r *Response) HasStatus() bool {
	return strings.TrimSpace(r.RawStatus) != ""
}

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Doer performs a Request.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Transport issues requests over HTTP with TLS 1.2 pinned and a bounded redirect chain.
type Transport struct {
	client *http.Client
	auth   Authenticator
}

// NewTransport creates a Transport. A zero timeout selects DefaultTimeout.
func NewTransport(auth Authenticator, timeout time.Duration) *Transport {
	return &Transport{client: newHTTPClient(timeout), auth: auth}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// Do sends req and reads the whole response body.
// Any failure before a response is available is returned as *TransportError.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if t.auth != nil {
		t.auth.Authenticate(httpReq)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: fmt.Errorf("read body: %w", err)}
	}

	code, reason, _ := parseStatus(resp.Status)
	return &Response{
		Proto:      resp.Proto,
		StatusCode: code,
		Reason:     reason,
		RawStatus:  resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// parseStatus splits "201 Created" into its code and reason phrase.
// A leading protocol token ("HTTP/1.1 201 Created") is tolerated.
func parseStatus(status string) (int, string, bool) {
	status = strings.TrimSpace(status)
	if strings.HasPrefix(status, "HTTP/") {
		_, rest, found := strings.Cut(status, " ")
		if !found {
			return 0, "", false
		}
		status = strings.TrimSpace(rest)
	}

	codeText, reason, _ := strings.Cut(status, " ")
	if len(codeText) != 3 {
		return 0, "", false
	}
	code, err := strconv.Atoi(codeText)
	if err != nil || code < 100 {
		return 0, "", false
	}
	return code, strings.TrimSpace(reason), true
}
