// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"gopkg.in/httprequest.v1"

	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
	corehttp "github.com/bentley-historical-library/collectionsync/core/http"
)

var logger = loggo.GetLogger("collectionsync.restclient")

// MIME represents a MIME type for identifying requests and response bodies.
type MIME = string

const (
	// JSON represents the MIME type for JSON request and response types.
	JSON MIME = "application/json"
)

// Transport defines a type for making the actual request.
type Transport = corehttp.HTTPClient

// RequestRecorder is notified of the outcome of every request.
type RequestRecorder interface {
	// Record an outgoing request which produced an http.Response.
	Record(method string, url *url.URL, res *http.Response, rtt time.Duration)

	// RecordError records an outgoing request which returned back an error.
	RecordError(method string, url *url.URL, err error)
}

// RecordingTransport times each request with the clock and reports it to
// the recorder.
type RecordingTransport struct {
	transport Transport
	recorder  RequestRecorder
	clock     clock.Clock
}

// NewRecordingTransport wraps transport so that every request is recorded.
func NewRecordingTransport(transport Transport, recorder RequestRecorder, clock clock.Clock) *RecordingTransport {
	return &RecordingTransport{
		transport: transport,
		recorder:  recorder,
		clock:     clock,
	}
}

// Do is part of the Transport interface.
func (t *RecordingTransport) Do(req *http.Request) (*http.Response, error) {
	start := t.clock.Now()
	resp, err := t.transport.Do(req)
	if err != nil {
		t.recorder.RecordError(req.Method, req.URL, err)
		return nil, err
	}
	t.recorder.Record(req.Method, req.URL, resp, t.clock.Now().Sub(start))
	return resp, nil
}

// APIRequester creates a wrapper around the transport to allow for better
// error handling.
type APIRequester struct {
	transport Transport
}

// NewAPIRequester creates a new http.Client for making requests to a server.
func NewAPIRequester(transport Transport) *APIRequester {
	return &APIRequester{
		transport: transport,
	}
}

// Do performs the *http.Request and returns a *http.Response or an error.
// Any failure, including a response outside the 2xx range, is a
// RemoteCallError.
func (t *APIRequester) Do(req *http.Request) (*http.Response, error) {
	if logger.IsTraceEnabled() {
		if data, err := httputil.DumpRequest(req, true); err == nil {
			logger.Tracef("%s request %s", req.Method, data)
		} else {
			logger.Tracef("%s request DumpRequest error %s", req.Method, err.Error())
		}
	}

	resp, err := t.transport.Do(req)
	if err != nil {
		// The url.Error message repeats the full URL, query included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, errors.WithType(
			errors.Annotatef(err, "%s %s", req.Method, redact(req.URL)),
			coreerrors.RemoteCallError,
		)
	}

	if logger.IsTraceEnabled() {
		if data, err := httputil.DumpResponse(resp, true); err == nil {
			logger.Tracef("%s response %s", req.Method, data)
		} else {
			logger.Tracef("%s response DumpResponse error %s", req.Method, err.Error())
		}
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return resp, nil
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	logger.Debugf("%s %s returned %d: %s", req.Method, redact(req.URL), resp.StatusCode, body)

	err = errors.Errorf("%s %s: unexpected status %q", req.Method, redact(req.URL), resp.Status)
	return nil, errors.WithType(err, coreerrors.RemoteCallError)
}

// RESTResponse abstracts away the underlying response from the implementation.
type RESTResponse struct {
	StatusCode int
}

// HTTPRESTClient represents a JSON REST client rooted at a base URL that
// expects to interact with a HTTP transport.
type HTTPRESTClient struct {
	baseURL   string
	transport Transport
	headers   http.Header
}

// NewHTTPRESTClient creates a new HTTPRESTClient. The headers are sent with
// every request; they typically carry the session token.
func NewHTTPRESTClient(baseURL string, transport Transport, headers http.Header) *HTTPRESTClient {
	return &HTTPRESTClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		transport: transport,
		headers:   headers,
	}
}

// WithHeaders returns a copy of the client that also sends the given
// headers.
func (c *HTTPRESTClient) WithHeaders(headers http.Header) *HTTPRESTClient {
	composed := c.composeHeaders(headers)
	return &HTTPRESTClient{
		baseURL:   c.baseURL,
		transport: c.transport,
		headers:   composed,
	}
}

// BaseURL returns the URL all request paths are relative to.
func (c *HTTPRESTClient) BaseURL() string {
	return c.baseURL
}

// Get makes a GET request to the given path (including a leading /),
// parsing the result as JSON into the given result value, which should
// be a pointer to the expected data, but may be nil if no result is
// desired.
func (c *HTTPRESTClient) Get(ctx context.Context, path string, result interface{}) (RESTResponse, error) {
	return c.do(ctx, "GET", path, nil, nil, result)
}

// Post makes a POST request to the given path, encoding body as JSON and
// parsing the result as JSON into result.
func (c *HTTPRESTClient) Post(ctx context.Context, path string, headers http.Header, body, result interface{}) (RESTResponse, error) {
	return c.do(ctx, "POST", path, headers, body, result)
}

// Put makes a PUT request to the given path, encoding body as JSON. Servers
// commonly answer a PUT with an empty body, so result may be nil.
func (c *HTTPRESTClient) Put(ctx context.Context, path string, headers http.Header, body, result interface{}) (RESTResponse, error) {
	return c.do(ctx, "PUT", path, headers, body, result)
}

// PostForm makes a POST request with a form encoded body and parses the
// JSON response into result.
func (c *HTTPRESTClient) PostForm(ctx context.Context, path string, form url.Values, result interface{}) (RESTResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return RESTResponse{}, errors.Annotate(err, "can not make new request")
	}
	headers := make(http.Header)
	headers.Set("Accept", JSON)
	headers.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header = c.composeHeaders(headers)

	return c.send(req, result)
}

// PostRaw makes a POST request encoding body as JSON and returns the raw
// response body, for endpoints that do not answer with JSON.
func (c *HTTPRESTClient) PostRaw(ctx context.Context, path string, body interface{}) ([]byte, error) {
	req, err := c.newRequest(ctx, "POST", path, nil, body)
	if err != nil {
		return nil, errors.Trace(err)
	}
	resp, err := c.transport.Do(req)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithType(errors.Annotate(err, "reading response"), coreerrors.RemoteCallError)
	}
	return data, nil
}

func (c *HTTPRESTClient) do(ctx context.Context, method, path string, headers http.Header, body, result interface{}) (RESTResponse, error) {
	req, err := c.newRequest(ctx, method, path, headers, body)
	if err != nil {
		return RESTResponse{}, errors.Trace(err)
	}
	return c.send(req, result)
}

func (c *HTTPRESTClient) newRequest(ctx context.Context, method, path string, headers http.Header, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buffer := new(bytes.Buffer)
		if err := json.NewEncoder(buffer).Encode(body); err != nil {
			return nil, errors.Trace(err)
		}
		reader = buffer
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Annotate(err, "can not make new request")
	}

	// Compose the request headers.
	req.Header = make(http.Header)
	req.Header.Set("Accept", JSON)
	if body != nil {
		req.Header.Set("Content-Type", JSON)
	}
	req.Header = c.composeHeaders(req.Header)

	// Add any headers specific to this request (in sorted order).
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

func (c *HTTPRESTClient) send(req *http.Request, result interface{}) (RESTResponse, error) {
	resp, err := c.transport.Do(req)
	if err != nil {
		return RESTResponse{}, errors.Trace(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if result != nil {
		// Parse the response.
		if err := httprequest.UnmarshalJSONResponse(resp, result); err != nil {
			return RESTResponse{}, errors.WithType(
				errors.Annotatef(err, "%s %s", req.Method, redact(req.URL)),
				coreerrors.RemoteCallError,
			)
		}
	}

	return RESTResponse{
		StatusCode: resp.StatusCode,
	}, nil
}

// composeHeaders creates a new set of headers from scratch.
func (c *HTTPRESTClient) composeHeaders(headers http.Header) http.Header {
	result := make(http.Header)
	// Consume the new headers.
	for k, vs := range headers {
		for _, v := range vs {
			result.Add(k, v)
		}
	}
	// Add the client's headers as well.
	for k, vs := range c.headers {
		for _, v := range vs {
			result.Add(k, v)
		}
	}
	return result
}

// redact strips the query string, which for some login endpoints carries
// a password.
func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	stripped := *u
	stripped.RawQuery = ""
	stripped.User = nil
	return stripped.String()
}
