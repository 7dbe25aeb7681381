/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"

	liberr "github.com/nabbar/ilpclient/errors"
	"github.com/nabbar/ilpclient/logger"
)

// Transport submits ILP payloads to the server's /write endpoint over
// HTTP(S), retrying on a fixed set of transient statuses, and negotiates
// the line-protocol version via GET /settings.
type Transport struct {
	o *Options
	c *retryablehttp.Client
}

// New builds a Transport bound to the given Options. The underlying
// *http.Client is wired with the requested TLS configuration once, and
// reused across every Write/Negotiate call.
func New(o *Options) (*Transport, liberr.Error) {
	if o == nil || o.Host == "" {
		return nil, ErrorParamEmpty.Error(nil)
	}

	hc := &http.Client{}

	if o.Scheme == "https" {
		tlsCfg, e := o.TLS.New()
		if e != nil {
			return nil, ErrorParamInvalid.Error(e)
		}
		hc.Transport = &http.Transport{TLSClientConfig: tlsCfg}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = hc
	rc.Logger = nil
	rc.RetryMax = math.MaxInt32
	rc.CheckRetry = checkRetry
	rc.Backoff = jitterBackoff

	return &Transport{o: o, c: rc}, nil
}

func (t *Transport) authHeader(req *http.Request) {
	switch {
	case t.o.Username != "" && t.o.Password != "":
		req.SetBasicAuth(t.o.Username, t.o.Password)
	case t.o.Token != "":
		req.Header.Set("Authorization", "Bearer "+t.o.Token)
	}
}

// Write POSTs the given ILP payload to /write?precision=n and retries
// within the configured retry budget. precision is the designated-timestamp
// unit token the server expects ("n" for nanoseconds).
func (t *Transport) Write(ctx context.Context, payload []byte, precision string) liberr.Error {
	if len(payload) == 0 {
		return nil
	}

	timeout := t.requestTimeout(len(payload))

	budget := t.o.RetryTimeout
	if budget <= 0 {
		budget = timeout
	} else {
		budget += timeout
	}

	cctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	url := t.o.baseURL() + "/write?precision=" + precision

	req, e := retryablehttp.NewRequestWithContext(cctx, http.MethodPost, url, bytes.NewReader(payload))
	if e != nil {
		return ErrorRequestBuild.Error(e)
	}
	req.Header.Set("Content-Type", "text/plain")
	t.authHeader(req.Request)

	resp, e := t.c.Do(req)
	if e != nil {
		return ErrorRequestSend.Error(e)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if t.o.Log != nil {
		t.o.Log.Entry(logger.WarnLevel, "write request rejected").
			FieldAdd("status", resp.StatusCode).
			FieldAdd("body", string(body)).
			Log()
	}

	//nolint goerr113
	return ErrorResponseStatus.Error(fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body)))
}

// requestTimeout implements the per-request timeout formula:
// ceil(body_length / request_min_throughput) * 1000 + request_timeout (ms).
func (t *Transport) requestTimeout(bodyLen int) time.Duration {
	throughput := t.o.RequestMinThroughput
	if throughput <= 0 {
		throughput = 1
	}

	secs := (int64(bodyLen) + throughput - 1) / throughput
	return time.Duration(secs)*time.Second + t.o.RequestTimeout
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp == nil {
		return true, nil
	}

	return retryableStatus[resp.StatusCode], nil
}

// jitterBackoff implements the spec's retry cadence: 10ms base with ±5ms
// jitter, doubling on each subsequent attempt, capped at 1000ms. attemptNum
// is zero-based as supplied by retryablehttp.
func jitterBackoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	base := 10 * time.Millisecond
	for i := 0; i < attemptNum; i++ {
		base *= 2
		if base > time.Second {
			base = time.Second
			break
		}
	}

	jitter := time.Duration(rand.Int63n(int64(5 * time.Millisecond)))
	if rand.Intn(2) == 0 {
		return base + jitter
	}
	return base - jitter
}
