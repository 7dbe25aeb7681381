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
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	liberr "github.com/nabbar/ilpclient/errors"
)

type settingsResponse struct {
	Config struct {
		LineProtoVersions []int `json:"line.proto.support.versions"`
	} `json:"config"`
}

// Negotiate implements protocol-version auto-negotiation (§4.5): it issues
// GET /settings and picks the highest locally supported version {1,2,3}
// present in the server's advertised list. Any network failure or missing
// field falls back to v1, matching the documented unreachable-endpoint
// behavior; a server list containing none of {1,2,3} is a hard failure.
func (t *Transport) Negotiate(ctx context.Context) (int, liberr.Error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, e := http.NewRequestWithContext(cctx, http.MethodGet, t.o.baseURL()+"/settings", nil)
	if e != nil {
		return 1, nil
	}
	t.authHeader(req)

	resp, e := t.c.HTTPClient.Do(req)
	if e != nil {
		return 1, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 1, nil
	}

	var s settingsResponse
	if e = json.NewDecoder(resp.Body).Decode(&s); e != nil {
		return 1, nil
	}

	if len(s.Config.LineProtoVersions) == 0 {
		return 1, nil
	}

	supported := map[int]bool{1: true, 2: true, 3: true}
	best := 0
	for _, v := range s.Config.LineProtoVersions {
		if supported[v] && v > best {
			best = v
		}
	}

	if best == 0 {
		sorted := append([]int(nil), s.Config.LineProtoVersions...)
		sort.Ints(sorted)
		return 0, ErrorSettingsUnsupported.Errorf(sorted)
	}

	return best, nil
}
