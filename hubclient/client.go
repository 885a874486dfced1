// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hubclient streams dataset rows from a dataset hub's paginated
// rows API as an ingestion source.
package hubclient

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/poiesic/canonize/core"
)

// DefaultEndpoint is the public rows API of the Hugging Face dataset hub.
const DefaultEndpoint = "https://datasets-server.huggingface.co"

// DefaultPageSize is the rows-per-request page length. The hub caps a
// single page at 100 rows.
const DefaultPageSize = 100

// Client streams one (dataset, split) pair from the hub's rows endpoint.
// It implements ingestion.Source.
type Client struct {
	endpoint string
	dataset  string
	config   string
	split    string
	pageSize int
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the hub base URL. Useful for tests and mirrors.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithConfig overrides the dataset config name. Default is "default".
func WithConfig(config string) Option {
	return func(c *Client) {
		if config != "" {
			c.config = config
		}
	}
}

// WithPageSize overrides the rows-per-request page length.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 && size <= DefaultPageSize {
			c.pageSize = size
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// NewClient creates a hub source for one dataset split.
func NewClient(dataset, split string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		dataset:  dataset,
		config:   "default",
		split:    split,
		pageSize: DefaultPageSize,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dataset returns the dataset identifier used for adapter lookup.
func (c *Client) Dataset() string { return c.dataset }

// Split returns the split name.
func (c *Client) Split() string { return c.split }

// rowsPage is the wire shape of one rows response.
type rowsPage struct {
	Rows []struct {
		Row core.RawRecord `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// Rows pages through the hub's rows API and yields each row in order.
// A request or decode failure is yielded once and ends the stream; the
// hub has no way to resume past a broken page.
func (c *Client) Rows(ctx context.Context) iter.Seq2[core.RawRecord, error] {
	return func(yield func(core.RawRecord, error) bool) {
		offset := 0
		for {
			page, err := c.fetchPage(ctx, offset)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, entry := range page.Rows {
				if !yield(entry.Row, nil) {
					return
				}
			}

			offset += len(page.Rows)
			if len(page.Rows) < c.pageSize || offset >= page.NumRowsTotal {
				return
			}
		}
	}
}

// fetchPage requests one page of rows starting at offset.
func (c *Client) fetchPage(ctx context.Context, offset int) (*rowsPage, error) {
	query := url.Values{}
	query.Set("dataset", c.dataset)
	query.Set("config", c.config)
	query.Set("split", c.split)
	query.Set("offset", strconv.Itoa(offset))
	query.Set("length", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"/rows?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hub rows request for %s/%s at offset %d: %s",
			c.dataset, c.split, offset, resp.Status)
	}

	var page rowsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding hub rows page: %w", err)
	}
	return &page, nil
}
