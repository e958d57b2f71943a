package serp

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultPageSize = 10

// StreamConfig shapes a paginated search. The zero value streams pages
// of 10 with no bound and no inter-page delay.
type StreamConfig struct {
	// PageSize is the number of results requested per page (1-100).
	// Zero means 10.
	PageSize int
	// MaxPages bounds the stream. Zero means unbounded; the stream
	// stops on natural exhaustion.
	MaxPages int
	// Delay is waited between consecutive page fetches to respect rate
	// limits.
	Delay time.Duration
	// FailOnEmptyPage turns an empty page into a terminal ErrEmptyPage
	// failure instead of normal exhaustion, for APIs where a mid-stream
	// empty page indicates trouble rather than the end of results.
	FailOnEmptyPage bool
}

func (cfg StreamConfig) validate() (StreamConfig, error) {
	if cfg.PageSize == 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.PageSize < MinLimit || cfg.PageSize > MaxLimit {
		return cfg, &ValidationError{Violations: []error{ErrPageSizeOutOfRange}}
	}
	if cfg.MaxPages < 0 {
		cfg.MaxPages = 0
	}
	return cfg, nil
}

// Pagination states. A stream only ever moves forward: active until the
// results run out or a terminal error occurs.
type streamState int

const (
	streamActive streamState = iota
	streamExhausted
	streamFailed
)

// SearchStream lazily fetches successive result pages, one per Next
// call, with strictly increasing offsets. It is not restartable: create
// a new stream to iterate again. A stream must not be shared between
// goroutines (each page depends on the previous outcome), but
// independent streams may run concurrently over one client.
//
// Usage follows the database/sql.Rows convention:
//
//	stream, err := client.Stream(query, serp.StreamConfig{PageSize: 20})
//	for stream.Next(ctx) {
//		page := stream.Page()
//		...
//	}
//	if err := stream.Err(); err != nil {
//		...
//	}
type SearchStream struct {
	client *Client
	query  Query
	cfg    StreamConfig

	state      streamState
	nextOffset int
	pages      int
	page       *SearchResults
	err        error
}

// Stream prepares a lazy paginated iteration over q. The base query's
// offset is the starting cursor; its limit is replaced by the page
// size. No page is fetched until the first Next call.
func (c *Client) Stream(q Query, cfg StreamConfig) (*SearchStream, error) {
	cfg, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	return &SearchStream{
		client:     c,
		query:      q,
		cfg:        cfg,
		nextOffset: q.Offset(),
	}, nil
}

// Next fetches the following page. It returns false once the stream is
// exhausted or failed; check Err afterwards to distinguish the two.
func (s *SearchStream) Next(ctx context.Context) bool {
	if s.state != streamActive {
		return false
	}

	if s.pages > 0 && s.cfg.Delay > 0 {
		if err := sleep(ctx, s.cfg.Delay); err != nil {
			s.fail(err)
			return false
		}
	}

	q := s.query.withPage(s.nextOffset, s.cfg.PageSize)
	s.client.logger.Debug("fetching page",
		zap.Int("page", s.pages+1),
		zap.Int("offset", s.nextOffset),
	)

	page, err := s.client.Search(ctx, q)
	if err != nil {
		s.fail(err)
		return false
	}

	count := page.Count(s.query.SearchType())
	if count == 0 {
		if s.cfg.FailOnEmptyPage {
			s.fail(ErrEmptyPage)
		} else {
			s.state = streamExhausted
		}
		return false
	}

	s.page = page
	s.pages++
	s.nextOffset += s.cfg.PageSize
	s.client.metrics.RecordPage()

	switch {
	case s.cfg.MaxPages > 0 && s.pages >= s.cfg.MaxPages:
		s.state = streamExhausted
	case count < s.cfg.PageSize:
		// short page: nothing left behind it
		s.state = streamExhausted
	case page.hasPagination() && !page.HasMore():
		s.state = streamExhausted
	}
	return true
}

func (s *SearchStream) fail(err error) {
	s.state = streamFailed
	s.err = err
}

// Page returns the page produced by the last successful Next call. The
// caller owns the returned value.
func (s *SearchStream) Page() *SearchResults { return s.page }

// Err returns the terminal error if the stream failed, nil after
// normal exhaustion.
func (s *SearchStream) Err() error { return s.err }

// Pages returns how many pages have been emitted so far.
func (s *SearchStream) Pages() int { return s.pages }

// SearchAll collects the organic results of every page of the stream
// into one slice. Use with care for large result sets.
func (c *Client) SearchAll(ctx context.Context, q Query, cfg StreamConfig) ([]OrganicResult, error) {
	stream, err := c.Stream(q, cfg)
	if err != nil {
		return nil, err
	}

	var all []OrganicResult
	for stream.Next(ctx) {
		all = append(all, stream.Page().OrganicResults...)
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return all, nil
}

// SearchUntil streams pages until stop returns true for an emitted
// page, the stream is exhausted, or a terminal error occurs. It returns
// every emitted page including the matching one.
func (c *Client) SearchUntil(ctx context.Context, q Query, cfg StreamConfig, stop func(*SearchResults) bool) ([]*SearchResults, error) {
	stream, err := c.Stream(q, cfg)
	if err != nil {
		return nil, err
	}

	var pages []*SearchResults
	for stream.Next(ctx) {
		pages = append(pages, stream.Page())
		if stop(stream.Page()) {
			return pages, nil
		}
	}
	if err := stream.Err(); err != nil {
		return pages, err
	}
	return pages, nil
}
