package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"

	"tululu/loader/internal/config"
	"tululu/loader/internal/domain"
)

// LibraryClient talks to the catalog site: one HTML page per book, a
// plain-text download endpoint keyed by identifier, and cover images at
// absolute URLs discovered from the page.
type LibraryClient interface {
	GetBookPage(ctx context.Context, id int) (*FetchResult, error)
	DownloadText(ctx context.Context, id int) (*FetchResult, error)
	DownloadCover(ctx context.Context, coverURL string) (*FetchResult, error)
	ParseBook(res *FetchResult, id int) (*domain.Book, error)
}

// FetchResult is the outcome of a single request. Redirect responses are
// handed back as-is instead of being followed, so callers can tell absence
// apart from success.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (r *FetchResult) Redirected() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

type libraryClient struct {
	config     config.LibraryConfig
	httpClient *resty.Client
	parser     *bookParser
	log        log.FieldLogger
}

func NewLibraryClient(cfg config.LibraryConfig, logger log.FieldLogger) LibraryClient {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36").
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			// Hand the redirect response back untouched.
			return http.ErrUseLastResponse
		}))

	return &libraryClient{
		config:     cfg,
		httpClient: httpClient,
		parser:     newBookParser(),
		log:        logger,
	}
}

func (c *libraryClient) GetBookPage(ctx context.Context, id int) (*FetchResult, error) {
	return c.fetch(ctx, fmt.Sprintf("/b%d/", id), nil)
}

func (c *libraryClient) DownloadText(ctx context.Context, id int) (*FetchResult, error) {
	return c.fetch(ctx, "/txt.php", map[string]string{"id": strconv.Itoa(id)})
}

func (c *libraryClient) DownloadCover(ctx context.Context, coverURL string) (*FetchResult, error) {
	return c.fetch(ctx, coverURL, nil)
}

func (c *libraryClient) ParseBook(res *FetchResult, id int) (*domain.Book, error) {
	return c.parser.ParseBookPage(res.Body, id, res.URL)
}

func (c *libraryClient) fetch(ctx context.Context, url string, query map[string]string) (*FetchResult, error) {
	req := c.httpClient.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, c.classify(url, err)
	}

	res := &FetchResult{
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
	}

	if resp.IsError() {
		return nil, &StatusError{URL: res.URL, Code: resp.StatusCode(), Status: resp.Status()}
	}

	c.log.Debugf("fetched %s (%d, %d bytes)", res.URL, res.StatusCode, len(res.Body))
	return res, nil
}

// classify sorts a transport error into the two transient kinds the retry
// policy treats differently.
func (c *libraryClient) classify(url string, err error) error {
	kind := FailureConnection

	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		kind = FailureTimeout
	}

	return &TransientError{Kind: kind, URL: url, Err: err}
}
