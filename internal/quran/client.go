// Package quran fetches chapters, verses, translations and recitation URLs
// from the alquran.cloud API.
package quran

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/huroofhub/huroof/internal/logging"
	"github.com/huroofhub/huroof/internal/model"
)

const (
	// DefaultBaseURL is the public alquran.cloud API.
	DefaultBaseURL = "https://api.alquran.cloud/v1"
	// DefaultArabicEdition carries verse text and Mishary Alafasy recitations.
	DefaultArabicEdition = "ar.alafasy"
	// DefaultTranslationEdition is Muhammad Asad's English translation.
	DefaultTranslationEdition = "en.asad"
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 10 * time.Second
	// ChapterCount is the number of chapters in the Quran.
	ChapterCount = 114
)

// ErrNotFound is returned for an unknown chapter or verse.
var ErrNotFound = errors.New("not found")

// Client talks to the alquran.cloud API. It is safe for concurrent use.
type Client struct {
	baseURL            string
	arabicEdition      string
	translationEdition string
	httpClient         *http.Client
	retryInterval      time.Duration
	maxRetries         uint64
	log                logrus.FieldLogger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithEditions selects the text edition and the translation edition. An empty
// translation edition disables translations.
func WithEditions(arabic, translation string) ClientOption {
	return func(c *Client) {
		if arabic != "" {
			c.arabicEdition = arabic
		}
		c.translationEdition = translation
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetry sets the first backoff interval and the number of retries after
// the first attempt.
func WithRetry(interval time.Duration, retries uint64) ClientOption {
	return func(c *Client) {
		c.retryInterval = interval
		c.maxRetries = retries
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient returns a client for the public API unless options say otherwise.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:            DefaultBaseURL,
		arabicEdition:      DefaultArabicEdition,
		translationEdition: DefaultTranslationEdition,
		httpClient:         &http.Client{Timeout: DefaultTimeout},
		retryInterval:      500 * time.Millisecond,
		maxRetries:         2,
		log:                logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "quran")
	return c
}

// ListChapters returns the table of contents.
func (c *Client) ListChapters(ctx context.Context) ([]model.ChapterSummary, error) {
	var chapters []apiChapter
	if err := c.getJSON(ctx, "/surah", &chapters); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	out := make([]model.ChapterSummary, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, ch.summary())
	}
	c.log.WithField("chapters", len(out)).Debug("chapter list fetched")
	return out, nil
}

// Chapter returns chapter id with its verses. The text and translation
// editions are fetched concurrently; a failed translation only leaves the
// translations empty.
func (c *Client) Chapter(ctx context.Context, id int) (model.Chapter, error) {
	if id < 1 || id > ChapterCount {
		return model.Chapter{}, fmt.Errorf("chapter %d: %w", id, ErrNotFound)
	}

	var arabic, translation apiChapter
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, c.editionPath(id, c.arabicEdition), &arabic)
	})
	if c.translationEdition != "" {
		g.Go(func() error {
			err := c.getJSON(gctx, c.editionPath(id, c.translationEdition), &translation)
			if err != nil && gctx.Err() == nil {
				c.log.WithError(err).WithField("chapter", id).Warn("translation unavailable")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Chapter{}, fmt.Errorf("chapter %d: %w", id, err)
	}

	ch := mergeEditions(arabic, translation)
	c.log.WithFields(logrus.Fields{
		"chapter": id,
		"verses":  len(ch.Verses),
	}).Debug("chapter fetched")
	return ch, nil
}

// RandomVerse returns a uniformly chosen verse of chapter id.
func (c *Client) RandomVerse(ctx context.Context, id int, rnd *rand.Rand) (model.Verse, error) {
	ch, err := c.Chapter(ctx, id)
	if err != nil {
		return model.Verse{}, err
	}
	return RandomVerse(ch, rnd)
}

// RandomVerse picks a uniformly chosen verse of an already fetched chapter.
func RandomVerse(ch model.Chapter, rnd *rand.Rand) (model.Verse, error) {
	if ch.Empty() {
		return model.Verse{}, fmt.Errorf("chapter %d has no verses: %w", ch.ID, ErrNotFound)
	}
	return ch.Verses[rnd.Intn(len(ch.Verses))], nil
}

// VerseByNumber returns the verse with the given 1-based number in ch.
func VerseByNumber(ch model.Chapter, number int) (model.Verse, error) {
	for _, v := range ch.Verses {
		if v.NumberInSurah == number {
			return v, nil
		}
	}
	return model.Verse{}, fmt.Errorf("verse %d:%d: %w", ch.ID, number, ErrNotFound)
}

func (c *Client) editionPath(id int, edition string) string {
	return "/surah/" + strconv.Itoa(id) + "/" + edition
}

// getJSON fetches path and decodes the data field of the envelope into out.
// Network errors and 5xx responses are retried with exponential backoff.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	reqURL := c.baseURL + path
	log := c.log.WithField("url", reqURL)

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case resp.StatusCode >= 500:
			return fmt.Errorf("unexpected status: %s", resp.Status)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("unexpected status: %s", resp.Status))
		}

		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		switch {
		case env.Code == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case env.Code != 0 && env.Code != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("api error %d: %s", env.Code, env.Status))
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode data: %w", err))
		}
		return nil
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, c.maxRetries), ctx)

	return backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		log.WithError(err).WithField("wait", wait).Warn("request failed, retrying")
	})
}
