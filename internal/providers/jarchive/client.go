package jarchive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// Config controls how the archive site is reached.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Client scrapes games from a J! Archive style site.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
}

// NewClient constructs a scraper with the provided configuration.
func NewClient(cfg Config) *Client {
	agent := cfg.UserAgent
	if agent == "" {
		agent = defaultUserAgent
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  agent,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchGameByDate finds the episode that aired on date through the season
// listing, then scrapes its game page.
func (c *Client) FetchGameByDate(ctx context.Context, date string) (questions.FetchedGame, error) {
	if !timeutil.ValidDate(date) {
		return questions.FetchedGame{}, &providers.NotFoundError{Date: date, Suggestion: "use a YYYY-MM-DD air date"}
	}
	if providers.IsWeekend(date) {
		return questions.FetchedGame{}, providers.NotFoundForDate(date)
	}

	for _, season := range candidateSeasons(date) {
		doc, err := c.getDocument(ctx, seasonPath, url.Values{"season": {strconv.Itoa(season)}})
		if err != nil {
			if _, notFound := providers.AsNotFoundError(err); notFound {
				continue
			}
			return questions.FetchedGame{}, err
		}
		if gameID, ok := findGameID(doc, date); ok {
			return c.FetchGameByID(ctx, gameID)
		}
	}
	return questions.FetchedGame{}, providers.NotFoundForDate(date)
}

// FetchGameByID scrapes one game page. Both "9289" and "jarchive-9289" are accepted.
func (c *Client) FetchGameByID(ctx context.Context, gameID string) (questions.FetchedGame, error) {
	raw := strings.TrimPrefix(gameID, idPrefix)
	if _, err := strconv.Atoi(raw); err != nil {
		return questions.FetchedGame{}, &providers.NotFoundError{GameID: gameID, Suggestion: "archive game ids are numeric, e.g. 9289"}
	}

	doc, err := c.getDocument(ctx, gamePath, url.Values{"game_id": {raw}})
	if err != nil {
		if nf, ok := providers.AsNotFoundError(err); ok {
			nf.GameID = gameID
		}
		return questions.FetchedGame{}, err
	}

	game, err := parseGame(doc, idPrefix+raw)
	if err != nil {
		return questions.FetchedGame{}, err
	}
	return game, nil
}

func (c *Client) getDocument(ctx context.Context, path string, query url.Values) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &providers.RateLimitError{
			Provider:   Name,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter(resp.Header),
			Message:    "jarchive: rate limited",
		}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &providers.NotFoundError{Suggestion: "the archive page does not exist"}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("jarchive: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("jarchive: parse %s: %w", path, err)
	}
	return doc, nil
}
