// Package opentdb imports questions from the Open Trivia Database.
package opentdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const (
	DefaultBaseURL = "https://opentdb.com"
	// MaxAmount is the largest batch the API serves in one request.
	MaxAmount = 50

	defaultRetryDelay = time.Second
)

// API response codes.
const (
	responseSuccess          = 0
	responseNoResults        = 1
	responseInvalidParameter = 2
	responseTokenNotFound    = 3
	responseTokenEmpty       = 4
	responseRateLimit        = 5
)

var (
	ErrNoResults        = errors.New("not enough questions for the query")
	ErrInvalidParameter = errors.New("invalid query parameter")
	ErrRateLimited      = errors.New("rate limited")
)

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

func NewClient(baseURL string, retryAttempts uint) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
		retryDelay:       defaultRetryDelay,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type FetchParams struct {
	Amount     int
	CategoryID int
	Difficulty string
}

type Response struct {
	ResponseCode int              `json:"response_code"`
	Results      []RemoteQuestion `json:"results"`
}

// RemoteQuestion is a question as served by the API. Text fields are HTML-escaped.
type RemoteQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Fetch requests one batch of questions, retrying when the API asks to slow down.
func (client *Client) Fetch(ctx context.Context, params FetchParams) ([]RemoteQuestion, error) {
	if params.Amount < 1 || params.Amount > MaxAmount {
		return nil, fmt.Errorf("%w: amount must be between 1 and %d, got %d", ErrInvalidParameter, MaxAmount, params.Amount)
	}

	var questions []RemoteQuestion
	if err := retry.Do(
		func() error {
			result, err := client.fetch(ctx, params)
			if err != nil {
				if !errors.Is(err, ErrRateLimited) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			questions = result
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("retrying open trivia db request",
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	); err != nil {
		return nil, err
	}
	return questions, nil
}

func (client *Client) fetch(ctx context.Context, params FetchParams) ([]RemoteQuestion, error) {
	query := map[string]string{
		"amount": strconv.Itoa(params.Amount),
	}
	if params.CategoryID > 0 {
		query["category"] = strconv.Itoa(params.CategoryID)
	}
	if params.Difficulty != "" {
		query["difficulty"] = params.Difficulty
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&Response{}).
		Get("/api.php")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.StatusCode() == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, response.StatusCode())
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	body, ok := response.Result().(*Response)
	if !ok || body == nil {
		return nil, fmt.Errorf("empty response body: %s", response.String())
	}
	slog.Default().Debug("open trivia db response",
		slog.Int("responseCode", body.ResponseCode),
		slog.Int("results", len(body.Results)),
	)

	switch body.ResponseCode {
	case responseSuccess:
		return body.Results, nil
	case responseNoResults:
		return nil, ErrNoResults
	case responseInvalidParameter:
		return nil, ErrInvalidParameter
	case responseRateLimit:
		return nil, ErrRateLimited
	case responseTokenNotFound, responseTokenEmpty:
		return nil, fmt.Errorf("unexpected session token response code %d", body.ResponseCode)
	default:
		return nil, fmt.Errorf("unknown response code %d", body.ResponseCode)
	}
}
