// Package headhunter reads vacancies and resumes from the public hh.ru API.
package headhunter

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiURL      = "https://api.hh.ru"
	mineResumID = "mine"
	userAgent   = "spigell/profile-matcher (spigelly@gmail.com)"
	// Max value for search per page.
	perPage = "100"

	// SourceName marks vacancies that came from hh.ru.
	SourceName = "hh"

	DefaultRate  = 2.0
	defaultBurst = 1
)

type Client struct {
	token      string
	logger     *zap.Logger
	limiter    *rate.Limiter
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a client sending at most reqPerSec requests per second. An empty token sends
// anonymous requests, which is enough for vacancy search.
func New(logger *zap.Logger, token string, reqPerSec float64) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reqPerSec <= 0 {
		reqPerSec = DefaultRate
	}

	return &Client{
		token:   token,
		limiter: rate.NewLimiter(rate.Limit(reqPerSec), defaultBurst),
		APIURL:  apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
