package tieba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tiebasign/internal/adapters/transport"
	"tiebasign/internal/core/domain"
	"tiebasign/internal/core/ports"
	"tiebasign/internal/signer"
)

const (
	tbsURL  = "http://tieba.baidu.com/dc/common/tbs"
	likeURL = "https://tieba.baidu.com/mo/q/newmoindex"
	signURL = "http://c.tieba.baidu.com/c/c/forum/sign"
)

// Endpoints are the three URLs the client talks to.
type Endpoints struct {
	Tbs  string
	Like string
	Sign string
}

// DefaultEndpoints returns the production endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{Tbs: tbsURL, Like: likeURL, Sign: signURL}
}

// Client implements ports.CheckinClient for one account.
type Client struct {
	endpoints Endpoints
	client    *http.Client
}

var _ ports.CheckinClient = (*Client)(nil)

// NewClient creates a Client whose requests carry the given BDUSS.
func NewClient(bduss string, endpoints Endpoints, timeout time.Duration) (*Client, error) {
	hc, err := transport.NewAccountClient(bduss, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to build http client: %w", err)
	}
	return &Client{endpoints: endpoints, client: hc}, nil
}

// Factory returns a ports.ClientFactory producing Clients with shared settings.
func Factory(endpoints Endpoints, timeout time.Duration) ports.ClientFactory {
	return ports.ClientFactoryFunc(func(bduss string) (ports.CheckinClient, error) {
		c, err := NewClient(bduss, endpoints, timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

type tbsResponse struct {
	IsLogin int    `json:"is_login"`
	Tbs     string `json:"tbs"`
}

type likeResponse struct {
	Data struct {
		LikeForum []struct {
			ForumName string `json:"forum_name"`
		} `json:"like_forum"`
	} `json:"data"`
}

type signResponse struct {
	ErrorCode string  `json:"error_code"`
	ErrorMsg  *string `json:"error_msg"`
}

// FetchTbs logs in and returns the tbs session verifier.
func (c *Client) FetchTbs(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.Tbs, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	var res tbsResponse
	if err := c.doJSON(req, &res); err != nil {
		return "", err
	}
	if res.IsLogin != 1 {
		return "", domain.ErrAuthFailed
	}
	return res.Tbs, nil
}

// FetchForums returns the names of all followed forums in server order.
func (c *Client) FetchForums(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.Like, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var res likeResponse
	if err := c.doJSON(req, &res); err != nil {
		return nil, err
	}

	forums := make([]string, 0, len(res.Data.LikeForum))
	for _, f := range res.Data.LikeForum {
		forums = append(forums, f.ForumName)
	}
	return forums, nil
}

// Sign submits the check-in for forum.
func (c *Client) Sign(ctx context.Context, forum, tbs string) error {
	body := encodeSignForm(forum, tbs, signer.Sign(forum, tbs))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.Sign, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var res signResponse
	if err := c.doJSON(req, &res); err != nil {
		return err
	}
	if res.ErrorCode == "0" {
		return nil
	}

	cerr := &domain.CheckinError{Forum: forum, Code: res.ErrorCode}
	if res.ErrorMsg != nil {
		cerr.Message = *res.ErrorMsg
	}
	return cerr
}

// encodeSignForm keeps the kw, tbs, sign field order; url.Values would sort them.
func encodeSignForm(forum, tbs, sign string) string {
	return "kw=" + url.QueryEscape(forum) +
		"&tbs=" + url.QueryEscape(tbs) +
		"&sign=" + sign
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code %d from %s, body: %s", resp.StatusCode, req.URL.Path, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
