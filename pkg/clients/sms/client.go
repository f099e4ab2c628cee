// Package sms wraps the HTTP SMS gateway used for manager notifications.
package sms

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"hallbook/internal/config"
)

// Client exposes the SMS operations used by the application.
type Client interface {
	SendText(ctx context.Context, to, body string) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	sender     string
}

// NewClient builds an SMS gateway client using the provided configuration values.
func NewClient(cfg config.SMSConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		sender:     cfg.Sender,
	}
}

type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SendText delivers a plain text message to a single recipient.
func (c *APIClient) SendText(ctx context.Context, to, body string) error {
	if to == "" {
		return fmt.Errorf("recipient must not be empty")
	}

	var errBody apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(sendRequest{From: c.sender, To: to, Text: body}).
		SetError(&errBody).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode(), errBody.Message)
	}
	return nil
}
