/**
 * @description
 * This package provides a client for interacting with the Mambu v2 REST API.
 * It encapsulates the logic for making authenticated HTTP requests to the
 * lending platform's endpoints.
 *
 * Key features:
 * - Manages the API base URL and the static apikey credential.
 * - Provides methods for the operations this proxy consumes (loan search,
 *   transaction search, client/product/deposit lookups, state changes).
 * - Classifies failures so callers can relay upstream responses verbatim,
 *   distinguish an unreachable upstream, and treat everything else as a
 *   local fault.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, io, net/http, net/url, time: Standard Go libraries.
 * - The service's internal domain package for Mambu request/response models.
 */
package mambuclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lendview/loan-proxy-service/internal/domain"
)

// acceptHeader pins every call to the Mambu v2 API contract.
const acceptHeader = "application/vnd.mambu.v2+json"

// Client is a client for the Mambu API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Mambu API client.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SearchLoans runs a loan account search with the given criteria.
func (c *Client) SearchLoans(ctx context.Context, req domain.SearchRequest) ([]domain.LoanAccount, error) {
	endpoint := fmt.Sprintf("%s/loans:search", c.baseURL)
	var loans []domain.LoanAccount

	if err := c.do(ctx, http.MethodPost, endpoint, req, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// SearchLoanTransactions runs a loan transaction search with the given criteria.
func (c *Client) SearchLoanTransactions(ctx context.Context, req domain.SearchRequest) ([]domain.LoanTransaction, error) {
	endpoint := fmt.Sprintf("%s/loans/transactions:search", c.baseURL)
	var transactions []domain.LoanTransaction

	if err := c.do(ctx, http.MethodPost, endpoint, req, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetClient fetches one client by its encoded key.
func (c *Client) GetClient(ctx context.Context, encodedKey string) (*domain.Client, error) {
	endpoint := fmt.Sprintf("%s/clients/%s", c.baseURL, url.PathEscape(strings.TrimSpace(encodedKey)))
	var client domain.Client

	if err := c.do(ctx, http.MethodGet, endpoint, nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// GetLoanProduct fetches one loan product by its encoded key.
func (c *Client) GetLoanProduct(ctx context.Context, encodedKey string) (*domain.LoanProduct, error) {
	endpoint := fmt.Sprintf("%s/loanproducts/%s?detailsLevel=FULL", c.baseURL, url.PathEscape(strings.TrimSpace(encodedKey)))
	var product domain.LoanProduct

	if err := c.do(ctx, http.MethodGet, endpoint, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetDepositAccount fetches one deposit account by id.
func (c *Client) GetDepositAccount(ctx context.Context, accountID string) (*domain.DepositAccount, error) {
	endpoint := fmt.Sprintf("%s/deposits/%s", c.baseURL, url.PathEscape(accountID))
	var account domain.DepositAccount

	if err := c.do(ctx, http.MethodGet, endpoint, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ChangeLoanState forwards a state-change action for one loan account and
// returns whatever Mambu answered, success or failure, so the caller can
// relay it verbatim. Errors are reserved for transport and setup faults.
func (c *Client) ChangeLoanState(ctx context.Context, loanID string, req domain.ChangeStateRequest) (*domain.UpstreamResult, error) {
	endpoint := fmt.Sprintf("%s/loans/%s:changeState", c.baseURL, url.PathEscape(loanID))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal change-state body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrNoResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("mambu change-state returned non-success status",
			"loanId", loanID, "status", resp.StatusCode, "body", string(respBody))
	}

	return &domain.UpstreamResult{Status: resp.StatusCode, Body: respBody}, nil
}

// setHeaders applies the headers required on every Mambu call.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("apikey", c.apiKey)
}

// do is a helper function to make HTTP requests to the Mambu API.
func (c *Client) do(ctx context.Context, method, endpoint string, body, target interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("mambu API returned non-success status",
			"method", method, "url", endpoint, "status", resp.StatusCode, "body", string(respBody))
		return &APIError{Status: resp.StatusCode, Body: respBody}
	}

	if target != nil {
		if err := json.Unmarshal(respBody, target); err != nil {
			return fmt.Errorf("failed to unmarshal response body: %w", err)
		}
	}

	return nil
}
