// Package mealbridgesdk is a minimal client for the MealBridge HTTP API.
// It deliberately depends only on the standard library so embedders carry
// nothing extra.
package mealbridgesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal MealBridge HTTP API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// Donation mirrors the API donation model.
type Donation struct {
	ID           string  `json:"id"`
	DonorName    string  `json:"donorName"`
	DonorContact string  `json:"donorContact"`
	FoodType     string  `json:"foodType"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	ExpiryDate   string  `json:"expiryDate"`
	Status       string  `json:"status"`
	Location     string  `json:"location"`
	CreatedAt    string  `json:"createdAt"`
	Notes        string  `json:"notes,omitempty"`
}

// UrgentNeed mirrors the API urgent-need model.
type UrgentNeed struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Priority    string  `json:"priority"`
	Deadline    string  `json:"deadline"`
	Location    string  `json:"location"`
	CreatedAt   string  `json:"createdAt"`
	Fulfilled   bool    `json:"fulfilled"`
}

// Volunteer mirrors the API volunteer model.
type Volunteer struct {
	ID            string `json:"id"`
	VolunteerName string `json:"volunteerName"`
	Contact       string `json:"contact"`
	AvailableDate string `json:"availableDate"`
	CreatedAt     string `json:"createdAt"`
}

// Dashboard mirrors the dashboard response.
type Dashboard struct {
	Organization string `json:"organization"`
	Summary      struct {
		TotalDonations        int `json:"totalDonations"`
		PendingPickups        int `json:"pendingPickups"`
		OpenHighPriorityNeeds int `json:"openHighPriorityNeeds"`
		ExpiringSoon          int `json:"expiringSoon"`
	} `json:"summary"`
	RecentDonations []Donation   `json:"recentDonations"`
	OpenNeeds       []UrgentNeed `json:"openNeeds"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Donations lists donations, newest first.
func (c *Client) Donations(ctx context.Context) ([]Donation, error) {
	var resp struct {
		Items []Donation `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "v0/donations", nil, &resp)
	return resp.Items, err
}

// CreateDonation records a donation.
func (c *Client) CreateDonation(ctx context.Context, d Donation) (Donation, error) {
	var resp Donation
	err := c.do(ctx, http.MethodPost, "v0/donations", d, &resp)
	return resp, err
}

// UpdateDonationStatus advances a donation's pickup status.
func (c *Client) UpdateDonationStatus(ctx context.Context, id, status string) (Donation, error) {
	body := map[string]any{"status": status}
	var resp Donation
	endpoint := fmt.Sprintf("v0/donations/%s/status", url.PathEscape(id))
	err := c.do(ctx, http.MethodPost, endpoint, body, &resp)
	return resp, err
}

// UrgentNeeds lists urgent needs, newest first.
func (c *Client) UrgentNeeds(ctx context.Context) ([]UrgentNeed, error) {
	var resp struct {
		Items []UrgentNeed `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "v0/needs", nil, &resp)
	return resp.Items, err
}

// CreateUrgentNeed records an urgent need.
func (c *Client) CreateUrgentNeed(ctx context.Context, n UrgentNeed) (UrgentNeed, error) {
	var resp UrgentNeed
	err := c.do(ctx, http.MethodPost, "v0/needs", n, &resp)
	return resp, err
}

// ToggleNeedFulfillment flips a need's fulfilled flag.
func (c *Client) ToggleNeedFulfillment(ctx context.Context, id string) (UrgentNeed, error) {
	var resp UrgentNeed
	endpoint := fmt.Sprintf("v0/needs/%s/toggle", url.PathEscape(id))
	err := c.do(ctx, http.MethodPost, endpoint, nil, &resp)
	return resp, err
}

// Volunteers lists volunteer signups, newest first.
func (c *Client) Volunteers(ctx context.Context) ([]Volunteer, error) {
	var resp struct {
		Items []Volunteer `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "v0/volunteers", nil, &resp)
	return resp.Items, err
}

// CreateVolunteer records a volunteer signup.
func (c *Client) CreateVolunteer(ctx context.Context, v Volunteer) (Volunteer, error) {
	var resp Volunteer
	err := c.do(ctx, http.MethodPost, "v0/volunteers", v, &resp)
	return resp, err
}

// Dashboard returns the current summary and dashboard panels.
func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var resp Dashboard
	err := c.do(ctx, http.MethodGet, "v0/dashboard", nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
