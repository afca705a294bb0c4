package analytics

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"BrentDash/internal/domain/models"
	domrepo "BrentDash/internal/domain/repository"
	domsvc "BrentDash/internal/domain/service"
	"BrentDash/pkg/config"
)

const (
	EndpointPrices       = "/prices"
	EndpointVolatility   = "/prices/volatility"
	EndpointChangePoints = "/change-points"
	EndpointEvents       = "/events"
	EndpointEventImpacts = "/events/impact"
)

// Client reads the analytics backend over HTTP.
type Client struct {
	base    *HTTPServiceBase
	metrics domrepo.Metrics
}

func NewClient(cfg *config.Config, metrics domrepo.Metrics) *Client {
	return NewClientWithBase(NewHTTPServiceBase(cfg), metrics)
}

func NewClientWithBase(base *HTTPServiceBase, metrics domrepo.Metrics) *Client {
	return &Client{base: base, metrics: metrics}
}

// Prices fetches the price series, optionally bounded by filter.
func (c *Client) Prices(ctx context.Context, filter models.FilterState) ([]models.PricePoint, error) {
	q := url.Values{}
	if filter.StartDate != nil {
		q.Set("start_date", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q.Set("end_date", *filter.EndDate)
	}

	var out models.PriceSeries
	if err := c.get(ctx, EndpointPrices, q, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []models.PricePoint{}
	}
	return out.Data, nil
}

// Volatility fetches the rolling volatility series for window days.
func (c *Client) Volatility(ctx context.Context, window int) ([]models.VolatilityPoint, error) {
	q := url.Values{}
	q.Set("window", strconv.Itoa(window))

	var out models.VolatilitySeries
	if err := c.get(ctx, EndpointVolatility, q, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []models.VolatilityPoint{}
	}
	return out.Data, nil
}

// ChangePoints fetches the detected change point(s).
func (c *Client) ChangePoints(ctx context.Context) (models.ChangePointResult, error) {
	var out models.ChangePointResult
	if err := c.get(ctx, EndpointChangePoints, nil, &out); err != nil {
		return models.ChangePointResult{}, err
	}
	return out, nil
}

// Events fetches the curated market events.
func (c *Client) Events(ctx context.Context) (models.EventList, error) {
	var out models.EventList
	if err := c.get(ctx, EndpointEvents, nil, &out); err != nil {
		return models.EventList{}, err
	}
	return out, nil
}

// EventImpacts fetches the before/after price impact of every event.
func (c *Client) EventImpacts(ctx context.Context) ([]models.EventImpact, error) {
	var out models.EventImpacts
	if err := c.get(ctx, EndpointEventImpacts, nil, &out); err != nil {
		return nil, err
	}
	if out.Impacts == nil {
		out.Impacts = []models.EventImpact{}
	}
	return out.Impacts, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, dest interface{}) error {
	start := time.Now()
	err := c.base.GetJSON(ctx, endpoint, q, dest)
	if c.metrics != nil {
		c.metrics.RecordFetch(endpoint, time.Since(start), err)
	}
	return err
}

var _ domsvc.AnalyticsAPI = (*Client)(nil)
