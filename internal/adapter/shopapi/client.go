package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/guitarshop/cart-service/internal/app/config"
	"github.com/guitarshop/cart-service/internal/domain/entity"
)

// ErrRemoteOperation marks any failure of a shop API call: transport errors
// and non-2xx responses alike. Callers match it with errors.Is.
var ErrRemoteOperation = errors.New("shop API operation failed")

const (
	guitarsEndpoint = "guitars"
	reviewsEndpoint = "comments"
	couponsEndpoint = "coupons"
	ordersEndpoint  = "orders"

	embedQueryKey = "_embed"
	sortQueryKey  = "_sort"
	orderQueryKey = "_order"
)

// GuitarQuery carries the optional list parameters of GET /guitars.
type GuitarQuery struct {
	Sort  string
	Order string
}

// Client is the typed boundary to the remote guitar-shop API.
type Client interface {
	ListGuitars(ctx context.Context, query GuitarQuery) ([]entity.Guitar, error)
	GetGuitar(ctx context.Context, productID int) (*entity.GuitarWithReviews, error)
	CreateReview(ctx context.Context, draft entity.ReviewDraft) (*entity.Review, error)
	ValidateCoupon(ctx context.Context, code string) (float64, error)
	CreateOrder(ctx context.Context, order *entity.Order) error
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.ShopAPIConfig) Client {
	return &client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *client) ListGuitars(ctx context.Context, query GuitarQuery) ([]entity.Guitar, error) {
	params := url.Values{}
	if query.Sort != "" {
		params.Set(sortQueryKey, query.Sort)
	}
	if query.Order != "" {
		params.Set(orderQueryKey, query.Order)
	}

	var guitars []entity.Guitar
	if err := c.get(ctx, guitarsEndpoint, params, &guitars); err != nil {
		return nil, err
	}
	return guitars, nil
}

func (c *client) GetGuitar(ctx context.Context, productID int) (*entity.GuitarWithReviews, error) {
	params := url.Values{}
	params.Set(embedQueryKey, reviewsEndpoint)

	var guitar entity.GuitarWithReviews
	path := guitarsEndpoint + "/" + strconv.Itoa(productID)
	if err := c.get(ctx, path, params, &guitar); err != nil {
		return nil, err
	}
	return &guitar, nil
}

func (c *client) CreateReview(ctx context.Context, draft entity.ReviewDraft) (*entity.Review, error) {
	var review entity.Review
	if err := c.post(ctx, reviewsEndpoint, draft, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *client) ValidateCoupon(ctx context.Context, code string) (float64, error) {
	payload := map[string]string{"coupon": code}

	var discountPercent float64
	if err := c.post(ctx, couponsEndpoint, payload, &discountPercent); err != nil {
		return 0, err
	}
	return discountPercent, nil
}

func (c *client) CreateOrder(ctx context.Context, order *entity.Order) error {
	return c.post(ctx, ordersEndpoint, order, nil)
}

func (c *client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, params), nil)
	if err != nil {
		return fmt.Errorf("%w: building GET %s request: %v", ErrRemoteOperation, path, err)
	}
	return c.do(req, out)
}

func (c *client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshaling POST %s payload: %v", ErrRemoteOperation, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: building POST %s request: %v", ErrRemoteOperation, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRemoteOperation, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s %s: unexpected status %d", ErrRemoteOperation, req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s %s response: %v", ErrRemoteOperation, req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *client) endpoint(path string, params url.Values) string {
	u := c.baseURL + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}
