package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tim-io/timapi/internal/auth"
	"github.com/tim-io/timapi/internal/http"
	"github.com/tim-io/timapi/pkg/tim"
)

// ItemsClient implements tim.ItemsClient.
type ItemsClient struct {
	httpClient *http.Client
	session    *auth.SessionManager
}

// NewItemsClient creates a new items client.
func NewItemsClient(httpClient *http.Client, session *auth.SessionManager) *ItemsClient {
	return &ItemsClient{
		httpClient: httpClient,
		session:    session,
	}
}

func (c *ItemsClient) requireSession() error {
	if !c.session.Authenticated() {
		return tim.ErrNotAuthenticated
	}

	return nil
}

// List implements tim.ItemsClient.List.
func (c *ItemsClient) List(ctx context.Context, params *tim.ListParams) ([]tim.Item, error) {
	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/items/", listParamsOrDefault(params).ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	var items []tim.Item

	err = decodeInto(resp, &items)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Get implements tim.ItemsClient.Get. The lookup key is the title, not the
// id; case and uniqueness semantics belong to the server.
func (c *ItemsClient) Get(ctx context.Context, title string) (*tim.Item, error) {
	if title == "" {
		return nil, tim.ErrTitleRequired
	}

	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/items/"+url.PathEscape(title), nil)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	var item tim.Item

	err = decodeInto(resp, &item)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// Create implements tim.ItemsClient.Create.
func (c *ItemsClient) Create(ctx context.Context, userID int, request *tim.ItemCreateRequest) (*tim.Item, error) {
	if request == nil {
		return nil, tim.ErrRequestRequired
	}

	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	path := "/users/" + strconv.Itoa(userID) + "/items/"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	var item tim.Item

	err = decodeInto(resp, &item)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// Update implements tim.ItemsClient.Update. Unset fields are excluded from
// the payload entirely, so the server only overwrites what the caller set.
func (c *ItemsClient) Update(ctx context.Context, itemID int, request *tim.ItemUpdateRequest) (*tim.Item, error) {
	if request == nil {
		return nil, tim.ErrRequestRequired
	}

	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	path := "/items/update/" + strconv.Itoa(itemID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	var item tim.Item

	err = decodeInto(resp, &item)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// Withdraw implements tim.ItemsClient.Withdraw. The backend exposes the
// stock decrement as a GET with a quantity parameter.
func (c *ItemsClient) Withdraw(ctx context.Context, itemID int, quantity int) (*tim.Item, error) {
	if quantity < 0 {
		return nil, tim.ErrNegativeQuantity
	}

	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	path := "/items/withdraw/" + strconv.Itoa(itemID)

	query := url.Values{}
	query.Set("quantity", strconv.Itoa(quantity))

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("withdrawing item: %w", err)
	}

	var item tim.Item

	err = decodeInto(resp, &item)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// Delete implements tim.ItemsClient.Delete. The response carries the
// deleted item's last known state.
func (c *ItemsClient) Delete(ctx context.Context, itemID int) (*tim.Item, error) {
	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, "/items/delete/"+strconv.Itoa(itemID))
	if err != nil {
		return nil, fmt.Errorf("deleting item: %w", err)
	}

	var item tim.Item

	err = decodeInto(resp, &item)
	if err != nil {
		return nil, err
	}

	return &item, nil
}
