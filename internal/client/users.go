package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tim-io/timapi/internal/auth"
	"github.com/tim-io/timapi/internal/http"
	"github.com/tim-io/timapi/pkg/tim"
)

// UsersClient implements tim.UsersClient.
type UsersClient struct {
	httpClient *http.Client
	session    *auth.SessionManager
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client, session *auth.SessionManager) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
		session:    session,
	}
}

func (c *UsersClient) requireSession() error {
	if !c.session.Authenticated() {
		return tim.ErrNotAuthenticated
	}

	return nil
}

// List implements tim.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, params *tim.ListParams) ([]tim.User, error) {
	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/users/", listParamsOrDefault(params).ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var users []tim.User

	err = decodeInto(resp, &users)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Get implements tim.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID int) (*tim.User, error) {
	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/users/"+strconv.Itoa(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var user tim.User

	err = decodeInto(resp, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetMe implements tim.UsersClient.GetMe.
func (c *UsersClient) GetMe(ctx context.Context) (*tim.User, error) {
	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	var user tim.User

	err = decodeInto(resp, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Create implements tim.UsersClient.Create. Registration is the one write
// that needs no session.
func (c *UsersClient) Create(ctx context.Context, request *tim.UserCreateRequest) (*tim.User, error) {
	if request == nil {
		return nil, tim.ErrRequestRequired
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   "/users/register",
		Body:   request,
		NoAuth: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var user tim.User

	err = decodeInto(resp, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Update implements tim.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, userID int, request *tim.UserUpdateRequest) (*tim.User, error) {
	return c.update(ctx, "/users/update/"+strconv.Itoa(userID), request)
}

// UpdateMe implements tim.UsersClient.UpdateMe.
func (c *UsersClient) UpdateMe(ctx context.Context, request *tim.UserUpdateRequest) (*tim.User, error) {
	return c.update(ctx, "/users/update/me", request)
}

func (c *UsersClient) update(ctx context.Context, path string, request *tim.UserUpdateRequest) (*tim.User, error) {
	if request == nil {
		return nil, tim.ErrRequestRequired
	}

	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	var user tim.User

	err = decodeInto(resp, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Delete implements tim.UsersClient.Delete. The response carries the
// deleted user's last known state.
func (c *UsersClient) Delete(ctx context.Context, userID int) (*tim.User, error) {
	err := c.requireSession()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, "/users/delete/"+strconv.Itoa(userID))
	if err != nil {
		return nil, fmt.Errorf("deleting user: %w", err)
	}

	var user tim.User

	err = decodeInto(resp, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
