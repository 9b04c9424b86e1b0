// Package timclient provides the main entry point for creating TIM
// inventory API clients.
package timclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/tim-io/timapi/internal/client"
	"github.com/tim-io/timapi/pkg/tim"
)

// New creates a new TIM API client. If the config carries both a username
// and a password, a login is performed immediately so the returned client
// starts with a session.
func New(ctx context.Context, config *tim.Config) (tim.Client, error) {
	if config == nil {
		return nil, tim.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, tim.ErrEndpointRequired
	}

	config.APIEndpoint = normalizeEndpoint(config.APIEndpoint)

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	if config.AccessToken == "" && config.Username != "" && config.Password != "" {
		err = apiClient.Login(ctx, config.Username, config.Password)
		if err != nil {
			return nil, fmt.Errorf("logging in during construction: %w", err)
		}
	}

	return apiClient, nil
}

// NewWithEndpoint creates a new client with just an API endpoint and no
// session. Use Login (or user registration) afterwards.
func NewWithEndpoint(ctx context.Context, endpoint string) (tim.Client, error) {
	return New(ctx, &tim.Config{
		APIEndpoint: endpoint,
	})
}

// NewWithPassword creates a new client and logs in with the given
// credentials.
func NewWithPassword(ctx context.Context, endpoint, username, password string) (tim.Client, error) {
	return New(ctx, &tim.Config{
		APIEndpoint: endpoint,
		Username:    username,
		Password:    password,
	})
}

// NewWithToken creates a new client that reuses a previously issued session
// token instead of logging in.
func NewWithToken(ctx context.Context, endpoint, accessToken string) (tim.Client, error) {
	return New(ctx, &tim.Config{
		APIEndpoint: endpoint,
		AccessToken: accessToken,
	})
}

// normalizeEndpoint trims a trailing slash and defaults the scheme. The
// backend is commonly reached over plain HTTP on a local network, so a bare
// host defaults to http.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}

	return endpoint
}
