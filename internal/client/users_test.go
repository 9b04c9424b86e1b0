package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tim-io/timapi/pkg/tim"
)

func TestUsersList(t *testing.T) {
	t.Parallel()

	apiClient := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/", r.URL.Path)

		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "John", "email": "john@example.com", "is_admin": true, "items": []},
			{"id": 2, "name": "Jane", "email": "jane@example.com", "is_admin": false, "items": [
				{"id": 1, "title": "hammer", "bar_code": "111", "price": "19.99", "quantity": 5, "owner_id": 2}
			]}
		]`))
	}))

	users, err := apiClient.Users().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsAdmin)
	require.Len(t, users[1].Items, 1)
	assert.Equal(t, "hammer", users[1].Items[0].Title)
}

func TestUsersGet(t *testing.T) {
	t.Parallel()

	apiClient := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/7", r.URL.Path)

		_, _ = w.Write([]byte(`{"id": 7, "name": "John", "email": "john@example.com", "is_admin": false, "items": []}`))
	}))

	user, err := apiClient.Users().Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestUsersGetMe(t *testing.T) {
	t.Parallel()

	apiClient := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"id": 1, "name": "John", "email": "john@example.com", "is_admin": false, "items": []}`))
	}))

	user, err := apiClient.Users().GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
}

func TestUsersCreateNeedsNoSession(t *testing.T) {
	t.Parallel()

	apiClient, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/register", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name": "John", "email": "john@example.com", "password": "secret", "is_admin": false}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1, "name": "John", "email": "john@example.com", "is_admin": false, "items": []}`))
	}))

	user, err := apiClient.Users().Create(context.Background(), &tim.UserCreateRequest{
		Name:     "John",
		Email:    "john@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
}

func TestUsersCreateConflict(t *testing.T) {
	t.Parallel()

	apiClient, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "The user with this username already exists in the system"}`))
	}))

	_, err := apiClient.Users().Create(context.Background(), &tim.UserCreateRequest{
		Name:     "John",
		Email:    "john@example.com",
		Password: "secret",
	})

	var clientErr *tim.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "The user with this username already exists in the system", clientErr.Detail)
}

func TestUsersUpdatePartial(t *testing.T) {
	t.Parallel()

	apiClient := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/update/7", r.URL.Path)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "name")
		assert.NotContains(t, body, "email")
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "is_admin")

		_, _ = w.Write([]byte(`{"id": 7, "name": "Johnny", "email": "john@example.com", "is_admin": false, "items": []}`))
	}))

	user, err := apiClient.Users().Update(context.Background(), 7, &tim.UserUpdateRequest{
		Name: tim.StringPtr("Johnny"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", user.Name)
}

func TestUsersUpdateMe(t *testing.T) {
	t.Parallel()

	apiClient := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/update/me", r.URL.Path)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "password")

		_, _ = w.Write([]byte(`{"id": 1, "name": "John", "email": "john@example.com", "is_admin": false, "items": []}`))
	}))

	_, err := apiClient.Users().UpdateMe(context.Background(), &tim.UserUpdateRequest{
		Password: tim.StringPtr("newsecret"),
	})
	require.NoError(t, err)
}

func TestUsersUpdateExplicitFalse(t *testing.T) {
	t.Parallel()

	apiClient := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		require.Contains(t, body, "is_admin")
		assert.Equal(t, "false", string(body["is_admin"]))

		_, _ = w.Write([]byte(`{"id": 7, "name": "John", "email": "john@example.com", "is_admin": false, "items": []}`))
	}))

	_, err := apiClient.Users().Update(context.Background(), 7, &tim.UserUpdateRequest{
		IsAdmin: tim.BoolPtr(false),
	})
	require.NoError(t, err)
}

func TestUsersDelete(t *testing.T) {
	t.Parallel()

	apiClient := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/delete/7", r.URL.Path)

		_, _ = w.Write([]byte(`{"id": 7, "name": "John", "email": "john@example.com", "is_admin": false, "items": []}`))
	}))

	user, err := apiClient.Users().Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
}

func TestUsersRequireSession(t *testing.T) {
	t.Parallel()

	apiClient, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected before login")
	}))

	ctx := context.Background()
	users := apiClient.Users()

	_, err := users.List(ctx, nil)
	assert.ErrorIs(t, err, tim.ErrNotAuthenticated)

	_, err = users.Get(ctx, 1)
	assert.ErrorIs(t, err, tim.ErrNotAuthenticated)

	_, err = users.GetMe(ctx)
	assert.ErrorIs(t, err, tim.ErrNotAuthenticated)

	_, err = users.Update(ctx, 1, &tim.UserUpdateRequest{})
	assert.ErrorIs(t, err, tim.ErrNotAuthenticated)

	_, err = users.UpdateMe(ctx, &tim.UserUpdateRequest{})
	assert.ErrorIs(t, err, tim.ErrNotAuthenticated)

	_, err = users.Delete(ctx, 1)
	assert.ErrorIs(t, err, tim.ErrNotAuthenticated)
}

func TestUsersNilRequest(t *testing.T) {
	t.Parallel()

	apiClient := newLoggedInClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	ctx := context.Background()

	_, err := apiClient.Users().Create(ctx, nil)
	assert.ErrorIs(t, err, tim.ErrRequestRequired)

	_, err = apiClient.Users().Update(ctx, 1, nil)
	assert.ErrorIs(t, err, tim.ErrRequestRequired)
}
