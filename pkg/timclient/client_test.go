package timclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tim-io/timapi/pkg/tim"
	"github.com/tim-io/timapi/pkg/timclient"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := timclient.New(ctx, nil)
	assert.ErrorIs(t, err, tim.ErrConfigRequired)

	_, err = timclient.New(ctx, &tim.Config{})
	assert.ErrorIs(t, err, tim.ErrEndpointRequired)
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected during construction")
	}))
	t.Cleanup(server.Close)

	client, err := timclient.NewWithEndpoint(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Nil(t, client.Token())
}

func TestNewWithPassword(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login/access-token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "johndoe@example.com", r.PostForm.Get("username"))

		_, _ = w.Write([]byte(`{"access_token": "abc123", "token_type": "bearer"}`))
	}))
	t.Cleanup(server.Close)

	client, err := timclient.NewWithPassword(context.Background(), server.URL, "johndoe@example.com", "secret")
	require.NoError(t, err)

	token := client.Token()
	require.NotNil(t, token)
	assert.Equal(t, "abc123", token.AccessToken)
}

func TestNewWithPasswordLoginFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Incorrect email or password"}`))
	}))
	t.Cleanup(server.Close)

	_, err := timclient.NewWithPassword(context.Background(), server.URL, "johndoe@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, tim.IsClientError(err))
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id": 1, "name": "John", "email": "john@example.com", "is_admin": false, "items": []}`))
	}))
	t.Cleanup(server.Close)

	client, err := timclient.NewWithToken(context.Background(), server.URL, "persisted")
	require.NoError(t, err)

	_, err = client.Users().GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer persisted", gotAuth)
}

func TestEndpointNormalization(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login/access-token", r.URL.Path)
		_, _ = w.Write([]byte(`{"access_token": "abc123", "token_type": "bearer"}`))
	}))
	t.Cleanup(server.Close)

	// A trailing slash must not produce double-slash request paths.
	client, err := timclient.NewWithEndpoint(context.Background(), server.URL+"/")
	require.NoError(t, err)
	require.NoError(t, client.Login(context.Background(), "johndoe@example.com", "secret"))
}

func TestEndpointSchemeDefault(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token": "abc123", "token_type": "bearer"}`))
	}))
	t.Cleanup(server.Close)

	// A bare host:port gets the http scheme.
	bare := server.Listener.Addr().String()

	client, err := timclient.NewWithEndpoint(context.Background(), bare)
	require.NoError(t, err)
	require.NoError(t, client.Login(context.Background(), "johndoe@example.com", "secret"))
}
