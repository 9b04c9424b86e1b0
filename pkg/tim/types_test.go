package tim_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tim-io/timapi/pkg/tim"
)

func TestItemPriceWireFormat(t *testing.T) {
	t.Parallel()

	item := tim.Item{
		ID:       1,
		Title:    "hammer",
		BarCode:  "111",
		Price:    decimal.RequireFromString("19.99"),
		Quantity: 5,
		OwnerID:  1,
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	// The price crosses the wire as a decimal string, never a float.
	assert.Contains(t, string(data), `"price":"19.99"`)

	var decoded tim.Item

	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Price.Equal(item.Price))
	assert.Equal(t, "19.99", decoded.Price.String())
}

func TestItemDecodeFromServerPayload(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 3,
		"title": "wrench",
		"bar_code": "4006381333931",
		"description": "adjustable",
		"price": "7.50",
		"image_path": "/static/wrench.png",
		"quantity": 12,
		"owner_id": 2
	}`

	var item tim.Item

	require.NoError(t, json.Unmarshal([]byte(payload), &item))
	assert.Equal(t, 3, item.ID)
	require.NotNil(t, item.Description)
	assert.Equal(t, "adjustable", *item.Description)
	require.NotNil(t, item.ImagePath)
	assert.Equal(t, "/static/wrench.png", *item.ImagePath)
	assert.Equal(t, "7.5", item.Price.String())
}

func TestItemCreateRequestOptionalFields(t *testing.T) {
	t.Parallel()

	request := tim.ItemCreateRequest{
		Title:    "hammer",
		BarCode:  "111",
		Price:    decimal.RequireFromString("19.99"),
		Quantity: 5,
	}

	data, err := json.Marshal(request)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "hammer", "bar_code": "111", "price": "19.99", "quantity": 5}`, string(data))

	request.Description = tim.StringPtr("claw hammer")

	data, err = json.Marshal(request)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":"claw hammer"`)
}

func TestItemUpdateRequestOmitsUnsetFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		request  tim.ItemUpdateRequest
		expected string
	}{
		{
			name:     "empty request sends empty object",
			request:  tim.ItemUpdateRequest{},
			expected: `{}`,
		},
		{
			name:     "single field",
			request:  tim.ItemUpdateRequest{Price: tim.DecimalPtr(decimal.RequireFromString("10.50"))},
			expected: `{"price": "10.50"}`,
		},
		{
			name: "explicit zero values survive",
			request: tim.ItemUpdateRequest{
				Quantity:    tim.IntPtr(0),
				Description: tim.StringPtr(""),
			},
			expected: `{"quantity": 0, "description": ""}`,
		},
		{
			name: "multiple fields",
			request: tim.ItemUpdateRequest{
				Title:    tim.StringPtr("sledgehammer"),
				Quantity: tim.IntPtr(2),
			},
			expected: `{"title": "sledgehammer", "quantity": 2}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.request)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestUserUpdateRequestOmitsUnsetFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(tim.UserUpdateRequest{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	data, err = json.Marshal(tim.UserUpdateRequest{IsAdmin: tim.BoolPtr(false)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_admin": false}`, string(data))
}

func TestUserCreateRequestPasswordHandling(t *testing.T) {
	t.Parallel()

	request := tim.UserCreateRequest{
		Name:     "John",
		Email:    "john@example.com",
		Password: "secret",
	}

	// The password goes to the API but never into YAML output.
	data, err := json.Marshal(request)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"password":"secret"`)

	out, err := yaml.Marshal(request)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
}

func TestUserDecodeWithItems(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 2,
		"name": "Jane",
		"email": "jane@example.com",
		"is_admin": true,
		"items": [
			{"id": 1, "title": "hammer", "bar_code": "111", "price": "19.99", "quantity": 5, "owner_id": 2},
			{"id": 4, "title": "saw", "bar_code": "222", "price": "12.00", "quantity": 1, "owner_id": 2}
		]
	}`

	var user tim.User

	require.NoError(t, json.Unmarshal([]byte(payload), &user))
	assert.True(t, user.IsAdmin)
	require.Len(t, user.Items, 2)
	assert.Equal(t, "saw", user.Items[1].Title)
	assert.Equal(t, 2, user.Items[1].OwnerID)
}
