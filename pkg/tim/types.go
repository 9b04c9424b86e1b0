package tim

import (
	"github.com/shopspring/decimal"
)

// Item represents an inventory item owned by a user.
//
// Price is an exact decimal value. It travels as a quoted string on the wire
// so no binary floating-point rounding can occur in either direction.
type Item struct {
	ID          int             `json:"id"                   yaml:"id"`
	Title       string          `json:"title"                yaml:"title"`
	BarCode     string          `json:"bar_code"             yaml:"bar_code"`
	Description *string         `json:"description,omitempty" yaml:"description,omitempty"`
	Price       decimal.Decimal `json:"price"                yaml:"price"`
	ImagePath   *string         `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	Quantity    int             `json:"quantity"             yaml:"quantity"`
	OwnerID     int             `json:"owner_id"             yaml:"owner_id"`
}

// ItemCreateRequest is the payload for creating an item. The server assigns
// ID and OwnerID.
type ItemCreateRequest struct {
	Title       string          `json:"title"                 yaml:"title"`
	BarCode     string          `json:"bar_code"              yaml:"bar_code"`
	Description *string         `json:"description,omitempty" yaml:"description,omitempty"`
	Price       decimal.Decimal `json:"price"                 yaml:"price"`
	ImagePath   *string         `json:"image_path,omitempty"  yaml:"image_path,omitempty"`
	Quantity    int             `json:"quantity"              yaml:"quantity"`
}

// ItemUpdateRequest is a partial update. Every field is a pointer: a nil
// field is excluded from the encoded payload entirely, a set field is always
// sent, including explicit zero values.
type ItemUpdateRequest struct {
	Title       *string          `json:"title,omitempty"       yaml:"title,omitempty"`
	BarCode     *string          `json:"bar_code,omitempty"    yaml:"bar_code,omitempty"`
	Description *string          `json:"description,omitempty" yaml:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"       yaml:"price,omitempty"`
	ImagePath   *string          `json:"image_path,omitempty"  yaml:"image_path,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"    yaml:"quantity,omitempty"`
}

// User represents a backend account. Items is populated by the server on
// fetch, ordered as the server returns it.
type User struct {
	ID      int    `json:"id"       yaml:"id"`
	Name    string `json:"name"     yaml:"name"`
	Email   string `json:"email"    yaml:"email"`
	IsAdmin bool   `json:"is_admin" yaml:"is_admin"`
	Items   []Item `json:"items"    yaml:"items"`
}

// UserCreateRequest is the registration payload. Password is write-only and
// never present in any read model.
type UserCreateRequest struct {
	Name     string `json:"name"     yaml:"name"`
	Email    string `json:"email"    yaml:"email"`
	IsAdmin  bool   `json:"is_admin" yaml:"is_admin"`
	Password string `json:"password" yaml:"-"`
}

// UserUpdateRequest is a partial update with the same omit-if-unset rule as
// ItemUpdateRequest.
type UserUpdateRequest struct {
	Name     *string `json:"name,omitempty"     yaml:"name,omitempty"`
	Email    *string `json:"email,omitempty"    yaml:"email,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty" yaml:"is_admin,omitempty"`
	Password *string `json:"password,omitempty" yaml:"-"`
}

// Token is the session credential returned by the login endpoint.
type Token struct {
	TokenType   string `json:"token_type"   yaml:"token_type"`
	AccessToken string `json:"access_token" yaml:"access_token"`
}

// StringPtr returns a pointer to s, for building update requests.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i, for building update requests.
func IntPtr(i int) *int { return &i }

// BoolPtr returns a pointer to b, for building update requests.
func BoolPtr(b bool) *bool { return &b }

// DecimalPtr returns a pointer to d, for building update requests.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
