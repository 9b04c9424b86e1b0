package tim

import (
	"net/url"
	"strconv"
)

// ListParams expresses the backend's offset pagination. Skip is the number
// of records to skip, Limit the page size. The zero value asks for the
// server's defaults.
type ListParams struct {
	Skip  int
	Limit int
}

// NewListParams creates empty list parameters.
func NewListParams() *ListParams {
	return &ListParams{}
}

// WithSkip sets the pagination offset.
func (p *ListParams) WithSkip(skip int) *ListParams {
	p.Skip = skip

	return p
}

// WithLimit sets the page size.
func (p *ListParams) WithLimit(limit int) *ListParams {
	p.Limit = limit

	return p
}

// ToValues converts the parameters to URL query values. Skip is always
// carried so an explicit offset of zero survives; Limit is only carried when
// positive.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	values.Set("skip", strconv.Itoa(p.Skip))

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	return values
}
