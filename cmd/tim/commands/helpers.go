package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"github.com/tim-io/timapi/internal/constants"
	"github.com/tim-io/timapi/pkg/tim"
	"github.com/tim-io/timapi/pkg/timclient"
	"gopkg.in/yaml.v3"
)

// newAPIClient builds a tim.Client from the effective CLI configuration.
// A persisted session token is reused when present, so most commands work
// without logging in again.
func newAPIClient(ctx context.Context) (tim.Client, error) {
	endpoint := viper.GetString("api")
	if endpoint == "" {
		return nil, constants.ErrNoEndpointConfigured
	}

	config := &tim.Config{
		APIEndpoint: endpoint,
		AccessToken: viper.GetString("token"),
		TokenType:   viper.GetString("token_type"),
		Debug:       viper.GetBool("verbose"),
		Cache:       cacheConfigFromFlags(),
	}

	client, err := timclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// cacheConfigFromFlags maps the --cache/--nats-url flags onto a cache
// configuration. An empty or "none" value disables caching.
func cacheConfigFromFlags() *tim.CacheConfig {
	switch viper.GetString("cache") {
	case string(tim.CacheTypeMemory):
		return tim.DefaultCacheConfig()
	case string(tim.CacheTypeNATS):
		config := tim.DefaultCacheConfig()
		config.Type = tim.CacheTypeNATS
		config.NATS = &tim.NATSKVConfig{URL: viper.GetString("nats_url")}

		return config
	default:
		return nil
	}
}

// renderOutput prints v as JSON or YAML per the --output flag, or calls
// renderTable for the default table format.
func renderOutput(v interface{}, renderTable func() error) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(v)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(v)
	case "", constants.FormatTable:
		return renderTable()
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, viper.GetString("output"))
	}
}

// renderKeyValueTable prints a two-column property table with keys sorted
// for stable output.
func renderKeyValueTable(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	for _, key := range keys {
		value := values[key]
		if value == "" {
			value = constants.NotAvailable
		}

		_ = table.Append(key, value)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderItemsTable prints items in the default table format.
func renderItemsTable(items []tim.Item) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Title", "Barcode", "Price", "Quantity", "Owner")

	for _, item := range items {
		_ = table.Append(
			strconv.Itoa(item.ID),
			item.Title,
			item.BarCode,
			item.Price.String(),
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.OwnerID),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderItemDetail prints a single item as a property table.
func renderItemDetail(item *tim.Item) error {
	return renderKeyValueTable(map[string]string{
		"id":          strconv.Itoa(item.ID),
		"title":       item.Title,
		"bar_code":    item.BarCode,
		"description": derefString(item.Description),
		"price":       item.Price.String(),
		"image_path":  derefString(item.ImagePath),
		"quantity":    strconv.Itoa(item.Quantity),
		"owner_id":    strconv.Itoa(item.OwnerID),
	})
}

// renderUsersTable prints users in the default table format.
func renderUsersTable(users []tim.User) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Email", "Admin", "Items")

	for _, user := range users {
		_ = table.Append(
			strconv.Itoa(user.ID),
			user.Name,
			user.Email,
			strconv.FormatBool(user.IsAdmin),
			strconv.Itoa(len(user.Items)),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderUserDetail prints a single user as a property table followed by the
// user's items.
func renderUserDetail(user *tim.User) error {
	err := renderKeyValueTable(map[string]string{
		"id":       strconv.Itoa(user.ID),
		"name":     user.Name,
		"email":    user.Email,
		"is_admin": strconv.FormatBool(user.IsAdmin),
	})
	if err != nil {
		return err
	}

	if len(user.Items) == 0 {
		return nil
	}

	fmt.Println()

	return renderItemsTable(user.Items)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// listParamsFromFlags builds paging parameters from --skip/--limit values.
func listParamsFromFlags(skip, limit int) *tim.ListParams {
	params := tim.NewListParams()
	if skip > 0 {
		params = params.WithSkip(skip)
	}

	if limit > 0 {
		params = params.WithLimit(limit)
	}

	return params
}
