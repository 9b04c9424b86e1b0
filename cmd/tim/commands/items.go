package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/tim-io/timapi/internal/constants"
	"github.com/tim-io/timapi/pkg/tim"
)

// NewItemsCommand creates the items command group
func NewItemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Manage inventory items",
		Long:    "List, inspect, create, update and withdraw inventory items",
	}

	cmd.AddCommand(newItemsListCommand())
	cmd.AddCommand(newItemsGetCommand())
	cmd.AddCommand(newItemsCreateCommand())
	cmd.AddCommand(newItemsUpdateCommand())
	cmd.AddCommand(newItemsWithdrawCommand())
	cmd.AddCommand(newItemsDeleteCommand())

	return cmd
}

func newItemsListCommand() *cobra.Command {
	var skip, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			items, err := client.Items().List(ctx, listParamsFromFlags(skip, limit))
			if err != nil {
				return err
			}

			return renderOutput(items, func() error {
				return renderItemsTable(items)
			})
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "number of items to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of items to return")

	return cmd
}

func newItemsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <title>",
		Short: "Show an item by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			item, err := client.Items().Get(ctx, args[0])
			if err != nil {
				return err
			}

			return renderOutput(item, func() error {
				return renderItemDetail(item)
			})
		},
	}
}

func newItemsCreateCommand() *cobra.Command {
	var (
		ownerID     int
		title       string
		barCode     string
		description string
		price       string
		imagePath   string
		quantity    int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			priceValue, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("%w: %s", constants.ErrInvalidPrice, price)
			}

			request := &tim.ItemCreateRequest{
				Title:    title,
				BarCode:  barCode,
				Price:    priceValue,
				Quantity: quantity,
			}
			if description != "" {
				request.Description = tim.StringPtr(description)
			}

			if imagePath != "" {
				request.ImagePath = tim.StringPtr(imagePath)
			}

			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			item, err := client.Items().Create(ctx, ownerID, request)
			if err != nil {
				return err
			}

			return renderOutput(item, func() error {
				return renderItemDetail(item)
			})
		},
	}

	cmd.Flags().IntVar(&ownerID, "owner", 0, "owning user ID")
	cmd.Flags().StringVar(&title, "title", "", "item title")
	cmd.Flags().StringVar(&barCode, "barcode", "", "item barcode")
	cmd.Flags().StringVar(&description, "description", "", "item description")
	cmd.Flags().StringVar(&price, "price", "", "item price, e.g. 19.99")
	cmd.Flags().StringVar(&imagePath, "image-path", "", "server-side image path")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "initial stock quantity")

	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("barcode")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newItemsUpdateCommand() *cobra.Command {
	var (
		title       string
		barCode     string
		description string
		price       string
		imagePath   string
		quantity    int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an item",
		Long:  "Apply a partial update to an item. Only the given flags are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item ID: %s", args[0])
			}

			request := &tim.ItemUpdateRequest{}

			if cmd.Flags().Changed("title") {
				request.Title = tim.StringPtr(title)
			}

			if cmd.Flags().Changed("barcode") {
				request.BarCode = tim.StringPtr(barCode)
			}

			if cmd.Flags().Changed("description") {
				request.Description = tim.StringPtr(description)
			}

			if cmd.Flags().Changed("price") {
				priceValue, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("%w: %s", constants.ErrInvalidPrice, price)
				}

				request.Price = tim.DecimalPtr(priceValue)
			}

			if cmd.Flags().Changed("image-path") {
				request.ImagePath = tim.StringPtr(imagePath)
			}

			if cmd.Flags().Changed("quantity") {
				request.Quantity = tim.IntPtr(quantity)
			}

			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			item, err := client.Items().Update(ctx, itemID, request)
			if err != nil {
				return err
			}

			return renderOutput(item, func() error {
				return renderItemDetail(item)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "item title")
	cmd.Flags().StringVar(&barCode, "barcode", "", "item barcode")
	cmd.Flags().StringVar(&description, "description", "", "item description")
	cmd.Flags().StringVar(&price, "price", "", "item price, e.g. 19.99")
	cmd.Flags().StringVar(&imagePath, "image-path", "", "server-side image path")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "stock quantity")

	return cmd
}

func newItemsWithdrawCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <id> <quantity>",
		Short: "Withdraw stock from an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item ID: %s", args[0])
			}

			quantity, err := strconv.Atoi(args[1])
			if err != nil || quantity < 0 {
				return fmt.Errorf("%w: %s", constants.ErrInvalidQuantity, args[1])
			}

			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			item, err := client.Items().Withdraw(ctx, itemID, quantity)
			if err != nil {
				return err
			}

			return renderOutput(item, func() error {
				return renderItemDetail(item)
			})
		},
	}
}

func newItemsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item ID: %s", args[0])
			}

			ctx := context.Background()

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}

			item, err := client.Items().Delete(ctx, itemID)
			if err != nil {
				return err
			}

			fmt.Printf("Deleted item %d (%s)\n", item.ID, item.Title)

			return nil
		},
	}
}
