// Package tim provides types, interfaces, and helpers for working with the
// TIM inventory REST API.
//
// # Overview
//
// The tim package defines the domain types (Item, User and their
// create/update request shapes) and the interfaces for resource-oriented
// clients (ItemsClient, UsersClient) behind a single Client facade. A
// concrete implementation is provided by the timclient package, which wires
// configuration, transport, session handling, and the optional response
// cache. Most consumers should import timclient to construct a client and
// then interact with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/tim-io/timapi/pkg/tim"
//	  "github.com/tim-io/timapi/pkg/timclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := timclient.New(ctx, &tim.Config{APIEndpoint: "http://127.0.0.1:8000"})
//	  if err != nil { log.Fatal(err) }
//
//	  if err := cli.Login(ctx, "admin@admin.com", "admin"); err != nil { log.Fatal(err) }
//
//	  items, err := cli.Items().List(ctx, tim.NewListParams().WithLimit(100))
//	  if err != nil { log.Fatal(err) }
//	  _ = items
//	}
//
// # Partial updates
//
// ItemUpdateRequest and UserUpdateRequest use pointer fields so an unset
// field is excluded from the payload entirely rather than sent as null. Use
// the *Ptr helpers to set fields, including explicit zero values:
//
//	_, err := cli.Items().Update(ctx, 5, &tim.ItemUpdateRequest{
//	  Quantity: tim.IntPtr(0),
//	})
//
// # Errors
//
// Failures are classified: 4xx rejections surface as *ClientError with the
// server's detail message, 5xx faults as *ServerError, malformed success
// bodies as *DecodeError, and connection failures as wrapped transport
// errors. Match with errors.As or the IsNotFound/IsUnauthorized/IsForbidden
// helpers.
package tim
