package journy

import (
	"context"

	"github.com/journy-io/sdk-go/transport"
)

// UpsertUserArgs creates or updates a user.
type UpsertUserArgs struct {
	User       UserIdentified
	Properties Properties
}

type userPayload struct {
	Identification UserIdentified `json:"identification"`
	Properties     map[string]any `json:"properties,omitempty"`
}

func buildUserPayload(args UpsertUserArgs) (*userPayload, error) {
	if err := args.User.Validate(); err != nil {
		return nil, err
	}
	properties, err := stringify("properties", args.Properties)
	if err != nil {
		return nil, err
	}
	return &userPayload{Identification: args.User, Properties: properties}, nil
}

// UpsertUser creates a user or updates its properties.
func (c *Client) UpsertUser(ctx context.Context, args UpsertUserArgs) (Result[Empty], error) {
	payload, err := buildUserPayload(args)
	if err != nil {
		return Result[Empty]{}, err
	}
	return normalize(c.send(ctx, transport.MethodPost, "/users/upsert", nil, payload)), nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, user UserIdentified) (Result[Empty], error) {
	if err := user.Validate(); err != nil {
		return Result[Empty]{}, err
	}
	payload := &userPayload{Identification: user}
	return normalize(c.send(ctx, transport.MethodDelete, "/users", nil, payload)), nil
}
