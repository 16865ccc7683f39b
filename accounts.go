package journy

import (
	"context"
	"fmt"

	"github.com/journy-io/sdk-go/transport"
)

// UpsertAccountArgs creates or updates an account. Members, when set, lists
// the users that belong to the account.
type UpsertAccountArgs struct {
	Account    AccountIdentified
	Properties Properties
	Members    []UserIdentified
}

// AccountMembersArgs adds or removes users from an account.
type AccountMembersArgs struct {
	Account AccountIdentified
	Users   []UserIdentified
}

type memberPayload struct {
	Identification UserIdentified `json:"identification"`
}

type accountPayload struct {
	Identification AccountIdentified `json:"identification"`
	Properties     map[string]any    `json:"properties,omitempty"`
	Members        []memberPayload   `json:"members,omitempty"`
}

type membershipPayload struct {
	Account AccountIdentified `json:"account"`
	Users   []memberPayload   `json:"users"`
}

func buildMembers(field string, users []UserIdentified) ([]memberPayload, error) {
	members := make([]memberPayload, 0, len(users))
	for i, user := range users {
		if err := user.Validate(); err != nil {
			return nil, invalid(fmt.Sprintf("%s[%d]", field, i), "user ID or email needs to be set")
		}
		members = append(members, memberPayload{Identification: user})
	}
	return members, nil
}

func buildAccountPayload(args UpsertAccountArgs) (*accountPayload, error) {
	if err := args.Account.Validate(); err != nil {
		return nil, err
	}
	properties, err := stringify("properties", args.Properties)
	if err != nil {
		return nil, err
	}
	members, err := buildMembers("members", args.Members)
	if err != nil {
		return nil, err
	}
	return &accountPayload{
		Identification: args.Account,
		Properties:     properties,
		Members:        members,
	}, nil
}

func buildMembershipPayload(args AccountMembersArgs) (*membershipPayload, error) {
	if err := args.Account.Validate(); err != nil {
		return nil, err
	}
	if len(args.Users) == 0 {
		return nil, invalid("users", "at least one user is required")
	}
	users, err := buildMembers("users", args.Users)
	if err != nil {
		return nil, err
	}
	return &membershipPayload{Account: args.Account, Users: users}, nil
}

// UpsertAccount creates an account or updates its properties and members.
func (c *Client) UpsertAccount(ctx context.Context, args UpsertAccountArgs) (Result[Empty], error) {
	payload, err := buildAccountPayload(args)
	if err != nil {
		return Result[Empty]{}, err
	}
	return normalize(c.send(ctx, transport.MethodPost, "/accounts/upsert", nil, payload)), nil
}

// DeleteAccount removes an account.
func (c *Client) DeleteAccount(ctx context.Context, account AccountIdentified) (Result[Empty], error) {
	if err := account.Validate(); err != nil {
		return Result[Empty]{}, err
	}
	payload := &accountPayload{Identification: account}
	return normalize(c.send(ctx, transport.MethodDelete, "/accounts", nil, payload)), nil
}

// AddUsersToAccount adds users to an account.
func (c *Client) AddUsersToAccount(ctx context.Context, args AccountMembersArgs) (Result[Empty], error) {
	payload, err := buildMembershipPayload(args)
	if err != nil {
		return Result[Empty]{}, err
	}
	return normalize(c.send(ctx, transport.MethodPost, "/accounts/users/add", nil, payload)), nil
}

// RemoveUsersFromAccount removes users from an account.
func (c *Client) RemoveUsersFromAccount(ctx context.Context, args AccountMembersArgs) (Result[Empty], error) {
	payload, err := buildMembershipPayload(args)
	if err != nil {
		return Result[Empty]{}, err
	}
	return normalize(c.send(ctx, transport.MethodPost, "/accounts/users/remove", nil, payload)), nil
}
