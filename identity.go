package journy

import "strings"

// UserIdentified identifies a user by ID, email or both.
type UserIdentified struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
}

// UserByID identifies a user by the ID used in your own system.
func UserByID(userID string) UserIdentified {
	return UserIdentified{UserID: userID}
}

// UserByEmail identifies a user by email address.
func UserByEmail(email string) UserIdentified {
	return UserIdentified{Email: email}
}

// NewUserIdentified identifies a user by ID and email. At least one must be set.
func NewUserIdentified(userID, email string) (UserIdentified, error) {
	u := UserIdentified{UserID: userID, Email: email}
	return u, u.Validate()
}

// Validate reports whether the user can be identified.
func (u UserIdentified) Validate() error {
	if strings.TrimSpace(u.UserID) == "" && strings.TrimSpace(u.Email) == "" {
		return invalid("user", "user ID or email needs to be set")
	}
	return nil
}

// AccountIdentified identifies an account by ID, domain or both.
type AccountIdentified struct {
	AccountID string `json:"accountId,omitempty"`
	Domain    string `json:"domain,omitempty"`
}

// AccountByID identifies an account by the ID used in your own system.
func AccountByID(accountID string) AccountIdentified {
	return AccountIdentified{AccountID: accountID}
}

// AccountByDomain identifies an account by its domain.
func AccountByDomain(domain string) AccountIdentified {
	return AccountIdentified{Domain: domain}
}

// NewAccountIdentified identifies an account by ID and domain. At least one must be set.
func NewAccountIdentified(accountID, domain string) (AccountIdentified, error) {
	a := AccountIdentified{AccountID: accountID, Domain: domain}
	return a, a.Validate()
}

// Validate reports whether the account can be identified.
func (a AccountIdentified) Validate() error {
	if strings.TrimSpace(a.AccountID) == "" && strings.TrimSpace(a.Domain) == "" {
		return invalid("account", "account ID or domain needs to be set")
	}
	return nil
}
