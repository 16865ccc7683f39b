package journy

import (
	"errors"
	"testing"
	"time"
)

func TestUserIdentified(t *testing.T) {
	if u := UserByID("u1"); u.UserID != "u1" || u.Email != "" {
		t.Errorf("UserByID() = %+v", u)
	}
	if u := UserByEmail("a@b.c"); u.Email != "a@b.c" || u.UserID != "" {
		t.Errorf("UserByEmail() = %+v", u)
	}
	if _, err := NewUserIdentified("u1", "a@b.c"); err != nil {
		t.Errorf("NewUserIdentified() error = %v", err)
	}

	_, err := NewUserIdentified("", " ")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("NewUserIdentified(empty) error = %v, want ErrInvalidArgument", err)
	}
	if err.Error() != "invalid user: user ID or email needs to be set" {
		t.Errorf("Error() = %s", err)
	}
}

func TestAccountIdentified(t *testing.T) {
	if a := AccountByID("a1"); a.AccountID != "a1" || a.Domain != "" {
		t.Errorf("AccountByID() = %+v", a)
	}
	if a := AccountByDomain("journy.io"); a.Domain != "journy.io" {
		t.Errorf("AccountByDomain() = %+v", a)
	}

	_, err := NewAccountIdentified("", "")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("NewAccountIdentified(empty) error = %v, want ErrInvalidArgument", err)
	}
	if err.Error() != "invalid account: account ID or domain needs to be set" {
		t.Errorf("Error() = %s", err)
	}
}

func TestEvent_Constructors(t *testing.T) {
	user := UserByID("u1")
	account := AccountByID("a1")

	tests := []struct {
		name        string
		event       Event
		wantUser    bool
		wantAccount bool
	}{
		{"for user", EventForUser("login", user), true, false},
		{"for account", EventForAccount("paid", account), false, true},
		{"for user in account", EventForUserInAccount("invite", user, account), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.event.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if _, ok := tt.event.User(); ok != tt.wantUser {
				t.Errorf("User() ok = %v, want %v", ok, tt.wantUser)
			}
			if _, ok := tt.event.Account(); ok != tt.wantAccount {
				t.Errorf("Account() ok = %v, want %v", ok, tt.wantAccount)
			}
			if !tt.event.TriggeredAt().IsZero() {
				t.Error("TriggeredAt() is set by default")
			}
		})
	}
}

func TestEvent_CopiesOnWrite(t *testing.T) {
	base := EventForUser("login", UserByID("u1")).WithMetadata(Metadata{"a": "1", "b": "2"})
	when := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)

	dated := base.HappenedAt(when)
	merged := base.WithMetadata(Metadata{"b": "3", "c": "4"})

	if !base.TriggeredAt().IsZero() {
		t.Error("HappenedAt modified the original event")
	}
	if !dated.TriggeredAt().Equal(when) {
		t.Errorf("TriggeredAt() = %v, want %v", dated.TriggeredAt(), when)
	}
	if got := base.Metadata(); len(got) != 2 || got["b"] != "2" {
		t.Errorf("original metadata = %v", got)
	}
	got := merged.Metadata()
	if len(got) != 3 || got["a"] != "1" || got["b"] != "3" || got["c"] != "4" {
		t.Errorf("merged metadata = %v", got)
	}

	got["a"] = "changed"
	if merged.Metadata()["a"] != "1" {
		t.Error("Metadata() exposes internal state")
	}
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{"empty name", EventForUser("", UserByID("u1"))},
		{"blank name", EventForUser("  ", UserByID("u1"))},
		{"invalid user", EventForUser("x", UserIdentified{})},
		{"invalid account", EventForUserInAccount("x", UserByID("u1"), AccountIdentified{})},
		{"no identity", Event{name: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.event.Validate(); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Validate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	when := time.Date(2020, 8, 27, 14, 8, 21, 123456789, time.FixedZone("CEST", 2*60*60))

	got, err := stringify("properties", map[string]any{
		"string":  "value",
		"bool":    false,
		"int":     42,
		"int64":   int64(-7),
		"uint8":   uint8(8),
		"float":   1.5,
		"float32": float32(0.25),
		"time":    when,
		"timePtr": &when,
		"list":    []string{"a", "b"},
		"nil":     nil,
	})
	if err != nil {
		t.Fatalf("stringify() error = %v", err)
	}

	want := map[string]string{
		"string":  "value",
		"bool":    "false",
		"int":     "42",
		"int64":   "-7",
		"uint8":   "8",
		"float":   "1.5",
		"float32": "0.25",
		"time":    "2020-08-27T12:08:21.123Z",
		"timePtr": "2020-08-27T12:08:21.123Z",
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("%s = %v, want %s", key, got[key], value)
		}
	}
	if list, ok := got["list"].([]string); !ok || len(list) != 2 || list[1] != "b" {
		t.Errorf("list = %v, want [a b]", got["list"])
	}
	if _, ok := got["nil"]; ok {
		t.Error("nil value was kept")
	}
}

func TestStringify_Empty(t *testing.T) {
	got, err := stringify("metadata", nil)
	if err != nil || got != nil {
		t.Errorf("stringify(nil) = %v, %v, want nil, nil", got, err)
	}
}

func TestStringify_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		field  string
	}{
		{"struct", map[string]any{"x": struct{}{}}, "metadata.x"},
		{"map", map[string]any{"y": map[string]string{}}, "metadata.y"},
		{"int list", map[string]any{"z": []int{1}}, "metadata.z"},
		{"empty key", map[string]any{"": "v"}, "metadata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stringify("metadata", tt.values)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Field = %s, want %s", vErr.Field, tt.field)
			}
		})
	}
}
