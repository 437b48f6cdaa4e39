package data

import (
	"fmt"
	"strings"
	"testing"
)

func TestUserNeverPrintsSecrets(t *testing.T) {
	user := User{Username: "reader", Password: "hunter2", Token: "tok-123"}

	for _, s := range []string{
		user.String(),
		fmt.Sprintf("%v", user),
		fmt.Sprintf("%+v", user),
		fmt.Sprintf("%#v", user),
		fmt.Sprintf("%s", &user),
	} {
		if strings.Contains(s, "hunter2") || strings.Contains(s, "tok-123") {
			t.Errorf("Expected secrets to be hidden, got %q", s)
		}
		if !strings.Contains(s, "reader") {
			t.Errorf("Expected username in %q", s)
		}
	}
}

func TestUserRedacted(t *testing.T) {
	user := User{Username: "reader", Password: "hunter2"}

	r := user.Redacted()
	if r.Username != "reader" {
		t.Errorf("Expected Username 'reader', got '%s'", r.Username)
	}
	if r.Password != redacted {
		t.Errorf("Expected masked password, got '%s'", r.Password)
	}
	if r.Token != "" {
		t.Errorf("Expected empty token to stay empty, got '%s'", r.Token)
	}
	if user.Password != "hunter2" {
		t.Error("Redacted must not modify the original")
	}
}

func TestConfigRedacted(t *testing.T) {
	cfg := Config{
		URLBase:  "mangacopy.com",
		UserList: []*User{{Username: "a", Password: "p", Token: "t"}, nil},
	}

	r := cfg.Redacted()
	if len(r.UserList) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(r.UserList))
	}
	if r.UserList[0].Password != redacted || r.UserList[0].Token != redacted {
		t.Errorf("Expected masked secrets, got %+v", r.UserList[0].Redacted())
	}
	if r.UserList[1] != nil {
		t.Error("Expected nil user to stay nil")
	}
	if cfg.UserList[0].Password != "p" {
		t.Error("Redacted must not modify the original users")
	}
}

func TestDownloaderSingleModel(t *testing.T) {
	d := DownloaderSingle{PathWord: "one-piece", Progress: 42.5}

	if d.Chapter != nil || d.BookInfo != nil {
		t.Error("Expected unknown chapter and book info to be nil")
	}
	if d.Progress != 42.5 {
		t.Errorf("Expected Progress 42.5, got %v", d.Progress)
	}
}

func TestMask(t *testing.T) {
	if got := Mask(""); got != "" {
		t.Errorf("Mask(\"\") = %q, want empty", got)
	}
	if got := Mask("secret"); got != redacted {
		t.Errorf("Mask(secret) = %q, want %q", got, redacted)
	}
}
