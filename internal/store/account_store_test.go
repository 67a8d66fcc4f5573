package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"handoff/internal/domain"
	"handoff/internal/store"
)

func TestAccount_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var accounts domain.AccountStore = store.NewFastAccountFileStore(home)

	acct := domain.Account{
		UID:          "uid",
		Email:        "testuser@testuser.com",
		SessionToken: "abc123",
		UnwrapBKey:   "0f0f",
	}
	acct.GrantPermissions("dcdb5ae7add825d2", []string{"profile:email"})

	if err := accounts.SaveAccount("pass", acct); err != nil {
		t.Fatalf("save account: %v", err)
	}

	got, ok, err := accounts.LoadAccount("pass")
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	if !ok {
		t.Fatal("expected account to exist")
	}
	if got.SessionToken != acct.SessionToken || got.UnwrapBKey != acct.UnwrapBKey {
		t.Fatalf("mismatch after load: %+v", got)
	}
	if !got.HasSeenPermissions("dcdb5ae7add825d2", []string{"profile:email"}) {
		t.Fatal("granted permissions were not persisted")
	}

	info, err := os.Stat(filepath.Join(home, "account.json.enc"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("unexpected mode %v", info.Mode().Perm())
	}
}

func TestAccount_WrongPassphrase_Fails(t *testing.T) {
	accounts := store.NewFastAccountFileStore(t.TempDir())

	if err := accounts.SaveAccount("correct", domain.Account{SessionToken: "abc123"}); err != nil {
		t.Fatalf("save account: %v", err)
	}
	if _, _, err := accounts.LoadAccount("wrong"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}

func TestAccount_Missing_NotAnError(t *testing.T) {
	accounts := store.NewFastAccountFileStore(t.TempDir())

	_, ok, err := accounts.LoadAccount("pass")
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}
}

func TestAccount_Delete(t *testing.T) {
	accounts := store.NewFastAccountFileStore(t.TempDir())

	if err := accounts.DeleteAccount(); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if err := accounts.SaveAccount("pass", domain.Account{SessionToken: "abc123"}); err != nil {
		t.Fatalf("save account: %v", err)
	}
	if err := accounts.DeleteAccount(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := accounts.LoadAccount("pass"); ok {
		t.Fatal("account still present after delete")
	}
}

func TestAccount_TamperedFile_Fails(t *testing.T) {
	home := t.TempDir()
	accounts := store.NewFastAccountFileStore(home)
	if err := accounts.SaveAccount("pass", domain.Account{SessionToken: "abc123"}); err != nil {
		t.Fatalf("save account: %v", err)
	}

	path := filepath.Join(home, "account.json.enc")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// Flip the version so the AAD no longer matches.
	b = []byte(replaceOnce(string(b), `"v":1`, `"v":0`))
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := accounts.LoadAccount("pass"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}

func replaceOnce(s, old, new string) string {
	for i := 0; i+len(old) <= len(s); i++ {
		if s[i:i+len(old)] == old {
			return s[:i] + new + s[i+len(old):]
		}
	}
	return s
}
