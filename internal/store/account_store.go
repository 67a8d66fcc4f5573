package store

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"handoff/internal/domain"
	"handoff/internal/util/memzero"
)

const accountFile = "account.json.enc"

// AccountFileStore persists the signed-in account, passphrase-encrypted.
type AccountFileStore struct {
	dir    string
	params scryptParams
	mu     sync.Mutex
}

// NewAccountFileStore returns an AccountFileStore rooted at dir.
func NewAccountFileStore(dir string) *AccountFileStore {
	return &AccountFileStore{dir: dir, params: defaultScryptParams()}
}

// SaveAccount encrypts and writes account, replacing any previous one.
func (s *AccountFileStore) SaveAccount(passphrase string, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(account)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	ct, err := seal(passphrase, raw, s.params)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, accountFile), ct, 0o600)
}

// LoadAccount reads and decrypts the stored account. ok is false when no
// account has been saved.
func (s *AccountFileStore) LoadAccount(passphrase string) (domain.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, accountFile))
	if err != nil || b == nil {
		return domain.Account{}, false, err
	}
	pt, err := open(passphrase, b)
	if err != nil {
		return domain.Account{}, false, err
	}
	defer memzero.Zero(pt)

	var account domain.Account
	if err := json.Unmarshal(pt, &account); err != nil {
		return domain.Account{}, false, err
	}
	return account, true, nil
}

// DeleteAccount removes the stored account.
func (s *AccountFileStore) DeleteAccount() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeFile(filepath.Join(s.dir, accountFile))
}

// Compile-time assertion that AccountFileStore implements domain.AccountStore.
var _ domain.AccountStore = (*AccountFileStore)(nil)
