package store

// NewFastAccountFileStore uses cheap scrypt parameters for tests.
func NewFastAccountFileStore(dir string) *AccountFileStore {
	return &AccountFileStore{dir: dir, params: scryptParams{N: 1 << 10, R: 8, P: 1}}
}
