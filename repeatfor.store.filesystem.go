package repeatfor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FilesystemStore keeps expansions as JSON files below a root directory.
// Files are sharded by the first two characters of the key:
//
//	<root>/
//	  3f/
//	    3fa1...e9.json
//	  a0/
//	    a07c...12.json
//
// Writes go to a temporary file that is renamed into place, so concurrent
// readers never see a partial entry.
type FilesystemStore struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStoreDriver is the driver for creating FilesystemStore instances.
type FilesystemStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverNameFilesystem, &FilesystemStoreDriver{})
}

// Open creates a new FilesystemStore instance.
// The DSN is the root directory path.
func (d *FilesystemStoreDriver) Open(dsn string) (ExpansionStore, error) {
	return NewFilesystemStore(dsn)
}

// NewFilesystemStore creates a filesystem-backed expansion store.
// The root directory will be created if it doesn't exist.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, &StoreError{Message: ErrMsgInvalidStoreRoot}
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StoreError{Message: ErrMsgCreateStoreDir, Key: root, Cause: err}
	}

	return &FilesystemStore{root: root}, nil
}

// Root returns the store directory.
func (s *FilesystemStore) Root() string {
	return s.root
}

// Get reads an expansion from disk.
func (s *FilesystemStore) Get(ctx context.Context, key string) (*StoredExpansion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	filename := s.path(key)
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStoreNotFoundError(key)
		}
		return nil, &StoreError{Message: ErrMsgReadExpansion, Key: filename, Cause: err}
	}

	var exp StoredExpansion
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, &StoreError{Message: ErrMsgUnmarshalExpansion, Key: filename, Cause: err}
	}
	return &exp, nil
}

// Put writes an expansion, replacing any previous file for the key.
func (s *FilesystemStore) Put(ctx context.Context, exp *StoredExpansion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateExpansion(exp); err != nil {
		return err
	}

	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return &StoreError{Message: ErrMsgMarshalExpansion, Key: exp.Key, Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	filename := s.path(exp.Key)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, FilesystemDirPermissions); err != nil {
		return &StoreError{Message: ErrMsgCreateStoreDir, Key: dir, Cause: err}
	}
	return writeFileAtomic(filename, data)
}

// Delete removes the file for key. Unknown keys are ignored.
func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	filename := s.path(key)
	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return &StoreError{Message: ErrMsgDeleteExpansion, Key: filename, Cause: err}
	}
	return nil
}

// Close marks the store closed. Files on disk are kept.
func (s *FilesystemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// path returns the file name for a validated key
func (s *FilesystemStore) path(key string) string {
	shard := key
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return filepath.Join(s.root, shard, key+FilesystemEntrySuffix)
}

// writeFileAtomic writes data next to filename and renames it into place
func writeFileAtomic(filename string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), FilesystemTempPattern)
	if err != nil {
		return &StoreError{Message: ErrMsgWriteExpansion, Key: filename, Cause: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &StoreError{Message: ErrMsgWriteExpansion, Key: filename, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &StoreError{Message: ErrMsgWriteExpansion, Key: filename, Cause: err}
	}
	if err := os.Chmod(tmpName, FilesystemFilePermissions); err != nil {
		_ = os.Remove(tmpName)
		return &StoreError{Message: ErrMsgWriteExpansion, Key: filename, Cause: err}
	}
	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return &StoreError{Message: ErrMsgWriteExpansion, Key: filename, Cause: err}
	}
	return nil
}
