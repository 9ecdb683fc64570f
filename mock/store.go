package mock

import "sitemirror"

var _ sitemirror.FileStore = (*FileStore)(nil)

// FileStore is a mock implementation of sitemirror.FileStore.
type FileStore struct {
	WriteFn          func(path string, data []byte) error
	WriteIfChangedFn func(path string, data []byte) (bool, error)
	ReadFn           func(path string) ([]byte, error)
	ExistsFn         func(path string) bool
}

func (s *FileStore) Write(path string, data []byte) error {
	return s.WriteFn(path, data)
}

func (s *FileStore) WriteIfChanged(path string, data []byte) (bool, error) {
	return s.WriteIfChangedFn(path, data)
}

func (s *FileStore) Read(path string) ([]byte, error) {
	return s.ReadFn(path)
}

func (s *FileStore) Exists(path string) bool {
	return s.ExistsFn(path)
}
