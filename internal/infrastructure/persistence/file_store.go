package persistence

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/pkg/errcodes"
)

// FileStore хранит состояние в json-файле. Запись атомарная: temp-файл + rename.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (entity.State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger(ctx).Info("state file not found, using defaults")
		return entity.DefaultState(), nil
	}
	if err != nil {
		return entity.State{}, domain.WrapError(err, errcodes.StateFetchFailed, "failed to read state file")
	}

	return decodeState(data)
}

func (s *FileStore) Save(_ context.Context, state entity.State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return domain.WrapError(err, errcodes.StatePersistFailed, "failed to create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return domain.WrapError(err, errcodes.StatePersistFailed, "failed to write state")
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return domain.WrapError(err, errcodes.StatePersistFailed, "failed to sync state")
	}

	if err = tmp.Close(); err != nil {
		return domain.WrapError(err, errcodes.StatePersistFailed, "failed to close state")
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return domain.WrapError(err, errcodes.StatePersistFailed, "failed to replace state file")
	}

	return nil
}
