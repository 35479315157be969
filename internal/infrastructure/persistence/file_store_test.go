package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/infrastructure/persistence"
	"tg_giftbuyer/pkg/errcodes"
)

func TestFileStore(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "config.json")
	store := persistence.NewFileStore(path)

	state, err := store.Load(ctx)
	rq.NoError(err)
	rq.Equal(entity.DefaultState(), state)

	state.Peers = append(state.Peers, entity.RecipientConfig{Kind: entity.RecipientUser, Identity: "bob", GiftQuota: 3})
	rq.NoError(store.Save(ctx, state))

	loaded, err := store.Load(ctx)
	rq.NoError(err)
	rq.Equal(state, loaded)

	entries, err := os.ReadDir(filepath.Dir(path))
	rq.NoError(err)
	rq.Len(entries, 1, "temp file must not be left behind")
}

func TestFileStoreMalformed(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "config.json")
	rq.NoError(os.WriteFile(path, []byte("not json"), 0o600))

	_, err := persistence.NewFileStore(path).Load(context.Background())
	rq.True(domain.HasCode(err, errcodes.StateMalformed))
}

func TestFileStoreReadFailure(t *testing.T) {
	rq := require.New(t)

	// каталог вместо файла: чтение падает, но это не порча данных
	_, err := persistence.NewFileStore(t.TempDir()).Load(context.Background())
	rq.True(domain.HasCode(err, errcodes.StateFetchFailed))
	rq.False(domain.HasCode(err, errcodes.StateMalformed))
}

func TestFileStoreSaveFailure(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "missing", "config.json")

	err := persistence.NewFileStore(path).Save(context.Background(), entity.DefaultState())
	rq.True(domain.HasCode(err, errcodes.StatePersistFailed))
}

func TestMemoryStore(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := persistence.NewMemoryStore(nil)

	state, err := store.Load(ctx)
	rq.NoError(err)
	rq.Equal(entity.DefaultState(), state)

	state.Peers = nil
	rq.NoError(store.Save(ctx, state))
	state.Policy.MinSupply = 99

	loaded, err := store.Load(ctx)
	rq.NoError(err)
	rq.Empty(loaded.Peers)
	rq.Equal(0, loaded.Policy.MinSupply)
	rq.Equal(1, store.Saves())
}

func TestFileStoreReopenUserNamedNew(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "config.json")
	state := entity.DefaultState()
	state.Peers = append(state.Peers, entity.RecipientConfig{Kind: entity.RecipientUser, Identity: entity.NewChannelIdentity, GiftQuota: 2})
	rq.NoError(persistence.NewFileStore(path).Save(ctx, state))

	loaded, err := persistence.NewFileStore(path).Load(ctx)
	rq.NoError(err)
	rq.Equal(state, loaded)
	rq.Equal(entity.RecipientUser, loaded.Peers[len(loaded.Peers)-1].Kind)
	rq.Equal(entity.NewChannelIdentity, loaded.Peers[len(loaded.Peers)-1].Identity)
}
