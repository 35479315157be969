package telegram_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/infrastructure/telegram"
	"tg_giftbuyer/pkg/errcodes"
)

type fakePeerAPI struct {
	usernames map[string]entity.Target
	channels  map[int64]entity.Target
	created   []string
	err       error
}

func (f *fakePeerAPI) ResolveUsername(_ context.Context, kind entity.RecipientKind, username string) (entity.Target, error) {
	if f.err != nil {
		return entity.Target{}, f.err
	}
	target, ok := f.usernames[username]
	if !ok || target.Kind != kind {
		return entity.Target{}, domain.NewError(errcodes.RecipientUnresolvable, "not found")
	}
	return target, nil
}

func (f *fakePeerAPI) ResolveChannelID(_ context.Context, id int64) (entity.Target, error) {
	target, ok := f.channels[id]
	if !ok {
		return entity.Target{}, domain.NewError(errcodes.RecipientUnresolvable, "not found")
	}
	return target, nil
}

func (f *fakePeerAPI) CreateChannel(_ context.Context, title, _ string) (entity.Target, error) {
	f.created = append(f.created, title)
	return entity.Target{Kind: entity.RecipientChannel, PeerID: int64(len(f.created)), Title: title}, nil
}

func TestResolver(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := &fakePeerAPI{
		usernames: map[string]entity.Target{
			"alice":    {Kind: entity.RecipientUser, PeerID: 1, AccessHash: 11},
			"giftsbox": {Kind: entity.RecipientChannel, PeerID: 2, AccessHash: 22},
		},
		channels: map[int64]entity.Target{
			1001: {Kind: entity.RecipientChannel, PeerID: 1001, AccessHash: 33},
		},
	}
	resolver := telegram.NewResolver(api)

	target, err := resolver.Resolve(ctx, entity.RecipientConfig{Kind: entity.RecipientSelf})
	rq.NoError(err)
	rq.Equal(entity.RecipientSelf, target.Kind)

	target, err = resolver.Resolve(ctx, entity.RecipientConfig{Kind: entity.RecipientUser, Identity: "@alice"})
	rq.NoError(err)
	rq.Equal(int64(1), target.PeerID)

	target, err = resolver.Resolve(ctx, entity.RecipientConfig{Kind: entity.RecipientChannel, Identity: "1001"})
	rq.NoError(err)
	rq.Equal(int64(33), target.AccessHash)

	target, err = resolver.Resolve(ctx, entity.RecipientConfig{Kind: entity.RecipientChannel, Identity: "giftsbox"})
	rq.NoError(err)
	rq.Equal(int64(2), target.PeerID)

	_, err = resolver.Resolve(ctx, entity.RecipientConfig{Kind: entity.RecipientUser, Identity: "giftsbox"})
	rq.True(domain.HasCode(err, errcodes.RecipientUnresolvable))

	_, err = resolver.Resolve(ctx, entity.RecipientConfig{Kind: entity.RecipientChannel, Identity: "42"})
	rq.True(domain.HasCode(err, errcodes.RecipientUnresolvable))

	_, err = resolver.Resolve(ctx, entity.RecipientConfig{Kind: entity.RecipientUser})
	rq.True(domain.HasCode(err, errcodes.RecipientUnresolvable))
}

func TestResolverCreatesNumberedChannels(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := &fakePeerAPI{}
	resolver := telegram.NewResolver(api)
	recipient := entity.RecipientConfig{Kind: entity.RecipientChannel, Identity: entity.NewChannelIdentity}

	for i := 0; i < 2; i++ {
		_, err := resolver.Resolve(ctx, recipient)
		rq.NoError(err)
	}

	rq.Equal([]string{"Gifts 1", "Gifts 2"}, api.created)
}

func TestResolverTransportErrorIsUnresolvable(t *testing.T) {
	rq := require.New(t)

	resolver := telegram.NewResolver(&fakePeerAPI{err: errors.New("rpc timeout")})

	_, err := resolver.Resolve(context.Background(), entity.RecipientConfig{Kind: entity.RecipientUser, Identity: "bob"})
	rq.True(domain.HasCode(err, errcodes.RecipientUnresolvable))
}
