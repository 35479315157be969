package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/pkg/errcodes"
)

type peerAPI interface {
	ResolveUsername(ctx context.Context, kind entity.RecipientKind, username string) (entity.Target, error)
	ResolveChannelID(ctx context.Context, channelID int64) (entity.Target, error)
	CreateChannel(ctx context.Context, title, about string) (entity.Target, error)
}

// Resolver превращает конфигурацию получателя в адресуемый пир.
// Любая ошибка поиска отдаётся как RecipientUnresolvable.
type Resolver struct {
	api        peerAPI
	collection atomic.Int64
}

func NewResolver(api peerAPI) *Resolver {
	return &Resolver{api: api}
}

func (r *Resolver) Resolve(ctx context.Context, recipient entity.RecipientConfig) (entity.Target, error) {
	target, err := r.resolve(ctx, recipient)
	if err != nil {
		if domain.HasCode(err, errcodes.RecipientUnresolvable) {
			return entity.Target{}, fmt.Errorf("resolve %s: %w", recipient, err)
		}
		return entity.Target{}, domain.WrapError(err, errcodes.RecipientUnresolvable,
			fmt.Sprintf("failed to resolve %s", recipient))
	}
	return target, nil
}

func (r *Resolver) resolve(ctx context.Context, recipient entity.RecipientConfig) (entity.Target, error) {
	identity := strings.TrimPrefix(strings.TrimSpace(recipient.Identity), "@")

	switch recipient.Kind {
	case entity.RecipientSelf:
		return entity.Target{Kind: entity.RecipientSelf}, nil

	case entity.RecipientChannel:
		if identity == entity.NewChannelIdentity {
			n := r.collection.Add(1)
			return r.api.CreateChannel(ctx,
				fmt.Sprintf("Gifts %d", n),
				fmt.Sprintf("My favourite collection of gifts %d", n),
			)
		}
		if id, err := strconv.ParseInt(identity, 10, 64); err == nil {
			return r.api.ResolveChannelID(ctx, id)
		}
		if identity == "" {
			break
		}
		return r.api.ResolveUsername(ctx, entity.RecipientChannel, identity)

	case entity.RecipientUser:
		if identity == "" {
			break
		}
		return r.api.ResolveUsername(ctx, entity.RecipientUser, identity)
	}

	return entity.Target{}, domain.NewError(errcodes.InvalidRecipient,
		fmt.Sprintf("recipient %s has no usable identity", recipient))
}
