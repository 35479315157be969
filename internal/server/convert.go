package server

import (
	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/worker"
	"tg_giftbuyer/pkg/errcodes"
	"tg_giftbuyer/pkg/rest"
)

func newRESTRecipient(r entity.RecipientConfig) rest.Recipient {
	return rest.Recipient{
		Kind:            string(r.Kind),
		Identity:        r.Identity,
		GiftQuota:       r.GiftQuota,
		CollectionQuota: r.CollectionQuota,
	}
}

func newDomainRecipient(r rest.Recipient) entity.RecipientConfig {
	return entity.RecipientConfig{
		Kind:            entity.RecipientKind(r.Kind),
		Identity:        r.Identity,
		GiftQuota:       r.GiftQuota,
		CollectionQuota: r.CollectionQuota,
	}
}

func newRESTPolicy(p entity.SelectionPolicy) rest.Policy {
	return rest.Policy{
		Sort:      string(p.SortOrder),
		MinSupply: p.MinSupply,
		MaxSupply: p.MaxSupply,
	}
}

func newDomainPolicy(p rest.Policy) entity.SelectionPolicy {
	return entity.SelectionPolicy{
		SortOrder: entity.SortOrder(p.Sort),
		MinSupply: p.MinSupply,
		MaxSupply: p.MaxSupply,
	}
}

func newRESTState(paused bool, peers []entity.RecipientConfig, policy entity.SelectionPolicy, stats worker.Stats) rest.State {
	return rest.State{
		Paused: paused,
		Peers:  lo.Map(peers, func(r entity.RecipientConfig, _ int) rest.Recipient {
			return newRESTRecipient(r)
		}),
		Policy: newRESTPolicy(policy),
		Stats: rest.Stats{
			Cycles:        stats.Cycles,
			Bought:        stats.Bought,
			Skipped:       stats.Skipped,
			Abandoned:     stats.Abandoned,
			FailedBatches: stats.FailedBatches,
			StarsSpent:    stats.StarsSpent,
			Balance:       stats.Balance,
			Running:       stats.Running,
		},
	}
}

// newRESTError переводит доменную ошибку в классифицированную failure-ошибку.
func newRESTError(err error) error {
	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	switch code {
	case errcodes.InvalidRecipient, errcodes.InvalidPolicy:
		return failure.NewInvalidArgumentErrorFromError(err,
			failure.WithCode(code),
			failure.WithDescription(err.Error()),
		)
	case errcodes.QueueEmpty:
		return failure.NewNotFoundError(err.Error(),
			failure.WithCode(code),
			failure.WithDescription("recipient queue is empty"),
		)
	default:
		return err
	}
}
