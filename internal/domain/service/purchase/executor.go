// Package purchase выполняет пачку покупок подарка для одного получателя.
package purchase

import (
	"context"
	"fmt"
	"log/slog"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/pkg/contextx"
	"tg_giftbuyer/pkg/errcodes"
	"tg_giftbuyer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Client запрашивает форму оплаты и подтверждает её.
type Client interface {
	Quote(ctx context.Context, listingID int64, target entity.Target) (entity.Quotation, error)
	Confirm(ctx context.Context, quotation entity.Quotation) error
}

// Observer получает каждую попытку. Может быть nil.
type Observer func(attempt entity.PurchaseAttempt)

type Executor struct {
	client   Client
	observer Observer
}

func NewExecutor(client Client) *Executor {
	return &Executor{client: client}
}

func (e *Executor) WithObserver(observer Observer) *Executor {
	e.observer = observer
	return e
}

// Result: итог пачки.
type Result struct {
	Requested int
	Bought    int
	Skipped   int
	Abandoned int
	// Err: ошибка транспорта, оборвавшая пачку. Повторов нет:
	// частичный confirm мог уже списать звёзды.
	Err error
}

// Failed сообщает, что пачка оборвана ошибкой транспорта.
func (r Result) Failed() bool {
	return r.Err != nil
}

// RemainingQuota возвращает квоту получателя после пачки, после ошибки транспорта 0.
func (r Result) RemainingQuota(quota int) int {
	if r.Failed() {
		return 0
	}
	return max(0, quota-r.Bought)
}

// Execute делает до units последовательных покупок. Единица подтверждается только
// если цена в форме точно равна цене из каталога.
func (e *Executor) Execute(ctx context.Context, listing entity.Listing, target entity.Target, units int) Result {
	res := Result{Requested: units}

	log := logger(ctx).With(
		slog.Int64(logx.FieldListingID, listing.ID),
		logx.Stringer(logx.FieldRecipient, target),
	)

	for i := 0; i < units; i++ {
		if err := ctx.Err(); err != nil {
			res.Err = domain.WrapError(err, errcodes.PurchaseTransportFailed, "purchase interrupted")
			res.Abandoned = units - i
			break
		}

		attempt := e.buyOne(ctx, listing, target)
		e.observe(attempt)

		switch attempt.Outcome {
		case entity.OutcomeSucceeded:
			res.Bought++
		case entity.OutcomePriceMismatch:
			res.Skipped++
			log.Warn("quoted price differs from catalog, unit skipped",
				slog.Int64(logx.FieldPrice, listing.Price),
				slog.Int64(logx.FieldQuotedPrice, attempt.QuotedPrice),
			)
		case entity.OutcomeTransportError:
			res.Err = attempt.Err
			res.Abandoned = units - i - 1
			log.Error("purchase batch abandoned",
				slog.Int(logx.FieldUnits, res.Abandoned),
				logx.Error(attempt.Err),
			)
			return res
		}
	}

	log.Info("purchase batch finished",
		slog.Int("bought", res.Bought),
		slog.Int("skipped", res.Skipped),
		slog.Int("requested", res.Requested),
	)

	return res
}

func (e *Executor) buyOne(ctx context.Context, listing entity.Listing, target entity.Target) entity.PurchaseAttempt {
	attempt := entity.PurchaseAttempt{
		ListingID: listing.ID,
		Target:    target,
	}

	quotation, err := e.client.Quote(ctx, listing.ID, target)
	if err != nil {
		attempt.Outcome = entity.OutcomeTransportError
		attempt.Err = transportError(err, "quote")
		return attempt
	}

	attempt.QuotedPrice = quotation.Price

	if quotation.Price != listing.Price {
		attempt.Outcome = entity.OutcomePriceMismatch
		return attempt
	}

	if err := e.client.Confirm(ctx, quotation); err != nil {
		attempt.Outcome = entity.OutcomeTransportError
		attempt.Err = transportError(err, "confirm")
		return attempt
	}

	attempt.Outcome = entity.OutcomeSucceeded
	return attempt
}

func (e *Executor) observe(attempt entity.PurchaseAttempt) {
	if e.observer != nil {
		e.observer(attempt)
	}
}

func transportError(err error, op string) error {
	if domain.HasCode(err, errcodes.PurchaseTransportFailed) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return domain.WrapError(err, errcodes.PurchaseTransportFailed, op+" failed")
}
