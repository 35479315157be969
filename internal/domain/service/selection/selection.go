// Package selection выбирает подарок для покупки из снимка каталога.
// Все функции чистые: результат зависит только от аргументов.
package selection

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"tg_giftbuyer/internal/domain/entity"
)

// Normalize отбрасывает битые записи и нелимитированные подарки.
func Normalize(raw []entity.Listing) []entity.Listing {
	return lo.Filter(raw, func(l entity.Listing, _ int) bool {
		if l.ID == 0 || l.Price <= 0 {
			return false
		}
		if supply, ok := l.Supply(); ok && supply < 0 {
			return false
		}
		return l.IsLimited
	})
}

// Eligible проверяет один подарок против баланса и политики.
func Eligible(l entity.Listing, balance int64, policy entity.SelectionPolicy) bool {
	if l.IsSoldOut || l.UserExhausted() {
		return false
	}

	if l.Price > balance {
		return false
	}

	supply, ok := l.Supply()
	if !ok {
		// Безлимитный тираж не проходит конечную верхнюю границу.
		return !policy.Bounded()
	}

	if supply < policy.MinSupply {
		return false
	}

	return !policy.Bounded() || supply <= *policy.MaxSupply
}

// Filter возвращает подходящие подарки, отсортированные по тиражу.
// Подарки без тиража всегда в конце, порядок равных сохраняется.
func Filter(listings []entity.Listing, balance int64, policy entity.SelectionPolicy) []entity.Listing {
	out := lo.Filter(listings, func(l entity.Listing, _ int) bool {
		return Eligible(l, balance, policy)
	})

	slices.SortStableFunc(out, func(a, b entity.Listing) int {
		return compareSupply(a, b, policy.SortOrder)
	})

	return out
}

// Select возвращает первый кандидат: подарок с крайним тиражом.
func Select(listings []entity.Listing, balance int64, policy entity.SelectionPolicy) (entity.Listing, bool) {
	candidates := Filter(listings, balance, policy)
	if len(candidates) == 0 {
		return entity.Listing{}, false
	}
	return candidates[0], true
}

func compareSupply(a, b entity.Listing, order entity.SortOrder) int {
	as, aok := a.Supply()
	bs, bok := b.Supply()

	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	if order == entity.SortSupplyDesc {
		return cmp.Compare(bs, as)
	}
	return cmp.Compare(as, bs)
}
