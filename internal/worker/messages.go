package worker

import (
	"fmt"
	"html"
	"strings"
	"time"

	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/domain/service/purchase"
)

func msgHeartbeat(now time.Time) string {
	return fmt.Sprintf("✅ Бот исправен, последнее обновление: %s", now.Format("02.01.2006 15:04:05"))
}

func msgNewListings(listings []entity.Listing) string {
	var b strings.Builder

	b.WriteString("🎁 <b>Появились новые подарки:</b>\n")
	for _, l := range listings {
		supply := "∞"
		if s, ok := l.Supply(); ok {
			supply = fmt.Sprint(s)
		}
		fmt.Fprintf(&b, "Id: <code>%d</code>, Supply: %s, Price: %d ⭐\n", l.ID, supply, l.Price)
	}

	return b.String()
}

func msgChannelCreated(target entity.Target, listing entity.Listing, units int) string {
	return fmt.Sprintf("📢 Создан канал %s, отгружаем на него %d подарков с id <code>%d</code>.",
		html.EscapeString(target.String()), units, listing.ID)
}

func msgBatchDone(listing entity.Listing, target entity.Target, res purchase.Result) string {
	return fmt.Sprintf("💰 Куплено %d из %d подарков <code>%d</code> по %d ⭐ для %s.",
		res.Bought, res.Requested, listing.ID, listing.Price, html.EscapeString(target.String()))
}

func msgBatchFailed(listing entity.Listing, target entity.Target, res purchase.Result) string {
	return fmt.Sprintf("❌ Покупка подарка <code>%d</code> для %s прервана: куплено %d, брошено %d.\n%s",
		listing.ID, html.EscapeString(target.String()), res.Bought, res.Abandoned, html.EscapeString(res.Err.Error()))
}

func msgUnresolvable(recipient entity.RecipientConfig, err error) string {
	return fmt.Sprintf("⚠️ Получатель %s не найден и снят с очереди.\n%s",
		html.EscapeString(recipient.String()), html.EscapeString(err.Error()))
}

func msgCycleFailed(reason string) string {
	return fmt.Sprintf("🔥 Ошибка в цикле скупки, перезапуск через паузу.\n%s", html.EscapeString(reason))
}
