package view

import (
	"fmt"
	"html"
	"strings"

	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/worker"
)

const StartMessage = `👋 <b>Скупщик подарков</b>

/status — состояние цикла
/pause, /resume — пауза и продолжение
/peers — очередь получателей
/addpeer <code>self|channel|user</code> <code>[id|@username|new]</code> <code>N</code> <code>[коллекций]</code>
/removepeer — убрать последнего
/setsort <code>asc|desc</code>
/setsupply <code>min</code> <code>max|*</code>`

const (
	Paused           = "⏸ Цикл на паузе"
	Resumed          = "▶️ Цикл продолжен"
	AlreadyPaused    = "⚠️ Цикл уже на паузе"
	AlreadyRunning   = "⚠️ Цикл уже работает"
	QueueEmpty       = "📋 <b>Очередь получателей пуста</b>\n\nДобавить: /addpeer"
	AddPeerUsage     = "❌ Использование: /addpeer <code>self|channel|user</code> <code>[id|@username|new]</code> <code>N</code> <code>[коллекций]</code>"
	SetSortUsage     = "❌ Использование: /setsort <code>asc|desc</code>"
	SetSupplyUsage   = "❌ Использование: /setsupply <code>min</code> <code>max|*</code>"
	PersistError     = "❌ Не удалось сохранить состояние, попробуйте ещё раз"
	PageTemplate     = "📋 <b>Получатели (%d)</b> (Стр. %d/%d)\n\n"
	PeerItemTemplate = "%d. %s: <b>%d</b> шт., коллекций %d\n"
)

func cycleStatus(stats worker.Stats) string {
	switch {
	case !stats.Running:
		return "⛔ остановлен"
	case stats.Paused:
		return "⏸ на паузе"
	default:
		return "🟢 работает"
	}
}

func Status(stats worker.Stats, policy entity.SelectionPolicy) string {
	return fmt.Sprintf(`📊 <b>Статус</b>

🔁 <b>Цикл:</b> %s
🔢 <b>Проходов:</b> %d
💰 <b>Баланс:</b> %d ⭐
🎁 <b>Куплено:</b> %d (потрачено %d ⭐)
⏭ <b>Пропущено:</b> %d
❌ <b>Сорванных пачек:</b> %d
📋 <b>Очередь:</b> %d
⚙️ <b>Политика:</b> %s`,
		cycleStatus(stats),
		stats.Cycles,
		stats.Balance,
		stats.Bought, stats.StarsSpent,
		stats.Skipped,
		stats.FailedBatches,
		stats.QueueLength,
		Policy(policy),
	)
}

func Policy(policy entity.SelectionPolicy) string {
	maxSupply := "∞"
	if policy.MaxSupply != nil {
		maxSupply = fmt.Sprint(*policy.MaxSupply)
	}
	return fmt.Sprintf("%s, тираж %d..%s", policy.SortOrder, policy.MinSupply, maxSupply)
}

func Recipient(r entity.RecipientConfig) string {
	return "<code>" + html.EscapeString(r.String()) + "</code>"
}

func PeersPage(peers []entity.RecipientConfig, page, totalPages, offset int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(PageTemplate, len(peers), page, totalPages))

	end := min(offset+PeersPerPage, len(peers))
	for i := offset; i < end; i++ {
		p := peers[i]
		sb.WriteString(fmt.Sprintf(PeerItemTemplate, i+1, Recipient(p), p.GiftQuota, p.CollectionQuota))
	}

	return sb.String()
}

const PeersPerPage = 10

func PeerAdded(r entity.RecipientConfig) string {
	return fmt.Sprintf("✅ Получатель %s добавлен в конец очереди, %d шт.", Recipient(r), r.GiftQuota)
}

func PeerRemoved(r entity.RecipientConfig) string {
	return fmt.Sprintf("✅ Получатель %s удалён", Recipient(r))
}

func PolicySet(policy entity.SelectionPolicy) string {
	return "✅ Политика: " + Policy(policy)
}

func Invalid(err error) string {
	return "❌ " + html.EscapeString(err.Error())
}
