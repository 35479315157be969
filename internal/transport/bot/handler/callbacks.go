package handler

import (
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"tg_giftbuyer/internal/transport/bot/view"
)

const (
	peersPagePrefix = "peers_page"
	removeLastData  = "peers_remove_last"
)

// peersPage рендерит страницу очереди и клавиатуру к ней.
func (h *Handler) peersPage(page int) (string, *telego.InlineKeyboardMarkup) {
	peers := h.engine.QueueSnapshot()
	if len(peers) == 0 {
		return view.QueueEmpty, nil
	}

	totalPages := (len(peers) + view.PeersPerPage - 1) / view.PeersPerPage
	page = max(1, min(page, totalPages))

	text := view.PeersPage(peers, page, totalPages, (page-1)*view.PeersPerPage)

	return text, createPaginationKeyboard(page, totalPages)
}

func (h *Handler) OnPeersCallback(ctx *th.Context, query telego.CallbackQuery) error {
	// Формат: "peers_page:<number>"
	var page int
	if _, err := fmt.Sscanf(query.Data, peersPagePrefix+":%d", &page); err != nil || page < 1 {
		page = 1
	}

	h.editPeers(ctx, query, page)

	_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))

	return nil
}

func (h *Handler) OnRemoveLastCallback(ctx *th.Context, query telego.CallbackQuery) error {
	removed, err := h.engine.RemoveLastRecipient(ctx)
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText("❌ " + err.Error()).WithShowAlert())
		return nil
	}

	h.editPeers(ctx, query, 1)

	_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
		WithText("✅ Удалён " + removed.String()))

	return nil
}

func (h *Handler) editPeers(ctx *th.Context, query telego.CallbackQuery, page int) {
	if query.Message == nil {
		return
	}

	text, keyboard := h.peersPage(page)

	// Если страница не изменилась, Telegram вернёт ошибку: её игнорируем.
	_, _ = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(query.Message.GetChat().ID),
		MessageID:   query.Message.GetMessageID(),
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: keyboard,
	})
}

func createPaginationKeyboard(page, totalPages int) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf("%s:%d", peersPagePrefix, page-1)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", page, totalPages)).
		WithCallbackData("noop")) // noop = no operation

	if page < totalPages {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf("%s:%d", peersPagePrefix, page+1)))
	}

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(buttons...),
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("🗑 Удалить последнего").WithCallbackData(removeLastData)),
	)
}
