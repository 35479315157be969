package handler

import (
	"errors"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/transport/bot/view"
	"tg_giftbuyer/pkg/errcodes"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.Status(h.engine.Stats(), h.engine.PolicySnapshot()))
}

func (h *Handler) OnPause(ctx *th.Context, msg telego.Message) error {
	if h.engine.IsPaused() {
		return h.sendHTML(ctx, msg.Chat.ID, view.AlreadyPaused)
	}

	h.engine.Pause()

	return h.sendHTML(ctx, msg.Chat.ID, view.Paused)
}

func (h *Handler) OnResume(ctx *th.Context, msg telego.Message) error {
	if !h.engine.IsPaused() {
		return h.sendHTML(ctx, msg.Chat.ID, view.AlreadyRunning)
	}

	h.engine.Resume()

	return h.sendHTML(ctx, msg.Chat.ID, view.Resumed)
}

func (h *Handler) OnPeers(ctx *th.Context, msg telego.Message) error {
	text, keyboard := h.peersPage(1)

	params := &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: msg.Chat.ID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := ctx.Bot().SendMessage(ctx, params)
	return err
}

// OnAddPeer добавляет получателя в конец очереди.
// Использование: /addpeer channel new 10
func (h *Handler) OnAddPeer(ctx *th.Context, msg telego.Message) error {
	recipient, err := parseAddPeer(commandArgs(msg.Text))
	if errors.Is(err, errUsage) {
		return h.sendHTML(ctx, msg.Chat.ID, view.AddPeerUsage)
	}
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.Invalid(err))
	}

	if err := h.engine.AppendRecipient(ctx, recipient); err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.PeerAdded(recipient))
}

func (h *Handler) OnRemovePeer(ctx *th.Context, msg telego.Message) error {
	removed, err := h.engine.RemoveLastRecipient(ctx)
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.PeerRemoved(removed))
}

func (h *Handler) OnSetSort(ctx *th.Context, msg telego.Message) error {
	order, err := parseSort(commandArgs(msg.Text))
	if errors.Is(err, errUsage) {
		return h.sendHTML(ctx, msg.Chat.ID, view.SetSortUsage)
	}
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.Invalid(err))
	}

	policy := h.engine.PolicySnapshot()
	policy.SortOrder = order

	return h.setPolicy(ctx, msg.Chat.ID, policy)
}

// OnSetSupply задаёт границы тиража: /setsupply 0 5000, /setsupply 100 *
func (h *Handler) OnSetSupply(ctx *th.Context, msg telego.Message) error {
	minSupply, maxSupply, err := parseSupply(commandArgs(msg.Text))
	if errors.Is(err, errUsage) {
		return h.sendHTML(ctx, msg.Chat.ID, view.SetSupplyUsage)
	}
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.Invalid(err))
	}

	policy := h.engine.PolicySnapshot()
	policy.MinSupply = minSupply
	policy.MaxSupply = maxSupply

	return h.setPolicy(ctx, msg.Chat.ID, policy)
}

func (h *Handler) setPolicy(ctx *th.Context, chatID int64, policy entity.SelectionPolicy) error {
	if err := h.engine.SetPolicy(ctx, policy); err != nil {
		return h.replyError(ctx, chatID, err)
	}

	return h.sendHTML(ctx, chatID, view.PolicySet(policy))
}

// Вспомогательные методы

// replyError показывает пользователю ошибки ввода и пустой очереди,
// остальное уходит в лог через возвращаемую ошибку.
func (h *Handler) replyError(ctx *th.Context, chatID int64, err error) error {
	code, _ := domain.GetCode(err)

	switch code {
	case errcodes.InvalidRecipient, errcodes.InvalidPolicy:
		return h.sendHTML(ctx, chatID, view.Invalid(err))
	case errcodes.QueueEmpty:
		return h.sendHTML(ctx, chatID, view.QueueEmpty)
	default:
		if sendErr := h.sendHTML(ctx, chatID, view.PersistError); sendErr != nil {
			return errors.Join(err, sendErr)
		}
		return err
	}
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}
