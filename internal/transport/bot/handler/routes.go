package handler

import (
	"tg_giftbuyer/internal/transport/bot/middleware"

	th "github.com/mymmrac/telego/telegohandler"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnPause, th.CommandEqual("pause"))
	adminGroup.HandleMessage(h.OnResume, th.CommandEqual("resume"))
	adminGroup.HandleMessage(h.OnPeers, th.CommandEqual("peers"))
	adminGroup.HandleMessage(h.OnAddPeer, th.CommandEqual("addpeer"))
	adminGroup.HandleMessage(h.OnRemovePeer, th.CommandEqual("removepeer"))
	adminGroup.HandleMessage(h.OnSetSort, th.CommandEqual("setsort"))
	adminGroup.HandleMessage(h.OnSetSupply, th.CommandEqual("setsupply"))

	// Обработчик callback-запросов для списка получателей
	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminID))

	cbGroup.HandleCallbackQuery(h.OnPeersCallback, th.CallbackDataPrefix(peersPagePrefix))
	cbGroup.HandleCallbackQuery(h.OnRemoveLastCallback, th.CallbackDataEqual(removeLastData))
}
