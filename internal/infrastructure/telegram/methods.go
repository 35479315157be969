package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/pkg/errcodes"
)

// noPrice никогда не совпадает с ценой из каталога: такая форма не подтверждается.
const noPrice int64 = -1

// paymentForm хранит форму оплаты и инвойс, по которому она получена.
type paymentForm struct {
	formID  int64
	invoice tg.InputInvoiceClass
}

// FetchCatalog: текущий каталог подарков.
func (c *Client) FetchCatalog(ctx context.Context) ([]entity.Listing, error) {
	ctx, cancel, err := c.call(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	resRaw, err := c.api.PaymentsGetStarGifts(ctx, 0)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.CatalogFetchFailed, "failed to fetch star gifts")
	}

	var giftsInterfaces []tg.StarGiftClass
	switch res := resRaw.(type) {
	case *tg.PaymentsStarGifts:
		giftsInterfaces = res.Gifts
	case *tg.PaymentsStarGiftsNotModified:
		return []entity.Listing{}, nil
	default:
		return nil, domain.NewError(errcodes.CatalogFetchFailed, fmt.Sprintf("unexpected response type: %T", resRaw))
	}

	result := make([]entity.Listing, 0, len(giftsInterfaces))

	for _, gRaw := range giftsInterfaces {
		g, ok := gRaw.(*tg.StarGift)
		if !ok {
			continue
		}
		result = append(result, listingFromStarGift(g))
	}

	return result, nil
}

// FetchBalance: баланс звёзд текущего аккаунта.
func (c *Client) FetchBalance(ctx context.Context) (int64, error) {
	ctx, cancel, err := c.call(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()

	status, err := c.api.PaymentsGetStarsStatus(ctx, &tg.PaymentsGetStarsStatusRequest{
		Peer: &tg.InputPeerSelf{},
	})
	if err != nil {
		return 0, domain.WrapError(err, errcodes.BalanceFetchFailed, "failed to fetch stars status")
	}

	return starsBalance(status)
}

// Quote запрашивает форму оплаты подарка для получателя.
func (c *Client) Quote(ctx context.Context, listingID int64, target entity.Target) (entity.Quotation, error) {
	ctx, cancel, err := c.call(ctx)
	if err != nil {
		return entity.Quotation{}, err
	}
	defer cancel()

	invoice := &tg.InputInvoiceStarGift{
		Peer:     inputPeer(target),
		GiftID:   listingID,
		HideName: true,
	}

	form, err := c.api.PaymentsGetPaymentForm(ctx, &tg.PaymentsGetPaymentFormRequest{
		Invoice: invoice,
	})
	if err != nil {
		return entity.Quotation{}, domain.WrapError(err, errcodes.PurchaseTransportFailed, "failed to get payment form")
	}

	return quotationFromForm(form, invoice)
}

// Confirm оплачивает ранее полученную форму.
func (c *Client) Confirm(ctx context.Context, quotation entity.Quotation) error {
	form, ok := quotation.Handle.(paymentForm)
	if !ok {
		return domain.NewError(errcodes.UnexpectedPaymentForm, fmt.Sprintf("unexpected quotation handle: %T", quotation.Handle))
	}

	ctx, cancel, err := c.call(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	_, err = c.api.PaymentsSendStarsForm(ctx, &tg.PaymentsSendStarsFormRequest{
		FormID:  form.formID,
		Invoice: form.invoice,
	})
	if err != nil {
		return domain.WrapError(err, errcodes.PurchaseTransportFailed, "failed to send stars form")
	}

	return nil
}

// CreateChannel создаёт broadcast-канал для выдачи подарков.
func (c *Client) CreateChannel(ctx context.Context, title, about string) (entity.Target, error) {
	ctx, cancel, err := c.call(ctx)
	if err != nil {
		return entity.Target{}, err
	}
	defer cancel()

	updates, err := c.api.ChannelsCreateChannel(ctx, &tg.ChannelsCreateChannelRequest{
		Broadcast: true,
		Title:     title,
		About:     about,
	})
	if err != nil {
		return entity.Target{}, domain.WrapError(err, errcodes.ChannelCreateFailed, "failed to create channel")
	}

	var chats []tg.ChatClass
	switch u := updates.(type) {
	case *tg.Updates:
		chats = u.Chats
	case *tg.UpdatesCombined:
		chats = u.Chats
	}

	target, ok := channelTarget(chats, 0)
	if !ok {
		return entity.Target{}, domain.NewError(errcodes.ChannelCreateFailed, "created channel not found in updates")
	}

	return target, nil
}

// ResolveUsername ищет пользователя или канал по username.
func (c *Client) ResolveUsername(ctx context.Context, kind entity.RecipientKind, username string) (entity.Target, error) {
	ctx, cancel, err := c.call(ctx)
	if err != nil {
		return entity.Target{}, err
	}
	defer cancel()

	resolved, err := c.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		return entity.Target{}, domain.WrapError(err, errcodes.RecipientUnresolvable, "failed to resolve username")
	}

	return targetFromResolved(kind, resolved)
}

// ResolveChannelID ищет канал по id среди доступных аккаунту.
func (c *Client) ResolveChannelID(ctx context.Context, channelID int64) (entity.Target, error) {
	ctx, cancel, err := c.call(ctx)
	if err != nil {
		return entity.Target{}, err
	}
	defer cancel()

	res, err := c.api.ChannelsGetChannels(ctx, []tg.InputChannelClass{
		&tg.InputChannel{ChannelID: channelID},
	})
	if err != nil {
		return entity.Target{}, domain.WrapError(err, errcodes.RecipientUnresolvable, "failed to get channel")
	}

	var chats []tg.ChatClass
	switch r := res.(type) {
	case *tg.MessagesChats:
		chats = r.Chats
	case *tg.MessagesChatsSlice:
		chats = r.Chats
	}

	target, ok := channelTarget(chats, channelID)
	if !ok {
		return entity.Target{}, domain.NewError(errcodes.RecipientUnresolvable, "channel not found")
	}

	return target, nil
}

func listingFromStarGift(g *tg.StarGift) entity.Listing {
	l := entity.Listing{
		ID:            g.ID,
		Title:         g.Title,
		Price:         g.Stars,
		IsLimited:     g.Limited,
		IsSoldOut:     g.SoldOut,
		PerUserCapped: g.LimitedPerUser,
	}

	if total, ok := g.GetAvailabilityTotal(); ok {
		l.TotalSupply = &total
	}

	if g.LimitedPerUser {
		if remains, ok := g.GetPerUserRemains(); ok {
			l.RemainingSupply = &remains
		}
	}

	return l
}

func starsBalance(status *tg.PaymentsStarsStatus) (int64, error) {
	switch amount := status.Balance.(type) {
	case *tg.StarsAmount:
		return amount.Amount, nil
	default:
		return 0, domain.NewError(errcodes.BalanceFetchFailed, fmt.Sprintf("unexpected balance type: %T", status.Balance))
	}
}

func quotationFromForm(form tg.PaymentsPaymentFormClass, invoice tg.InputInvoiceClass) (entity.Quotation, error) {
	var (
		formID int64
		inv    tg.Invoice
	)

	switch f := form.(type) {
	case *tg.PaymentsPaymentFormStarGift:
		formID, inv = f.FormID, f.Invoice
	case *tg.PaymentsPaymentFormStars:
		formID, inv = f.FormID, f.Invoice
	default:
		return entity.Quotation{}, domain.NewError(errcodes.UnexpectedPaymentForm, fmt.Sprintf("unexpected payment form: %T", form))
	}

	price := noPrice
	if len(inv.Prices) == 1 {
		price = inv.Prices[0].Amount
	}

	return entity.Quotation{
		Price:  price,
		Handle: paymentForm{formID: formID, invoice: invoice},
	}, nil
}

func inputPeer(target entity.Target) tg.InputPeerClass {
	switch target.Kind {
	case entity.RecipientChannel:
		return &tg.InputPeerChannel{ChannelID: target.PeerID, AccessHash: target.AccessHash}
	case entity.RecipientUser:
		return &tg.InputPeerUser{UserID: target.PeerID, AccessHash: target.AccessHash}
	default:
		return &tg.InputPeerSelf{}
	}
}

// channelTarget ищет канал в списке чатов. id == 0: первый попавшийся.
func channelTarget(chats []tg.ChatClass, id int64) (entity.Target, bool) {
	for _, chat := range chats {
		channel, ok := chat.(*tg.Channel)
		if !ok {
			continue
		}
		if id != 0 && channel.ID != id {
			continue
		}
		return entity.Target{
			Kind:       entity.RecipientChannel,
			PeerID:     channel.ID,
			AccessHash: channel.AccessHash,
			Title:      channel.Title,
		}, true
	}
	return entity.Target{}, false
}

func targetFromResolved(kind entity.RecipientKind, resolved *tg.ContactsResolvedPeer) (entity.Target, error) {
	switch peer := resolved.Peer.(type) {
	case *tg.PeerUser:
		if kind != entity.RecipientUser {
			break
		}
		for _, u := range resolved.Users {
			user, ok := u.(*tg.User)
			if !ok || user.ID != peer.UserID {
				continue
			}
			title := user.Username
			if title == "" {
				title = user.FirstName
			}
			return entity.Target{
				Kind:       entity.RecipientUser,
				PeerID:     user.ID,
				AccessHash: user.AccessHash,
				Title:      title,
			}, nil
		}
	case *tg.PeerChannel:
		if kind != entity.RecipientChannel {
			break
		}
		if target, ok := channelTarget(resolved.Chats, peer.ChannelID); ok {
			return target, nil
		}
	}

	return entity.Target{}, domain.NewError(errcodes.RecipientUnresolvable,
		fmt.Sprintf("username does not resolve to a %s", kind))
}
