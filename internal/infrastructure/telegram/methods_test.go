package telegram

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/require"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/pkg/errcodes"
)

func TestListingFromStarGift(t *testing.T) {
	rq := require.New(t)

	g := &tg.StarGift{
		ID:      5170233102089322756,
		Title:   "Plush Pepe",
		Stars:   2500,
		Limited: true,
	}
	g.SetAvailabilityTotal(50000)

	l := listingFromStarGift(g)
	rq.Equal(int64(5170233102089322756), l.ID)
	rq.Equal(int64(2500), l.Price)
	rq.True(l.IsLimited)
	rq.False(l.IsSoldOut)
	rq.False(l.PerUserCapped)

	supply, ok := l.Supply()
	rq.True(ok)
	rq.Equal(50000, supply)
	rq.Nil(l.RemainingSupply)
}

func TestListingFromStarGiftUnlimited(t *testing.T) {
	rq := require.New(t)

	l := listingFromStarGift(&tg.StarGift{ID: 1, Stars: 15})

	_, ok := l.Supply()
	rq.False(ok)
	rq.False(l.IsLimited)
}

func TestStarsBalance(t *testing.T) {
	rq := require.New(t)

	balance, err := starsBalance(&tg.PaymentsStarsStatus{Balance: &tg.StarsAmount{Amount: 1234}})
	rq.NoError(err)
	rq.Equal(int64(1234), balance)

	_, err = starsBalance(&tg.PaymentsStarsStatus{Balance: &tg.StarsTonAmount{Amount: 1}})
	rq.True(domain.HasCode(err, errcodes.BalanceFetchFailed))
}

func TestQuotationFromForm(t *testing.T) {
	invoice := &tg.InputInvoiceStarGift{Peer: &tg.InputPeerSelf{}, GiftID: 7}

	tests := []struct {
		name      string
		form      tg.PaymentsPaymentFormClass
		wantPrice int64
		wantForm  int64
		wantCode  string
	}{
		{
			name: "Star gift form",
			form: &tg.PaymentsPaymentFormStarGift{
				FormID:  100,
				Invoice: tg.Invoice{Prices: []tg.LabeledPrice{{Label: "gift", Amount: 350}}},
			},
			wantPrice: 350,
			wantForm:  100,
		},
		{
			name: "Stars form",
			form: &tg.PaymentsPaymentFormStars{
				FormID:  200,
				Invoice: tg.Invoice{Prices: []tg.LabeledPrice{{Label: "gift", Amount: 99}}},
			},
			wantPrice: 99,
			wantForm:  200,
		},
		{
			name: "Several price lines never match",
			form: &tg.PaymentsPaymentFormStarGift{
				FormID: 300,
				Invoice: tg.Invoice{Prices: []tg.LabeledPrice{
					{Label: "gift", Amount: 350},
					{Label: "fee", Amount: 1},
				}},
			},
			wantPrice: noPrice,
			wantForm:  300,
		},
		{
			name:     "Bot payment form is rejected",
			form:     &tg.PaymentsPaymentForm{FormID: 400},
			wantCode: string(errcodes.UnexpectedPaymentForm),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			q, err := quotationFromForm(tt.form, invoice)
			if tt.wantCode != "" {
				code, ok := domain.GetCode(err)
				rq.True(ok)
				rq.Equal(tt.wantCode, string(code))
				return
			}

			rq.NoError(err)
			rq.Equal(tt.wantPrice, q.Price)

			handle, ok := q.Handle.(paymentForm)
			rq.True(ok)
			rq.Equal(tt.wantForm, handle.formID)
			rq.Equal(invoice, handle.invoice)
		})
	}
}

func TestInputPeer(t *testing.T) {
	rq := require.New(t)

	rq.Equal(&tg.InputPeerSelf{}, inputPeer(entity.Target{Kind: entity.RecipientSelf}))
	rq.Equal(&tg.InputPeerChannel{ChannelID: 10, AccessHash: 20},
		inputPeer(entity.Target{Kind: entity.RecipientChannel, PeerID: 10, AccessHash: 20}))
	rq.Equal(&tg.InputPeerUser{UserID: 30, AccessHash: 40},
		inputPeer(entity.Target{Kind: entity.RecipientUser, PeerID: 30, AccessHash: 40}))
}

func TestChannelTarget(t *testing.T) {
	rq := require.New(t)

	chats := []tg.ChatClass{
		&tg.Chat{ID: 1, Title: "group"},
		&tg.Channel{ID: 2, AccessHash: 22, Title: "Gifts 1"},
		&tg.Channel{ID: 3, AccessHash: 33, Title: "Gifts 2"},
	}

	target, ok := channelTarget(chats, 0)
	rq.True(ok)
	rq.Equal(int64(2), target.PeerID)

	target, ok = channelTarget(chats, 3)
	rq.True(ok)
	rq.Equal(entity.Target{Kind: entity.RecipientChannel, PeerID: 3, AccessHash: 33, Title: "Gifts 2"}, target)

	_, ok = channelTarget(chats, 1)
	rq.False(ok)
}

func TestTargetFromResolved(t *testing.T) {
	rq := require.New(t)

	userPeer := &tg.ContactsResolvedPeer{
		Peer:  &tg.PeerUser{UserID: 5},
		Users: []tg.UserClass{&tg.User{ID: 5, AccessHash: 55, Username: "alice"}},
	}

	target, err := targetFromResolved(entity.RecipientUser, userPeer)
	rq.NoError(err)
	rq.Equal(entity.Target{Kind: entity.RecipientUser, PeerID: 5, AccessHash: 55, Title: "alice"}, target)

	_, err = targetFromResolved(entity.RecipientChannel, userPeer)
	rq.True(domain.HasCode(err, errcodes.RecipientUnresolvable))

	channelPeer := &tg.ContactsResolvedPeer{
		Peer:  &tg.PeerChannel{ChannelID: 8},
		Chats: []tg.ChatClass{&tg.Channel{ID: 8, AccessHash: 88, Title: "box"}},
	}

	target, err = targetFromResolved(entity.RecipientChannel, channelPeer)
	rq.NoError(err)
	rq.Equal(int64(88), target.AccessHash)
}
