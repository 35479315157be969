package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/transport/bot/view"
	"tg_giftbuyer/internal/worker"
)

func TestPolicy(t *testing.T) {
	rq := require.New(t)

	maxSupply := 5000
	rq.Equal("supply_asc, тираж 10..5000", view.Policy(entity.SelectionPolicy{
		SortOrder: entity.SortSupplyAsc, MinSupply: 10, MaxSupply: &maxSupply,
	}))
	rq.Equal("supply_desc, тираж 0..∞", view.Policy(entity.SelectionPolicy{SortOrder: entity.SortSupplyDesc}))
}

func TestPeersPage(t *testing.T) {
	rq := require.New(t)

	peers := make([]entity.RecipientConfig, 0, 12)
	for i := 0; i < 12; i++ {
		peers = append(peers, entity.RecipientConfig{Kind: entity.RecipientUser, Identity: "<u>", GiftQuota: i})
	}

	text := view.PeersPage(peers, 2, 2, 10)
	rq.Contains(text, "Получатели (12)")
	rq.Contains(text, "11. <code>user:&lt;u&gt;</code>: <b>10</b>")
	rq.Contains(text, "12. ")
	rq.NotContains(text, "\n1. ")
}

func TestStatus(t *testing.T) {
	rq := require.New(t)

	text := view.Status(worker.Stats{Paused: true, Running: true, Bought: 3, QueueLength: 2}, entity.DefaultState().Policy)
	rq.Contains(text, "на паузе")
	rq.Contains(text, "<b>Очередь:</b> 2")
}

func TestStatusCycleState(t *testing.T) {
	tests := []struct {
		name  string
		stats worker.Stats
		want  string
	}{
		{name: "Not started", stats: worker.Stats{Paused: true}, want: "остановлен"},
		{name: "Running", stats: worker.Stats{Running: true}, want: "работает"},
		{name: "Paused", stats: worker.Stats{Running: true, Paused: true}, want: "на паузе"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Contains(t, view.Status(tt.stats, entity.DefaultState().Policy), tt.want)
		})
	}
}
