package entity

type SortOrder string

const (
	SortSupplyAsc  SortOrder = "supply_asc"
	SortSupplyDesc SortOrder = "supply_desc"
)

func (s SortOrder) Valid() bool {
	return s == SortSupplyAsc || s == SortSupplyDesc
}

// SelectionPolicy: правила выбора подарка. MaxSupply == nil: без верхней границы.
type SelectionPolicy struct {
	SortOrder SortOrder `json:"sort" validate:"required,oneof=supply_asc supply_desc"`
	MinSupply int       `json:"min_supply" validate:"gte=0"`
	MaxSupply *int      `json:"max_supply,omitempty" validate:"omitempty,gte=0"`
}

// Bounded сообщает, задана ли конечная верхняя граница тиража.
func (p SelectionPolicy) Bounded() bool {
	return p.MaxSupply != nil
}

// State хранит очередь получателей и политику.
type State struct {
	Peers  []RecipientConfig `json:"peers"`
	Policy SelectionPolicy   `json:"policy"`
}

// Clone делает глубокую копию состояния.
func (s State) Clone() State {
	out := State{
		Peers:  make([]RecipientConfig, len(s.Peers)),
		Policy: s.Policy,
	}
	copy(out.Peers, s.Peers)
	if s.Policy.MaxSupply != nil {
		m := *s.Policy.MaxSupply
		out.Policy.MaxSupply = &m
	}
	return out
}

const (
	defaultGiftQuota       = 1000000
	defaultCollectionQuota = 10
	defaultMaxSupply       = 1000000
)

// DefaultState используется при первом запуске, получатель один: self.
func DefaultState() State {
	maxSupply := defaultMaxSupply
	return State{
		Peers: []RecipientConfig{{
			Kind:            RecipientSelf,
			GiftQuota:       defaultGiftQuota,
			CollectionQuota: defaultCollectionQuota,
		}},
		Policy: SelectionPolicy{
			SortOrder: SortSupplyAsc,
			MinSupply: 0,
			MaxSupply: &maxSupply,
		},
	}
}
