package persistence

import (
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"tg_giftbuyer/internal/domain"
	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// peerSchema: получатель в формате config.json.
type peerSchema struct {
	PeerType       string `json:"peerType"`
	ID             *int64 `json:"id,omitempty"`
	Username       string `json:"username,omitempty"`
	MaxGifts       int    `json:"maxGifts"`
	MaxCollections int    `json:"maxCollections"`
}

// stateSchema: запись состояния целиком. MaxSupply == null значит без границы.
type stateSchema struct {
	Peers     []peerSchema `json:"peers"`
	Sort      string       `json:"sort"`
	MinSupply int          `json:"minSupply"`
	MaxSupply *int         `json:"maxSupply"`
}

func fromState(s entity.State) stateSchema {
	out := stateSchema{
		Peers:     make([]peerSchema, 0, len(s.Peers)),
		Sort:      string(s.Policy.SortOrder),
		MinSupply: s.Policy.MinSupply,
		MaxSupply: s.Policy.MaxSupply,
	}

	for _, p := range s.Peers {
		out.Peers = append(out.Peers, fromRecipient(p))
	}

	return out
}

func fromRecipient(r entity.RecipientConfig) peerSchema {
	p := peerSchema{
		PeerType:       string(r.Kind),
		MaxGifts:       r.GiftQuota,
		MaxCollections: r.CollectionQuota,
	}

	switch {
	case r.Kind == entity.RecipientSelf,
		r.Kind == entity.RecipientChannel && r.Identity == entity.NewChannelIdentity:
	default:
		if id, err := strconv.ParseInt(r.Identity, 10, 64); err == nil {
			p.ID = &id
		} else {
			p.Username = r.Identity
		}
	}

	return p
}

func (s stateSchema) toDomain() (entity.State, error) {
	state := entity.State{
		Peers: make([]entity.RecipientConfig, 0, len(s.Peers)),
		Policy: entity.SelectionPolicy{
			SortOrder: entity.SortOrder(s.Sort),
			MinSupply: s.MinSupply,
			MaxSupply: s.MaxSupply,
		},
	}

	if !state.Policy.SortOrder.Valid() {
		return entity.State{}, domain.NewError(errcodes.StateMalformed, fmt.Sprintf("unknown sort %q", s.Sort))
	}

	for i, p := range s.Peers {
		r, err := p.toDomain()
		if err != nil {
			return entity.State{}, domain.WrapError(err, errcodes.StateMalformed, fmt.Sprintf("peer #%d", i))
		}
		state.Peers = append(state.Peers, r)
	}

	return state, nil
}

func (p peerSchema) toDomain() (entity.RecipientConfig, error) {
	r := entity.RecipientConfig{
		Kind:            entity.RecipientKind(p.PeerType),
		GiftQuota:       p.MaxGifts,
		CollectionQuota: p.MaxCollections,
	}

	switch r.Kind {
	case entity.RecipientSelf:
	case entity.RecipientChannel, entity.RecipientUser:
		switch {
		case p.ID != nil:
			r.Identity = strconv.FormatInt(*p.ID, 10)
		case p.Username != "":
			r.Identity = p.Username
		case r.Kind == entity.RecipientChannel:
			r.Identity = entity.NewChannelIdentity
		default:
			return entity.RecipientConfig{}, fmt.Errorf("user peer without id or username")
		}
	default:
		return entity.RecipientConfig{}, fmt.Errorf("unknown peerType %q", p.PeerType)
	}

	return r, nil
}

func encodeState(s entity.State) ([]byte, error) {
	data, err := json.Marshal(fromState(s))
	if err != nil {
		return nil, domain.WrapError(err, errcodes.StatePersistFailed, "failed to encode state")
	}
	return data, nil
}

func decodeState(data []byte) (entity.State, error) {
	var schema stateSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return entity.State{}, domain.WrapError(err, errcodes.StateMalformed, "failed to decode state")
	}
	return schema.toDomain()
}
