package entity

import "fmt"

type RecipientKind string

const (
	RecipientSelf    RecipientKind = "self"
	RecipientChannel RecipientKind = "channel"
	RecipientUser    RecipientKind = "user"
)

// NewChannelIdentity: идентификатор канала, который нужно создать при выдаче.
const NewChannelIdentity = "new"

func (k RecipientKind) Valid() bool {
	switch k {
	case RecipientSelf, RecipientChannel, RecipientUser:
		return true
	}
	return false
}

// RecipientConfig: получатель купленных подарков с квотой.
type RecipientConfig struct {
	Kind            RecipientKind `json:"kind" validate:"required,oneof=self channel user"`
	Identity        string        `json:"identity,omitempty" validate:"required_unless=Kind self,excluded_if=Kind self"`
	GiftQuota       int           `json:"gift_quota" validate:"gte=0"`
	CollectionQuota int           `json:"collection_quota" validate:"gte=0"`
}

func (r RecipientConfig) String() string {
	if r.Kind == RecipientSelf {
		return string(RecipientSelf)
	}
	return fmt.Sprintf("%s:%s", r.Kind, r.Identity)
}

// Target: получатель, разрешённый в адресуемый пир.
type Target struct {
	Kind       RecipientKind `json:"kind"`
	PeerID     int64         `json:"peer_id,omitempty"`
	AccessHash int64         `json:"-"`
	Title      string        `json:"title,omitempty"`
}

func (t Target) String() string {
	if t.Title != "" {
		return t.Title
	}
	if t.Kind == RecipientSelf {
		return string(RecipientSelf)
	}
	return fmt.Sprintf("%s:%d", t.Kind, t.PeerID)
}
