package purchase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tg_giftbuyer/internal/domain/entity"
)

// Unbounded: порог последней ступени таблицы.
const Unbounded = math.MaxInt

// Tier: подаркам с тиражом меньше Below покупается Units штук.
type Tier struct {
	Below int
	Units int
}

// Tiers: упорядоченная по возрастанию порога таблица ступеней.
type Tiers []Tier

// DefaultTiers покупает 10 штук при тираже меньше 100000, иначе 50.
func DefaultTiers() Tiers {
	return Tiers{
		{Below: 100000, Units: 10},
		{Below: Unbounded, Units: 50},
	}
}

// UnitsFor возвращает число единиц для подарка. Безлимитный тираж попадает
// в последнюю ступень.
func (t Tiers) UnitsFor(listing entity.Listing) int {
	if len(t) == 0 {
		return 0
	}

	supply, ok := listing.Supply()
	if !ok {
		return t[len(t)-1].Units
	}

	for _, tier := range t {
		if supply < tier.Below {
			return tier.Units
		}
	}

	return t[len(t)-1].Units
}

// ParseTiers разбирает строку вида "100000:10,*:50".
func ParseTiers(s string) (Tiers, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTiers(), nil
	}

	var tiers Tiers

	for _, part := range strings.Split(s, ",") {
		below, units, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("tier %q: expected <supply>:<units>", part)
		}

		tier := Tier{Below: Unbounded}

		if below != "*" {
			v, err := strconv.Atoi(below)
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("tier %q: invalid supply threshold", part)
			}
			tier.Below = v
		}

		n, err := strconv.Atoi(units)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("tier %q: invalid unit count", part)
		}
		tier.Units = n

		if len(tiers) > 0 && tiers[len(tiers)-1].Below >= tier.Below {
			return nil, fmt.Errorf("tier %q: thresholds must be ascending", part)
		}

		tiers = append(tiers, tier)
	}

	return tiers, nil
}

func (t Tiers) String() string {
	parts := make([]string, 0, len(t))
	for _, tier := range t {
		below := "*"
		if tier.Below != Unbounded {
			below = strconv.Itoa(tier.Below)
		}
		parts = append(parts, below+":"+strconv.Itoa(tier.Units))
	}
	return strings.Join(parts, ",")
}
