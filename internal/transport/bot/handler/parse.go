package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tg_giftbuyer/internal/domain/entity"
)

var errUsage = errors.New("usage")

// parseAddPeer разбирает аргументы /addpeer:
//
//	self N [коллекций]
//	channel|user <id|@username|new> N [коллекций]
func parseAddPeer(args []string) (entity.RecipientConfig, error) {
	if len(args) < 2 {
		return entity.RecipientConfig{}, errUsage
	}

	r := entity.RecipientConfig{Kind: entity.RecipientKind(strings.ToLower(args[0]))}
	if !r.Kind.Valid() {
		return entity.RecipientConfig{}, fmt.Errorf("неизвестный тип получателя %q", args[0])
	}

	rest := args[1:]
	if r.Kind != entity.RecipientSelf {
		if len(rest) < 2 {
			return entity.RecipientConfig{}, errUsage
		}
		r.Identity = strings.TrimPrefix(rest[0], "@")
		rest = rest[1:]
	}

	if len(rest) > 2 {
		return entity.RecipientConfig{}, errUsage
	}

	gifts, err := strconv.Atoi(rest[0])
	if err != nil || gifts <= 0 {
		return entity.RecipientConfig{}, fmt.Errorf("неверное число подарков %q", rest[0])
	}
	r.GiftQuota = gifts
	r.CollectionQuota = 1

	if len(rest) == 2 {
		collections, err := strconv.Atoi(rest[1])
		if err != nil || collections < 0 {
			return entity.RecipientConfig{}, fmt.Errorf("неверное число коллекций %q", rest[1])
		}
		r.CollectionQuota = collections
	}

	return r, nil
}

func parseSort(args []string) (entity.SortOrder, error) {
	if len(args) != 1 {
		return "", errUsage
	}

	switch strings.ToLower(args[0]) {
	case "asc", string(entity.SortSupplyAsc):
		return entity.SortSupplyAsc, nil
	case "desc", string(entity.SortSupplyDesc):
		return entity.SortSupplyDesc, nil
	default:
		return "", fmt.Errorf("неизвестный порядок %q", args[0])
	}
}

// parseSupply разбирает "min max"; max "*" снимает верхнюю границу.
func parseSupply(args []string) (int, *int, error) {
	if len(args) != 2 {
		return 0, nil, errUsage
	}

	minSupply, err := strconv.Atoi(args[0])
	if err != nil || minSupply < 0 {
		return 0, nil, fmt.Errorf("неверный минимальный тираж %q", args[0])
	}

	if args[1] == "*" {
		return minSupply, nil, nil
	}

	maxSupply, err := strconv.Atoi(args[1])
	if err != nil || maxSupply < 0 {
		return 0, nil, fmt.Errorf("неверный максимальный тираж %q", args[1])
	}

	return minSupply, &maxSupply, nil
}

// commandArgs: аргументы после команды.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}
