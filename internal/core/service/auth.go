package service

import (
	"strings"

	"github.com/rs/zerolog/log"
)

type Authorizer interface {
	IsAuthorized(sender string) bool
}

// Allowlist admits the listed senders, or everyone when the list is empty.
type Allowlist struct {
	senders map[string]struct{}
}

func NewAllowlist(senders []string) *Allowlist {
	a := &Allowlist{senders: make(map[string]struct{}, len(senders))}
	for _, s := range senders {
		s = strings.TrimSpace(s)
		if s != "" {
			a.senders[s] = struct{}{}
		}
	}

	return a
}

func (a *Allowlist) IsAuthorized(sender string) bool {
	if len(a.senders) == 0 {
		return true
	}

	if _, ok := a.senders[sender]; ok {
		return true
	}

	log.Info().Str("from", sender).Msg("sender not on allowlist")
	return false
}
