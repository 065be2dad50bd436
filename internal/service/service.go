// Package service implements the application logic tying together the
// store, the council orchestrator, and the admission policy.
package service

import (
	"github.com/xiaot623/council/internal/adapter/llm"
	"github.com/xiaot623/council/internal/config"
	"github.com/xiaot623/council/internal/council"
	store "github.com/xiaot623/council/internal/repository"
	"github.com/xiaot623/council/policy"
)

type Service struct {
	store        store.Store
	orchestrator *council.Orchestrator
	config       *config.Config
	policyEngine *policy.Engine
}

func New(st store.Store, queryClient llm.QueryClient, cfg *config.Config, policyEngine *policy.Engine) *Service {
	return &Service{
		store:        st,
		orchestrator: council.New(queryClient, cfg.LLMTimeout),
		config:       cfg,
		policyEngine: policyEngine,
	}
}
