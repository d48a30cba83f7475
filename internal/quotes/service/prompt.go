package service

import (
	"context"

	"cablecrm_backend/internal/quotes/agent"
	"cablecrm_backend/internal/quotes/transport"
)

// Completion calls run outside this system, so the default rate only applies
// when no admin setting is configured.
const defaultDayRate = 300

// ContextProvider supplies the historical pricing context block appended to
// analysis prompts. Implemented by the consistency service.
type ContextProvider interface {
	BuildAIContext(ctx context.Context, quoteID int64) string
}

// DayRateProvider resolves the configured labour day rate. Implemented by the
// settings service.
type DayRateProvider interface {
	GetDayRate(ctx context.Context) (float64, bool)
}

// SetContextProvider injects the consistency context builder.
func (s *Service) SetContextProvider(provider ContextProvider) {
	s.contexts = provider
}

// SetDayRateProvider injects the settings-backed day rate source.
func (s *Service) SetDayRateProvider(provider DayRateProvider) {
	s.dayRates = provider
}

// BuildPrompt renders the system and user prompts for a quote's analysis
// call. The completion itself runs outside this system; the caller feeds the
// model's raw response back through IngestAnalysis.
func (s *Service) BuildPrompt(ctx context.Context, id int64, req transport.BuildPromptRequest) (*transport.PromptResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input := agent.PromptInput{
		Quote:         quoteContext(quote),
		DayRate:       s.resolveDayRate(ctx),
		QuestionsOnly: req.QuestionsOnly,
	}
	if s.contexts != nil {
		input.ConsistencyContext = s.contexts.BuildAIContext(ctx, id)
	}
	for _, answer := range req.ClarificationAnswers {
		input.ClarificationAnswers = append(input.ClarificationAnswers, agent.ClarificationAnswer{
			Question: answer.Question,
			Answer:   answer.Answer,
		})
	}

	system, user := agent.BuildAnalysisPrompts(input)
	return &transport.PromptResponse{
		QuoteID:      id,
		SystemPrompt: system,
		UserPrompt:   user,
	}, nil
}

func (s *Service) resolveDayRate(ctx context.Context) float64 {
	if s.dayRates != nil {
		if rate, ok := s.dayRates.GetDayRate(ctx); ok {
			return rate
		}
	}
	return defaultDayRate
}
