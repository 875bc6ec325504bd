package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// Canned assistant replies when no FAQ matches.
const (
	OpenAIAvailableAnswer = "OpenAI integration available but not enabled in this build."
	NoAnswer              = "not data simulated: canned response not found."
)

// AssistantRecorder counts assistant queries by answer source.
type AssistantRecorder interface {
	RecordAssistantQuery(ctx context.Context, source string)
}

// AssistantService answers research questions from the FAQ list. There is
// no language model behind it.
type AssistantService struct {
	faqs      []domain.FAQ
	hasOpenAI bool
	recorder  AssistantRecorder
	logger    *slog.Logger
}

// NewAssistantService creates the assistant. hasOpenAI only changes the
// fallback reply.
func NewAssistantService(faqs []domain.FAQ, hasOpenAI bool, recorder AssistantRecorder, logger *slog.Logger) *AssistantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistantService{
		faqs:      faqs,
		hasOpenAI: hasOpenAI,
		recorder:  recorder,
		logger:    logger.With(slog.String("component", "assistant_service")),
	}
}

// Ask returns the first FAQ whose question contains the message or is
// contained in it, compared case-insensitively after trimming.
func (s *AssistantService) Ask(ctx context.Context, message string) (domain.ChatAnswer, error) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return domain.ChatAnswer{}, ErrEmptyMessage
	}

	answer := s.lookup(msg)
	if s.recorder != nil {
		s.recorder.RecordAssistantQuery(ctx, answer.Source)
	}
	s.logger.InfoContext(ctx, "assistant answered",
		slog.String("source", answer.Source),
		slog.Int("message_length", len(msg)))
	return answer, nil
}

func (s *AssistantService) lookup(msg string) domain.ChatAnswer {
	for _, faq := range s.faqs {
		q := strings.ToLower(strings.TrimSpace(faq.Question))
		if q == "" {
			continue
		}
		if strings.Contains(msg, q) || strings.Contains(q, msg) {
			return domain.ChatAnswer{Answer: faq.Answer, Source: domain.AnswerSourceFAQ, Simulated: true}
		}
	}

	if s.hasOpenAI {
		return domain.ChatAnswer{Answer: OpenAIAvailableAnswer, Source: domain.AnswerSourceOpenAIAvailable}
	}
	return domain.ChatAnswer{Answer: NoAnswer, Source: domain.AnswerSourceNone}
}
