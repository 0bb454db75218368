package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/envirobot/envirobot/internal/domain"
	"github.com/envirobot/envirobot/internal/pkg/constants"
	"github.com/envirobot/envirobot/internal/pkg/groq"
	"github.com/envirobot/envirobot/internal/pkg/logger"
)

// FactResolver is the tiered lookup the chat service delegates structured
// questions to.
type FactResolver interface {
	ResolveFact(ctx context.Context, topic domain.Topic, province *domain.Province) (*domain.ResolvedAnswer, error)
}

var (
	covidKeywords = []string{"covid", "case", "death"}
	ghgKeywords   = []string{"emission", "ghg", "carbon footprint", "carbon", "green house gas", "air pollution"}
)

// topicRules fixes the classification precedence: COVID keywords are
// evaluated before GHG keywords, so a message mentioning both domains is
// answered as a COVID question.
var topicRules = []struct {
	topic    domain.Topic
	keywords []string
}{
	{topic: domain.TopicCovid, keywords: covidKeywords},
	{topic: domain.TopicGHG, keywords: ghgKeywords},
}

// Classify inspects a raw message for topic keywords. Matching is plain
// case-insensitive substring, so "cases" and "deaths" hit "case" and
// "death".
func Classify(message string) domain.Topic {
	lowered := strings.ToLower(message)
	for _, rule := range topicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.topic
			}
		}
	}
	return domain.TopicOther
}

// systemInstruction restricts the completion service to the structured
// data supplied with the conversation.
const systemInstruction = `Follow these rules:
- YOU CAN ONLY TAKE INFORMATION FROM THE DATA PROVIDED
- Do NOT try to guess any information that is not provided
- Only include data that is relevant to what is asked by the user
- Do NOT output everything unless the user asks
- If you do not know the information, relay that`

const (
	covidApology = "Sorry, I couldn't look up COVID numbers right now. Try again later!"
	ghgApology   = "Sorry, I couldn't look up emissions data right now. Try again later!"
	otherApology = "Sorry, I'm having a brain freeze. Try again later!"

	covidNoData = "No COVID data available."
	ghgNoData   = "No emissions data available."
)

// Service routes a free-text message to the tiered resolver or the
// completion service and renders the reply text. It never returns an
// error to the transport: internal failures become topic-appropriate
// apology strings here.
type Service struct {
	resolver FactResolver
	groq     groq.Client // nil disables the completion handoff
}

func NewService(resolver FactResolver, groq groq.Client) *Service {
	return &Service{resolver: resolver, groq: groq}
}

func (s *Service) Answer(ctx context.Context, message string) string {
	topic := Classify(message)
	if topic == domain.TopicOther {
		return s.completion(ctx, message)
	}

	province, _ := domain.ResolveProvince(message)

	answer, err := s.resolver.ResolveFact(ctx, topic, province)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return noDataMessage(topic)
		}

		logger.Errorf(ctx, "resolver.ResolveFact, topic-%s: %s", topic, err.Error())
		return apology(topic)
	}

	return Format(answer)
}

func (s *Service) completion(ctx context.Context, message string) string {
	if s.groq == nil {
		return otherApology
	}

	temperature := 0.7
	resp, err := s.groq.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Messages: []groq.Message{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: message},
		},
		Temperature: &temperature,
	})
	if err != nil {
		logger.Errorf(ctx, "groq.ChatCompletion: %s", err.Error())
		return otherApology
	}
	if len(resp.Choices) == 0 {
		logger.Error(ctx, "groq.ChatCompletion: empty choices")
		return otherApology
	}

	return resp.Choices[0].Message.Content
}

func noDataMessage(topic domain.Topic) string {
	if topic == domain.TopicGHG {
		return ghgNoData
	}
	return covidNoData
}

func apology(topic domain.Topic) string {
	if topic == domain.TopicGHG {
		return ghgApology
	}
	return covidApology
}
