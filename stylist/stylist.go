// Package stylist turns a wardrobe, the weather and a schedule into an outfit
// recommendation: filter, prompt, one model call, parse.
package stylist

import (
	"context"
	"errors"

	"closetapi/models"

	"github.com/rs/zerolog"
)

// RecommendationClient sends one prompt to a generative text service and
// returns the reply text. Failures should be *ServiceError.
type RecommendationClient interface {
	Send(ctx context.Context, prompt string) (string, error)
}

const noSuitableSuggestion = "Add garments that match the current season and weather to your closet."

type Stylist struct {
	client RecommendationClient
	log    zerolog.Logger
}

func New(client RecommendationClient, log zerolog.Logger) *Stylist {
	return &Stylist{client: client, log: log.With().Str("component", "stylist").Logger()}
}

// Recommend runs the pipeline once. Every failure comes back as a
// *DomainError and nothing is retried.
func (s *Stylist) Recommend(ctx context.Context, garments []models.Garment, weather models.Weather, schedule string) (*models.Recommendation, error) {
	suitable := FilterByWeather(garments, weather)
	s.log.Debug().Int("garments", len(garments)).Int("suitable", len(suitable)).Msg("filtered wardrobe")
	if len(suitable) == 0 {
		return nil, &DomainError{
			Code:       NoSuitableGarments,
			Message:    "no garments suit the current weather",
			Suggestion: noSuitableSuggestion,
		}
	}

	prompt := BuildPrompt(suitable, weather, schedule)

	raw, err := s.client.Send(ctx, prompt)
	if err != nil {
		message := err.Error()
		var serviceErr *ServiceError
		if errors.As(err, &serviceErr) {
			message = serviceErr.Message
		}
		return nil, &DomainError{Code: ServiceFailure, Message: message, Err: err}
	}

	rec, err := ParseRecommendation(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("raw", raw).Msg("could not parse recommendation")
		return nil, &DomainError{Code: ParseFailure, Message: err.Error(), Raw: raw, Err: err}
	}

	if unknown := rec.UnknownItemIDs(suitable); len(unknown) > 0 {
		s.log.Warn().Strs("item_ids", unknown).Msg("recommendation references garments outside the candidate list")
	}
	return rec, nil
}
