// internal/service/prediction_service.go
package service

import (
	"context"
	"fmt"

	"paperbook/internal/domain"
	"paperbook/internal/prediction"
	"paperbook/internal/util"
)

// EventProvider supplies upcoming events with bookmaker odds. The odds
// feed client implements this.
type EventProvider interface {
	GetOdds(ctx context.Context, sportKey string) ([]domain.Event, error)
}

// PredictionService runs the prediction model over live events.
type PredictionService interface {
	// GenerateForSport returns model predictions for every upcoming
	// event of a sport. An empty slice means no events, not an error.
	GenerateForSport(ctx context.Context, sportKey string) ([]prediction.Result, error)
	// GenerateForEvent returns the model prediction for one event.
	GenerateForEvent(ctx context.Context, sportKey, eventID string) (*prediction.Result, error)
}

type predictionService struct {
	events EventProvider
}

func NewPredictionService(events EventProvider) PredictionService {
	return &predictionService{events: events}
}

func (s *predictionService) GenerateForSport(ctx context.Context, sportKey string) ([]prediction.Result, error) {
	events, err := s.events.GetOdds(ctx, sportKey)
	if err != nil {
		return nil, fmt.Errorf("generate predictions: failed to fetch events for %s: %w", sportKey, err)
	}

	results := make([]prediction.Result, 0, len(events))
	for _, event := range events {
		results = append(results, prediction.Generate(event))
	}
	return results, nil
}

func (s *predictionService) GenerateForEvent(ctx context.Context, sportKey, eventID string) (*prediction.Result, error) {
	events, err := s.events.GetOdds(ctx, sportKey)
	if err != nil {
		return nil, fmt.Errorf("generate prediction: failed to fetch events for %s: %w", sportKey, err)
	}

	for _, event := range events {
		if event.ID == eventID {
			result := prediction.Generate(event)
			return &result, nil
		}
	}
	return nil, fmt.Errorf("%w: event %s", util.ErrNotFound, eventID)
}
