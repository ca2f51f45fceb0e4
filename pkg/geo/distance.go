package geo

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// Distance is the only shape the booking flow consumes from the Distance
// Matrix API: kilometers and minutes.
type Distance struct {
	DistanceKm  float64
	DurationMin float64
}

// Resolver resolves the driving distance between two geocoded places.
type Resolver interface {
	Resolve(ctx context.Context, originPlaceID, destPlaceID string) (Distance, error)
}

type googleResolver struct {
	client *maps.Client
	log    *zap.Logger
}

func NewGoogleResolver(apiKey string, log *zap.Logger) (Resolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &googleResolver{
		client: client,
		log:    log.With(zap.String("collaborator", "distance")),
	}, nil
}

func (g *googleResolver) Resolve(ctx context.Context, originPlaceID, destPlaceID string) (Distance, error) {
	if originPlaceID == "" || destPlaceID == "" {
		return Distance{}, fmt.Errorf("resolve distance: both place IDs required")
	}

	resp, err := g.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{"place_id:" + originPlaceID},
		Destinations: []string{"place_id:" + destPlaceID},
		Units:        maps.UnitsMetric,
	})
	if err != nil {
		g.log.Error("Distance matrix request failed",
			zap.Error(err),
			zap.String("origin", originPlaceID),
			zap.String("destination", destPlaceID),
		)
		return Distance{}, fmt.Errorf("distance matrix request: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return Distance{}, fmt.Errorf("distance matrix: empty response")
	}

	elem := resp.Rows[0].Elements[0]
	if elem.Status != "OK" {
		return Distance{}, fmt.Errorf("distance matrix: element status %s", elem.Status)
	}

	return Distance{
		DistanceKm:  float64(elem.Distance.Meters) / 1000,
		DurationMin: elem.Duration.Minutes(),
	}, nil
}
