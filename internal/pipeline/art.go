package pipeline

import (
	"context"
	"time"

	"github.com/mrmateussiilva/petstory/internal/imaging"
	"github.com/mrmateussiilva/petstory/internal/metrics"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/sirupsen/logrus"
)

// ArtGenerator turns one photo into artwork following directive.
type ArtGenerator interface {
	Generate(ctx context.Context, image []byte, directive string) ([]byte, error)
}

// CallLimiter spaces calls to the generation service.
type CallLimiter interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type ArtStage struct {
	Generator ArtGenerator
	Limiter   CallLimiter
	Directive string
	Timeout   time.Duration
	MaxSide   int
}

func NewArtStage(generator ArtGenerator, limiter CallLimiter, directive string, timeout time.Duration, maxSide int) *ArtStage {
	return &ArtStage{
		Generator: generator,
		Limiter:   limiter,
		Directive: directive,
		Timeout:   timeout,
		MaxSide:   maxSide,
	}
}

// Generate produces one artifact per photo, in photo order. A failing photo is
// recorded as a failed artifact and the remaining photos are still attempted.
// When every photo fails it returns models.ErrNoArtifactsGenerated along with
// the failed artifacts.
func (s *ArtStage) Generate(ctx context.Context, photos []models.Photo) ([]models.Artifact, error) {
	artifacts := make([]models.Artifact, len(photos))
	succeeded := 0
	for i, photo := range photos {
		artifacts[i] = s.generateOne(ctx, i, photo)
		metrics.ArtGenerationsTotal.WithLabelValues(string(artifacts[i].Outcome)).Inc()
		if artifacts[i].Succeeded() {
			succeeded++
			continue
		}
		logrus.WithField("photo", i+1).Warnf("art generation failed: %v", artifacts[i].Err)
	}

	if succeeded == 0 {
		return artifacts, models.ErrNoArtifactsGenerated
	}
	logrus.Infof("art generation finished: %d/%d photos succeeded", succeeded, len(photos))
	return artifacts, nil
}

func (s *ArtStage) generateOne(ctx context.Context, index int, photo models.Photo) models.Artifact {
	failed := func(reason string, err error) models.Artifact {
		return models.Artifact{
			Index:   index,
			Outcome: models.OutcomeFailed,
			Err:     &models.ArtGenerationError{PhotoIndex: index, Reason: reason, Err: err},
		}
	}

	input, err := imaging.Normalize(photo.Data, s.MaxSide)
	if err != nil {
		return failed("unsupported image format", err)
	}

	var output []byte
	err = s.Limiter.Do(ctx, func(ctx context.Context) error {
		if s.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.Timeout)
			defer cancel()
		}
		img, err := s.Generator.Generate(ctx, input, s.Directive)
		output = img
		return err
	})
	if err != nil {
		return failed("generation service call failed", err)
	}

	art, err := imaging.Normalize(output, s.MaxSide)
	if err != nil {
		return failed("generation service returned an unreadable image", err)
	}

	return models.Artifact{Index: index, Outcome: models.OutcomeSucceeded, Image: art}
}
