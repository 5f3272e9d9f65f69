package generation

import (
	"context"
	"log/slog"

	"github.com/culturahq/cultura-api/internal/domain"
	"github.com/culturahq/cultura-api/internal/platform/logger"
)

// ModelClient sends one prompt to the text-generation model and returns
// the raw reply content. Implementations wrap the sentinel errors in this
// package so failures can be classified. An empty content string with a
// nil error means the model returned no usable reply.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Enhancer produces enhanced card data from a user's raw card data by
// calling the model client once per request.
type Enhancer struct {
	client ModelClient
	logger *slog.Logger
}

// NewEnhancer creates an Enhancer backed by the given model client.
// If log is nil, a default logger is used.
func NewEnhancer(client ModelClient, log *slog.Logger) (*Enhancer, error) {
	if client == nil {
		return nil, domain.NewValidationError("client", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &Enhancer{
		client: client,
		logger: log.With(slog.String("component", "card_enhancer")),
	}, nil
}

// Enhance runs the full generation workflow for the given card data:
// build the prompt, call the model, extract structured JSON from the
// reply. Data with any field empty after trimming is returned unchanged
// without calling the model. Parse and shape failures degrade to the
// original data with Enhanced=false; only structural model client
// failures return an error, always a *GenerationError.
func (e *Enhancer) Enhance(ctx context.Context, data domain.CardData) (ExtractResult, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	if !data.IsComplete() {
		log.Debug("card data incomplete, skipping generation")
		return ExtractResult{CardData: data, Enhanced: false}, nil
	}

	prompt := BuildPrompt(data)

	content, err := e.client.Complete(ctx, prompt)
	if err != nil {
		genErr := newGenerationError(err)
		log.Error("card generation failed",
			slog.String("code", string(genErr.Code)),
			slog.String("error", err.Error()))
		return ExtractResult{}, genErr
	}

	result := ExtractCardData(content, data, log)
	if result.Enhanced {
		log.Info("card data enhanced successfully")
	} else {
		log.Info("model reply unusable, returning original card data")
	}

	return result, nil
}
