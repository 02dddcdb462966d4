package jury

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/svdleer/jury-planner/internal/builder"
	"github.com/svdleer/jury-planner/internal/extract"
	"github.com/svdleer/jury-planner/internal/model"
	"github.com/svdleer/jury-planner/internal/normalize"
	"github.com/svdleer/jury-planner/internal/solve"
)

var validate = validator.New()

var logger = slog.Default().With("component", "jury")

// Solve runs the full pipeline once: validate, normalize, build, solve,
// extract. Each call builds a fresh CP-SAT model — there is no shared
// mutable state across calls, so concurrent Solve calls on distinct
// Problems are safe. ctx is threaded through to the solver call so an
// external timeout can abandon a solve Go-natively, even though the
// solver's own wall-clock limit (Config.TimeLimitSeconds) is the primary
// cancellation mechanism.
func Solve(ctx context.Context, problem Problem) (Result, error) {
	callID := uuid.NewString()
	log := logger.With("call_id", callID)

	if err := validate.Struct(problem); err != nil {
		log.Warn("rejected invalid input", "error", err)
		return Result{}, &model.InvalidInputError{Reason: err.Error()}
	}

	cfg := problem.Config.ApplyDefaults()
	problem.Config = cfg

	in, err := normalize.Normalize(problem)
	if err != nil {
		log.Warn("normalization failed", "error", err)
		return Result{}, err
	}

	m, err := builder.Build(in)
	if err != nil {
		log.Error("model build failed", "error", err)
		return Result{}, err
	}

	outcome, err := solve.Run(ctx, m, cfg)
	if err != nil {
		log.Error("solver error", "error", err)
		return Result{}, err
	}
	log.Info("solve finished",
		"status", outcome.Status,
		"wall_time_seconds", outcome.Response.GetWallTime(),
		"conflict_hint", outcome.ConflictHint,
	)

	return extract.Extract(in, m, outcome, cfg)
}
