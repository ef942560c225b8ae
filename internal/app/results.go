package service

import (
	"context"

	"github.com/timmybird/fogis-reporter/internal/domain/results"
	"github.com/timmybird/fogis-reporter/internal/domain/types"
	"github.com/timmybird/fogis-reporter/pkg/logger"
	"github.com/timmybird/fogis-reporter/pkg/metrics"
)

// ResultReport describes a submitted result pair. Verification is set when
// the store's copy could not be confirmed; the submission itself stands.
type ResultReport struct {
	Submitted    types.Scores
	Verification error
}

// ReportResults submits fulltime and halftime scores and reads them back.
// The returned error is only set when the submission failed.
func (s *Service) ReportResults(ctx context.Context, matchID int, fulltime, halftime types.Score) (ResultReport, error) {
	st, err := s.acquire(matchID)
	if err != nil {
		return ResultReport{}, err
	}
	defer st.mu.Unlock()

	report := ResultReport{Submitted: types.Scores{RegularTime: fulltime, Halftime: halftime}}
	if err := s.store.UpsertResults(ctx, results.BuildPayload(matchID, fulltime, halftime)); err != nil {
		return report, err
	}

	fetched, err := s.store.FetchResults(ctx, matchID)
	if err != nil {
		report.Verification = err
	} else {
		report.Verification = results.Verify(report.Submitted, fetched)
	}

	if report.Verification != nil {
		metrics.RecordVerification("failed")
		s.logger.Error(ctx, "result verification failed, check the store",
			logger.Int("match_id", matchID),
			logger.String("fulltime", fulltime.String()),
			logger.String("halftime", halftime.String()),
			logger.Error(report.Verification))
		return report, nil
	}
	metrics.RecordVerification("ok")
	s.logger.Info(ctx, "results reported and verified",
		logger.Int("match_id", matchID),
		logger.String("fulltime", fulltime.String()),
		logger.String("halftime", halftime.String()))
	return report, nil
}
