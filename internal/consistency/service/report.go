package service

import (
	"context"
	"math"

	"cablecrm_backend/internal/consistency/transport"

	"golang.org/x/sync/errgroup"
)

// ComparisonReport analyzes every sent/accepted quote created within the
// report window and aggregates the results. Per-quote analyses run
// concurrently; a failed analysis drops that quote from the report instead of
// failing the batch.
func (s *Service) ComparisonReport(ctx context.Context) (*transport.ComparisonReport, error) {
	recent, err := s.repo.ListRecent(ctx, s.cfg.GetReportWindow(), s.cfg.GetReportLimit())
	if err != nil {
		return nil, err
	}

	entries := make([]*transport.ReportEntry, len(recent))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range recent {
		g.Go(func() error {
			quote := recent[i]
			analysis, err := s.Analyze(gctx, quote.ID)
			if err != nil {
				s.log.Warn("comparison report entry skipped", "quote_id", quote.ID, "error", err)
				return nil
			}
			entries[i] = &transport.ReportEntry{
				QuoteID:            quote.ID,
				QuoteNumber:        quote.QuoteNumber,
				ClientName:         quote.ClientName,
				ProjectTitle:       quote.ProjectTitle,
				BuildingSize:       quote.BuildingSize,
				TotalCost:          quote.EstimatedCost,
				ConsistencyScore:   analysis.ConsistencyScore,
				SimilarQuotesCount: analysis.SimilarQuotesCount,
				Flags:              analysis.Flags,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &transport.ComparisonReport{ReportData: []transport.ReportEntry{}}
	var scoreSum float64
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		report.ReportData = append(report.ReportData, *entry)
		scoreSum += entry.ConsistencyScore
		if len(entry.Flags) > 0 {
			report.Summary.QuotesWithFlags++
		}
	}

	report.Summary.TotalQuotes = len(report.ReportData)
	if report.Summary.TotalQuotes > 0 {
		report.Summary.AvgConsistencyScore = math.Round(scoreSum/float64(report.Summary.TotalQuotes)*10) / 10
	}

	return report, nil
}

// RunComparisonReport is the background-worker entry point for the periodic
// report. The report itself lands in the logs; callers wanting the data use
// ComparisonReport directly.
func (s *Service) RunComparisonReport(ctx context.Context) error {
	report, err := s.ComparisonReport(ctx)
	if err != nil {
		return err
	}
	s.log.Info("comparison report complete",
		"total_quotes", report.Summary.TotalQuotes,
		"avg_consistency_score", report.Summary.AvgConsistencyScore,
		"quotes_with_flags", report.Summary.QuotesWithFlags,
	)
	return nil
}
