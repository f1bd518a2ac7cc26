package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Dosada05/doubles-cup/repositories"
	"github.com/Dosada05/doubles-cup/storage"
	"github.com/google/uuid"
)

type ReportService interface {
	// Archive uploads the current report as JSON and returns where it was stored.
	Archive(ctx context.Context, actor Actor, tournamentID int) (*storage.UploadResult, error)
}

type reportService struct {
	tournamentRepo repositories.TournamentRepository
	standings      StandingsService
	uploader       storage.FileUploader
	logger         *slog.Logger
}

// NewReportService accepts a nil uploader; Archive then fails with ErrArchivingDisabled.
func NewReportService(
	tournamentRepo repositories.TournamentRepository,
	standings StandingsService,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ReportService {
	return &reportService{tournamentRepo: tournamentRepo, standings: standings, uploader: uploader, logger: logger}
}

func reportKey(tournamentID int) string {
	return fmt.Sprintf("reports/tournament_%d/%s.json", tournamentID, uuid.NewString())
}

func (s *reportService) Archive(ctx context.Context, actor Actor, tournamentID int) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrArchivingDisabled
	}
	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	if err := authorizeOrganizer(t, actor); err != nil {
		return nil, err
	}

	report, err := s.standings.Report(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(report, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	res, err := s.uploader.Upload(ctx, reportKey(tournamentID), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	s.logger.Info("report archived", slog.Int("tournament_id", tournamentID), slog.String("key", res.Key))
	return res, nil
}
