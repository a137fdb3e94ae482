package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
)

type favoriteService struct {
	favoriteRepo  storage.FavoriteRepository
	jobRepo       storage.JobRepository
	candidateRepo storage.CandidateRepository
}

// NewFavoriteService creates a new instance of FavoriteService.
func NewFavoriteService(favoriteRepo storage.FavoriteRepository, jobRepo storage.JobRepository, candidateRepo storage.CandidateRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, jobRepo: jobRepo, candidateRepo: candidateRepo}
}

// ToggleFavorite flips the bookmark and reports the resulting state. Postings
// in any status can be toggled so stale bookmarks can still be removed.
func (s *favoriteService) ToggleFavorite(ctx context.Context, userID uuid.UUID, slug string) (bool, error) {
	candidate, err := activeCandidate(ctx, s.candidateRepo, userID)
	if err != nil {
		return false, err
	}
	job, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return false, mapRepoError(err, "getting job by slug")
	}

	removed, err := s.favoriteRepo.Remove(ctx, candidate.ID, job.ID)
	if err != nil {
		return false, mapRepoError(err, "removing favorite")
	}
	if removed {
		return false, nil
	}

	if err := s.favoriteRepo.Add(ctx, candidate.ID, job.ID); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// A concurrent toggle inserted it first.
			return true, nil
		}
		return false, mapRepoError(err, "adding favorite")
	}
	return true, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID uuid.UUID, q dto.PageQuery) ([]models.FavoriteJob, models.Pagination, error) {
	candidate, err := activeCandidate(ctx, s.candidateRepo, userID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	page, limit, offset := pageWindow(q, defaultCandidatePageSize)
	favorites, total, err := s.favoriteRepo.ListByCandidate(ctx, candidate.ID, limit, offset)
	if err != nil {
		log.Printf("FavoriteService: Error listing favorites of candidate %s: %v", candidate.ID, err)
		return nil, models.Pagination{}, fmt.Errorf("internal error listing favorites: %w", err)
	}
	return favorites, models.NewPagination(page, limit, total), nil
}
