package itemrequest

import (
	"context"
	"errors"
	"strings"

	"github.com/peerrent/rental-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, requesterID, description string) (*ItemRequest, error)
	GetByID(ctx context.Context, id, viewerID string) (*WithAnswers, error)
	ListOwn(ctx context.Context, requesterID string) ([]*WithAnswers, error)
	ListOthers(ctx context.Context, requesterID string, limit, offset int) ([]*WithAnswers, int, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) requireUser(ctx context.Context, id string) (*user.User, error) {
	u, err := s.userService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Create(ctx context.Context, requesterID, description string) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	requester, err := s.requireUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	req := &ItemRequest{
		RequesterID:   requester.ID,
		RequesterName: requester.Name,
		Description:   description,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) GetByID(ctx context.Context, id, viewerID string) (*WithAnswers, error) {
	if _, err := s.requireUser(ctx, viewerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.withAnswers(ctx, req)
}

func (s *service) ListOwn(ctx context.Context, requesterID string) ([]*WithAnswers, error) {
	if _, err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	result := make([]*WithAnswers, len(reqs))
	for i, req := range reqs {
		wa, err := s.withAnswers(ctx, req)
		if err != nil {
			return nil, err
		}
		result[i] = wa
	}

	return result, nil
}

func (s *service) ListOthers(ctx context.Context, requesterID string, limit, offset int) ([]*WithAnswers, int, error) {
	if _, err := s.requireUser(ctx, requesterID); err != nil {
		return nil, 0, err
	}

	reqs, total, err := s.repo.ListOthers(ctx, requesterID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*WithAnswers, len(reqs))
	for i, req := range reqs {
		wa, err := s.withAnswers(ctx, req)
		if err != nil {
			return nil, 0, err
		}
		result[i] = wa
	}

	return result, total, nil
}

func (s *service) withAnswers(ctx context.Context, req *ItemRequest) (*WithAnswers, error) {
	items, err := s.repo.ListAnswers(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &WithAnswers{ItemRequest: *req, Items: items}, nil
}
