package service

import (
	"context"
	"errors"
	"log/slog"

	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/validation"
)

type GroupService interface {
	CreateGroup(ctx context.Context, form *validation.GroupForm) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	DeleteGroup(ctx context.Context, slug string) error
}

type groupService struct {
	groupRepo repository.GroupRepository
}

func NewGroupService(groupRepo repository.GroupRepository) GroupService {
	return &groupService{groupRepo: groupRepo}
}

func (s *groupService) CreateGroup(ctx context.Context, form *validation.GroupForm) (*models.Group, error) {
	if errs := form.Validate(); !errs.Empty() {
		return nil, errs
	}

	group := &models.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return nil, validation.Errors{"slug": {"Группа с таким адресом уже существует."}}
		}
		return nil, err
	}

	slog.InfoContext(ctx, "группа создана", slog.String("slug", group.Slug))
	return group, nil
}

func (s *groupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}

// DeleteGroup keeps the group's posts; they lose their group.
func (s *groupService) DeleteGroup(ctx context.Context, slug string) error {
	if err := s.groupRepo.DeleteBySlug(ctx, slug); err != nil {
		return err
	}

	slog.InfoContext(ctx, "группа удалена", slog.String("slug", slug))
	return nil
}
