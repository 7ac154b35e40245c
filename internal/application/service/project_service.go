package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// ProjectService handles project-related operations
type ProjectService struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repository.ProjectRepository, clientRepo repository.ClientRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, clientRepo: clientRepo}
}

// CreateProjectInput represents the input for creating a project
type CreateProjectInput struct {
	ClientID  uuid.UUID
	Name      string
	ManagerID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Note      *string
}

// CreateProject creates a new project with a generated code
func (s *ProjectService) CreateProject(ctx context.Context, input *CreateProjectInput) (*entity.Project, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	nextNum, err := s.projectRepo.GetNextCodeNumber(ctx)
	if err != nil {
		return nil, err
	}

	project := &entity.Project{
		ClientID:  input.ClientID,
		Name:      input.Name,
		Code:      fmt.Sprintf("PRJ-%06d", nextNum),
		ManagerID: input.ManagerID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Note:      input.Note,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, project.ID)
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}
	return project, nil
}

// ListProjectsInput represents the input for listing projects
type ListProjectsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	ClientID   *uuid.UUID
	ManagerID  *uuid.UUID
	Archived   *bool
}

// ListProjects lists projects with filtering
func (s *ProjectService) ListProjects(ctx context.Context, input *ListProjectsInput) (*pagination.PaginatedResult[entity.Project], error) {
	params := &repository.ProjectFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		ClientID:   input.ClientID,
		ManagerID:  input.ManagerID,
		Archived:   input.Archived,
	}

	projects, total, err := s.projectRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(projects, pag), nil
}

// UpdateProjectInput represents the input for updating a project
type UpdateProjectInput struct {
	ID        uuid.UUID
	Name      string
	ManagerID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Note      *string
	Archived  *bool
}

// UpdateProject updates an existing project
func (s *ProjectService) UpdateProject(ctx context.Context, input *UpdateProjectInput) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}

	project.Name = input.Name
	project.ManagerID = input.ManagerID
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.Note = input.Note
	if input.Archived != nil {
		project.Archived = *input.Archived
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, project.ID)
}

// DeleteProject deletes a project
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return apperror.NewNotFoundError("Project")
	}

	return s.projectRepo.Delete(ctx, id)
}
