package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// ClientService handles client and lead operations
type ClientService struct {
	clientRepo repository.ClientRepository
	userRepo   repository.UserRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, userRepo repository.UserRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo, userRepo: userRepo}
}

// CreateClientInput represents the input for creating a client
type CreateClientInput struct {
	Name      string
	Email     *string
	Phone     *string
	Address   *string
	Status    enum.ClientStatus
	ManagerID *uuid.UUID
	Note      *string
}

// CreateClient creates a new client or lead
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	if input.ManagerID != nil {
		manager, err := s.userRepo.GetByID(ctx, *input.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, apperror.NewNotFoundError("Manager")
		}
	}

	client := &entity.Client{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Status:    input.Status,
		ManagerID: input.ManagerID,
		Note:      input.Note,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return s.clientRepo.GetByID(ctx, client.ID)
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClientsInput represents the input for listing clients
type ListClientsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ClientStatus
	ManagerID  *uuid.UUID
}

// ListClients lists clients with filtering
func (s *ClientService) ListClients(ctx context.Context, input *ListClientsInput) (*pagination.PaginatedResult[entity.Client], error) {
	params := &repository.ClientFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		ManagerID:  input.ManagerID,
	}

	clients, total, err := s.clientRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the input for updating a client
type UpdateClientInput struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	Phone     *string
	Address   *string
	ManagerID *uuid.UUID
	Note      *string
}

// UpdateClient updates an existing client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.ManagerID != nil {
		manager, err := s.userRepo.GetByID(ctx, *input.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, apperror.NewNotFoundError("Manager")
		}
	}

	client.Name = input.Name
	client.Email = input.Email
	client.Phone = input.Phone
	client.Address = input.Address
	client.ManagerID = input.ManagerID
	client.Note = input.Note

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return s.clientRepo.GetByID(ctx, client.ID)
}

// ConvertLead promotes a lead to an active client
func (s *ClientService) ConvertLead(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if client.Status != enum.ClientStatusLead {
		return nil, apperror.NewBadRequestError("Only leads can be converted")
	}

	if err := s.clientRepo.UpdateStatus(ctx, id, enum.ClientStatusActive); err != nil {
		return nil, err
	}

	return s.clientRepo.GetByID(ctx, id)
}

// ArchiveClient marks a client as archived
func (s *ClientService) ArchiveClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}

	return s.clientRepo.UpdateStatus(ctx, id, enum.ClientStatusArchived)
}

// DeleteClient deletes a client
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}

	return s.clientRepo.Delete(ctx, id)
}
