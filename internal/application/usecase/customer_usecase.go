package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para distribuidores/clientes.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	packageRepo repository.PackageRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, packageRepo repository.PackageRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, packageRepo: packageRepo}
}

// Create registra un cliente, validando el paquete si viene asociado.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PackageID != nil {
		pkg, err := uc.packageRepo.GetByID(*in.PackageID)
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Location:  in.Location,
		Phone:     in.Phone,
		PackageID: in.PackageID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// Update edita un cliente. package_id con null explícito desasocia el paquete;
// la clave ausente lo deja intacto.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Location != nil {
		customer.Location = *in.Location
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.HasPackageID {
		if in.PackageID != nil {
			pkg, err := uc.packageRepo.GetByID(*in.PackageID)
			if err != nil {
				return nil, err
			}
			if pkg == nil {
				return nil, domain.ErrNotFound
			}
		}
		customer.PackageID = in.PackageID
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items, nil
}

// Search busca clientes por nombre o teléfono.
func (uc *CustomerUseCase) Search(term string) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.Search(term)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items, nil
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Location:  c.Location,
		Phone:     c.Phone,
		PackageID: c.PackageID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
