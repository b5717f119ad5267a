package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// PackageUseCase casos de uso CRUD para paquetes de afiliación.
type PackageUseCase struct {
	repo repository.PackageRepository
}

// NewPackageUseCase construye el caso de uso.
func NewPackageUseCase(repo repository.PackageRepository) *PackageUseCase {
	return &PackageUseCase{repo: repo}
}

// Create registra un paquete.
func (uc *PackageUseCase) Create(in dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	if in.Name == "" || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	pkg := &entity.Package{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Amount:          in.Amount,
		RegistrationFee: in.RegistrationFee,
		IsPaid:          in.IsPaid,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(pkg); err != nil {
		return nil, err
	}
	return toPackageResponse(pkg), nil
}

// GetByID obtiene un paquete por ID.
func (uc *PackageUseCase) GetByID(id string) (*dto.PackageResponse, error) {
	pkg, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, nil
	}
	return toPackageResponse(pkg), nil
}

// Update edita un paquete. Los campos nil no se tocan.
func (uc *PackageUseCase) Update(id string, in dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	pkg, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, nil
	}
	if in.Name != nil {
		pkg.Name = *in.Name
	}
	if in.Amount != nil {
		pkg.Amount = *in.Amount
	}
	if in.RegistrationFee != nil {
		pkg.RegistrationFee = *in.RegistrationFee
	}
	if in.IsPaid != nil {
		pkg.IsPaid = *in.IsPaid
	}
	if err := uc.repo.Update(pkg); err != nil {
		return nil, err
	}
	return toPackageResponse(pkg), nil
}

// List lista paquetes con paginación.
func (uc *PackageUseCase) List(limit, offset int) ([]dto.PackageResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackageResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPackageResponse(p))
	}
	return items, nil
}

// Delete elimina un paquete.
func (uc *PackageUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toPackageResponse(p *entity.Package) *dto.PackageResponse {
	return &dto.PackageResponse{
		ID:              p.ID,
		Name:            p.Name,
		Amount:          p.Amount,
		RegistrationFee: p.RegistrationFee,
		IsPaid:          p.IsPaid,
		CreatedAt:       p.CreatedAt,
	}
}
