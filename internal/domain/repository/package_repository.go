package repository

import "github.com/jhoicas/Distripos-api/internal/domain/entity"

// PackageRepository define el puerto de persistencia para Package (DIP).
type PackageRepository interface {
	Create(pkg *entity.Package) error
	GetByID(id string) (*entity.Package, error)
	Update(pkg *entity.Package) error
	List(limit, offset int) ([]*entity.Package, error)
	Delete(id string) error
}
