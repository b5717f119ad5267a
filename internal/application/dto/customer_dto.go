package dto

import (
	"encoding/json"
	"time"
)

// CreateCustomerRequest entrada para registrar un distribuidor/cliente.
type CreateCustomerRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Location  string  `json:"location"`
	Phone     string  `json:"phone"`
	PackageID *string `json:"package_id"`
}

// UpdateCustomerRequest entrada para editar un cliente. PackageID se aplica
// solo cuando la clave package_id vino en el JSON: "package_id": null desasocia
// el paquete, la clave ausente lo deja intacto.
type UpdateCustomerRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Location     *string `json:"location"`
	Phone        *string `json:"phone"`
	PackageID    *string `json:"package_id"`
	HasPackageID bool    `json:"-"`
}

// UnmarshalJSON detecta la presencia de la clave package_id para distinguir
// "desasociar" (null explícito) de "no tocar" (clave ausente).
func (r *UpdateCustomerRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateCustomerRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, a.HasPackageID = keys["package_id"]
	*r = UpdateCustomerRequest(a)
	return nil
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	PackageID *string   `json:"package_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
