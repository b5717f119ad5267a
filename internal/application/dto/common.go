package dto

// APIResponse envoltorio uniforme de todas las respuestas HTTP:
// éxito → {status:true, payload:<datos>}; error → {status:false, payload:<mensaje>}.
type APIResponse struct {
	Status  bool `json:"status"`
	Payload any  `json:"payload"`
}

// OK construye una respuesta de éxito.
func OK(payload any) APIResponse {
	return APIResponse{Status: true, Payload: payload}
}

// Fail construye una respuesta de error con el mensaje como payload.
func Fail(message string) APIResponse {
	return APIResponse{Status: false, Payload: message}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
