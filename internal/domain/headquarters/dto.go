package headquarters

import (
	"github.com/planillapro/planilla-backend-go/internal/pkg/validator"
)

type CreateHeadquartersRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

func (r *CreateHeadquartersRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HeadquartersResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}
