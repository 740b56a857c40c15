package usecase

import (
	"encoding/json"
	"fmt"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"
)

// ExportInput is the body of a PDF export request.
type ExportInput struct {
	OwnerID  string         `json:"ownerId"`
	Template string         `json:"template"`
	CVData   model.Document `json:"cvData"`
}

// DecodeCreate validates and decodes a create request body.
func DecodeCreate(body []byte) (CreateInput, error) {
	var in CreateInput
	if err := decode(model.PayloadCreate, body, &in); err != nil {
		return CreateInput{}, err
	}
	in.Data = in.Data.Normalize()
	return in, nil
}

// DecodeUpdate validates and decodes an update request body.
func DecodeUpdate(body []byte) (UpdateInput, error) {
	var in UpdateInput
	if err := decode(model.PayloadUpdate, body, &in); err != nil {
		return UpdateInput{}, err
	}
	if in.Data != nil {
		doc := in.Data.Normalize()
		in.Data = &doc
	}
	return in, nil
}

// DecodeExport validates and decodes a PDF export request body.
func DecodeExport(body []byte) (ExportInput, error) {
	var in ExportInput
	if err := decode(model.PayloadExport, body, &in); err != nil {
		return ExportInput{}, err
	}
	in.CVData = in.CVData.Normalize()
	return in, nil
}

func decode(p model.Payload, body []byte, out interface{}) error {
	if err := model.ValidatePayload(p, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
