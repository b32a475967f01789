package maintenance

type ComposeRequest struct {
	EquipmentID string `json:"equipment_id" validate:"required"`
	Issue       string `json:"issue" validate:"required,max=2000"`
}

type ComposeResponse struct {
	Message string `json:"message"`
}
