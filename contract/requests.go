package contract

// CreateOrderRequest is the request body for POST /api/orders. Status,
// priority and expectedDelivery are optional; the server applies the
// documented defaults when they are omitted.
type CreateOrderRequest struct {
	CustomerName     string  `json:"customerName" binding:"required"`
	ProductType      string  `json:"productType" binding:"required"`
	Quantity         int     `json:"quantity" binding:"required,gt=0"`
	Status           string  `json:"status" binding:"omitempty,oneof=pending production shipping delivered"`
	Priority         string  `json:"priority" binding:"omitempty,oneof=normal high"`
	ExpectedDelivery *string `json:"expectedDelivery" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateProductionJobRequest is the request body for PATCH /api/production/:id.
// All fields are optional; only the ones present in the body are applied.
// Pointer fields distinguish "absent" from a zero value, so progress can be
// reset to 0 and machineId can be cleared explicitly.
type UpdateProductionJobRequest struct {
	OrderID   *uint   `json:"orderId" binding:"omitempty,gt=0"`
	Stage     *string `json:"stage" binding:"omitempty,oneof=queued printing cutting completed"`
	MachineID *string `json:"machineId"`
	Progress  *int    `json:"progress" binding:"omitempty,min=0,max=100"`
	Status    *string `json:"status" binding:"omitempty,oneof=on_time delayed"`
}

// IsEmpty reports whether the update carries no fields at all. An empty
// PATCH is valid and leaves the job unchanged.
func (r UpdateProductionJobRequest) IsEmpty() bool {
	return r.OrderID == nil && r.Stage == nil && r.MachineID == nil &&
		r.Progress == nil && r.Status == nil
}
