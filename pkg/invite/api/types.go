package api

// SendInvitesRequest is the body of POST /invite. Handles is the raw
// submitted text; splitting and validation happen server side.
type SendInvitesRequest struct {
	Handles       string   `json:"handles"`
	RoleIDs       []string `json:"role_ids"`
	CustomMessage string   `json:"custom_message,omitempty"`
}

// DeliveryReport is the per-recipient outcome of a batch.
type DeliveryReport struct {
	Handle string `json:"handle"`
	Email  string `json:"email"`
	Error  string `json:"error,omitempty"`
}

// SendInvitesResponse reports a processed batch.
type SendInvitesResponse struct {
	Sent   []DeliveryReport `json:"sent"`
	Failed []DeliveryReport `json:"failed"`
}

// InvitableRoleResponse is one role offered on the invite form.
type InvitableRoleResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Default     bool   `json:"default"`
	Description string `json:"description,omitempty"`
}

// ErrorResponse is the JSON body for rejected requests.
type ErrorResponse struct {
	Error          string   `json:"error"`
	Field          string   `json:"field,omitempty"`
	InvalidHandles []string `json:"invalid_handles,omitempty"`
}
