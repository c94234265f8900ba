package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "NO_MATERIALS", Message: activity.NoMaterialsMessage, RecoveryHint: "Pass at least one material name; see list_materials"}
	default:
		return nil
	}
}
