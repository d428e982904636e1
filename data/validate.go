package data

import "flowsync_server/models"

// validateInput runs the struct tag rules of a request contract and reports
// failures as a ValidationError.
func validateInput(v interface{}) error {
	if err := models.Validate(v); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
