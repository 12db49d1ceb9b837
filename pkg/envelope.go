package pkg

import (
	"encoding/json"
	"net/http"
)

// WriteJSONError writes the standard failure envelope used by all API
// endpoints: {"success": false, "error": "..."}.
func WriteJSONError(w http.ResponseWriter, errMsg string, statusCode int) {
	respBytes, err := json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{
		Success: false,
		Error:   errMsg,
	})
	if err != nil {
		http.Error(w, errMsg, statusCode)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respBytes, statusCode)
}
