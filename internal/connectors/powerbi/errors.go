package powerbi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxDetail caps the response text kept on a failed outcome.
const maxDetail = 512

// apiError is the error envelope the Power BI REST API returns.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// failureDetail turns a rejected response into a short diagnostic string.
func failureDetail(status string, body []byte) string {
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		if envelope.Error.Message != "" {
			return fmt.Sprintf("%s: %s", envelope.Error.Code, envelope.Error.Message)
		}
		return envelope.Error.Code
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return status
	}
	if len(text) > maxDetail {
		text = text[:maxDetail] + "..."
	}
	return text
}
