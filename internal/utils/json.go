package utils

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
)

// DecodeLoose unmarshals body into v, and when plain decoding fails attempts
// to repair the JSON first and retries once. Providers occasionally ship
// truncated or subtly invalid JSON; repairing recovers most of those bodies
// so the caller can still extract fields instead of failing the whole call.
func DecodeLoose(body []byte, v any) error {
	err := json.Unmarshal(body, v)
	if err == nil {
		return nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(body))
	if repairErr != nil {
		return err
	}
	if retryErr := json.Unmarshal([]byte(repaired), v); retryErr != nil {
		return err
	}
	return nil
}
