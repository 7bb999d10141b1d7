package apitypes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

// StatusResponse mirrors the engine status. Masks have bit n set for layer n.
type StatusResponse struct {
	Enabled      bool   `json:"enabled"`
	Suspended    bool   `json:"suspended"`
	Active       uint8  `json:"active"`
	Effective    uint8  `json:"effective"`
	Layers       []int  `json:"layers"`
	KeymapLayers int    `json:"keymapLayers"`
	Pending      int    `json:"pending"`
}

type EnableRequest struct {
	On *bool `json:"on"`
}

// UnmarshalJSON accepts a JSON bool, 0/1 or a string such as "on" or "off"
// for the on field.
func (r *EnableRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		On any `json:"on"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.On == nil {
		r.On = nil
		return nil
	}
	on, err := parseSwitch(raw.On)
	if err != nil {
		return fmt.Errorf("on: %w", err)
	}
	r.On = &on
	return nil
}

// ParseSwitch reads a bare enable payload: on/off, true/false, 1/0, yes/no.
func ParseSwitch(s string) (bool, error) { return parseSwitch(s) }

func parseSwitch(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case float64:
		switch val {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, fmt.Errorf("expected 0 or 1, got %v", val)
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "on", "yes", "enable", "enabled":
			return true, nil
		case "off", "no", "disable", "disabled":
			return false, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return false, fmt.Errorf("invalid switch %q", val)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected bool, number or string, got %T", v)
	}
}

type MatrixEventRequest struct {
	Row     *uint8 `json:"row"`
	Col     *uint8 `json:"col"`
	Pressed bool   `json:"pressed"`
}

type MatrixEventResponse struct {
	Result string `json:"result"`
}
