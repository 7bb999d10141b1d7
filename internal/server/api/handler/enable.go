package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alia5/overdrive"
	"github.com/Alia5/overdrive/apitypes"
	"github.com/Alia5/overdrive/internal/server/api"
	apierror "github.com/Alia5/overdrive/internal/server/api/error"
)

// Enable switches the engine gate. The payload is {"on":bool} or a bare
// on/off word.
func Enable(e *overdrive.Engine) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		payload := strings.TrimSpace(req.Payload)
		if payload == "" {
			return apierror.ErrBadRequest("missing payload")
		}
		var on bool
		if strings.HasPrefix(payload, "{") {
			var r apitypes.EnableRequest
			if err := json.Unmarshal([]byte(payload), &r); err != nil {
				return apierror.ErrBadRequest(fmt.Sprintf("invalid json: %v", err))
			}
			if r.On == nil {
				return apierror.ErrBadRequest("missing field: on")
			}
			on = *r.On
		} else {
			v, err := apitypes.ParseSwitch(payload)
			if err != nil {
				return apierror.ErrBadRequest(err.Error())
			}
			on = v
		}
		e.SetEnabled(on)
		logger.Info("overdrive enable", "on", on)
		return writeStatus(res, e)
	}
}
