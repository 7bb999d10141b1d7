package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Alia5/overdrive"
	"github.com/Alia5/overdrive/apitypes"
	"github.com/Alia5/overdrive/internal/server/api"
	apierror "github.com/Alia5/overdrive/internal/server/api/error"
)

// MatrixEvent injects a switch transition as if the scanner had seen it.
func MatrixEvent(e *overdrive.Engine) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if req.Payload == "" {
			return apierror.ErrBadRequest("missing payload")
		}
		var ev apitypes.MatrixEventRequest
		if err := json.Unmarshal([]byte(req.Payload), &ev); err != nil {
			return apierror.ErrBadRequest(fmt.Sprintf("invalid json: %v", err))
		}
		if ev.Row == nil || ev.Col == nil {
			return apierror.ErrBadRequest("missing field: row and col are required")
		}
		r := e.OnMatrixEvent(*ev.Row, *ev.Col, ev.Pressed)
		b, err := json.Marshal(apitypes.MatrixEventResponse{Result: r.String()})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
