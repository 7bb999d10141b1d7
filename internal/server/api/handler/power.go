package handler

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/overdrive"
	"github.com/Alia5/overdrive/internal/server/api"
	apierror "github.com/Alia5/overdrive/internal/server/api/error"
)

// Power delivers host power events: power/suspend and power/resume.
func Power(e *overdrive.Engine) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		switch state := req.Params["state"]; state {
		case "suspend":
			e.Suspend()
		case "resume":
			e.Resume()
		default:
			return apierror.ErrNotFound(fmt.Sprintf("unknown power state %q", state))
		}
		return writeStatus(res, e)
	}
}
