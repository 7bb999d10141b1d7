package handler

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Alia5/overdrive"
	"github.com/Alia5/overdrive/internal/server/api"
	apierror "github.com/Alia5/overdrive/internal/server/api/error"
	"github.com/Alia5/overdrive/layer"
)

// Layer edits one layer: layer/{id}/{op} with op on, off or toggle.
func Layer(e *overdrive.Engine) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		id, err := strconv.ParseUint(req.Params["id"], 10, 8)
		if err != nil || id >= layer.Max {
			return apierror.ErrBadRequest(fmt.Sprintf("invalid layer %q", req.Params["id"]))
		}
		op := overdrive.LayerOp(req.Params["op"])
		switch op {
		case overdrive.LayerOn, overdrive.LayerOff, overdrive.LayerToggle:
		default:
			return apierror.ErrBadRequest(fmt.Sprintf("invalid layer op %q", op))
		}
		if err := e.EditLayer(uint8(id), op); err != nil {
			return apierror.ErrBadRequest(err.Error())
		}
		logger.Debug("layer edit", "layer", id, "op", op)
		return writeStatus(res, e)
	}
}
