package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/overdrive"
	"github.com/Alia5/overdrive/apitypes"
	"github.com/Alia5/overdrive/internal/server/api"
)

// Status returns a handler that reports the engine state.
func Status(e *overdrive.Engine) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		return writeStatus(res, e)
	}
}

func writeStatus(res *api.Response, e *overdrive.Engine) error {
	s := e.Status()
	var layers []int
	for _, l := range s.Effective.Layers() {
		layers = append(layers, int(l))
	}
	b, err := json.Marshal(apitypes.StatusResponse{
		Enabled:      s.Enabled,
		Suspended:    s.Suspended,
		Active:       uint8(s.Active),
		Effective:    uint8(s.Effective),
		Layers:       layers,
		KeymapLayers: s.Layers,
		Pending:      s.Pending,
	})
	if err != nil {
		return err
	}
	res.JSON = string(b)
	return nil
}
