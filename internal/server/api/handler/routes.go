package handler

import (
	"github.com/Alia5/overdrive"
	"github.com/Alia5/overdrive/internal/server/api"
	"github.com/Alia5/overdrive/output"
)

// RegisterAll adds every control route for e to r. The output stream is only
// registered when fan is non-nil.
func RegisterAll(r *api.Router, e *overdrive.Engine, fan *output.Fanout, version string) {
	r.Register("ping", Ping(version))
	r.Register("overdrive/status", Status(e))
	r.Register("overdrive/enable", Enable(e))
	r.Register("layer/{id}/{op}", Layer(e))
	r.Register("matrix/event", MatrixEvent(e))
	r.Register("power/{state}", Power(e))
	if fan != nil {
		r.RegisterStream("output", OutputStream(fan))
	}
}
