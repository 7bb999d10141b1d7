package cmd

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/overdrive/apiclient"
	"github.com/Alia5/overdrive/apitypes"

	"github.com/alecthomas/kong"
)

// Ctl talks to a running serve instance over the control API.
type Ctl struct {
	Addr     string `help:"API server address" default:"localhost:3243" env:"OVERDRIVE_API_ADDR"`
	Password string `help:"API password (defaults to the local key file)" env:"OVERDRIVE_API_PASSWORD"`
	JSON     bool   `name:"json" help:"Print raw JSON responses"`

	Ping    CtlPing    `cmd:"" help:"Check that the server is up"`
	Status  CtlStatus  `cmd:"" help:"Show engine status"`
	Enable  CtlEnable  `cmd:"" help:"Enable the engine"`
	Disable CtlDisable `cmd:"" help:"Disable the engine (events pass through)"`
	Layer   CtlLayer   `cmd:"" help:"Turn a layer on, off or toggle it"`
	Press   CtlKey     `cmd:"" help:"Inject a key press"`
	Release CtlKey     `cmd:"" help:"Inject a key release"`
	Tap     CtlKey     `cmd:"" help:"Inject a press followed by a release"`
	Suspend CtlSuspend `cmd:"" help:"Save board state and suspend"`
	Resume  CtlResume  `cmd:"" help:"Restore board state"`
	Watch   CtlWatch   `cmd:"" help:"Print the scancode stream as hex until interrupted"`

	out io.Writer
}

type ctlOut struct {
	w    io.Writer
	json bool
}

// AfterApply binds a client for the selected subcommand.
func (c *Ctl) AfterApply(kctx *kong.Context) error {
	pwd := c.Password
	if pwd == "" {
		pwd = ReadPassword()
	}
	var client *apiclient.Client
	if pwd != "" {
		client = apiclient.NewWithPassword(c.Addr, pwd)
	} else {
		client = apiclient.New(c.Addr)
	}
	kctx.Bind(client)
	w := c.out
	if w == nil {
		w = os.Stdout
	}
	kctx.Bind(&ctlOut{w: w, json: c.JSON})
	return nil
}

func (o *ctlOut) print(v any, text func(io.Writer)) error {
	if o.json {
		enc := json.NewEncoder(o.w)
		return enc.Encode(v)
	}
	text(o.w)
	return nil
}

func (o *ctlOut) status(st *apitypes.StatusResponse) error {
	return o.print(st, func(w io.Writer) {
		fmt.Fprintf(w, "enabled=%t suspended=%t layers=%v active=%08b effective=%08b pending=%d\n",
			st.Enabled, st.Suspended, st.Layers, st.Active, st.Effective, st.Pending)
	})
}

type CtlPing struct{}

func (CtlPing) Run(c *apiclient.Client, out *ctlOut) error {
	r, err := c.Ping()
	if err != nil {
		return err
	}
	return out.print(r, func(w io.Writer) { fmt.Fprintf(w, "%s %s\n", r.Server, r.Version) })
}

type CtlStatus struct{}

func (CtlStatus) Run(c *apiclient.Client, out *ctlOut) error {
	st, err := c.Status()
	if err != nil {
		return err
	}
	return out.status(st)
}

type CtlEnable struct{}

func (CtlEnable) Run(c *apiclient.Client, out *ctlOut) error {
	st, err := c.Enable(true)
	if err != nil {
		return err
	}
	return out.status(st)
}

type CtlDisable struct{}

func (CtlDisable) Run(c *apiclient.Client, out *ctlOut) error {
	st, err := c.Enable(false)
	if err != nil {
		return err
	}
	return out.status(st)
}

type CtlLayer struct {
	ID uint8  `arg:"" help:"Layer number (0-7)"`
	Op string `arg:"" help:"on, off or toggle" enum:"on,off,toggle"`
}

func (l *CtlLayer) Run(c *apiclient.Client, out *ctlOut) error {
	st, err := c.Layer(l.ID, l.Op)
	if err != nil {
		return err
	}
	return out.status(st)
}

type CtlKey struct {
	Row uint8 `arg:"" help:"Matrix row"`
	Col uint8 `arg:"" help:"Matrix column"`
}

func (k *CtlKey) Run(kctx *kong.Context, c *apiclient.Client, out *ctlOut) error {
	cmd := kctx.Selected().Name
	edges := []bool{true, false}
	switch cmd {
	case "press":
		edges = edges[:1]
	case "release":
		edges = edges[1:]
	}
	for _, pressed := range edges {
		r, err := c.MatrixEvent(k.Row, k.Col, pressed)
		if err != nil {
			return err
		}
		if err := out.print(r, func(w io.Writer) { fmt.Fprintln(w, r.Result) }); err != nil {
			return err
		}
	}
	return nil
}

type CtlSuspend struct{}

func (CtlSuspend) Run(c *apiclient.Client, out *ctlOut) error {
	st, err := c.Suspend()
	if err != nil {
		return err
	}
	return out.status(st)
}

type CtlResume struct{}

func (CtlResume) Run(c *apiclient.Client, out *ctlOut) error {
	st, err := c.Resume()
	if err != nil {
		return err
	}
	return out.status(st)
}

type CtlWatch struct{}

func (CtlWatch) Run(c *apiclient.Client, out *ctlOut) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watch(ctx, c, out.w)
}

func watch(ctx context.Context, c *apiclient.Client, w io.Writer) error {
	s, err := c.OpenOutput(ctx)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()
	buf := make([]byte, 64)
	for {
		n, err := s.Read(buf)
		if n > 0 {
			fmt.Fprintln(w, hex.EncodeToString(buf[:n]))
		}
		if err != nil {
			if ctx.Err() != nil || err == io.EOF {
				return nil
			}
			return err
		}
	}
}
