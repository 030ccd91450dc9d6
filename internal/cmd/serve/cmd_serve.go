package serve

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"github.com/vinceanalytics/pdnsview"
	"github.com/vinceanalytics/pdnsview/internal/anim"
	"github.com/vinceanalytics/pdnsview/internal/config"
	"github.com/vinceanalytics/pdnsview/internal/log"
	"github.com/vinceanalytics/pdnsview/internal/router"
)

func CMD() *cli.Command {
	o := config.Options{}
	return &cli.Command{
		Name:  "serve",
		Usage: "Serves the chart API",
		Flags: config.Flags(&o),
		Action: func(ctx context.Context, c *cli.Command) error {
			return Serve(ctx, &o)
		},
	}
}

// Serve runs the chart API until ctx is cancelled or the process is
// interrupted.
func Serve(ctx context.Context, o *config.Options) error {
	if err := o.Setup(); err != nil {
		return err
	}
	host := anim.NewTicker(int(o.FPS))
	defer host.Stop()
	e, err := pdnsview.New(pdnsview.Options{Host: host, Personal: o.Personal})
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer cancel()

	svr := &http.Server{
		Addr:        o.Listen,
		Handler:     router.New(e, o),
		BaseContext: func(l net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() {
		defer cancel()
		log.Get().Info().Str("addr", o.Listen).Msg("starting server")
		if err := svr.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	<-ctx.Done()
	svr.Shutdown(context.Background())
	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}
