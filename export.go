package pdnsview

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/vinceanalytics/pdnsview/internal/chart"
	"github.com/vinceanalytics/pdnsview/internal/log"
	"github.com/vinceanalytics/pdnsview/internal/stat"
	"github.com/vinceanalytics/pdnsview/internal/surface"
)

// Destination selects where an exported image goes.
type Destination string

const (
	// NewView returns the image, and writes it as PNG to the export writer
	// when one is set.
	NewView Destination = "NewView"
	// CurrentView paints the image over the instance surface.
	CurrentView Destination = "CurrentView"
	// Download writes the PNG to the export writer, or to the export path.
	Download Destination = "Download"
)

// ExportOptions configure ExportImage.
type ExportOptions struct {
	Destination Destination
	Writer      io.Writer
	Path        string
	// Tooltip also paints the tooltip last shown by Pointer.
	Tooltip bool
}

// ExportImage paints the final state of an instance on a fresh raster,
// regardless of where its animation is, and delivers it to o.Destination.
// The instance surface, stats and hit test shapes are left untouched except
// for CurrentView.
func (e *Engine) ExportImage(h Handle, o ExportOptions) (image.Image, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	in, ok := e.instances[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	st := in.latest()
	r := surface.NewRaster(in.surface.Width(), in.surface.Height())
	f := &chart.Frame{
		Surface:   r,
		Config:    st.cfg,
		Payload:   st.payload,
		Stats:     stat.Build(st.payload, st.cfg),
		Templates: st.templates,
		Progress:  st.settings.Easing(st.settings.Stop),
		Final:     true,
	}
	if err := chart.Draw(f); err != nil {
		return nil, err
	}
	if o.Tooltip && in.tip != nil {
		in.tip.Draw(r, st.cfg)
	}
	im := r.Image()
	log.Get().Debug().Str("chart", h.String()).Str("destination", string(o.Destination)).Msg("export")
	switch o.Destination {
	case "", NewView:
		if o.Writer != nil {
			if err := r.EncodePNG(o.Writer); err != nil {
				return nil, err
			}
		}
	case CurrentView:
		in.surface.DrawImage(im, 0, 0)
	case Download:
		if err := download(r, o); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("pdnsview: unknown export destination %q", o.Destination)
	}
	return im, nil
}

func download(r *surface.Raster, o ExportOptions) error {
	if o.Writer != nil {
		return r.EncodePNG(o.Writer)
	}
	if o.Path == "" {
		return ErrNoImage
	}
	f, err := os.Create(o.Path)
	if err != nil {
		return err
	}
	if err := r.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
