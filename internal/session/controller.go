package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/example/stickersmash/assets"
	"github.com/example/stickersmash/internal/compose"
	"github.com/example/stickersmash/internal/export"
	"github.com/example/stickersmash/internal/mediastore"
	"github.com/example/stickersmash/internal/picker"
)

// ErrNotEditing is reported when an export is requested before a photo
// has been chosen or confirmed.
var ErrNotEditing = errors.New("choose or confirm a photo before exporting")

// Permissions gates access to the media source.
type Permissions interface {
	Status(ctx context.Context) (mediastore.Permission, error)
	Request(ctx context.Context) (mediastore.Permission, error)
}

// Notifier mirrors completed exports as desktop notifications.
type Notifier interface {
	Save(path string)
	Download(path string)
	Copy(detail string, img image.Image)
}

// Options wires a Controller to its capabilities. Only Picker and Exporter
// are required.
type Options struct {
	Picker      picker.Picker
	Permissions Permissions
	Exporter    export.Exporter
	// Copier, when set, backs Copy.
	Copier   export.Exporter
	Notifier Notifier
	// Shadow draws a drop shadow under the sticker.
	Shadow bool
	Logger *log.Logger
}

// Controller owns a State. It is not safe for concurrent use: Apply, State
// and View must be called from one goroutine. PickImage and Export only read
// their arguments and may run elsewhere; their results come back through
// Apply.
type Controller struct {
	opts  Options
	log   *log.Logger
	state State

	load      func(uri string) (image.Image, error)
	discard   func(uri string) error
	cachedURI string
	cachedImg image.Image
}

// New returns a controller in the initial state.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{opts: opts, log: logger, state: NewState(), load: picker.Load, discard: picker.Discard}
}

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Apply folds msg into the state and reports whether anything changed.
func (c *Controller) Apply(msg Msg) bool {
	s := &c.state
	switch m := msg.(type) {
	case ImagePicked:
		if s.Image != "" && s.Image != m.URI {
			c.release(s.Image)
		}
		s.Image = m.URI
		s.Mode = ModeEditOptions
		return true
	case PickCancelled:
		s.notify(NoticeNoImage, TextNoImage)
		return true
	case UsePhoto:
		if s.Mode == ModeEditOptions {
			return false
		}
		s.Mode = ModeEditOptions
		return true
	case Reset:
		if s.Mode == ModeChoosePhoto {
			return false
		}
		s.Mode = ModeChoosePhoto
		return true
	case OpenPicker:
		if s.ModalVisible {
			return false
		}
		s.ModalVisible = true
		return true
	case ClosePicker:
		if !s.ModalVisible {
			return false
		}
		s.ModalVisible = false
		return true
	case SelectSticker:
		if !m.Choice.Valid() {
			return false
		}
		s.Sticker = m.Choice
		s.Transform.Reset()
		s.ModalVisible = false
		return true
	case DragStart:
		if !s.Sticker.Valid() {
			return false
		}
		s.Transform.StartDrag()
		return true
	case DragMove:
		if !s.Sticker.Valid() {
			return false
		}
		return s.Transform.UpdateDrag(m.DX, m.DY)
	case DragEnd:
		if !s.Sticker.Valid() {
			return false
		}
		s.Transform.EndDrag()
		return true
	case DoubleTap:
		if !s.Sticker.Valid() {
			return false
		}
		s.Transform.DoubleTap()
		return true
	case ExportDone:
		c.exported(m.Result)
		return true
	case ExportFailed:
		op := m.Op
		if op == "" {
			op = "save"
		}
		c.log.Printf("%s: %v", op, m.Err)
		return false
	case DismissNotice:
		if s.Notice.Kind == NoticeNone {
			return false
		}
		s.Notice = Notice{Seq: s.Notice.Seq}
		return true
	}
	return false
}

func (c *Controller) exported(res export.Result) {
	n := c.opts.Notifier
	switch res.Kind {
	case export.Saved:
		c.state.notify(NoticeSaved, TextSaved)
		if n != nil {
			n.Save(res.Location)
		}
	case export.Downloaded:
		// Downloads show no in-app notice.
		if n != nil {
			n.Download(res.Location)
		}
	case export.Copied:
		c.state.notify(NoticeCopied, TextCopied)
		if n != nil {
			n.Copy("sticker", nil)
		}
	}
}

// PickImage asks the media source for one photo, checking library access
// first. Refused access and picker failures are reported as a cancelled pick.
func (c *Controller) PickImage(ctx context.Context) Msg {
	if p := c.opts.Permissions; p != nil {
		status, err := p.Status(ctx)
		if err == nil && status == mediastore.Undetermined {
			status, err = p.Request(ctx)
		}
		if err != nil {
			c.log.Printf("pick: permission: %v", err)
			return PickCancelled{}
		}
		if status != mediastore.Granted {
			c.log.Printf("pick: %v", mediastore.ErrPermissionDenied)
			return PickCancelled{}
		}
	}
	if c.opts.Picker == nil {
		c.log.Printf("pick: no media source configured")
		return PickCancelled{}
	}
	res, err := c.opts.Picker.PickOne(ctx, picker.Options{AllowEditing: true, Quality: 1})
	if err != nil {
		if !errors.Is(err, picker.ErrCancelled) {
			c.log.Printf("pick: %v", err)
		}
		return PickCancelled{}
	}
	return ImagePicked{URI: res.URI}
}

// View builds the composition for the current state.
func (c *Controller) View() compose.View {
	v := compose.View{
		Transform: c.state.Transform.Transform,
		Shadow:    c.opts.Shadow,
	}
	if uri := c.state.Image; uri != "" {
		if uri != c.cachedURI {
			img, err := c.load(uri)
			if err != nil {
				c.log.Printf("load %s: %v", uri, err)
			}
			c.cachedURI, c.cachedImg = uri, img
		}
		v.Image = c.cachedImg
	}
	if c.state.Sticker.Valid() {
		art, err := assets.Sticker(c.state.Sticker)
		if err != nil {
			c.log.Printf("sticker %s: %v", c.state.Sticker, err)
		} else {
			v.Sticker = art
		}
	}
	return v
}

// Export runs the configured exporter on v.
func (c *Controller) Export(ctx context.Context, v compose.View) Msg {
	return c.run(ctx, "save", c.opts.Exporter, v)
}

// CopyView copies v to the clipboard through the configured copier.
func (c *Controller) CopyView(ctx context.Context, v compose.View) Msg {
	return c.run(ctx, "copy", c.opts.Copier, v)
}

func (c *Controller) run(ctx context.Context, op string, e export.Exporter, v compose.View) Msg {
	if e == nil {
		return ExportFailed{Op: op, Err: fmt.Errorf("no %s target configured", op)}
	}
	res, err := e.Export(ctx, v)
	if err != nil {
		return ExportFailed{Op: op, Err: err}
	}
	return ExportDone{Result: res}
}

// CanExport reports whether the toolbar currently offers saving.
func (c *Controller) CanExport() bool { return c.state.Mode == ModeEditOptions }

// Save exports the current view synchronously and applies the outcome.
func (c *Controller) Save(ctx context.Context) Msg {
	return c.sync(ctx, "save", c.Export)
}

// Copy copies the current view synchronously and applies the outcome.
func (c *Controller) Copy(ctx context.Context) Msg {
	return c.sync(ctx, "copy", c.CopyView)
}

func (c *Controller) sync(ctx context.Context, op string, fn func(context.Context, compose.View) Msg) Msg {
	var msg Msg
	if !c.CanExport() {
		msg = ExportFailed{Op: op, Err: ErrNotEditing}
	} else {
		msg = fn(ctx, c.View())
	}
	c.Apply(msg)
	return msg
}

// Close removes the temporary copy of the current photo, if the picker made
// one. The state is left as is.
func (c *Controller) Close() {
	if c.state.Image != "" {
		c.release(c.state.Image)
	}
}

func (c *Controller) release(uri string) {
	if err := c.discard(uri); err != nil {
		c.log.Printf("release image: %v", err)
	}
}

// Pick runs PickImage synchronously and applies the outcome.
func (c *Controller) Pick(ctx context.Context) Msg {
	msg := c.PickImage(ctx)
	c.Apply(msg)
	return msg
}
