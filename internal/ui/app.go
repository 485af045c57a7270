// Package ui is the StickerSmash window: the composition on top, a toolbar
// below it and the sticker picker sheet. It only renders and translates
// input; every change of state goes through a session.Controller.
package ui

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/stickersmash/internal/session"
	"github.com/example/stickersmash/internal/sticker"
	"github.com/example/stickersmash/internal/theme"
)

// animationInterval is the delay between spring animation frames.
const animationInterval = 16 * time.Millisecond

// Options configures an App.
type Options struct {
	Controller *session.Controller
	Theme      *theme.Theme
	Title      string
	// Width and Height set the initial window size.
	Width, Height int
	Logger        *log.Logger
	// OnClose runs once the window has gone away.
	OnClose func()
}

// App runs one window.
type App struct {
	opts  Options
	theme *theme.Theme
	log   *log.Logger
}

// New returns an App for opts. A nil Theme uses theme.Default.
func New(opts Options) *App {
	a := &App{opts: opts, theme: opts.Theme, log: opts.Logger}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	if a.log == nil {
		a.log = log.Default()
	}
	if a.opts.Title == "" {
		a.opts.Title = "StickerSmash"
	}
	if a.opts.Width <= 0 || a.opts.Height <= 0 {
		a.opts.Width, a.opts.Height = defaultWidth, defaultHeight
	}
	return a
}

// resultEvent carries the outcome of a pick or export back to the event
// loop.
type resultEvent struct {
	msg session.Msg
}

type animTick struct{}

type noticeExpired struct {
	seq int
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	ctl := a.opts.Controller
	width, height := a.opts.Width, a.opts.Height
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.opts.Title})
	if err != nil {
		a.log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	if a.opts.OnClose != nil {
		defer a.opts.OnClose()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	defer close(done)
	// send drops events once the window is gone.
	send := func(e any) {
		select {
		case <-done:
		default:
			w.Send(e)
		}
	}

	st := ctl.State()
	spring := sticker.NewSpring(st.Transform.Transform.Scale)
	taps := sticker.NewTapDetector()
	shownSeq := st.Notice.Seq

	var (
		layout     Layout
		layoutKey  [4]int
		buttons    []*CacheButton
		cells      []*CacheButton
		hover      image.Point
		hoverRect  image.Rectangle
		pressed    bool
		dragging   bool
		dragOrigin [2]float32
		picking    bool
		exporting  bool
		animating  bool
		lastStep   time.Time
	)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	var dispatch func(command) bool

	relayout := func() {
		k := [4]int{width, height, int(st.Mode), 0}
		if st.ModalVisible {
			k[3] = 1
		}
		if k == layoutKey {
			return
		}
		layoutKey = k
		layout = computeLayout(width, height, st.Mode, st.ModalVisible)
		onAction := func(act Action) { dispatch(command{Action: act}) }
		onChoice := func(c sticker.Choice) { dispatch(command{Action: ActionSelect, Choice: c}) }
		// Fresh slices: a frame in flight may still hold the old ones.
		buttons = make([]*CacheButton, 0, len(layout.Buttons))
		for _, b := range layout.Buttons {
			buttons = append(buttons, newToolbarButton(b, a.theme, onAction))
		}
		cells = make([]*CacheButton, 0, len(layout.Cells))
		for _, c := range layout.Cells {
			cells = append(cells, newStickerCell(c, a.theme, onChoice))
		}
	}

	startAnimation := func() {
		if animating {
			return
		}
		animating = true
		lastStep = time.Now()
		time.AfterFunc(animationInterval, func() { send(animTick{}) })
	}

	apply := func(msg session.Msg) {
		before := st.Sticker
		if !ctl.Apply(msg) {
			return
		}
		st = ctl.State()
		if st.Sticker != before {
			spring.Jump(st.Transform.Transform.Scale)
		} else if st.Transform.Transform.Scale != spring.Target {
			spring.SetTarget(st.Transform.Transform.Scale)
			startAnimation()
		}
		if st.Notice.Kind != session.NoticeNone && st.Notice.Seq != shownSeq {
			seq := st.Notice.Seq
			shownSeq = seq
			time.AfterFunc(noticeDuration, func() { send(noticeExpired{seq: seq}) })
		}
		relayout()
		w.Send(paint.Event{})
	}

	dispatch = func(cmd command) bool {
		switch cmd.Action {
		case ActionChoose:
			if picking {
				return false
			}
			picking = true
			go func() { send(resultEvent{msg: ctl.PickImage(ctx)}) }()
			w.Send(paint.Event{})
		case ActionUse:
			apply(session.UsePhoto{})
		case ActionReset:
			apply(session.Reset{})
		case ActionAdd:
			apply(session.OpenPicker{})
		case ActionClosePicker:
			apply(session.ClosePicker{})
		case ActionSelect:
			apply(session.SelectSticker{Choice: cmd.Choice})
		case ActionSave, ActionCopy:
			if exporting || !ctl.CanExport() {
				return false
			}
			exporting = true
			v := ctl.View()
			run := ctl.Export
			if cmd.Action == ActionCopy {
				run = ctl.CopyView
			}
			go func() { send(resultEvent{msg: run(ctx, v)}) }()
			w.Send(paint.Event{})
		case ActionQuit:
			return true
		}
		return false
	}

	// hitRect returns the rectangle of whatever clickable thing is under p.
	hitRect := func(p image.Point) image.Rectangle {
		if st.ModalVisible {
			if p.In(layout.SheetClose) {
				return layout.SheetClose
			}
			for _, c := range cells {
				if p.In(c.Rect()) {
					return c.Rect()
				}
			}
			return image.Rectangle{}
		}
		for _, b := range buttons {
			if p.In(b.Rect()) {
				return b.Rect()
			}
		}
		return image.Rectangle{}
	}

	relayout()

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case resultEvent:
			switch e.msg.(type) {
			case session.ImagePicked, session.PickCancelled:
				picking = false
			default:
				exporting = false
			}
			apply(e.msg)
			w.Send(paint.Event{})
		case animTick:
			now := time.Now()
			moving := spring.Step(now.Sub(lastStep))
			lastStep = now
			if moving {
				time.AfterFunc(animationInterval, func() { send(animTick{}) })
			} else {
				animating = false
			}
			w.Send(paint.Event{})
		case noticeExpired:
			if st.Notice.Seq == e.seq {
				apply(session.DismissNotice{})
			}
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			relayout()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			v := ctl.View()
			v.Transform.Scale = spring.Value
			ps := paintState{
				width:    width,
				height:   height,
				layout:   layout,
				theme:    a.theme,
				view:     v,
				buttons:  buttons,
				cells:    cells,
				hover:    hover,
				pressed:  pressed,
				selected: st.Sticker,
			}
			switch {
			case picking:
				ps.status = "choosing a photo..."
			case exporting:
				ps.status = "saving..."
			}
			if st.Notice.Kind != session.NoticeNone {
				ps.message = st.Notice.Text
			}
			select {
			case paintCh <- ps:
			default:
				<-paintCh
				paintCh <- ps
			}
		case mouse.Event:
			p := image.Point{int(e.X), int(e.Y)}
			hover = p
			if r := hitRect(p); r != hoverRect {
				hoverRect = r
				w.Send(paint.Event{})
			}
			if e.Direction == mouse.DirNone {
				if dragging {
					apply(session.DragMove{
						DX: layout.ToFrame(float64(e.X - dragOrigin[0])),
						DY: layout.ToFrame(float64(e.Y - dragOrigin[1])),
					})
				}
				continue
			}
			if e.Button != mouse.ButtonLeft {
				continue
			}
			switch e.Direction {
			case mouse.DirPress:
				if st.Notice.Kind != session.NoticeNone {
					apply(session.DismissNotice{})
					continue
				}
				pressed = true
				w.Send(paint.Event{})
				if st.ModalVisible {
					if p.In(layout.SheetClose) {
						apply(session.ClosePicker{})
						continue
					}
					for _, c := range cells {
						if p.In(c.Rect()) {
							c.Activate()
							break
						}
					}
					continue
				}
				if layout.ButtonAt(p) != ActionNone {
					for _, b := range buttons {
						if p.In(b.Rect()) {
							b.Activate()
							break
						}
					}
					continue
				}
				if st.Sticker.Valid() && layout.OnSticker(p, st.Transform.Transform) {
					if taps.Tap(time.Now(), float64(e.X), float64(e.Y)) {
						apply(session.DoubleTap{})
						continue
					}
					dragging = true
					dragOrigin = [2]float32{e.X, e.Y}
					apply(session.DragStart{})
				} else {
					taps.Cancel()
				}
			case mouse.DirRelease:
				pressed = false
				w.Send(paint.Event{})
				if dragging {
					dragging = false
					apply(session.DragEnd{})
				}
			}
		case key.Event:
			cmd, ok := commandForKey(e, st.ModalVisible)
			if !ok {
				continue
			}
			// The sheet covers the toolbar, so only its own keys apply.
			if st.ModalVisible && cmd.Action != ActionSelect && cmd.Action != ActionClosePicker && cmd.Action != ActionQuit {
				continue
			}
			if dispatch(cmd) {
				return
			}
		}
	}
}
