package software

import (
	"errors"
	"image"
	"math"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/draw"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/config"
	"github.com/gogpu/gfx/gfxtest"
)

func newDevice(t *testing.T, opts Options) *Device {
	t.Helper()
	dev, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { dev.Close() })
	return dev
}

func mustCanvas(t *testing.T, dev *Device, w, h uint32) *Canvas {
	t.Helper()
	c := gfxtest.MustCanvas(t, dev, gfx.CanvasOptions{Title: "Test", Size: gfx.Extent{Width: w, Height: h}})
	return c.(*Canvas)
}

func TestConformance(t *testing.T) {
	gfxtest.Run(t, func(t *testing.T) gfx.Device {
		dev, err := New(DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		return dev
	})
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.Software) {
		t.Fatal("software backend not registered")
	}
	dev, err := backend.Open(backend.Software, config.Default())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer dev.Close()
	if _, ok := dev.(*Device); !ok {
		t.Errorf("Open() returned %T, want *Device", dev)
	}
}

func TestNewNegativeLimit(t *testing.T) {
	if _, err := New(Options{MaxCanvases: -1}); err == nil {
		t.Error("New(MaxCanvases: -1) error = nil")
	}
}

func TestCanvasLimit(t *testing.T) {
	dev := newDevice(t, Options{MaxCanvases: 1})
	mustCanvas(t, dev, 4, 4)
	if _, err := dev.CreateCanvas(gfx.CanvasOptions{}); !errors.Is(err, gfx.ErrCanvasLimit) {
		t.Errorf("CreateCanvas() over limit = %v, want ErrCanvasLimit", err)
	}
}

func TestClearAndPresent(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	dev := newDevice(t, Options{ClearColor: red})
	c := mustCanvas(t, dev, 8, 8)

	if c.Image() != nil {
		t.Error("Image() outside a frame should be nil")
	}
	if !gfxtest.Frame(t, dev) {
		t.Fatal("frame declined")
	}
	if got := c.Front().RGBAAt(3, 3); got != red {
		t.Errorf("Front() pixel = %v, want %v", got, red)
	}
}

func TestDrawIntoBackBuffer(t *testing.T) {
	dev := newDevice(t, DefaultOptions())
	c := mustCanvas(t, dev, 16, 16)
	blue := color.RGBA{B: 255, A: 255}

	ok, err := dev.BeginDraw()
	if !ok || err != nil {
		t.Fatalf("BeginDraw() = %v, %v", ok, err)
	}
	img := c.Image()
	if img == nil {
		t.Fatal("Image() = nil during open frame")
	}
	draw.Draw(img, image.Rect(0, 0, 8, 16), image.NewUniform(blue), image.Point{}, draw.Src)

	// Nothing is visible before Present.
	if got := c.Front().RGBAAt(2, 2); got == blue {
		t.Error("drawing visible before Present")
	}
	if err := dev.EndDraw(); err != nil {
		t.Fatal(err)
	}
	if c.Image() != nil {
		t.Error("Image() after EndDraw should be nil")
	}
	if err := dev.Present(); err != nil {
		t.Fatal(err)
	}
	if got := c.Front().RGBAAt(2, 2); got != blue {
		t.Errorf("left pixel = %v, want %v", got, blue)
	}
	if got := c.Front().RGBAAt(12, 2); got != (color.RGBA{A: 255}) {
		t.Errorf("right pixel = %v, want opaque black", got)
	}
}

func TestResizeDeclinesFrame(t *testing.T) {
	dev := newDevice(t, DefaultOptions())
	c := mustCanvas(t, dev, 8, 8)
	shown := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	drawn := color.RGBA{R: 40, G: 50, B: 60, A: 255}
	front, back := c.front, c.back
	front.SetRGBA(1, 1, shown)
	back.SetRGBA(1, 1, drawn)

	if err := c.Resize(20, 10); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	ok, err := dev.BeginDraw()
	if ok || err != nil {
		t.Fatalf("BeginDraw() with pending resize = %v, %v, want false, nil", ok, err)
	}
	if dev.State() != gfx.FrameIdle {
		t.Errorf("State() = %v, want Idle", dev.State())
	}
	if dev.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", dev.Skipped())
	}
	// A declined frame neither clears nor swaps.
	if c.front != front || c.back != back {
		t.Error("buffers swapped by declined frame")
	}
	if got := front.RGBAAt(1, 1); got != shown {
		t.Errorf("front pixel = %v, want %v", got, shown)
	}
	if got := back.RGBAAt(1, 1); got != drawn {
		t.Errorf("back pixel = %v, want %v", got, drawn)
	}

	if err := c.Process(); err != nil {
		t.Fatal(err)
	}
	if got := c.Size(); got != (gfx.Extent{Width: 20, Height: 10}) {
		t.Errorf("Size() = %v, want 20x10", got)
	}
	if !gfxtest.Frame(t, dev) {
		t.Error("frame declined after resize applied")
	}
	if b := c.Front().Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("Front() bounds = %v", b)
	}
}

func TestHugeCanvasRejected(t *testing.T) {
	dev := newDevice(t, DefaultOptions())
	tests := []gfx.Extent{
		{Width: math.MaxUint32, Height: math.MaxUint32},
		{Width: 100000, Height: 100000},
		{Width: DefaultMaxCanvasPixels + 1, Height: 1},
	}
	for _, size := range tests {
		_, err := dev.CreateCanvas(gfx.CanvasOptions{Size: size})
		if !errors.Is(err, gfx.ErrCanvasLimit) {
			t.Errorf("CreateCanvas(%v) = %v, want ErrCanvasLimit", size, err)
		}
	}
	if n := len(dev.Canvases()); n != 0 {
		t.Errorf("Canvases() = %d after rejected sizes, want 0", n)
	}

	// Zero area is never over budget.
	mustCanvas(t, dev, 0, math.MaxUint32)
}

func TestMaxCanvasPixels(t *testing.T) {
	dev := newDevice(t, Options{MaxCanvasPixels: 100})
	mustCanvas(t, dev, 10, 10)
	if _, err := dev.CreateCanvas(gfx.CanvasOptions{Size: gfx.Extent{Width: 11, Height: 10}}); !errors.Is(err, gfx.ErrCanvasLimit) {
		t.Errorf("CreateCanvas(11x10) = %v, want ErrCanvasLimit", err)
	}
}

func TestHugeResizeRejected(t *testing.T) {
	dev := newDevice(t, DefaultOptions())
	c := mustCanvas(t, dev, 8, 8)

	if err := c.Resize(math.MaxUint32, math.MaxUint32); !errors.Is(err, gfx.ErrCanvasLimit) {
		t.Fatalf("Resize() = %v, want ErrCanvasLimit", err)
	}
	if err := c.Process(); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := c.Size(); got != (gfx.Extent{Width: 8, Height: 8}) {
		t.Errorf("Size() = %v, want 8x8", got)
	}
	if !gfxtest.Frame(t, dev) {
		t.Error("frame declined after rejected resize")
	}

	dev.Close()
	if err := c.Resize(4, 4); !errors.Is(err, gfx.ErrDeviceClosed) {
		t.Errorf("Resize() after device Close = %v, want ErrDeviceClosed", err)
	}
}

func TestCloseMidFrameKeepsBuffer(t *testing.T) {
	dev := newDevice(t, DefaultOptions())
	a := mustCanvas(t, dev, 16, 16)
	mustCanvas(t, dev, 4, 4)

	ok, err := dev.BeginDraw()
	if !ok || err != nil {
		t.Fatalf("BeginDraw() = %v, %v", ok, err)
	}
	img := a.Image()
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if n := dev.buffers.Len(); n != 0 {
		t.Fatalf("pooled buffers while frame open = %d, want 0", n)
	}

	// A new canvas must not share the buffer the closed one handed out.
	b := mustCanvas(t, dev, 16, 16)
	if b.back == img || b.front == img {
		t.Error("new canvas reuses a buffer from the open frame")
	}

	if err := dev.EndDraw(); err != nil {
		t.Fatal(err)
	}
	if err := dev.Present(); err != nil {
		t.Fatal(err)
	}
	if n := dev.buffers.Len(); n != 1 {
		t.Errorf("pooled buffers after Present = %d, want 1", n)
	}
}

func TestCloseMidFrameReleasedByDeviceClose(t *testing.T) {
	dev := newDevice(t, DefaultOptions())
	a := mustCanvas(t, dev, 8, 8)
	if ok, _ := dev.BeginDraw(); !ok {
		t.Fatal("BeginDraw() declined")
	}
	a.Close()
	dev.Close()
	if n := dev.buffers.Len(); n != 1 {
		t.Errorf("pooled buffers after device Close = %d, want 1", n)
	}
}

func TestBuffersRecycled(t *testing.T) {
	dev := newDevice(t, DefaultOptions())
	a := mustCanvas(t, dev, 16, 16)
	gfxtest.Frame(t, dev)

	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if n := dev.buffers.Len(); n != 1 {
		t.Fatalf("pooled buffers after Close = %d, want 1", n)
	}
	if a.Front() == nil {
		t.Error("Front() = nil after canvas Close")
	}

	b := mustCanvas(t, dev, 16, 16)
	if n := dev.buffers.Len(); n != 0 {
		t.Errorf("pooled buffers after CreateCanvas = %d, want 0", n)
	}
	if !gfxtest.Frame(t, dev) {
		t.Error("frame declined on canvas with recycled buffer")
	}
	if got := b.Front().RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("pixel = %v, want opaque black", got)
	}
}

func TestStampTitle(t *testing.T) {
	dev := newDevice(t, Options{ClearColor: color.Black, StampTitle: true})
	c := mustCanvas(t, dev, 64, 24)
	gfxtest.Frame(t, dev)

	lit := 0
	b := c.Front().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.Front().RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("title stamp drew no pixels")
	}
}

func TestSnapshotAndSavePNG(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dev := newDevice(t, Options{ClearColor: white})
	c := mustCanvas(t, dev, 32, 32)
	gfxtest.Frame(t, dev)

	snap := c.Snapshot(8, 8)
	if b := snap.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("Snapshot bounds = %v", b)
	}
	if got := snap.RGBAAt(4, 4); got.R < 250 || got.A < 250 {
		t.Errorf("Snapshot pixel = %v, want near %v", got, white)
	}
	if empty := c.Snapshot(0, 5); !empty.Bounds().Empty() {
		t.Errorf("Snapshot(0, 5) bounds = %v, want empty", empty.Bounds())
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("decoded bounds = %v", b)
	}
}

func TestFrontSurvivesDeviceClose(t *testing.T) {
	dev := newDevice(t, DefaultOptions())
	c := mustCanvas(t, dev, 4, 4)
	gfxtest.Frame(t, dev)
	dev.Close()

	if c.Front() == nil {
		t.Error("Front() = nil after device Close")
	}
	if c.Image() != nil {
		t.Error("Image() after device Close should be nil")
	}
	if err := c.Process(); !errors.Is(err, gfx.ErrDeviceClosed) {
		t.Errorf("Process() = %v, want ErrDeviceClosed", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ClearColor = [4]float64{1, 0, 0.5, 1}
	cfg.MaxCanvases = 3
	cfg.Software.StampTitle = true

	opts := OptionsFromConfig(cfg)
	if opts.MaxCanvases != 3 || !opts.StampTitle {
		t.Errorf("OptionsFromConfig() = %+v", opts)
	}
	want := color.NRGBA{R: 255, G: 0, B: 128, A: 255}
	if opts.ClearColor != want {
		t.Errorf("ClearColor = %v, want %v", opts.ClearColor, want)
	}
}
