// Package software provides a headless gfx backend that renders into CPU
// memory.
//
// Every canvas owns two *image.RGBA buffers. BeginDraw clears the back
// buffer, the application draws into Canvas.Image, and Present swaps the
// buffers so Canvas.Front holds the finished frame:
//
//	dev, _ := software.New(software.DefaultOptions())
//	c, _ := dev.CreateCanvas(gfx.CanvasOptions{Size: gfx.Extent{Width: 64, Height: 64}})
//	canvas := c.(*software.Canvas)
//
//	if ok, _ := dev.BeginDraw(); ok {
//		draw.Draw(canvas.Image(), image.Rect(8, 8, 56, 56), image.White, image.Point{}, draw.Src)
//		dev.EndDraw()
//		dev.Present()
//	}
//	canvas.SavePNG("frame.png")
//
// The backend is always available and registers as "software".
package software
