// Package opengl provides a gfx backend on OpenGL 3.3 core with GLFW
// windows.
//
// Each canvas is a GLFW window. Its context shares objects with a hidden
// context owned by the Device, so GL objects created for one canvas can be
// used in all of them. Canvas.MakeCurrent selects the context to draw into
// between BeginDraw and EndDraw.
//
// GLFW requires the main thread. Importing this package locks the main
// goroutine to it; create and drive the device from main.
//
// A canvas whose window the user closes becomes dead: its Process returns
// ErrWindowClosed. The application closes the canvas, and the device keeps
// drawing the others.
//
// Build with the nogl tag to leave the backend out of binaries that cannot
// link GLFW. Create then returns gfx.ErrBackendUnavailable and the backend
// is not registered.
package opengl
