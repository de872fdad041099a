//go:build nogl

package opengl

import (
	"errors"
	"testing"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
)

func TestCreateUnavailable(t *testing.T) {
	if _, err := Create(DefaultOptions()); !errors.Is(err, gfx.ErrBackendUnavailable) {
		t.Errorf("Create() = %v, want ErrBackendUnavailable", err)
	}
	if backend.IsRegistered(backend.OpenGL) {
		t.Error("opengl registered in a nogl build")
	}
}
