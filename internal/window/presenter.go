package window

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// presenter streams a CPU frame into one texture and draws it.
type presenter struct {
	prog   uint32
	vao    uint32
	vbo    uint32
	tex    uint32
	uFrame int32

	texW, texH int
}

func newPresenter() (*presenter, error) {
	prog, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, err
	}
	p := &presenter{prog: prog}

	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	quad := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(&quad[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.GenTextures(1, &p.tex)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.UseProgram(prog)
	p.uFrame = gl.GetUniformLocation(prog, gl.Str("uFrame\x00"))
	gl.Uniform1i(p.uFrame, 0)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(0, 0, 0, 1)
	return p, nil
}

// draw uploads frame, reallocating the texture only when its size changed,
// and fills the viewport with it.
func (p *presenter) draw(frame *image.RGBA) {
	w, h := frame.Rect.Dx(), frame.Rect.Dy()
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if w == 0 || h == 0 {
		return
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	if w != p.texW || h != p.texH {
		gl.TexImage2D(
			gl.TEXTURE_2D, 0, gl.RGBA8,
			int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix),
		)
		p.texW, p.texH = w, h
	} else {
		gl.TexSubImage2D(
			gl.TEXTURE_2D, 0, 0, 0,
			int32(w), int32(h),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix),
		)
	}

	gl.UseProgram(p.prog)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (p *presenter) destroy() {
	if p.tex != 0 {
		gl.DeleteTextures(1, &p.tex)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.prog != 0 {
		gl.DeleteProgram(p.prog)
	}
}
