package host

import (
	"github.com/go-faster/jx"
)

// Info returns a JSON description of the session, for hosts that want
// one queryable blob instead of a getter per field.
func (s *Session) Info() []byte {
	var e jx.Encoder

	e.ObjStart()
	e.FieldStart("media")
	e.Str(s.MediaName())
	e.FieldStart("loaded")
	e.Bool(s.loaded)
	e.FieldStart("region")
	e.Str(s.Region().String())
	e.FieldStart("pal")
	e.Bool(s.IsPAL())
	e.FieldStart("width")
	e.Int(s.Video.Width())
	e.FieldStart("height")
	e.Int(s.Video.Height())
	e.FieldStart("frames")
	e.UInt64(s.frames)

	e.FieldStart("state")
	e.ObjStart()
	e.FieldStart("exists")
	e.Bool(s.State.Exists())
	e.FieldStart("size")
	e.Int(s.State.Size())
	e.ObjEnd()

	e.ObjEnd()
	return e.Bytes()
}
