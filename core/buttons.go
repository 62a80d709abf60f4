package core

//go:generate go tool stringer -type=Button

// Button is a pad button. The constant order is the bit layout of the
// 16-bit button bitmask hosts push before each frame: MXYZ SACB RLDU.
type Button int

const (
	BtnUp Button = iota
	BtnDown
	BtnLeft
	BtnRight
	BtnB
	BtnC
	BtnA
	BtnStart
	BtnZ
	BtnY
	BtnX
	BtnMode
)

// Mask returns the button's bit in the pad bitmask.
func (b Button) Mask() uint16 {
	return 1 << b
}
