// Package logger provides leveled, per-module logging for the host
// adapter, on top of logrus. Warnings and errors are always emitted;
// debug and info logs are gated by a per-module mask so a host can
// switch on the chatter of a single subsystem.
package logger

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

type ModuleMask uint64
type Module uint

const (
	ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF
)

// Standard modules, one per subsystem of the adapter layer. Additional
// modules can be registered with NewModule().
const (
	ModHost Module = iota + 1
	ModVideo
	ModSound
	ModState
	ModMedia

	endStandardMods
)

var modCount = endStandardMods

var modDebugMask ModuleMask = 0

var disabled = false

var modNames = []string{
	"<error>", "host", "video", "sound", "state", "media",
}

func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

// ModuleNames returns the names of all registered modules, standard
// ones included.
func ModuleNames() []string {
	return modNames[1:int(modCount)]
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

// Disable turns off all logging, warnings and errors included.
func Disable() {
	disabled = true
	logrus.SetLevel(logrus.PanicLevel)
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) Enabled(level Level) bool {
	if disabled {
		return false
	}
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

// Implement the whole logging interface directly on modules

func (mod Module) WithFields(fields Fields) Entry {
	return Entry{mod: mod}.WithFields(fields)
}

func (mod Module) WithField(key string, value any) Entry {
	return Entry{mod: mod}.WithField(key, value)
}

func (mod Module) WithError(err error) Entry {
	return Entry{mod: mod}.WithField("err", err)
}

// printf-like family

func (mod Module) Debugf(format string, args ...any) {
	Entry{mod: mod}.Debugf(format, args...)
}

func (mod Module) Infof(format string, args ...any) {
	Entry{mod: mod}.Infof(format, args...)
}

func (mod Module) Warnf(format string, args ...any) {
	Entry{mod: mod}.Warnf(format, args...)
}

func (mod Module) Errorf(format string, args ...any) {
	Entry{mod: mod}.Errorf(format, args...)
}

func (mod Module) Fatalf(format string, args ...any) {
	Entry{mod: mod}.Fatalf(format, args...)
}
