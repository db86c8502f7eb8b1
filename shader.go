package vkguard

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/internal/lifetime"
)

// Shader module errors.
var (
	// ErrEmptyShaderCode is returned when creating a module with no code.
	ErrEmptyShaderCode = errors.New("vkguard: shader code is empty")

	// ErrBadSPIRVSize is returned when a SPIR-V byte blob is not a whole
	// number of 32-bit words.
	ErrBadSPIRVSize = errors.New("vkguard: SPIR-V byte length not a multiple of 4")
)

// ShaderModule wraps a compiled native shader module.
//
// Modules are shared: every pipeline built from a module retains it for
// the pipeline's whole lifetime, so releasing the caller's reference right
// after pipeline creation is always safe.
type ShaderModule struct {
	life lifetime.Counter

	dev    *Device
	handle driver.ShaderModule
}

// NewShaderModule creates a shader module from SPIR-V code given as 32-bit
// words.
func NewShaderModule(dev *Device, code []uint32) (*ShaderModule, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if len(code) == 0 {
		return nil, ErrEmptyShaderCode
	}
	handle, err := dev.drv.CreateShaderModule(dev.handle, driver.ShaderModuleCreateInfo{Code: code})
	if err != nil {
		return nil, fmt.Errorf("vkguard: create shader module: %w", err)
	}
	dev.Retain()
	m := &ShaderModule{dev: dev, handle: handle}
	m.life.Init(func() {
		dev.drv.DestroyShaderModule(dev.handle, handle)
		Logger().Debug("shader module destroyed", "module", uint64(handle))
		dev.Release()
	})
	Logger().Debug("shader module created", "module", uint64(handle), "words", len(code))
	return m, nil
}

// NewShaderModuleWGSL compiles WGSL source to SPIR-V and creates a module
// from the result.
func NewShaderModuleWGSL(dev *Device, src string) (*ShaderModule, error) {
	code, err := CompileWGSL(src)
	if err != nil {
		return nil, err
	}
	return NewShaderModule(dev, code)
}

// Handle returns the native shader module handle.
func (m *ShaderModule) Handle() driver.ShaderModule { return m.handle }

// Device returns the owning device.
func (m *ShaderModule) Device() *Device { return m.dev }

// Retain adds an owner reference.
func (m *ShaderModule) Retain() { m.life.Retain() }

// Release drops an owner reference, destroying the native module when the
// last one is gone.
func (m *ShaderModule) Release() { m.life.Release() }

// CompileWGSL compiles WGSL source to SPIR-V 32-bit words.
func CompileWGSL(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("vkguard: compile WGSL: %w", err)
	}
	return SPIRVWords(spirvBytes)
}

// SPIRVWords converts a SPIR-V byte blob to 32-bit words.
// SPIR-V is little-endian 32-bit words.
func SPIRVWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, ErrBadSPIRVSize
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}
