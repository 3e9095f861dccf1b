// Package settings loads orbit controller settings from YAML files and watches them for changes.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// OrbitSettings is the file form of an orbit controller's configuration.
// Every field is optional; Apply only touches what the document names.
// Unbounded limits are written as .inf and -.inf.
type OrbitSettings struct {
	Enabled *bool       `yaml:"enabled"`
	Target  *[3]float64 `yaml:"target"`

	MinDistance     *float64 `yaml:"min_distance"`
	MaxDistance     *float64 `yaml:"max_distance"`
	MinZoom         *float64 `yaml:"min_zoom"`
	MaxZoom         *float64 `yaml:"max_zoom"`
	MinPolarAngle   *float64 `yaml:"min_polar_angle"`
	MaxPolarAngle   *float64 `yaml:"max_polar_angle"`
	MinAzimuthAngle *float64 `yaml:"min_azimuth_angle"`
	MaxAzimuthAngle *float64 `yaml:"max_azimuth_angle"`

	EnableDamping *bool    `yaml:"enable_damping"`
	DampingFactor *float64 `yaml:"damping_factor"`

	EnableZoom   *bool    `yaml:"enable_zoom"`
	ZoomSpeed    *float64 `yaml:"zoom_speed"`
	EnableRotate *bool    `yaml:"enable_rotate"`
	RotateSpeed  *float64 `yaml:"rotate_speed"`
	EnablePan    *bool    `yaml:"enable_pan"`
	KeyPanSpeed  *float64 `yaml:"key_pan_speed"`

	AutoRotate      *bool    `yaml:"auto_rotate"`
	AutoRotateSpeed *float64 `yaml:"auto_rotate_speed"`

	EnableKeys   *bool           `yaml:"enable_keys"`
	Keys         *KeySettings    `yaml:"keys"`
	MouseButtons *ButtonSettings `yaml:"mouse_buttons"`
}

// KeySettings overrides individual pan key codes.
type KeySettings struct {
	Left   *uint32 `yaml:"left"`
	Up     *uint32 `yaml:"up"`
	Right  *uint32 `yaml:"right"`
	Bottom *uint32 `yaml:"bottom"`
}

// ButtonSettings overrides the gesture buttons by name: left, middle or right.
type ButtonSettings struct {
	Orbit *string `yaml:"orbit"`
	Zoom  *string `yaml:"zoom"`
	Pan   *string `yaml:"pan"`
}

// Load reads and parses the settings file at path.
//
// Parameters:
//   - path: the YAML file to read
//
// Returns:
//   - *OrbitSettings: the parsed settings
//   - error: error if the file cannot be read or parsed
func Load(path string) (*OrbitSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: load %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("settings: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a settings document. Unknown keys are rejected and an empty document yields empty settings.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *OrbitSettings: the parsed settings
//   - error: error if the document is malformed
func Parse(data []byte) (*OrbitSettings, error) {
	var s OrbitSettings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &s, nil
}

// Apply writes the settings onto oc. Limits, damping and buttons are validated against the
// controller's current values first; on error nothing is changed.
//
// Parameters:
//   - oc: the controller to configure
//
// Returns:
//   - error: wrapping camera.ErrInvalidLimits, camera.ErrInvalidDamping, or an unknown button name
func (s *OrbitSettings) Apply(oc *camera.OrbitController) error {
	c := oc.Constraint

	limits := c.Limits
	setFloat(&limits.MinDistance, s.MinDistance)
	setFloat(&limits.MaxDistance, s.MaxDistance)
	setFloat(&limits.MinZoom, s.MinZoom)
	setFloat(&limits.MaxZoom, s.MaxZoom)
	setFloat(&limits.MinPolarAngle, s.MinPolarAngle)
	setFloat(&limits.MaxPolarAngle, s.MaxPolarAngle)
	setFloat(&limits.MinAzimuthAngle, s.MinAzimuthAngle)
	setFloat(&limits.MaxAzimuthAngle, s.MaxAzimuthAngle)
	if err := limits.Validate(); err != nil {
		return err
	}

	if s.DampingFactor != nil {
		if err := camera.ValidateDampingFactor(*s.DampingFactor); err != nil {
			return err
		}
	}

	buttons := oc.MouseButtons
	if s.MouseButtons != nil {
		for _, b := range []struct {
			name *string
			dst  *input.MouseButton
		}{
			{s.MouseButtons.Orbit, &buttons.Orbit},
			{s.MouseButtons.Zoom, &buttons.Zoom},
			{s.MouseButtons.Pan, &buttons.Pan},
		} {
			if b.name == nil {
				continue
			}
			parsed, ok := input.ParseMouseButton(*b.name)
			if !ok {
				return fmt.Errorf("settings: unknown mouse button %q", *b.name)
			}
			*b.dst = parsed
		}
	}

	c.Limits = limits
	oc.MouseButtons = buttons
	if s.Target != nil {
		c.Target = mgl64.Vec3(*s.Target)
	}
	setBool(&c.EnableDamping, s.EnableDamping)
	setFloat(&c.DampingFactor, s.DampingFactor)

	setBool(&oc.Enabled, s.Enabled)
	setBool(&oc.EnableZoom, s.EnableZoom)
	setFloat(&oc.ZoomSpeed, s.ZoomSpeed)
	setBool(&oc.EnableRotate, s.EnableRotate)
	setFloat(&oc.RotateSpeed, s.RotateSpeed)
	setBool(&oc.EnablePan, s.EnablePan)
	setFloat(&oc.KeyPanSpeed, s.KeyPanSpeed)
	setBool(&oc.AutoRotate, s.AutoRotate)
	setFloat(&oc.AutoRotateSpeed, s.AutoRotateSpeed)
	setBool(&oc.EnableKeys, s.EnableKeys)
	if s.Keys != nil {
		setUint(&oc.Keys.Left, s.Keys.Left)
		setUint(&oc.Keys.Up, s.Keys.Up)
		setUint(&oc.Keys.Right, s.Keys.Right)
		setUint(&oc.Keys.Bottom, s.Keys.Bottom)
	}
	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setUint(dst *uint32, v *uint32) {
	if v != nil {
		*dst = *v
	}
}
