/*
Package domain contains the core data model shared by every bodygen component.

The types here are plain values with no I/O. Decoded morph files, slider
descriptors and validated presets are created once and then only read, so they
can be shared between goroutines without locking.

# Key Entities

  - TriFile / MorphChannel: a decoded sparse morph-target file.
  - SliderDescriptor / SliderCategory: the slider catalog inputs.
  - Slider: a named value, used both for raw and cleaned slider lists.
  - RawPreset / ValidatedPreset: a preset before and after validation.
*/
package domain
