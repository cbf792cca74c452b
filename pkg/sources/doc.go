/*
Package sources is the ingestion boundary: it turns slider, category and preset
files into the typed records the core works with.

  - Slider files are JSON arrays (comments and trailing commas allowed) of
    {name, morph, minimum, maximum, interval, gender}.
  - Category files are YAML or JSON lists of {name, entries: [{morph, display_name}]}.
  - Preset files are YAML or JSON renderings of BodySlide SliderPresets:
    {name, set, Group, SetSlider: [{name, size, value}]}, where Group and
    SetSlider may be a single object or a list.

Nothing loosely typed leaves this package.
*/
package sources
