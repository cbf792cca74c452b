/*
Package preset validates raw slider lists against a slider catalog.

Validation drops sliders the catalog does not know (recorded as errors), clamps
out-of-range values (recorded as warnings), infers the preset gender from which
gender list each kept slider matched, and renders the cleaned list as a
descriptor ("name@value,name@value").

Validate is pure: the same catalog and input always produce the same result,
element order included.
*/
package preset
