// Package mkv provides typed wrappers around the mkvmerge identification
// output and the mkvpropedit flag-edit invocation.
//
// Inspect runs `mkvmerge -J` and decodes the probe; Apply translates an
// EditPlan from the tracks engine into a single mkvpropedit call. Neither
// function interprets policy; all decisions happen upstream.
package mkv
