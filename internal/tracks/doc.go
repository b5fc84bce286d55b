// Package tracks implements the track compliance and selection engine.
//
// Given a parsed description of a container file's audio and subtitle tracks
// and an immutable selection policy, the engine decides whether the file
// already satisfies the policy, which tracks should carry the default flag,
// and which flag mutations reach that state.
//
// The pipeline is strictly one-directional:
//
//	Parse -> Evaluate -> BuildPlan
//
// All functions are pure; the engine never touches the container file and
// never performs I/O. Applying the resulting EditPlan is the mkv package's
// concern.
package tracks
