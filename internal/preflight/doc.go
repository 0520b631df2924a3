// Package preflight runs the readiness checks mixfetch performs before a
// batch starts: the source list must be readable, the output directory must
// be writable, and yt-dlp and ffmpeg must be resolvable.
//
// The run command aborts on any failed check so a misconfigured environment
// is reported once instead of once per URL. The deps command reuses
// CheckSystemDeps to render its table.
package preflight
