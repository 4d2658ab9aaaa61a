// Package capture records camera video by driving an ffmpeg process. It
// implements the recording.Device contract: Begin spawns ffmpeg with a
// duration cap, End asks ffmpeg to finalize the file, and the Begin
// callback fires once the file is closed.
package capture
