// Package naming parses dashcam clip file names and derives merged
// output paths from them.
//
// Source clips follow the fixed BlackVue grammar
// {YYYYMMDD}_{HHMMSS}_{tag}.mp4, where the final character of the tag
// selects the camera: F for the front unit, R for the rear unit. Any
// name outside the grammar is simply not a clip.
package naming

import (
	"path/filepath"
	"strings"
	"time"
)

// CameraKind identifies which camera recorded a clip.
type CameraKind string

const (
	KindFront CameraKind = "front"
	KindRear  CameraKind = "rear"
)

// ClipExt is the only container extension the pipeline handles.
const ClipExt = ".mp4"

// timestampLayout covers the concatenated date and time components.
const timestampLayout = "20060102150405"

// Clip is the parsed identity of a single source recording.
type Clip struct {
	Kind       CameraKind
	CapturedAt time.Time
}

// ParseClipName classifies a bare file name. The second return value is
// false for anything that is not a recognizable clip; callers treat
// that as "skip", never as an error.
func ParseClipName(name string) (Clip, bool) {
	ext := filepath.Ext(name)
	if ext != ClipExt {
		return Clip{}, false
	}

	stem := strings.TrimSuffix(name, ext)
	parts := strings.Split(stem, "_")
	if len(parts) != 3 || parts[2] == "" {
		return Clip{}, false
	}

	var kind CameraKind
	switch parts[2][len(parts[2])-1] {
	case 'F':
		kind = KindFront
	case 'R':
		kind = KindRear
	default:
		return Clip{}, false
	}

	captured, err := time.Parse(timestampLayout, parts[0]+parts[1])
	if err != nil {
		return Clip{}, false
	}

	return Clip{Kind: kind, CapturedAt: captured}, true
}

// OutputPath returns the merged hourly file a clip belongs to:
// {destRoot}/{YYYYMMDD}/{front|rear}/{YYYYMMDD}-{HH}.mp4. All clips of
// one camera captured in the same hour share one output path.
func OutputPath(destRoot string, kind CameraKind, captured time.Time) string {
	day := captured.Format("20060102")
	hour := captured.Format("15")
	return filepath.Join(destRoot, day, string(kind), day+"-"+hour+ClipExt)
}
