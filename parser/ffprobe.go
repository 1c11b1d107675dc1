package parser

import (
	"encoding/json"
	"os/exec"
	"path"
	"runtime"

	"github.com/pkg/errors"
)

type ffProbeJSON struct {
	Streams []ffProbeStream `json:"streams"`
	Error   struct {
		Code   int    `json:"code"`
		String string `json:"string"`
	} `json:"error"`
}

type ffProbeStream struct {
	CodecType string `json:"codec_type"`
	Height    int    `json:"height,omitempty"`
	Width     int    `json:"width,omitempty"`
}

func FFProbeFilename(ffprobepath string) string {
	if runtime.GOOS == "windows" {
		return path.Join(ffprobepath, "ffprobe.exe")
	}
	return path.Join(ffprobepath, "ffprobe")
}

// ProbeResolution asks ffprobe for the video stream dimensions and maps
// them onto the resolution ladder. Returns an empty string when the
// height does not reach 480p.
func ProbeResolution(ffprobePath string, videoPath string) (string, error) {
	args := []string{"-v", "quiet", "-print_format", "json", "-show_streams", "-show_error", videoPath}

	out, err := exec.Command(ffprobePath, args...).Output()
	if err != nil {
		return "", errors.Wrapf(err, "ffprobe failed for <%s>", videoPath)
	}
	probeJSON := ffProbeJSON{}
	if err := json.Unmarshal(out, &probeJSON); err != nil {
		return "", errors.Wrapf(err, "error unmarshalling video data for <%s>", videoPath)
	}
	if probeJSON.Error.Code != 0 {
		return "", errors.Errorf("ffprobe error code %d: %s", probeJSON.Error.Code, probeJSON.Error.String)
	}

	for idxstream := range probeJSON.Streams {
		if probeJSON.Streams[idxstream].CodecType != "video" {
			continue
		}
		height := probeJSON.Streams[idxstream].Height
		width := probeJSON.Streams[idxstream].Width
		getreso := ""
		if height >= 480 || width == 720 {
			getreso = "480p"
		}
		if height > 576 || width == 1280 {
			getreso = "720p"
		}
		if height > 720 || width == 1920 {
			getreso = "1080p"
		}
		if height > 1080 || width == 3840 {
			getreso = "2160p"
		}
		return getreso, nil
	}
	return "", errors.Errorf("no video stream in <%s>", videoPath)
}
