package ffmpeg

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed profiles.toml
var profilesTOML []byte

// Profile is one named video-encoder parameter set. The fixed NVENC
// configuration lives in profiles.toml as data rather than scattered
// literals, so future overrides slot in without touching the pipeline.
type Profile struct {
	// Codec is the ffmpeg video encoder name (e.g. h264_nvenc).
	Codec string `toml:"codec"`
	// Preset is the encoder's quality/speed preset.
	Preset string `toml:"preset"`
	// RateControl selects a hardware rate-control mode; empty means the
	// encoder's CRF-style control with Quality as the CRF value.
	RateControl string `toml:"rate_control"`
	// Quality is the numeric quality target (CQ for hardware rate control,
	// CRF otherwise). Lower is better.
	Quality int `toml:"quality"`
	// Bitrate is the average bitrate ceiling.
	Bitrate string `toml:"bitrate"`
	// MaxRate is the peak bitrate ceiling, roughly 1.5x the average.
	MaxRate string `toml:"max_rate"`
	// BufferSize is the rate-control buffer, roughly 3x the average.
	BufferSize string `toml:"buffer_size"`
	// H264Profile is the H.264 profile level.
	H264Profile string `toml:"h264_profile"`
	// PixelFormat is the chroma subsampling format.
	PixelFormat string `toml:"pixel_format"`
	// FrameRate is the fixed output frame rate.
	FrameRate int `toml:"frame_rate"`
}

type profileTable struct {
	Profiles map[string]Profile `toml:"profiles"`
}

var profiles = mustLoadProfiles()

func mustLoadProfiles() map[string]Profile {
	var table profileTable
	if err := toml.Unmarshal(profilesTOML, &table); err != nil {
		panic(fmt.Sprintf("decode embedded encoder profiles: %v", err))
	}
	return table.Profiles
}

// LookupProfile returns the named encoder profile. Unknown names list the
// available profiles in the error.
func LookupProfile(name string) (Profile, error) {
	profile, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("unknown encoder profile %q (available: %s)", name, strings.Join(ProfileNames(), ", "))
	}
	return profile, nil
}

// ProfileNames lists the embedded profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VideoArgs renders the profile as collaborator arguments.
func (p Profile) VideoArgs() []string {
	args := []string{
		"-c:v", p.Codec,
		"-preset", p.Preset,
	}
	quality := fmt.Sprintf("%d", p.Quality)
	if p.RateControl != "" {
		args = append(args, "-rc", p.RateControl, "-cq", quality)
	} else {
		args = append(args, "-crf", quality)
	}
	return append(args,
		"-b:v", p.Bitrate,
		"-maxrate", p.MaxRate,
		"-bufsize", p.BufferSize,
		"-profile:v", p.H264Profile,
		"-pix_fmt", p.PixelFormat,
	)
}
