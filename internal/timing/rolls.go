package timing

// PrePostRoll is the music-only padding around the voice track, in whole
// bars so the voice always enters on a downbeat.
type PrePostRoll struct {
	PreRollBars     int     `json:"preRollBars"`
	PreRollSeconds  float64 `json:"preRollSeconds"`
	PostRollBars    int     `json:"postRollBars"`
	PostRollSeconds float64 `json:"postRollSeconds"`
	MusicSeconds    float64 `json:"musicSeconds"`
}

// maxPreRollBars caps the intro even for genres that earn an extra bar.
const maxPreRollBars = 4

// atmosphericGenres get one extra pre-roll bar to establish the scene.
var atmosphericGenres = map[string]bool{
	"cinematic": true,
	"ambient":   true,
}

// CalculatePrePostRoll chooses pre/post-roll bar counts from the ad length
// and genre, and returns the total music duration the mix needs
// (pre-roll + voice + post-roll).
func CalculatePrePostRoll(voiceSeconds, tempo float64, genre string, adSeconds float64, sig TimeSignature) PrePostRoll {
	bar := BarDuration(tempo, sig)

	pre, post := 1, 1
	switch {
	case adSeconds <= 15:
		// a 15s spot has no room for a long intro
	case adSeconds <= 30:
		if bar <= 2.0 {
			pre = 2
		}
	default:
		pre, post = 2, 2
	}

	if atmosphericGenres[genre] {
		pre++
	}
	if pre > maxPreRollBars {
		pre = maxPreRollBars
	}

	preSec := float64(pre) * bar
	postSec := float64(post) * bar
	return PrePostRoll{
		PreRollBars:     pre,
		PreRollSeconds:  preSec,
		PostRollBars:    post,
		PostRollSeconds: postSec,
		MusicSeconds:    preSec + voiceSeconds + postSec,
	}
}
