// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// otherModalityKeywords signal work whose subject is a non-text modality:
// speech/audio, vision/image, robotics, biology/chemistry, music, and
// 3D/point-cloud processing. Classification works by absence: a record with
// no modality signal is text.
var otherModalityKeywords = []string{
	// speech / audio
	"speech", "audio", "acoustic", "phoneme", "wav2vec", "whisper",
	"text-to-speech", "speaker",
	// vision / image
	"image", "vision", "visual", "video", "pixel", "diffusion model",
	"segmentation", "object detection",
	// robotics
	"robot", "robotic", "manipulation", "locomotion",
	// biology / chemistry
	"protein", "molecule", "molecular", "genome", "dna", "rna", "chemistry",
	"drug discovery",
	// music
	"music", "midi", "melody",
	// 3D / point cloud
	"point cloud", "3d", "mesh", "voxel", "lidar",
}

// Classify labels a record text or other-modality. A single modality keyword
// in the title is decisive; otherwise it takes two hits anywhere in title
// plus abstract. Ambiguous or keyword-sparse records default to text. The
// 1-in-title / 2-anywhere thresholds are load-bearing: the section quotas
// downstream depend on them.
func Classify(rec types.Record) types.Topic {
	title := strings.ToLower(rec.Title)
	if countHits(title, otherModalityKeywords) >= 1 {
		return types.TopicOther
	}

	text := title + " " + strings.ToLower(rec.Abstract)
	if countHits(text, otherModalityKeywords) >= 2 {
		return types.TopicOther
	}

	return types.TopicText
}
