package assemble

import "strings"

// positiveImageHints are phrases that indicate the user wants an image
// generated this turn. Matching is case-insensitive substring containment.
var positiveImageHints = []string{
	"generate an image",
	"generate image",
	"create an image",
	"make an image",
	"draw ",
	"sketch ",
	"logo",
	"photo of ",
	"picture of ",
	"illustration",
	"wallpaper",
}

// negativeImageHints are phrases that indicate the user is talking about an
// existing image. A negative hint always overrides a positive one.
var negativeImageHints = []string{
	"analyze this image",
	"analyze the image",
	"describe this image",
	"describe the image",
	"what is in this image",
	"what's in this image",
	"look at this image",
}

// wantsImageGeneration applies the image-forcing heuristic to the user's
// message text.
func wantsImageGeneration(text string) bool {
	lowered := strings.ToLower(text)
	for _, hint := range negativeImageHints {
		if strings.Contains(lowered, hint) {
			return false
		}
	}
	for _, hint := range positiveImageHints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}
	return false
}
