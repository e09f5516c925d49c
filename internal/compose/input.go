package compose

import (
	"encoding/base64"
	"log/slog"

	"github.com/skel-ai/go-responder/internal/config"
	"github.com/skel-ai/go-responder/internal/types"
)

// buildInput assembles the role-tagged message list: an optional developer
// entry followed by the user entry with its typed content parts.
func buildInput(cfg *config.Config, in Input) []types.InputItem {
	var items []types.InputItem
	if cfg.DeveloperInstructions != "" {
		items = append(items, types.DeveloperMessage(cfg.DeveloperInstructions))
	}

	parts := []types.ContentPart{types.TextPart(in.UserText)}
	parts = append(parts, attachmentParts(in.AttachmentFileIDs)...)
	parts = append(parts, inlineFileParts(in.FileBlobs, in.FileNames)...)
	parts = append(parts, imageParts(in.Images)...)

	items = append(items, types.UserMessage(parts...))
	return items
}

// attachmentParts builds file-reference parts. Entries without a file
// identifier are dropped with a warning, never fatal.
func attachmentParts(fileIDs []string) []types.ContentPart {
	var parts []types.ContentPart
	for _, id := range fileIDs {
		if id == "" {
			slog.Warn("attachment without file id dropped")
			continue
		}
		parts = append(parts, types.ContentPart{Type: "input_file", FileID: id})
	}
	return parts
}

// inlineFileParts pairs raw blobs with filenames as base64 inline file
// parts. A length mismatch truncates to the shorter list with a warning.
func inlineFileParts(blobs [][]byte, names []string) []types.ContentPart {
	n := len(blobs)
	if len(names) != n {
		slog.Warn("file data/name count mismatch, truncating to shorter list",
			"blobs", len(blobs), "names", len(names))
		if len(names) < n {
			n = len(names)
		}
	}
	var parts []types.ContentPart
	for i := 0; i < n; i++ {
		parts = append(parts, types.ContentPart{
			Type:     "input_file",
			Filename: names[i],
			FileData: base64.StdEncoding.EncodeToString(blobs[i]),
		})
	}
	return parts
}

// imageParts builds image parts. Each entry needs exactly one of a URL or a
// file identifier; entries with neither are dropped.
func imageParts(images []ImageInput) []types.ContentPart {
	var parts []types.ContentPart
	for _, img := range images {
		if img.URL == "" && img.FileID == "" {
			slog.Warn("image input without url or file id dropped")
			continue
		}
		part := types.ContentPart{Type: "input_image", Detail: img.Detail}
		if img.URL != "" {
			part.ImageURL = img.URL
		} else {
			part.FileID = img.FileID
		}
		parts = append(parts, part)
	}
	return parts
}
