// Package session derives stable prompt-cache keys for conversation turns.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/skel-ai/go-responder/internal/types"
)

const maxEntries = 10000

var (
	mu             sync.Mutex
	fingerprintMap = make(map[string]string)
	order          []string
)

// PromptCacheKey returns a deterministic cache key based on the instructions
// and input items. If a caller-supplied key is provided, it is used as-is.
//
// The deterministic key enables prompt caching on the upstream: the same
// instructions + first user message always produce the same key, so the
// backend can reuse cached computation across turns of one conversation.
func PromptCacheKey(instructions string, input []types.InputItem, callerSupplied string) string {
	if callerSupplied != "" {
		return callerSupplied
	}

	fp := fingerprint(canonicalizePrefix(instructions, input))

	mu.Lock()
	defer mu.Unlock()

	if key, ok := fingerprintMap[fp]; ok {
		return key
	}

	key := uuid.New().String()
	fingerprintMap[fp] = key
	order = append(order, fp)
	if len(order) > maxEntries {
		// FIFO eviction: drop the oldest fingerprint when the cap is
		// reached. O(n) copy is acceptable because eviction is rare and
		// avoids an external LRU dependency for a bounded table.
		oldest := order[0]
		copy(order, order[1:])
		order[len(order)-1] = ""
		order = order[:len(order)-1]
		delete(fingerprintMap, oldest)
	}
	return key
}

// canonicalizePrefix builds a stable string from only the turn-invariant
// parts of the request: instructions and the first user message. Later
// messages would produce a new key every turn, defeating caching.
func canonicalizePrefix(instructions string, input []types.InputItem) string {
	prefix := make(map[string]any)
	if instructions != "" {
		prefix["instructions"] = instructions
	}
	if firstUser := canonicalizeFirstUserMessage(input); firstUser != nil {
		prefix["first_user_message"] = firstUser
	}
	data, _ := json.Marshal(prefix)
	return string(data)
}

func canonicalizeFirstUserMessage(input []types.InputItem) map[string]any {
	for _, item := range input {
		if item.Type != "message" || item.Role != "user" || len(item.Content) == 0 {
			continue
		}
		var normContent []map[string]any
		for _, part := range item.Content {
			switch part.Type {
			case "input_text":
				if part.Text != "" {
					normContent = append(normContent, map[string]any{"type": "input_text", "text": part.Text})
				}
			case "input_image":
				if part.ImageURL != "" {
					normContent = append(normContent, map[string]any{"type": "input_image", "image_url": part.ImageURL})
				}
			}
		}
		if len(normContent) > 0 {
			return map[string]any{
				"type":    "message",
				"role":    "user",
				"content": normContent,
			}
		}
	}
	return nil
}

func fingerprint(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
