package gemini

import (
	"encoding/json"
	"strings"

	"github.com/dhalloran/adorn"
)

// decodeJSON unmarshals a model response into v. Models asked for JSON
// occasionally wrap it in markdown fences anyway, so a fenced payload is
// retried with the fences stripped.
func decodeJSON(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	stripped := stripFences(raw)
	if err := json.Unmarshal([]byte(stripped), v); err != nil {
		preview := raw
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return adorn.Errorf(adorn.EINTERNAL, "failed to parse model JSON response: %v (preview: %s)", err, preview)
	}
	return nil
}

// stripFences removes a surrounding ```json / ``` markdown fence.
func stripFences(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
	} else {
		return s
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// slotsPayload is the wire shape returned by the suggestion prompts.
type slotsPayload struct {
	Slots []adorn.SlotSpec `json:"slots"`
}

// ParseSlots decodes a suggestion response and validates each record,
// dropping malformed slots rather than failing the batch. It returns the
// valid slots in response order and the number dropped.
func ParseSlots(raw string, kind adorn.SlotKind) ([]adorn.SlotSpec, int, error) {
	var payload slotsPayload
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, 0, err
	}

	valid := make([]adorn.SlotSpec, 0, len(payload.Slots))
	dropped := 0
	for _, slot := range payload.Slots {
		if err := slot.Validate(kind); err != nil {
			dropped++
			continue
		}
		slot.Position = string(adorn.ParsePosition(slot.Position))
		valid = append(valid, slot)
	}
	return valid, dropped, nil
}
