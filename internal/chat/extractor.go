package chat

import (
	"encoding/json"
	"regexp"
	"strings"
)

// StructuredReply is the {explanation, code} pair the model is asked to
// produce. Explanation is never empty in an extracted reply; Code is an
// empty string, never absent, when the answer has no code.
type StructuredReply struct {
	Explanation string `json:"explanation"`
	Code        string `json:"code"`
}

// Message serializes the reply the way it is stored on an assistant turn.
func (r StructuredReply) Message() string {
	if r.Code == "" {
		return r.Explanation
	}
	return "Explanation: " + r.Explanation + "\n\nCode: " + r.Code
}

// strategy attempts to recover a StructuredReply from raw model output.
// ok is false when the strategy does not apply or fails to parse; the
// chain then moves on to the next one.
type strategy func(raw string) (reply StructuredReply, ok bool)

// strategies are ordered strictest first. Extract folds them with
// first-success-wins semantics and falls back to the raw text, so it
// never fails.
var strategies = []strategy{
	parsePureJSON,
	parseFencedJSON,
	parseBoldMarkers,
	parseJSONFragment,
}

var (
	fencedJSONRe  = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	explanationRe = regexp.MustCompile(`(?is)\*\*explanation:\*\*\s*(.*?)(?:\*\*code:\*\*|$)`)
	codeFenceRe   = regexp.MustCompile("(?is)\\*\\*code:\\*\\*.*?```(?:\\w+)?\\s*(.*?)```")
	codeTextRe    = regexp.MustCompile(`(?is)\*\*code:\*\*\s*(.*?)(?:\n\n|\n\*|$)`)
	trailingStars = regexp.MustCompile(`(?m)\*+\s*$`)
)

// Extract recovers a StructuredReply from arbitrary model output. Model
// adherence to the requested JSON shape is unreliable: responses arrive as
// bare JSON, JSON inside a markdown fence, bold-marker sections, or plain
// prose. Each strategy is tried in order and the first success wins; when
// none applies the raw text becomes the explanation verbatim, so the caller
// always gets something usable.
func Extract(raw string) StructuredReply {
	for _, try := range strategies {
		if reply, ok := try(raw); ok {
			return reply
		}
	}
	return StructuredReply{Explanation: raw, Code: ""}
}

// parsePureJSON handles the happy path where the whole response is a JSON
// object.
func parsePureJSON(raw string) (StructuredReply, bool) {
	clean := strings.TrimSpace(raw)
	if !strings.HasPrefix(clean, "{") || !strings.HasSuffix(clean, "}") {
		return StructuredReply{}, false
	}
	return decodeReply(clean)
}

// parseFencedJSON finds a ```json fenced object anywhere in the response.
func parseFencedJSON(raw string) (StructuredReply, bool) {
	m := fencedJSONRe.FindStringSubmatch(raw)
	if m == nil {
		return StructuredReply{}, false
	}
	return decodeReply(m[1])
}

// parseBoldMarkers handles responses written as markdown sections:
//
//	**Explanation:** ... **Code:** ```...```
//
// The explanation span runs to the code marker or end of text; code comes
// from a fence after the marker, or failing that from the plain span up to
// a blank line or the next bold marker. The result is accepted only when a
// non-empty explanation was found.
func parseBoldMarkers(raw string) (StructuredReply, bool) {
	lower := strings.ToLower(raw)
	if !strings.Contains(lower, "**explanation:") && !strings.Contains(lower, "**code:") {
		return StructuredReply{}, false
	}

	var explanation, code string
	if m := explanationRe.FindStringSubmatch(raw); m != nil {
		explanation = strings.TrimSpace(trailingStars.ReplaceAllString(strings.TrimSpace(m[1]), ""))
	}
	if m := codeFenceRe.FindStringSubmatch(raw); m != nil {
		code = strings.TrimSpace(m[1])
	} else if m := codeTextRe.FindStringSubmatch(raw); m != nil {
		code = strings.TrimSpace(m[1])
	}

	if explanation == "" {
		return StructuredReply{}, false
	}
	return StructuredReply{Explanation: explanation, Code: code}, true
}

// parseJSONFragment is the lenient, best-effort pass: locate the outermost
// {...} span even when the model wrapped it in commentary, and decode that
// against the reply shape.
func parseJSONFragment(raw string) (StructuredReply, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return StructuredReply{}, false
	}
	return decodeReply(raw[start : end+1])
}

// decodeReply accepts only objects that actually carry an explanation;
// anything else falls through to a laxer strategy.
func decodeReply(s string) (StructuredReply, bool) {
	var reply StructuredReply
	if err := json.Unmarshal([]byte(s), &reply); err != nil {
		return StructuredReply{}, false
	}
	if reply.Explanation == "" {
		return StructuredReply{}, false
	}
	return reply, true
}
