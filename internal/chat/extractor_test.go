package chat

import "testing"

func TestExtract_PureJSON(t *testing.T) {
	reply := Extract(`{"explanation":"x","code":"y"}`)
	if reply.Explanation != "x" || reply.Code != "y" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestExtract_PureJSONWithWhitespace(t *testing.T) {
	reply := Extract("  \n{\"explanation\":\"hello\",\"code\":\"\"}\n ")
	if reply.Explanation != "hello" || reply.Code != "" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestExtract_FencedJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"tagged fence", "```json\n{\"explanation\":\"x\",\"code\":\"\"}\n```"},
		{"bare fence", "```\n{\"explanation\":\"x\",\"code\":\"\"}\n```"},
		{"fence with prose around", "Sure, here you go:\n```json\n{\"explanation\":\"x\",\"code\":\"\"}\n```\nHope that helps."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply := Extract(tc.raw)
			if reply.Explanation != "x" || reply.Code != "" {
				t.Errorf("unexpected reply: %+v", reply)
			}
		})
	}
}

func TestExtract_FencedJSONMultiline(t *testing.T) {
	raw := "```json\n{\n  \"explanation\": \"multi line\",\n  \"code\": \"a := 1\"\n}\n```"
	reply := Extract(raw)
	if reply.Explanation != "multi line" || reply.Code != "a := 1" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestExtract_BoldMarkersWithCodeFence(t *testing.T) {
	raw := "**Explanation:** I built APIs.\n\n**Code:**\n```\nprint(1)\n```"
	reply := Extract(raw)
	if reply.Explanation != "I built APIs." {
		t.Errorf("explanation = %q", reply.Explanation)
	}
	if reply.Code != "print(1)" {
		t.Errorf("code = %q", reply.Code)
	}
}

func TestExtract_BoldMarkersPlainCode(t *testing.T) {
	raw := "**Explanation:** I used a queue.\n\n**Code:** q.push(x)\n\nAnything after."
	reply := Extract(raw)
	if reply.Explanation != "I used a queue." {
		t.Errorf("explanation = %q", reply.Explanation)
	}
	if reply.Code != "q.push(x)" {
		t.Errorf("code = %q", reply.Code)
	}
}

func TestExtract_BoldMarkersNoCode(t *testing.T) {
	raw := "**Explanation:** I led the migration project.**"
	reply := Extract(raw)
	if reply.Explanation != "I led the migration project." {
		t.Errorf("explanation = %q", reply.Explanation)
	}
	if reply.Code != "" {
		t.Errorf("code = %q", reply.Code)
	}
}

func TestExtract_BoldMarkerWithoutExplanationFallsThrough(t *testing.T) {
	raw := "**Code:**\nnothing else here"
	reply := Extract(raw)
	// no explanation span means the marker strategy must not claim the text
	if reply.Explanation != raw {
		t.Errorf("expected raw fallback, got %+v", reply)
	}
}

func TestExtract_JSONFragmentInsideProse(t *testing.T) {
	raw := `Here is my answer: {"explanation":"I used Go.","code":""} as requested.`
	reply := Extract(raw)
	if reply.Explanation != "I used Go." || reply.Code != "" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestExtract_PlainProseFallback(t *testing.T) {
	raw := "just some plain prose with no markers"
	reply := Extract(raw)
	if reply.Explanation != raw {
		t.Errorf("explanation = %q", reply.Explanation)
	}
	if reply.Code != "" {
		t.Errorf("code = %q", reply.Code)
	}
}

func TestExtract_MalformedJSONFallsBack(t *testing.T) {
	raw := `{"explanation": "unterminated`
	reply := Extract(raw)
	if reply.Explanation != raw || reply.Code != "" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestExtract_NeverEmptyOrPanics(t *testing.T) {
	inputs := []string{
		"",
		"{}",
		"{",
		"```json\n```",
		"**explanation:**",
		"{\"code\":\"only code\"}",
		"\x00\xff garbage",
	}
	for _, raw := range inputs {
		reply := Extract(raw)
		if reply.Explanation != raw {
			t.Errorf("Extract(%q).Explanation = %q, want raw input", raw, reply.Explanation)
		}
		if reply.Code != "" {
			t.Errorf("Extract(%q).Code = %q, want empty", raw, reply.Code)
		}
	}
}

func TestStructuredReply_Message(t *testing.T) {
	withCode := StructuredReply{Explanation: "e", Code: "c"}
	if got := withCode.Message(); got != "Explanation: e\n\nCode: c" {
		t.Errorf("Message() = %q", got)
	}

	noCode := StructuredReply{Explanation: "e"}
	if got := noCode.Message(); got != "e" {
		t.Errorf("Message() = %q", got)
	}
}
