package compose

import (
	"strings"
	"testing"
	"time"

	"sms-assistant-be/pkg/store"
)

func wednesdayEvening(t *testing.T) *time.Time {
	t.Helper()
	// 2026-03-11 is a Wednesday
	ts := time.Date(2026, 3, 11, 20, 0, 0, 0, time.UTC)
	return &ts
}

func TestComposeEvent(t *testing.T) {
	t.Run("full event", func(t *testing.T) {
		a := ComposeEvent(Event{
			Name:     "Active Meeting",
			StartAt:  wednesdayEvening(t),
			Location: "461B Kelton",
			Required: true,
		})
		if a.Headline != "Active Meeting: Wed 8:00 PM @ 461B Kelton" {
			t.Errorf("headline = %q", a.Headline)
		}
		if a.Details != "Attendance required." {
			t.Errorf("details = %q", a.Details)
		}
	})

	t.Run("no start time renders TBD", func(t *testing.T) {
		a := ComposeEvent(Event{Name: "Retreat"})
		if a.Headline != "Retreat: TBD" {
			t.Errorf("headline = %q", a.Headline)
		}
		if a.Details != "" {
			t.Errorf("optional event must not get placeholder details, got %q", a.Details)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		e := Event{Name: "Chapter", StartAt: wednesdayEvening(t), Location: "Main Hall"}
		first := Render(ComposeEvent(e))
		for i := 0; i < 5; i++ {
			if got := Render(ComposeEvent(e)); got != first {
				t.Fatal("ComposeEvent must be deterministic")
			}
		}
	})
}

func TestComposeDigest(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		a := ComposeDigest(nil)
		if a.Headline != "No upcoming events on the calendar." {
			t.Errorf("headline = %q", a.Headline)
		}
		if len(a.Sources) != 0 {
			t.Error("empty digest carries no sources")
		}
	})

	t.Run("caps at five bullets", func(t *testing.T) {
		events := make([]Event, 8)
		for i := range events {
			events[i] = Event{Name: "E" + string(rune('0'+i))}
		}
		a := ComposeDigest(events)
		if got := strings.Count(a.Headline, "•"); got != 5 {
			t.Errorf("digest has %d bullets, want 5", got)
		}
	})
}

func TestComposeDocument(t *testing.T) {
	body := "General info first sentence here.\nChapter meets Wednesday at 8:00 PM.\nMeetings are at Kelton Hall.\nAttendance required for actives.\nWe usually head to late-night after."

	t.Run("when query biases to time line", func(t *testing.T) {
		a := ComposeDocument(store.Record{Body: body, Title: "Schedule", Tag: "!official"}, "when is chapter")
		if a.Headline != "Chapter meets Wednesday at 8:00 PM." {
			t.Errorf("headline = %q", a.Headline)
		}
	})

	t.Run("where query biases to place line", func(t *testing.T) {
		a := ComposeDocument(store.Record{Body: body, Title: "Schedule"}, "where is chapter held")
		// The first "at <Place>" line wins; the time line also contains "at 8:00"
		if !strings.Contains(a.Headline, "at") {
			t.Errorf("headline should match a place pattern, got %q", a.Headline)
		}
	})

	t.Run("lowercase at-phrase is not a place", func(t *testing.T) {
		lower := "We wait at the door for a bit.\nDoors open at Kelton Hall."
		a := ComposeDocument(store.Record{Body: lower}, "where do we go")
		if a.Headline != "Doors open at Kelton Hall." {
			t.Errorf("headline = %q, want the capitalized place line", a.Headline)
		}
	})

	t.Run("default falls back to first sentence", func(t *testing.T) {
		a := ComposeDocument(store.Record{Body: body}, "tell me about chapter")
		if a.Headline != "General info first sentence here." {
			t.Errorf("headline = %q", a.Headline)
		}
	})

	t.Run("trigger substrings populate details", func(t *testing.T) {
		a := ComposeDocument(store.Record{Body: body}, "chapter")
		if !strings.Contains(a.Details, "Attendance required.") {
			t.Errorf("details = %q, want attendance trigger", a.Details)
		}
		if !strings.Contains(a.Details, "Schedule may vary") {
			t.Errorf("details = %q, want 'usually' trigger", a.Details)
		}
	})

	t.Run("no triggers means no details", func(t *testing.T) {
		a := ComposeDocument(store.Record{Body: "Just a plain fact."}, "what")
		if a.Details != "" {
			t.Errorf("details should be absent, got %q", a.Details)
		}
	})

	t.Run("no sentence boundary truncates with ellipsis", func(t *testing.T) {
		a := ComposeDocument(store.Record{Body: strings.Repeat("word ", 100)}, "hm")
		if !strings.HasSuffix(a.Headline, "…") {
			t.Errorf("headline should be ellipsis-truncated, got %q", a.Headline)
		}
		if len([]rune(a.Headline)) > 151 {
			t.Errorf("headline too long: %d runes", len([]rune(a.Headline)))
		}
	})
}

func TestRender(t *testing.T) {
	t.Run("marker tag earns a source line", func(t *testing.T) {
		out := Render(Answer{
			Headline: "H",
			Details:  "D",
			Sources:  []Source{{Title: "Bylaws", Tag: "!official"}},
		})
		want := "H\nD\nSource: Bylaws"
		if out != want {
			t.Errorf("Render = %q, want %q", out, want)
		}
	})

	t.Run("ordinary tag gets no source line", func(t *testing.T) {
		out := Render(Answer{
			Headline: "H",
			Sources:  []Source{{Title: "Bylaws", Tag: "misc"}},
		})
		if strings.Contains(out, "Source:") {
			t.Errorf("non-marker tag must not render a source line: %q", out)
		}
	})
}

func TestSanitize(t *testing.T) {
	t.Run("denylist replaced with em-dash", func(t *testing.T) {
		got := Sanitize("what the fuck is this shit")
		if strings.Contains(got, "fuck") || strings.Contains(got, "shit") {
			t.Errorf("profanity survived: %q", got)
		}
		if !strings.Contains(got, "—") {
			t.Errorf("expected em-dash replacement: %q", got)
		}
	})

	t.Run("newline runs collapse to two", func(t *testing.T) {
		got := Sanitize("a\n\n\n\n\nb")
		if got != "a\n\nb" {
			t.Errorf("Sanitize = %q", got)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{"clean text", "fuck\n\n\n\nthis", "", "a\nb"}
		for _, in := range inputs {
			once := Sanitize(in)
			if twice := Sanitize(once); twice != once {
				t.Errorf("Sanitize not idempotent for %q: %q vs %q", in, once, twice)
			}
		}
	})
}

func TestAnswerHeadlineNeverEmpty(t *testing.T) {
	a := ComposeDocument(store.Record{Body: ""}, "")
	if a.Headline == "" {
		t.Error("headline must always be non-empty")
	}
}
