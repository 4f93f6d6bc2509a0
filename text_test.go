package tempo_test

import (
	"testing"

	"github.com/go-theft-auto/tempo"
)

func TestTextLabelSize(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		gap       float32
		wantW     float32
		wantH     float32
		wantLines int
	}{
		{"empty", "", 0, 0, 0, 0},
		{"single line", "ab", 0, 20, 20, 1},
		{"widest line wins", "a\nbbb", 0, 30, 40, 2},
		{"line gap between lines only", "a\nbbb", 4, 30, 44, 2},
		{"negative gap", "a\nb\nc", -2, 10, 56, 3},
		{"trailing newline adds a line", "abc\n", 0, 30, 40, 2},
		{"blank line keeps height", "a\n\nb", 0, 10, 60, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tempo.NewTextLabel(&fixedFont{})
			l.SetLineGap(tt.gap)
			l.SetText(tt.text)

			size := l.Size()
			if size.X != tt.wantW || size.Y != tt.wantH {
				t.Errorf("size = (%v, %v), want (%v, %v)", size.X, size.Y, tt.wantW, tt.wantH)
			}
			if l.LineCount() != tt.wantLines {
				t.Errorf("LineCount() = %d, want %d", l.LineCount(), tt.wantLines)
			}
		})
	}
}

func TestTextLabelScaleRemeasures(t *testing.T) {
	l := tempo.NewTextLabel(&fixedFont{})
	l.SetText("abc")
	l.SetScale(2)

	if got := l.Size(); got.X != 60 || got.Y != 40 {
		t.Errorf("size at scale 2 = %+v, want (60, 40)", got)
	}
}

func TestTextLabelAlignmentRoundTrip(t *testing.T) {
	for _, text := range []string{"", "hello", "two\nlines here"} {
		l := tempo.NewTextLabel(&fixedFont{})
		l.SetText(text)
		l.SetAlignment(tempo.AlignCenter, tempo.AlignMiddle)
		l.SetAnchor(100, 50)

		o, s := l.Origin(), l.Size()
		cx, cy := o.X+s.X/2, o.Y+s.Y/2
		if cx != 100 || cy != 50 {
			t.Errorf("%q: center = (%v, %v), want (100, 50)", text, cx, cy)
		}
	}
}

func TestTextLabelAnchoring(t *testing.T) {
	tests := []struct {
		name  string
		x     tempo.XAlign
		y     tempo.YAlign
		wantX float32
		wantY float32
	}{
		{"left top", tempo.AlignLeft, tempo.AlignTop, 200, 100},
		{"center middle", tempo.AlignCenter, tempo.AlignMiddle, 185, 80},
		{"right bottom", tempo.AlignRight, tempo.AlignBottom, 170, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tempo.NewTextLabel(&fixedFont{})
			l.SetText("abc\nd") // 30 × 40
			l.SetAnchor(200, 100)
			l.SetAlignment(tt.x, tt.y)

			if o := l.Origin(); o.X != tt.wantX || o.Y != tt.wantY {
				t.Errorf("origin = (%v, %v), want (%v, %v)", o.X, o.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTextLabelAlignmentDoesNotRemeasure(t *testing.T) {
	font := &fixedFont{}
	l := tempo.NewTextLabel(font)
	l.SetText("measure me\nonce")
	before := font.measures

	l.SetAnchor(10, 10)
	l.SetXAlign(tempo.AlignRight)
	l.SetYAlign(tempo.AlignBottom)
	l.SetLineAlign(tempo.TextAlignCenter)
	l.SetText("measure me\nonce")
	l.Render(&tempo.DrawList{})

	if font.measures != before {
		t.Errorf("measured %d more times, want 0", font.measures-before)
	}
}

func TestTextLabelRenderPlacement(t *testing.T) {
	l := tempo.NewTextLabel(&fixedFont{})
	l.SetText("ab")
	l.SetAnchor(100, 50)

	dl := &tempo.DrawList{}
	l.Render(dl)

	if dl.Len() != 2 {
		t.Fatalf("quads = %d, want 2", dl.Len())
	}
	want := []tempo.Rect{
		{X: 101, Y: 54, W: fixedGlyphW, H: fixedGlyphH},
		{X: 111, Y: 54, W: fixedGlyphW, H: fixedGlyphH},
	}
	for i, cmd := range dl.Commands {
		if cmd.Kind != tempo.DrawTextured {
			t.Errorf("quad %d kind = %v, want textured", i, cmd.Kind)
		}
		if cmd.Rect != want[i] {
			t.Errorf("quad %d = %+v, want %+v", i, cmd.Rect, want[i])
		}
	}
}

func TestTextLabelRenderScaled(t *testing.T) {
	l := tempo.NewTextLabel(&fixedFont{})
	l.SetScale(2)
	l.SetText("a")

	dl := &tempo.DrawList{}
	l.Render(dl)

	want := tempo.Rect{X: 2, Y: 8, W: 16, H: 24}
	if dl.Len() != 1 || dl.Commands[0].Rect != want {
		t.Fatalf("commands = %+v, want one quad %+v", dl.Commands, want)
	}
}

func TestTextLabelRenderSkipsBlankAndUnknown(t *testing.T) {
	l := tempo.NewTextLabel(&fixedFont{})
	l.SetText("a b☃c")

	dl := &tempo.DrawList{}
	l.Render(dl)

	// Space advances without drawing, the snowman has no glyph.
	if dl.Len() != 3 {
		t.Fatalf("quads = %d, want 3", dl.Len())
	}
	if x := dl.Commands[2].Rect.X; x != 31 {
		t.Errorf("third glyph x = %v, want 31", x)
	}
}

func TestTextLabelLineAlign(t *testing.T) {
	tests := []struct {
		align tempo.TextAlign
		wantX float32 // first glyph of the short line
	}{
		{tempo.TextAlignLeft, 1},
		{tempo.TextAlignCenter, 11},
		{tempo.TextAlignRight, 21},
	}

	for _, tt := range tests {
		l := tempo.NewTextLabel(&fixedFont{})
		l.SetText("a\nbbb")
		l.SetLineAlign(tt.align)

		dl := &tempo.DrawList{}
		l.Render(dl)

		if got := dl.Commands[0].Rect.X; got != tt.wantX {
			t.Errorf("align %v: x = %v, want %v", tt.align, got, tt.wantX)
		}
		if got := dl.Commands[1].Rect.Y; got != fixedLineHeight+fixedAscent-fixedGlyphH {
			t.Errorf("align %v: second line y = %v", tt.align, got)
		}
	}
}

func TestTextLabelLineGapMovesLines(t *testing.T) {
	l := tempo.NewTextLabel(&fixedFont{})
	l.SetLineGap(6)
	l.SetText("a\n\nb")

	dl := &tempo.DrawList{}
	l.Render(dl)

	if dl.Len() != 2 {
		t.Fatalf("quads = %d, want 2", dl.Len())
	}
	wantY := float32(2*(fixedLineHeight+6) + fixedAscent - fixedGlyphH)
	if got := dl.Commands[1].Rect.Y; got != wantY {
		t.Errorf("third line y = %v, want %v", got, wantY)
	}
}

func TestTextLabelColor(t *testing.T) {
	l := tempo.NewTextLabel(&fixedFont{})
	l.SetText("x")
	l.SetColor(tempo.ColorYellow)

	dl := &tempo.DrawList{}
	l.Render(dl)

	if dl.Commands[0].Color != tempo.ColorYellow {
		t.Errorf("tint = %+v, want yellow", dl.Commands[0].Color)
	}
}

func TestTextLabelDestroyIdempotent(t *testing.T) {
	l := tempo.NewTextLabel(&fixedFont{})
	l.SetText("gone")

	l.Destroy()
	l.Destroy()

	l.SetText("back")
	dl := &tempo.DrawList{}
	l.Render(dl)

	if dl.Len() != 0 {
		t.Errorf("destroyed label drew %d quads", dl.Len())
	}
	if l.Text() != "" || l.Size() != (tempo.Vec2{}) {
		t.Errorf("destroyed label kept text %q size %+v", l.Text(), l.Size())
	}
}

func TestTextLabelNilFont(t *testing.T) {
	l := tempo.NewTextLabel(nil)
	l.SetText("nothing")

	dl := &tempo.DrawList{}
	l.Render(dl)

	if dl.Len() != 0 || l.Size() != (tempo.Vec2{}) {
		t.Errorf("nil font: quads %d size %+v", dl.Len(), l.Size())
	}
}

func TestSplitLines(t *testing.T) {
	if got := tempo.SplitLines(""); got != nil {
		t.Errorf("SplitLines(\"\") = %q, want nil", got)
	}
	if got := tempo.SplitLines("a\n"); len(got) != 2 || got[1] != "" {
		t.Errorf("SplitLines(\"a\\n\") = %q, want [a \"\"]", got)
	}
}

func TestWrapText(t *testing.T) {
	font := &fixedFont{}
	got := tempo.WrapText(font, "aa bb cc", 1, 50)
	want := []string{"aa bb", "cc"}
	if len(got) != len(want) {
		t.Fatalf("WrapText = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	if got := tempo.WrapText(font, "   ", 1, 50); got != nil {
		t.Errorf("WrapText(blank) = %q, want nil", got)
	}
}

func TestTruncateText(t *testing.T) {
	font := &fixedFont{}
	tests := []struct {
		text     string
		maxWidth float32
		want     string
	}{
		{"short", 100, "short"},
		{"abcdefghij", 55, "abc.."},
		{"abcdefghij", 10, ".."},
	}
	for _, tt := range tests {
		if got := tempo.TruncateText(font, tt.text, 1, tt.maxWidth); got != tt.want {
			t.Errorf("TruncateText(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
		}
	}
}
