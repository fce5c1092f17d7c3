package tree_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/notetrack/notetrack/tree"
)

func sample() *tree.Element {
	root := tree.New("track")
	root.Append(tree.New("note").SetInt("key", 64).SetFloat("beat", 0.5).SetFloat("len", 0.5).SetFloat("vel", 0.8))
	root.Prepend(tree.New("note").SetInt("key", 60).SetFloat("beat", 0).SetFloat("len", 1).SetFloat("vel", 0.8))
	return root
}

func TestEncodeDecode(t *testing.T) {
	for _, f := range []tree.Format{tree.XML, tree.YAML} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := tree.Encode(&buf, sample(), f); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := tree.Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode failed: %v\n%s", err, buf.String())
			}
			if got.Tag != "track" {
				t.Fatalf("tag mismatch, got %q, expected %q", got.Tag, "track")
			}
			if len(got.Children) != 2 {
				t.Fatalf("child count mismatch, got %v, expected 2\n%s", len(got.Children), buf.String())
			}
			first, second := got.Children[0], got.Children[1]
			if k := first.Int("key", -1); k != 60 {
				t.Errorf("first key mismatch, got %v, expected 60", k)
			}
			if k := second.Int("key", -1); k != 64 {
				t.Errorf("second key mismatch, got %v, expected 64", k)
			}
			if b := second.Float("beat", -1); b != 0.5 {
				t.Errorf("second beat mismatch, got %v, expected 0.5", b)
			}
			if v := first.Float("vel", -1); v != 0.8 {
				t.Errorf("velocity mismatch, got %v, expected 0.8", v)
			}
		})
	}
}

func TestAttributeDefaults(t *testing.T) {
	e := tree.New("note").Set("key", "not a number")
	if v := e.Int("key", 7); v != 7 {
		t.Errorf("malformed int should give default, got %v", v)
	}
	if v := e.Float("beat", 2.5); v != 2.5 {
		t.Errorf("missing float should give default, got %v", v)
	}
	if v := e.String("name", "x"); v != "x" {
		t.Errorf("missing string should give default, got %v", v)
	}
	e.Set("key", "12")
	if v := e.Int("key", 7); v != 12 {
		t.Errorf("Set should replace the value, got %v", v)
	}
	if len(e.Attrs) != 1 {
		t.Errorf("Set should not duplicate attributes, got %v", len(e.Attrs))
	}
}

func TestFind(t *testing.T) {
	root := tree.New("project").Append(tree.New("track"))
	if root.Find("track") == nil {
		t.Error("Find should locate a matching child")
	}
	if tr := root.Children[0]; tr.Find("track") != tr {
		t.Error("Find should return the element itself when the tag matches")
	}
	if root.Find("scale") != nil {
		t.Error("Find should return nil when nothing matches")
	}
	var nilElement *tree.Element
	if nilElement.Find("track") != nil {
		t.Error("Find on nil should return nil")
	}
}

func TestChildrenNamed(t *testing.T) {
	root := tree.New("track")
	root.Append(tree.New("note")).Append(tree.New("marker")).Append(tree.New("note"))
	count := 0
	for range root.ChildrenNamed("note") {
		count++
	}
	if count != 2 {
		t.Fatalf("ChildrenNamed yielded %v elements, expected 2", count)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := tree.Decode([]byte("   ")); err == nil {
		t.Error("expected error for empty document")
	}
	if _, err := tree.Decode([]byte("<track><note>")); err == nil {
		t.Error("expected error for truncated xml")
	}
	if _, err := tree.Decode([]byte("- a\n- b\n")); err == nil {
		t.Error("expected error for a yaml sequence root")
	}
}

func TestParseFormat(t *testing.T) {
	for _, c := range []struct {
		in   string
		want tree.Format
	}{{"xml", tree.XML}, {".yml", tree.YAML}, {"YAML", tree.YAML}} {
		got, err := tree.ParseFormat(c.in)
		if err != nil || got != c.want {
			t.Errorf("ParseFormat(%q) = %v, %v; expected %v", c.in, got, err, c.want)
		}
	}
	if _, err := tree.ParseFormat("mid"); !errors.Is(err, tree.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if f := tree.FormatOf("song.yaml"); f != tree.YAML {
		t.Errorf("FormatOf mismatch, got %v", f)
	}
	if f := tree.FormatOf("song"); f != tree.XML {
		t.Errorf("FormatOf should default to xml, got %v", f)
	}
}

func TestXMLOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := tree.Encode(&buf, tree.New("scale").Set("name", "Major").Set("intervals", "2 2 1 2 2 2 1"), tree.XML); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<scale name="Major" intervals="2 2 1 2 2 2 1"></scale>`) {
		t.Errorf("unexpected xml output:\n%s", buf.String())
	}
}
