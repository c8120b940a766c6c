package usecase

import (
	"fmt"
	"reflect"
	"testing"
)

func TestOrder(t *testing.T) {
	o := NewOrderer(7)

	t.Run("primary is the first back image even when fronts come first", func(t *testing.T) {
		images := []ImageRef{
			{Path: "front.jpg"},
			{Path: "side.jpg"},
			{Path: "back.jpg", IsBack: true},
			{Path: "back2.jpg", IsBack: true},
		}

		set := o.Order(images)
		if set.Primary != "back.jpg" {
			t.Errorf("Primary = %q, want back.jpg", set.Primary)
		}
	})

	t.Run("falls back to first image when no back signal exists", func(t *testing.T) {
		set := o.Order([]ImageRef{{Path: "shot1.jpg"}, {Path: "shot2.jpg"}})
		if set.Primary != "shot1.jpg" {
			t.Errorf("Primary = %q, want shot1.jpg", set.Primary)
		}
		if set.Hover != "shot2.jpg" {
			t.Errorf("Hover = %q, want shot2.jpg", set.Hover)
		}
	})

	t.Run("hover equals primary when only one distinct image", func(t *testing.T) {
		set := o.Order([]ImageRef{{Path: "only.jpg"}})
		if set.Hover != set.Primary {
			t.Errorf("Hover = %q, want primary %q", set.Hover, set.Primary)
		}
	})

	t.Run("empty input yields empty display set", func(t *testing.T) {
		set := o.Order(nil)
		if set.Primary != "" || set.Hover != "" || len(set.Sequence) != 0 {
			t.Errorf("set = %+v, want empty", set)
		}
	})

	t.Run("sequence is truncated at the ceiling", func(t *testing.T) {
		var images []ImageRef
		for i := 0; i < 12; i++ {
			images = append(images, ImageRef{Path: fmt.Sprintf("img%02d.jpg", i)})
		}

		set := o.Order(images)
		if len(set.Sequence) != 7 {
			t.Errorf("len(Sequence) = %d, want 7", len(set.Sequence))
		}
	})

	t.Run("custom ceiling is respected", func(t *testing.T) {
		small := NewOrderer(3)
		set := small.Order([]ImageRef{
			{Path: "a.jpg"}, {Path: "b.jpg"}, {Path: "c.jpg"}, {Path: "d.jpg"},
		})
		if len(set.Sequence) != 3 {
			t.Errorf("len(Sequence) = %d, want 3", len(set.Sequence))
		}
	})

	t.Run("ordering is idempotent", func(t *testing.T) {
		inputs := [][]ImageRef{
			{{Path: "front.jpg"}, {Path: "blue/back.jpg", IsBack: true}, {Path: "extra.jpg"}},
			{{Path: "shot1.jpg"}, {Path: "shot2.jpg"}},
			{{Path: "a.jpg", IsBack: true}},
			nil,
		}
		// Beyond-ceiling input exercises truncation stability
		var long []ImageRef
		for i := 0; i < 10; i++ {
			long = append(long, ImageRef{Path: fmt.Sprintf("p%d.jpg", i)})
		}
		long = append(long, ImageRef{Path: "back.jpg", IsBack: true})
		inputs = append(inputs, long)

		for i, input := range inputs {
			first := o.Order(input)
			second := o.Order(RefsFromSequence(first.Sequence))
			if !reflect.DeepEqual(first, second) {
				t.Errorf("case %d: order(order(x).sequence) = %+v, want %+v", i, second, first)
			}
		}
	})
}

func TestRefsFromSequence(t *testing.T) {
	t.Run("infers back signal from filenames", func(t *testing.T) {
		refs := RefsFromSequence([]string{"front.jpg", "Blue/Back.jpg"})
		if refs[0].IsBack {
			t.Errorf("front.jpg flagged as back")
		}
		if !refs[1].IsBack {
			t.Errorf("Blue/Back.jpg not flagged as back")
		}
	})
}
