package usecase

import (
	"reflect"
	"testing"

	"github.com/ogarmory/backend/internal/domain"
)

func colorStructure(key string, order []string, groups map[string][]string) *domain.ProductStructure {
	ps := &domain.ProductStructure{
		ProductKey: key,
		Shape:      domain.ShapeColorVariant,
		GroupOrder: order,
		Groups:     make(map[string][]domain.AssetDescriptor),
	}
	for color, names := range groups {
		for _, name := range names {
			ps.Groups[color] = append(ps.Groups[color], domain.AssetDescriptor{
				PathOrID: name, RoleHint: domain.RoleColor, RoleValue: color,
			})
		}
	}
	return ps
}

func TestGroupColors(t *testing.T) {
	g := NewGrouper(nil)

	t.Run("resolves back and front slots by filename", func(t *testing.T) {
		ps := colorStructure("Ocean Waves", []string{"blue"}, map[string][]string{
			"blue": {"front.jpg", "back.jpg", "detail.jpg"},
		})

		out := g.Group(ps)
		if len(out.Variants) != 1 {
			t.Fatalf("got %d variants, want 1", len(out.Variants))
		}
		v := out.Variants[0]
		if v.BackImage != "back.jpg" || v.FrontImage != "front.jpg" {
			t.Errorf("slots = back:%q front:%q, want back.jpg/front.jpg", v.BackImage, v.FrontImage)
		}
		if !reflect.DeepEqual(v.ExtraImages, []string{"detail.jpg"}) {
			t.Errorf("ExtraImages = %v, want [detail.jpg]", v.ExtraImages)
		}
		// Back image leads the ordered list
		if out.Images[0].Path != "back.jpg" || !out.Images[0].IsBack {
			t.Errorf("Images[0] = %+v, want back.jpg marked as back", out.Images[0])
		}
	})

	t.Run("unlabeled group treats first entry as back", func(t *testing.T) {
		ps := colorStructure("Plain", []string{"black"}, map[string][]string{
			"black": {"one.jpg", "two.jpg", "three.jpg"},
		})

		out := g.Group(ps)
		v := out.Variants[0]
		if v.BackImage != "one.jpg" {
			t.Errorf("BackImage = %q, want one.jpg (back-first policy for unlabeled assets)", v.BackImage)
		}
		if v.FrontImage != "" {
			t.Errorf("FrontImage = %q, want empty", v.FrontImage)
		}
		if !reflect.DeepEqual(v.ExtraImages, []string{"two.jpg", "three.jpg"}) {
			t.Errorf("ExtraImages = %v, want remaining entries in order", v.ExtraImages)
		}
	})

	t.Run("empty color group still produces a variant", func(t *testing.T) {
		ps := colorStructure("Ocean Waves", []string{"blue", "grey"}, map[string][]string{
			"blue": {"back.jpg"},
		})

		out := g.Group(ps)
		if len(out.Variants) != 2 {
			t.Fatalf("got %d variants, want 2 (empty grey group preserved)", len(out.Variants))
		}
		grey := out.Variants[1]
		if grey.Color != "grey" || grey.BackImage != "" || grey.FrontImage != "" || len(grey.ExtraImages) != 0 {
			t.Errorf("grey variant = %+v, want imageless", grey)
		}
		if !reflect.DeepEqual(out.Colors, []string{"blue", "grey"}) {
			t.Errorf("Colors = %v, want [blue grey]", out.Colors)
		}
	})

	t.Run("orders variants by color recognition order", func(t *testing.T) {
		ps := colorStructure("Urban", []string{"black", "red", "grey"}, map[string][]string{
			"black": {"back.jpg"}, "red": {"back.jpg"}, "grey": {"back.jpg"},
		})

		out := g.Group(ps)
		got := []string{out.Variants[0].Color, out.Variants[1].Color, out.Variants[2].Color}
		if !reflect.DeepEqual(got, []string{"black", "red", "grey"}) {
			t.Errorf("variant order = %v, want [black red grey]", got)
		}
	})
}

func TestGroupViews(t *testing.T) {
	g := NewGrouper([]string{"back", "front", "side"})

	t.Run("emits back before front before other views", func(t *testing.T) {
		ps := &domain.ProductStructure{
			ProductKey: "Hoodie",
			Shape:      domain.ShapeViewVariant,
			GroupOrder: []string{"front", "side", "back"},
			Groups: map[string][]domain.AssetDescriptor{
				"front": {{PathOrID: "f1.jpg"}, {PathOrID: "f2.jpg"}},
				"side":  {{PathOrID: "s1.jpg"}},
				"back":  {{PathOrID: "b1.jpg"}},
			},
		}

		out := g.Group(ps)
		var paths []string
		for _, img := range out.Images {
			paths = append(paths, img.Path)
		}
		want := []string{"b1.jpg", "f1.jpg", "f2.jpg", "s1.jpg"}
		if !reflect.DeepEqual(paths, want) {
			t.Errorf("order = %v, want %v", paths, want)
		}
		if !out.Images[0].IsBack || out.Images[1].IsBack {
			t.Errorf("back flags wrong: %+v", out.Images)
		}
	})

	t.Run("view variant has no color variants", func(t *testing.T) {
		ps := &domain.ProductStructure{
			ProductKey: "Hoodie",
			Shape:      domain.ShapeViewVariant,
			GroupOrder: []string{"back"},
			Groups:     map[string][]domain.AssetDescriptor{"back": {{PathOrID: "b.jpg"}}},
		}

		out := g.Group(ps)
		if len(out.Variants) != 0 || len(out.Colors) != 0 {
			t.Errorf("variants/colors = %v/%v, want empty", out.Variants, out.Colors)
		}
	})
}

func TestGroupFlat(t *testing.T) {
	g := NewGrouper(nil)

	t.Run("passes entries through in original order", func(t *testing.T) {
		ps := &domain.ProductStructure{
			ProductKey: "City Skyline",
			Shape:      domain.ShapeFlat,
			GroupOrder: []string{""},
			Groups: map[string][]domain.AssetDescriptor{
				"": {{PathOrID: "shot1.jpg"}, {PathOrID: "shot2.jpg"}},
			},
		}

		out := g.Group(ps)
		if len(out.Images) != 2 || out.Images[0].Path != "shot1.jpg" {
			t.Errorf("Images = %+v, want original order", out.Images)
		}
	})

	t.Run("flags flat filenames containing back", func(t *testing.T) {
		ps := &domain.ProductStructure{
			ProductKey: "Poster",
			Shape:      domain.ShapeFlat,
			GroupOrder: []string{""},
			Groups: map[string][]domain.AssetDescriptor{
				"": {{PathOrID: "hero.jpg"}, {PathOrID: "BACK_shot.jpg"}},
			},
		}

		out := g.Group(ps)
		if out.Images[0].IsBack || !out.Images[1].IsBack {
			t.Errorf("back flags = %+v, want only BACK_shot.jpg flagged", out.Images)
		}
	})
}
