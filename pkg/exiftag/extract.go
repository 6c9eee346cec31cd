package exiftag

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExtractTags reads the EXIF block of an image file into a tag map.
//
// Metadata absence is common and must never abort rendering: files without
// a readable EXIF block yield an empty map, not an error.
func ExtractTags(r io.Reader) *TagMap {
	tags := NewTagMap()
	x, err := exif.Decode(r)
	if err != nil {
		return tags
	}
	_ = x.Walk(tagWalker{tags})
	return tags
}

type tagWalker struct {
	tags *TagMap
}

func (w tagWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if v := formatTag(tag); v != "" {
		w.tags.Set(string(name), v)
	}
	return nil
}

// formatTag renders a tag value the way it is conventionally printed:
// integers plain, sub-second rationals as fractions, other rationals as
// trimmed decimals.
func formatTag(tag *tiff.Tag) string {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return ""
		}
		return s
	case tiff.IntVal:
		v, err := tag.Int64(0)
		if err != nil {
			return ""
		}
		return strconv.FormatInt(v, 10)
	case tiff.FloatVal:
		v, err := tag.Float(0)
		if err != nil {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case tiff.RatVal:
		num, den, err := tag.Rat2(0)
		if err != nil || den == 0 {
			return ""
		}
		if den == 1 {
			return strconv.FormatInt(num, 10)
		}
		if num != 0 && num < den {
			return fmt.Sprintf("%d/%d", num, den)
		}
		return strconv.FormatFloat(float64(num)/float64(den), 'f', -1, 64)
	default:
		return ""
	}
}
