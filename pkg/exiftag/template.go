package exiftag

import (
	"strconv"
	"strings"
)

// abbreviations maps short placeholder names to full EXIF tag names.
var abbreviations = map[string]string{
	"Mod":  "Model",
	"SW":   "Software",
	"A":    "Artist",
	"F":    "FocalLength",
	"FN":   "FNumber",
	"Exp":  "ExposureTime",
	"Prog": "ExposureProgram",
	"ISO":  "PhotographicSensitivity",
	"Date": "DateTimeOriginal",
	"Bias": "ExposureBiasValue",
	"MM":   "MeteringMode",
	"EM":   "ExposureMode",
	"LS":   "LightSource",
	"CS":   "ColorSpace",
	"SM":   "SensingMethod",
	"WB":   "WhiteBalance",
}

// Expand replaces `{...}` placeholders in a template with tag values.
//
// A placeholder names a tag, either by its abbreviation or by its raw EXIF
// name, optionally followed by `/divisor` to divide a numeric value before
// formatting. Unknown tags expand to an empty string; non-numeric values
// ignore the divisor. A nil tag map expands every placeholder empty.
func Expand(template string, tags *TagMap) string {
	var out strings.Builder
	out.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '{' {
			out.WriteByte(c)
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			out.WriteString(template[i:])
			break
		}
		out.WriteString(expandTag(template[i+1:i+end], tags))
		i += end
	}
	return out.String()
}

func expandTag(name string, tags *TagMap) string {
	if v, ok := lookup(name, tags); ok {
		return v
	}

	// no direct match, try a trailing numeric divisor
	slash := strings.LastIndexByte(name, '/')
	if slash < 0 {
		return ""
	}
	divisor, err := strconv.ParseFloat(name[slash+1:], 64)
	if err != nil || divisor == 0 {
		return ""
	}
	v, ok := lookup(name[:slash], tags)
	if !ok {
		return ""
	}
	value, err := strconv.ParseFloat(v, 64)
	if err != nil {
		// non-numeric values ignore the divisor
		return v
	}
	return strconv.FormatFloat(value/divisor, 'f', -1, 64)
}

func lookup(name string, tags *TagMap) (string, bool) {
	if tags == nil {
		return "", false
	}
	if v, ok := tags.Get(name); ok {
		return v, true
	}
	if full, ok := abbreviations[name]; ok {
		return tags.Get(full)
	}
	return "", false
}
