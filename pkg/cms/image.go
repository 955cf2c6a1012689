package cms

import (
	"regexp"
	"strconv"
)

// imageCDN is the host serving Sanity image assets.
const imageCDN = "https://cdn.sanity.io/images"

// imageRef matches asset references of the form image-<id>-<W>x<H>-<format>.
var imageRef = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+)x(\d+)-([a-z0-9]+)$`)

// ImageURL returns the CDN URL of an image asset reference. A positive
// width asks the CDN for a resized rendition. Unparseable references
// return "".
func ImageURL(projectID, dataset, ref string, width int) string {
	m := imageRef.FindStringSubmatch(ref)
	if m == nil {
		return ""
	}
	u := imageCDN + "/" + projectID + "/" + dataset + "/" + m[1] + "-" + m[2] + "x" + m[3] + "." + m[4]
	if width > 0 {
		u += "?w=" + strconv.Itoa(width) + "&auto=format"
	}
	return u
}

// ImageDimensions returns the pixel size encoded in an asset reference.
func ImageDimensions(ref string) (width, height int, ok bool) {
	m := imageRef.FindStringSubmatch(ref)
	if m == nil {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(m[2])
	h, errH := strconv.Atoi(m[3])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
