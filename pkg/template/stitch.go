package template

// Stitch concatenates a slice of OutputChunk into the final rendered
// string, stopping at and returning the first error encountered in
// chunk order. The partial output produced before the failing chunk
// is discarded; callers that want a best-effort preview should read
// the OutputChunk slice directly instead of going through Stitch.
func Stitch(chunks []OutputChunk) (string, error) {
	var out []byte
	for _, c := range chunks {
		if c.Err != nil {
			return "", c.Err
		}
		out = append(out, c.Text...)
	}
	return string(out), nil
}

// Sensitive reports whether any chunk in the slice is tagged
// sensitive, so callers can decide whether the stitched value is safe
// to log or display.
func Sensitive(chunks []OutputChunk) bool {
	for _, c := range chunks {
		if c.Sensitive {
			return true
		}
	}
	return false
}
