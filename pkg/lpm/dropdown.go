package lpm

// DisplayItems returns the text of each dropdown item in order.
func (f FieldSpec) DisplayItems() []string {
	out := make([]string, len(f.Items))
	for i, item := range f.Items {
		out[i] = item.DisplayText
	}
	return out
}

// ConvertFromRaw maps an API value to its display text. Unknown values map to the
// first item; a field without items yields "".
func (f FieldSpec) ConvertFromRaw(raw string) string {
	for _, item := range f.Items {
		if item.APIValue == raw {
			return item.DisplayText
		}
	}
	if len(f.Items) == 0 {
		return ""
	}
	return f.Items[0].DisplayText
}

// ConvertToRaw maps display text back to its API value.
func (f FieldSpec) ConvertToRaw(display string) (string, bool) {
	for _, item := range f.Items {
		if item.DisplayText == display {
			return item.APIValue, true
		}
	}
	return "", false
}
