package blocks

// Typed content variants decoded from the raw persisted maps. Decoding is
// total: missing or mistyped fields take the creation defaults from
// DefaultContent, so a renderer never sees a partial record.

// LinkContent backs the link call-to-action block.
type LinkContent struct {
	Title string
	URL   string
}

// HeaderContent backs the profile header block.
type HeaderContent struct {
	Title    string
	Subtitle string
	URL      string
}

// SocialLink is one entry of a social grid.
type SocialLink struct {
	Icon string
	URL  string
}

// SocialGridContent backs the social icon row.
type SocialGridContent struct {
	Links []SocialLink
}

// TitleContent backs the standalone heading block.
type TitleContent struct {
	Title string
	Align string
}

// TextContent backs the preformatted paragraph block.
type TextContent struct {
	Text string
}

// HeroContent backs the image + title + text block.
type HeroContent struct {
	Title string
	Text  string
	URL   string
}

// EmbedContent backs the third-party embed block.
type EmbedContent struct {
	URL string
}

// LabeledLink is one entry of a double-link block.
type LabeledLink struct {
	Label string
	URL   string
}

// DoubleLinkContent backs the two-column link block.
type DoubleLinkContent struct {
	Links []LabeledLink
}

// FileContent backs both the file download and image blocks.
type FileContent struct {
	Title string
	URL   string
}

// DecodeContent maps a raw content map into the typed variant for t. Unknown
// types decode to nil, which renders as nothing.
func DecodeContent(t Type, raw map[string]any) any {
	defaults := DefaultContent(t)
	switch t {
	case TypeLink:
		return LinkContent{
			Title: stringField(raw, defaults, "title"),
			URL:   stringField(raw, defaults, "url"),
		}
	case TypeHeader:
		return HeaderContent{
			Title:    stringField(raw, defaults, "title"),
			Subtitle: stringField(raw, defaults, "subtitle"),
			URL:      stringField(raw, defaults, "url"),
		}
	case TypeSocialGrid:
		content := SocialGridContent{}
		for _, entry := range listField(raw, defaults, "links") {
			link := SocialLink{
				Icon: stringValue(entry["icon"]),
				URL:  stringValue(entry["url"]),
			}
			if link.Icon == "" {
				link.Icon = "globe"
			}
			content.Links = append(content.Links, link)
		}
		return content
	case TypeSeparator:
		return struct{}{}
	case TypeTitle:
		content := TitleContent{
			Title: stringField(raw, defaults, "title"),
			Align: stringField(raw, defaults, "align"),
		}
		switch content.Align {
		case "left", "center", "right":
		default:
			content.Align = "left"
		}
		return content
	case TypeText:
		return TextContent{Text: stringField(raw, defaults, "text")}
	case TypeHero:
		return HeroContent{
			Title: stringField(raw, defaults, "title"),
			Text:  stringField(raw, defaults, "text"),
			URL:   stringField(raw, defaults, "url"),
		}
	case TypeEmbed:
		return EmbedContent{URL: stringField(raw, defaults, "url")}
	case TypeDoubleLink:
		content := DoubleLinkContent{}
		for _, entry := range listField(raw, defaults, "links") {
			content.Links = append(content.Links, LabeledLink{
				Label: stringValue(entry["label"]),
				URL:   stringValue(entry["url"]),
			})
		}
		return content
	case TypeFile, TypeImage:
		return FileContent{
			Title: stringField(raw, defaults, "title"),
			URL:   stringField(raw, defaults, "url"),
		}
	default:
		return nil
	}
}

func stringField(raw, defaults map[string]any, key string) string {
	if raw != nil {
		if value, ok := raw[key].(string); ok {
			return value
		}
	}
	if value, ok := defaults[key].(string); ok {
		return value
	}
	return ""
}

func listField(raw, defaults map[string]any, key string) []map[string]any {
	source := raw[key]
	if source == nil {
		source = defaults[key]
	}
	entries, ok := source.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		if asMap, ok := entry.(map[string]any); ok {
			out = append(out, asMap)
		}
	}
	return out
}

func stringValue(raw any) string {
	if value, ok := raw.(string); ok {
		return value
	}
	return ""
}
