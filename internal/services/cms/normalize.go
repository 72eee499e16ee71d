package cms

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// record is one CMS entry with any "attributes" wrapper folded into the top level.
// Flat fields win over wrapped ones when both are present.
type record map[string]any

func flatten(raw map[string]any) record {
	out := make(record, len(raw))
	for k, v := range raw {
		if k != "attributes" {
			out[k] = v
		}
	}
	if attrs, ok := raw["attributes"].(map[string]any); ok {
		for k, v := range attrs {
			if existing, ok := out[k]; !ok || existing == nil {
				out[k] = v
			}
		}
	}
	return out
}

func (r record) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (r record) integer(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// decodeRecords accepts a "data" payload that is a list, a single object or null
func decodeRecords(data json.RawMessage) ([]record, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []map[string]any
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		records := make([]record, 0, len(items))
		for _, item := range items {
			if item == nil {
				continue
			}
			records = append(records, flatten(item))
		}
		return records, nil
	}

	var item map[string]any
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return []record{flatten(item)}, nil
}

// mediaList reads {url}, {data:{attributes:{url}}}, {data:[...]} and plain lists
func mediaList(v any) []Media {
	switch t := v.(type) {
	case []any:
		var out []Media
		for _, item := range t {
			out = append(out, mediaList(item)...)
		}
		return out
	case map[string]any:
		if data, ok := t["data"]; ok {
			return mediaList(data)
		}
		r := flatten(t)
		url := r.str("url")
		if url == "" {
			return nil
		}
		return []Media{{
			URL:             url,
			AlternativeText: r.str("alternativeText"),
			Mime:            r.str("mime"),
			Width:           r.integer("width"),
			Height:          r.integer("height"),
		}}
	default:
		return nil
	}
}

// normalizer maps flattened records into canonical entities
type normalizer struct {
	mediaBaseURL        string
	fallbackImage       string
	clientFallbackImage string
}

func (n normalizer) absolute(url string) string {
	if url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return strings.TrimRight(n.mediaBaseURL, "/") + "/" + strings.TrimLeft(url, "/")
}

func (n normalizer) firstMedia(v any) *Media {
	list := mediaList(v)
	if len(list) == 0 {
		return nil
	}
	m := list[0]
	m.URL = n.absolute(m.URL)
	return &m
}

func (n normalizer) service(r record) Service {
	return Service{
		ID:          r.integer("id"),
		Title:       r.str("title"),
		Slug:        r.str("slug"),
		Description: Paragraphs(r["description"]),
	}
}

func (n normalizer) teamMember(r record) TeamMember {
	photo := n.firstMedia(r["photo"])
	if photo == nil {
		photo = n.firstMedia(r["image"])
	}

	photoURL := n.fallbackImage
	if photo != nil {
		photoURL = photo.URL
	}

	return TeamMember{
		ID:       r.integer("id"),
		Name:     r.str("name"),
		Position: r.str("position"),
		Email:    r.str("email"),
		Whatsapp: r.str("whatsapp"),
		PhotoURL: photoURL,
		Photo:    photo,
	}
}

func (n normalizer) blog(r record) Blog {
	images := mediaList(r["image"])
	for i := range images {
		images[i].URL = n.absolute(images[i].URL)
	}
	if images == nil {
		images = []Media{}
	}

	content := Paragraphs(r["content"])
	return Blog{
		ID:            r.integer("id"),
		Title:         r.str("title"),
		Slug:          r.str("slug"),
		PublishedDate: r.str("publishedDate"),
		Excerpt:       Excerpt(content, excerptLength),
		Content:       content,
		Images:        images,
	}
}

func (n normalizer) testimonial(r record) Testimonial {
	imageURL := n.clientFallbackImage
	if img := n.firstMedia(r["image"]); img != nil {
		imageURL = img.URL
	}

	message := FirstText(r["message"])
	if message == "" {
		message = DefaultMessage
	}

	return Testimonial{
		ID:       r.integer("id"),
		Name:     r.str("name"),
		Position: r.str("position"),
		Message:  message,
		ImageURL: imageURL,
	}
}

func (n normalizer) heroSlide(r record) HeroSlide {
	title := r.str("title")
	if title == "" {
		title = DefaultTitle
	}

	description := strings.Join(Paragraphs(r["description"]), " ")
	if description == "" {
		description = DefaultDescription
	}

	return HeroSlide{
		ID:          r.integer("id"),
		Title:       title,
		Description: description,
		Image:       n.firstMedia(r["image"]),
		Video:       n.firstMedia(r["video"]),
	}
}
