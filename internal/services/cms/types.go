package cms

// Media is an uploaded asset with an absolute URL
type Media struct {
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText,omitempty"`
	Mime            string `json:"mime,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
}

// Service is a practice area offered by the firm
type Service struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description []string `json:"description,omitempty"`
}

// TeamMember is a person listed on the team pages
type TeamMember struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Email    string `json:"email"`
	Whatsapp string `json:"whatsapp"`
	// PhotoURL is absolute, or the configured fallback when no photo is set
	PhotoURL string `json:"photoUrl"`
	Photo    *Media `json:"photo,omitempty"`
}

// Blog is a published article
type Blog struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Content       []string `json:"content,omitempty"`
	Images        []Media  `json:"images"`
}

// Testimonial is a client quote shown in the testimonial carousel
type Testimonial struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

// HeroSlide is one slide of the home page hero carousel
type HeroSlide struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       *Media `json:"image"`
	Video       *Media `json:"video"`
}

// Defaults used when the content source leaves a field empty
const (
	DefaultTitle       = "No title"
	DefaultDescription = "No description"
	DefaultMessage     = "No message"
)
