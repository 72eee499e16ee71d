package cms

import "context"

// Source is the read/write surface of the headless CMS used by the site
type Source interface {
	ListServices(ctx context.Context) ([]Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*Service, error)

	ListTeamMembers(ctx context.Context) ([]TeamMember, error)
	GetTeamMember(ctx context.Context, id int) (*TeamMember, error)

	ListBlogs(ctx context.Context) ([]Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*Blog, error)

	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	ListHeroSlides(ctx context.Context, locale string) ([]HeroSlide, error)

	CreateSubscriber(ctx context.Context, email string) error

	Ping(ctx context.Context) error
}

// Warmer refreshes cached collections ahead of expiry
type Warmer interface {
	Warm(ctx context.Context) error
}
