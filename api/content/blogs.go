package content

import (
	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/cms"
	apperrors "github.com/firmsite/site-api/pkg/errors"
)

// ListBlogs returns blog post summaries
// @Summary      List blog posts
// @Description  Blog posts with title, date, excerpt and images; full content is only returned by the detail endpoint
// @Tags         content
// @Produce      json
// @Success      200 {object} types.BlogsResponse
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/blogs [get]
func ListBlogs(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogs, err := deps.CMS.ListBlogs(c.Request.Context())
		if err != nil {
			types.SendError(c, cmsError(err))
			return
		}

		types.SendSuccess(c, types.BlogsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Blogs:        blogs,
			Count:        len(blogs),
		})
	}
}

// GetBlog returns one blog post by slug
// @Summary      Get blog post
// @Tags         content
// @Produce      json
// @Param        slug path string true "Blog slug"
// @Success      200 {object} types.BlogResponse
// @Failure      404 {object} types.ErrorResponse "Blog post not found"
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/blogs/{slug} [get]
func GetBlog(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := types.Language(c)
		slug := c.Param("slug")
		back := types.Link{Label: deps.T(lang, "back_to_blog"), Href: "/blog"}

		blog, err := deps.CMS.GetBlogBySlug(c.Request.Context(), slug)
		if cms.IsNotFound(err) {
			notFound := apperrors.NotFound("blog", slug)
			notFound.Message = deps.T(lang, "blog_not_found")
			types.SendErrorWithBack(c, notFound, &back)
			return
		}
		if err != nil {
			types.SendError(c, cmsError(err))
			return
		}

		resp := types.BlogResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Blog:         blog,
			Back:         back,
		}
		if blog.PublishedDate != "" {
			resp.Published = deps.T(lang, "published_on", blog.PublishedDate)
		}
		types.SendSuccess(c, resp)
	}
}
