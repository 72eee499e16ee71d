package carousel

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/internal/services/carousel"
	"github.com/firmsite/site-api/internal/services/cms"
	apperrors "github.com/firmsite/site-api/pkg/errors"
)

const heartbeatInterval = 30 * time.Second

// indexEvent is the payload of each stream event
type indexEvent struct {
	Index int `json:"index"`
}

// HeroStream pushes the hero carousel index as server-sent events
// @Summary      Hero carousel stream
// @Description  Server-sent events carrying the index of the hero slide to show. The index advances on the configured interval and wraps after the last slide.
// @Tags         carousel
// @Produce      text/event-stream
// @Success      200 {string} string "event stream"
// @Failure      503 {object} types.ErrorResponse "Carousel not running"
// @Router       /api/v1/hero-slides/stream [get]
func HeroStream(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		rotator := deps.HeroRotator
		if rotator == nil {
			types.SendError(c, apperrors.New(apperrors.ErrCodeServiceDown, "Carousel not running"))
			return
		}

		updates, cancel := rotator.Subscribe()
		defer cancel()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		c.SSEvent("index", indexEvent{Index: rotator.Current()})
		c.Writer.Flush()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				return
			case <-deps.Closing:
				return
			case idx := <-updates:
				c.SSEvent("index", indexEvent{Index: idx})
				c.Writer.Flush()
			case <-heartbeat.C:
				c.SSEvent("ping", "")
				c.Writer.Flush()
			}
		}
	}
}

// TestimonialNeighbors returns the previous and next testimonial indices
// @Summary      Testimonial navigation
// @Description  Wrap-around previous and next indices for the testimonial carousel. The previous of the first is the last and the next of the last is the first.
// @Tags         carousel
// @Produce      json
// @Param        index path int true "Current testimonial index"
// @Success      200 {object} types.NeighborsResponse
// @Failure      400 {object} types.ErrorResponse "Invalid index"
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/testimonials/{index}/neighbors [get]
func TestimonialNeighbors(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := types.ParseIntParam(c, "index")
		if !ok {
			return
		}

		testimonials, err := deps.CMS.ListTestimonials(c.Request.Context())
		if err != nil {
			types.SendError(c, apperrors.ExternalServiceError("cms", err))
			return
		}

		cursor := carousel.NewCursor(len(testimonials), index)
		resp := types.NeighborsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Neighbors:    cursor.Neighbors(),
		}
		if len(testimonials) > 0 {
			resp.Testimonial = &testimonials[cursor.Current()]
		}
		types.SendSuccess(c, resp)
	}
}

// TeamCarousel returns the visible window of the team carousel
// @Summary      Team carousel window
// @Description  Team members visible from start for a viewport width: one below 768px, two below 1024px, three otherwise
// @Tags         carousel
// @Produce      json
// @Param        start query int false "First visible index"
// @Param        width query int false "Viewport width in pixels"
// @Success      200 {object} types.TeamCarouselResponse
// @Failure      502 {object} types.ErrorResponse "Content service unavailable"
// @Router       /api/v1/carousel/team [get]
func TeamCarousel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, _ := strconv.Atoi(c.Query("start"))
		width, err := strconv.Atoi(c.Query("width"))
		if err != nil || width <= 0 {
			width = carousel.BreakpointDesktop
		}

		team, err := deps.CMS.ListTeamMembers(c.Request.Context())
		if err != nil {
			types.SendError(c, apperrors.ExternalServiceError("cms", err))
			return
		}

		perView := carousel.PerView(width)
		cursor := carousel.NewCursor(len(team), start)
		indices := carousel.Window(len(team), cursor.Current(), perView)

		members := make([]cms.TeamMember, 0, len(indices))
		for _, i := range indices {
			members = append(members, team[i])
		}

		types.SendSuccess(c, types.TeamCarouselResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			PerView:      perView,
			Start:        cursor.Current(),
			Prev:         cursor.Prev().Current(),
			Next:         cursor.Next().Current(),
			Indices:      indices,
			Members:      members,
		})
	}
}
