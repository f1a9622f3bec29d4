package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/difurigo/avant-api/recommend"
)

// RecommendPlanPayload is the career profile submitted for scoring.
type RecommendPlanPayload struct {
	Age              int `json:"idade"`
	YearsExperience  int `json:"anosExperiencia"`
	CoursesCompleted int `json:"cursosConcluidos"`
	CurrentLevel     int `json:"nivelAtual"`
	WantsRemote      int `json:"desejaTrabalhoRemoto"`
}

// Validate will run validation rules
func (r RecommendPlanPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Age, validation.Min(14), validation.Max(120)),
		validation.Field(&r.YearsExperience, validation.Min(0), validation.Max(80)),
		validation.Field(&r.CoursesCompleted, validation.Min(0), validation.Max(1000)),
		validation.Field(&r.CurrentLevel, validation.Min(0), validation.Max(2)),
		validation.Field(&r.WantsRemote, validation.Min(0), validation.Max(1)),
	)
}

// RecommendPlan handles POST /api/v2/funcionarios/recomendacao-plano. Any
// authenticated identity may score a profile.
func (s *Server) RecommendPlan(c *fiber.Ctx) error {
	payload := new(RecommendPlanPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	result := s.scorer.Recommend(recommend.Input{
		Age:              payload.Age,
		YearsExperience:  payload.YearsExperience,
		CoursesCompleted: payload.CoursesCompleted,
		CurrentLevel:     payload.CurrentLevel,
		WantsRemote:      payload.WantsRemote,
	})

	return c.JSON(result)
}
